// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authgooglefeature "github.com/curasoft/famhub/internal/app/features/authgoogle"
	comingfromfeature "github.com/curasoft/famhub/internal/app/features/comingfrom"
	configurationsfeature "github.com/curasoft/famhub/internal/app/features/configurations"
	errorsfeature "github.com/curasoft/famhub/internal/app/features/errors"
	familiesfeature "github.com/curasoft/famhub/internal/app/features/families"
	healthfeature "github.com/curasoft/famhub/internal/app/features/health"
	loginfeature "github.com/curasoft/famhub/internal/app/features/login"
	logoutfeature "github.com/curasoft/famhub/internal/app/features/logout"
	organizationsfeature "github.com/curasoft/famhub/internal/app/features/organizations"
	suborganizationsfeature "github.com/curasoft/famhub/internal/app/features/suborganizations"
	surveysfeature "github.com/curasoft/famhub/internal/app/features/surveys"
	userinfofeature "github.com/curasoft/famhub/internal/app/features/userinfo"
	usersfeature "github.com/curasoft/famhub/internal/app/features/users"
	comingfromstore "github.com/curasoft/famhub/internal/app/store/comingfrom"
	familystore "github.com/curasoft/famhub/internal/app/store/families"
	organizationstore "github.com/curasoft/famhub/internal/app/store/organizations"
	"github.com/curasoft/famhub/internal/app/store/queries/hydrate"
	suborganizationstore "github.com/curasoft/famhub/internal/app/store/suborganizations"
	userstore "github.com/curasoft/famhub/internal/app/store/users"
	"github.com/curasoft/famhub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It creates the session layer, wires the
// per-request user fetcher, and mounts the JSON API feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.FamHubMongoDatabase

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Fresh user data on every request: role changes and disabled accounts
	// take effect immediately.
	users := userstore.New(db)
	sessionMgr.SetUserFetcher(userstore.NewFetcher(users, logger))

	errLog := errorsfeature.NewErrorLogger(logger)

	hydrator := &hydrate.Hydrator{
		Users:            users,
		Organizations:    organizationstore.New(db),
		SubOrganizations: suborganizationstore.New(db),
		Families:         familystore.New(db),
		ComingFrom:       comingfromstore.New(db),
	}

	r := chi.NewRouter()

	// Global auth middleware: loads the SessionUser into context when a
	// session is present.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.FamHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	googleHandler := authgooglefeature.NewHandler(db, sessionMgr, errLog,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, secure, logger, appCfg.SessionKey)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	loginHandler := loginfeature.NewHandler(db, sessionMgr, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// JSON API
	r.Route("/api", func(r chi.Router) {
		userinfoHandler := userinfofeature.NewHandler(db, errLog, logger)
		r.Mount("/user", userinfofeature.Routes(userinfoHandler))

		usersHandler := usersfeature.NewHandler(db, errLog, logger)
		r.Mount("/users", usersfeature.Routes(usersHandler))

		comingFromHandler := comingfromfeature.NewHandler(db, errLog, logger)
		r.Mount("/comingFrom", comingfromfeature.Routes(comingFromHandler))

		configHandler := configurationsfeature.NewHandler(db, errLog, logger)
		r.Mount("/config", configurationsfeature.Routes(configHandler))

		subOrgHandler := suborganizationsfeature.NewHandler(db, errLog, logger)
		r.Mount("/subOrganizations", suborganizationsfeature.Routes(subOrgHandler))

		orgHandler := organizationsfeature.NewHandler(db, errLog, logger)
		r.Mount("/organizations", organizationsfeature.Routes(orgHandler))

		surveysHandler := surveysfeature.NewHandler(db, hydrator, errLog, logger)
		r.Mount("/surveys", surveysfeature.Routes(surveysHandler))

		familiesHandler := familiesfeature.NewHandler(db, hydrator, errLog, logger)
		r.Mount("/families", familiesfeature.Routes(familiesHandler))
	})

	return r, nil
}
