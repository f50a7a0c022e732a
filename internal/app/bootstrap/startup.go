// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"strings"

	comingfromstore "github.com/curasoft/famhub/internal/app/store/comingfrom"
	userstore "github.com/curasoft/famhub/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It
// provisions the bootstrap admin account and seeds the coming-from option
// list when configured.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.FamHubMongoDatabase

	if appCfg.AdminEmail != "" && appCfg.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(appCfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		email := strings.ToLower(strings.TrimSpace(appCfg.AdminEmail))
		if err := userstore.New(db).UpsertLocalAdmin(ctx, email, hash); err != nil {
			logger.Error("bootstrap admin provisioning failed", zap.Error(err))
			return err
		}
		logger.Info("bootstrap admin ensured", zap.String("email", email))
	}

	if appCfg.ComingFromSeed != "" {
		var values []string
		for _, v := range strings.Split(appCfg.ComingFromSeed, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		if err := comingfromstore.New(db).Seed(ctx, values); err != nil {
			logger.Error("coming-from seed failed", zap.Error(err))
			return err
		}
	}

	return nil
}
