// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureOrganizations(ctx, db); err != nil {
		problems = append(problems, "organizations: "+err.Error())
	}
	if err := ensureSubOrganizations(ctx, db); err != nil {
		problems = append(problems, "sub_organizations: "+err.Error())
	}
	if err := ensureSurveys(ctx, db); err != nil {
		problems = append(problems, "surveys: "+err.Error())
	}
	if err := ensureResponses(ctx, db); err != nil {
		problems = append(problems, "responses: "+err.Error())
	}
	if err := ensureFamilies(ctx, db); err != nil {
		problems = append(problems, "families: "+err.Error())
	}
	if err := ensureConfigurations(ctx, db); err != nil {
		problems = append(problems, "configurations: "+err.Error())
	}
	if err := ensureLogins(ctx, db); err != nil {
		problems = append(problems, "logins: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	existing := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		defer cur.Close(ctx)
		for cur.Next(ctx) {
			var idx existingIndex
			if err := cur.Decode(&idx); err != nil {
				zap.L().Warn("failed to decode existing index",
					zap.String("collection", coll.Name()),
					zap.Error(err))
				continue
			}
			existing[keySig(idx.Key)] = idx
		}
	}

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		desiredSig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[desiredSig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) {
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig))
				continue
			}
			// Options mismatch (e.g. upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		}
		zap.L().Info("index created",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func asc(fields ...string) bson.D {
	d := make(bson.D, 0, len(fields))
	for _, f := range fields {
		d = append(d, bson.E{Key: f, Value: 1})
	}
	return d
}

/* -------------------------------------------------------------------------- */
/* Per-collection index sets                                                  */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			Keys:    asc("email"),
			Options: &options.IndexOptions{Name: strPtr("users_email_unique"), Unique: boolPtr(true)},
		},
		{
			// Sparse: most rows have an auth id, bootstrap-admin rows may not.
			Keys: asc("auth_id"),
			Options: &options.IndexOptions{
				Name:   strPtr("users_auth_id_unique"),
				Unique: boolPtr(true),
				Sparse: boolPtr(true),
			},
		},
		{
			Keys:    asc("organization_id"),
			Options: &options.IndexOptions{Name: strPtr("users_organization")},
		},
	})
}

func ensureOrganizations(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("organizations"), []mongo.IndexModel{
		{
			Keys:    asc("name_ci"),
			Options: &options.IndexOptions{Name: strPtr("organizations_name_ci_unique"), Unique: boolPtr(true)},
		},
	})
}

func ensureSubOrganizations(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("sub_organizations"), []mongo.IndexModel{
		{
			// Name uniqueness is per parent organization.
			Keys:    asc("organization_id", "name_ci"),
			Options: &options.IndexOptions{Name: strPtr("suborgs_org_name_ci_unique"), Unique: boolPtr(true)},
		},
	})
}

func ensureSurveys(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("surveys"), []mongo.IndexModel{
		{
			Keys:    asc("organization_id"),
			Options: &options.IndexOptions{Name: strPtr("surveys_organization")},
		},
	})
}

func ensureResponses(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("responses"), []mongo.IndexModel{
		{
			Keys:    asc("survey_id", "created_at"),
			Options: &options.IndexOptions{Name: strPtr("responses_survey_created")},
		},
		{
			Keys:    asc("user_id"),
			Options: &options.IndexOptions{Name: strPtr("responses_user")},
		},
		{
			// Serves the orgcontroller scope filter without a collection scan.
			Keys:    asc("survey_organization_id", "user_organization_id"),
			Options: &options.IndexOptions{Name: strPtr("responses_scope_orgs")},
		},
	})
}

func ensureFamilies(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("families"), []mongo.IndexModel{
		{
			Keys:    asc("number"),
			Options: &options.IndexOptions{Name: strPtr("families_number")},
		},
		{
			Keys:    asc("created_by_id"),
			Options: &options.IndexOptions{Name: strPtr("families_creator")},
		},
		{
			Keys:    asc("creator_organization_id"),
			Options: &options.IndexOptions{Name: strPtr("families_creator_org")},
		},
	})
}

func ensureConfigurations(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("configurations"), []mongo.IndexModel{
		{
			Keys:    asc("name"),
			Options: &options.IndexOptions{Name: strPtr("configurations_name_unique"), Unique: boolPtr(true)},
		},
	})
}

func ensureLogins(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("logins"), []mongo.IndexModel{
		{
			Keys:    asc("user_id", "logged_at"),
			Options: &options.IndexOptions{Name: strPtr("logins_user_time")},
		},
	})
}
