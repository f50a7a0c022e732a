// internal/app/store/users/fetcher.go
package userstore

import (
	"context"

	"github.com/curasoft/famhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Fetcher adapts the user store to auth.UserFetcher. It is invoked once per
// authenticated request, so sessions always see the user's current role and
// organization memberships.
type Fetcher struct {
	store *Store
	log   *zap.Logger
}

func NewFetcher(store *Store, logger *zap.Logger) *Fetcher {
	return &Fetcher{store: store, log: logger}
}

func (f *Fetcher) FetchUser(ctx context.Context, userID string) *auth.SessionUser {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		f.log.Warn("session carries malformed user id", zap.String("user_id", userID))
		return nil
	}

	u, err := f.store.GetByID(ctx, oid)
	if err != nil {
		f.log.Warn("session user lookup failed", zap.String("user_id", userID), zap.Error(err))
		return nil
	}
	if u.Status != "" && u.Status != "active" {
		return nil
	}

	su := &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
	if u.OrganizationID != nil {
		su.OrganizationID = u.OrganizationID.Hex()
	}
	for _, sid := range u.SubOrganizationIDs {
		su.SubOrganizationIDs = append(su.SubOrganizationIDs, sid.Hex())
	}
	return su
}
