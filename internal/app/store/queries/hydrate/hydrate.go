// internal/app/store/queries/hydrate/hydrate.go

// Package hydrate assembles the Full* aggregate views the exports consume.
// It batches the cross-collection lookups (users, organizations,
// sub-organizations, coming-from options) so a grid of n rows costs a fixed
// number of queries, not n.
package hydrate

import (
	"context"

	comingfromstore "github.com/curasoft/famhub/internal/app/store/comingfrom"
	familystore "github.com/curasoft/famhub/internal/app/store/families"
	organizationstore "github.com/curasoft/famhub/internal/app/store/organizations"
	suborganizationstore "github.com/curasoft/famhub/internal/app/store/suborganizations"
	userstore "github.com/curasoft/famhub/internal/app/store/users"
	"github.com/curasoft/famhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hydrator holds the stores needed to expand references into documents.
type Hydrator struct {
	Users            *userstore.Store
	Organizations    *organizationstore.Store
	SubOrganizations *suborganizationstore.Store
	Families         *familystore.Store
	ComingFrom       *comingfromstore.Store
}

// FullUsers loads the given users' organizations and sub-organizations and
// returns hydrated views keyed by user id.
func (h *Hydrator) FullUsers(ctx context.Context, users []models.User) (map[primitive.ObjectID]*models.FullUser, error) {
	orgIDs := make(map[primitive.ObjectID]struct{})
	subIDs := make(map[primitive.ObjectID]struct{})
	for _, u := range users {
		if u.OrganizationID != nil {
			orgIDs[*u.OrganizationID] = struct{}{}
		}
		for _, sid := range u.SubOrganizationIDs {
			subIDs[sid] = struct{}{}
		}
	}

	orgs, err := h.Organizations.GetByIDs(ctx, keys(orgIDs))
	if err != nil {
		return nil, err
	}
	orgByID := make(map[primitive.ObjectID]models.Organization, len(orgs))
	for _, o := range orgs {
		orgByID[o.ID] = o
	}

	subs, err := h.SubOrganizations.GetByIDs(ctx, keys(subIDs))
	if err != nil {
		return nil, err
	}
	subByID := make(map[primitive.ObjectID]models.SubOrganization, len(subs))
	for _, sub := range subs {
		subByID[sub.ID] = sub
	}

	out := make(map[primitive.ObjectID]*models.FullUser, len(users))
	for _, u := range users {
		fu := &models.FullUser{User: u}
		if u.OrganizationID != nil {
			if o, ok := orgByID[*u.OrganizationID]; ok {
				fu.Organization = &o
			}
		}
		for _, sid := range u.SubOrganizationIDs {
			if sub, ok := subByID[sid]; ok {
				fu.SubOrganizations = append(fu.SubOrganizations, sub)
			}
		}
		out[u.ID] = fu
	}
	return out, nil
}

// FullFamilies hydrates families with their creator and coming-from option.
func (h *Hydrator) FullFamilies(ctx context.Context, families []models.Family) ([]models.FullFamily, error) {
	userIDs := make(map[primitive.ObjectID]struct{})
	optionIDs := make(map[primitive.ObjectID]struct{})
	for _, f := range families {
		userIDs[f.CreatedByID] = struct{}{}
		if f.ComingFromOptionID != nil {
			optionIDs[*f.ComingFromOptionID] = struct{}{}
		}
	}

	creators, err := h.Users.GetByIDs(ctx, keys(userIDs))
	if err != nil {
		return nil, err
	}
	fullCreators, err := h.FullUsers(ctx, creators)
	if err != nil {
		return nil, err
	}

	opts, err := h.ComingFrom.GetByIDs(ctx, keys(optionIDs))
	if err != nil {
		return nil, err
	}
	optByID := make(map[primitive.ObjectID]models.ComingFromOption, len(opts))
	for _, o := range opts {
		optByID[o.ID] = o
	}

	out := make([]models.FullFamily, 0, len(families))
	for _, f := range families {
		ff := models.FullFamily{Family: f}
		ff.CreatedBy = fullCreators[f.CreatedByID]
		if f.ComingFromOptionID != nil {
			if o, ok := optByID[*f.ComingFromOptionID]; ok {
				ff.ComingFrom = &o
			}
		}
		out = append(out, ff)
	}
	return out, nil
}

// FullResponses hydrates responses with the shared survey, their authors,
// and the families they concern. All responses must belong to survey.
func (h *Hydrator) FullResponses(ctx context.Context, survey *models.Survey, responses []models.Response) ([]models.FullResponse, error) {
	userIDs := make(map[primitive.ObjectID]struct{})
	familyIDs := make(map[primitive.ObjectID]struct{})
	for _, r := range responses {
		userIDs[r.UserID] = struct{}{}
		if r.FamilyID != nil {
			familyIDs[*r.FamilyID] = struct{}{}
		}
	}

	authors, err := h.Users.GetByIDs(ctx, keys(userIDs))
	if err != nil {
		return nil, err
	}
	fullAuthors, err := h.FullUsers(ctx, authors)
	if err != nil {
		return nil, err
	}

	families, err := h.Families.GetByIDs(ctx, keys(familyIDs))
	if err != nil {
		return nil, err
	}
	fullFamilies, err := h.FullFamilies(ctx, families)
	if err != nil {
		return nil, err
	}
	familyByID := make(map[primitive.ObjectID]*models.FullFamily, len(fullFamilies))
	for i := range fullFamilies {
		familyByID[fullFamilies[i].ID] = &fullFamilies[i]
	}

	out := make([]models.FullResponse, 0, len(responses))
	for _, r := range responses {
		fr := models.FullResponse{Response: r, Survey: survey}
		fr.User = fullAuthors[r.UserID]
		if r.FamilyID != nil {
			fr.Family = familyByID[*r.FamilyID]
		}
		out = append(out, fr)
	}
	return out, nil
}

func keys(set map[primitive.ObjectID]struct{}) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
