// internal/app/system/flatten/family.go
package flatten

import (
	"strconv"
	"time"

	"github.com/curasoft/famhub/internal/domain/models"
)

// FlattenFamily converts one hydrated family into the flat export record.
// Children and caregivers become ordinal-keyed groups ("1", "2", …) carrying
// derived display fields; ages are computed against now.
func FlattenFamily(f models.FullFamily, now time.Time) map[string]any {
	rec := map[string]any{
		"familiennummer":     f.Number,
		"betreuungsbeginn":   f.BeginOfCare,
		"betreuungsende":     f.EndOfCare,
		"anzahl_kinder":      f.ChildrenInHousehold,
		"andere_fachkraefte": f.OtherInstalledProfessionals,
		"wohnort":            f.Location,
		"zugang_ueber":       comingFrom(f),
		"kinder":             flattenChildren(f.Children, now),
		"bezugspersonen":     flattenCaregivers(f.Caregivers, now),
		"verantwortlich":     ResponsibleParty(f.CreatedBy, false),
	}
	return rec
}

func comingFrom(f models.FullFamily) string {
	if f.ComingFrom != nil && f.ComingFrom.Value != "" {
		return f.ComingFrom.Value
	}
	return f.ComingFromOtherValue
}

func flattenChildren(children []models.Child, now time.Time) map[string]any {
	out := make(map[string]any, len(children))
	for i, c := range children {
		out[strconv.Itoa(i+1)] = map[string]any{
			"alter":          Age(c.DateOfBirth, now),
			"geschlecht":     GenderString(c.Gender),
			"behinderung":    DisabilityString(c.Disability),
			"mehrling":       BoolString(c.IsMultiple),
			"fruehgeburt":    BoolString(c.IsPremature),
			"psych_diagnose": BoolString(c.PsychDiagnosis),
		}
	}
	return out
}

func flattenCaregivers(caregivers []models.Caregiver, now time.Time) map[string]any {
	out := make(map[string]any, len(caregivers))
	for i, c := range caregivers {
		out[strconv.Itoa(i+1)] = map[string]any{
			"alter":                 Age(c.DateOfBirth, now),
			"geschlecht":            GenderString(c.Gender),
			"behinderung":           DisabilityString(c.Disability),
			"migrationshintergrund": BoolString(c.MigrationBackground),
			"bildungsabschluss":     EducationString(c.Education),
			"psych_diagnose":        BoolString(c.PsychDiagnosis),
		}
	}
	return out
}

// ResponsibleParty names the creating user's organization and
// sub-organizations. withName additionally includes the user's name (the
// response export shows it, the family export and grid do not).
func ResponsibleParty(u *models.FullUser, withName bool) map[string]any {
	org := NoOrganization
	var subs []string
	name := ""
	if u != nil {
		name = u.Name
		if u.Organization != nil && u.Organization.Name != "" {
			org = u.Organization.Name
		}
		subs = make([]string, 0, len(u.SubOrganizations))
		for _, s := range u.SubOrganizations {
			subs = append(subs, s.Name)
		}
	} else {
		subs = []string{}
	}

	rec := map[string]any{
		"organisation":        org,
		"unterorganisationen": subs,
	}
	if withName {
		rec["name"] = name
	}
	return rec
}
