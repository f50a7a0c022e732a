// internal/app/system/flatten/labels.go
package flatten

import "github.com/curasoft/famhub/internal/domain/models"

// The export format is consumed by German-speaking case workers; all display
// strings are fixed German labels, not localized at runtime.

// NoOrganization is the sentinel shown when a creating user has no
// organization.
const NoOrganization = "keine"

// BoolString renders a boolean the way the grid and exports expect it.
func BoolString(b bool) string {
	if b {
		return "ja"
	}
	return "nein"
}

// GenderString maps a stored gender to its display label. Unknown stored
// values pass through unchanged so data problems stay visible.
func GenderString(g models.Gender) string {
	switch g {
	case models.GenderMale:
		return "männlich"
	case models.GenderFemale:
		return "weiblich"
	case models.GenderOther:
		return "anderes"
	case models.GenderUnknown:
		return "unbekannt"
	}
	return string(g)
}

// DisabilityString maps a disability status to its display label.
func DisabilityString(d models.Disability) string {
	switch d {
	case models.DisabilityYes:
		return "ja"
	case models.DisabilityNo:
		return "nein"
	case models.DisabilityImpending:
		return "drohend"
	case models.DisabilityUnknown:
		return "unbekannt"
	}
	return string(d)
}

// EducationString maps a caregiver's highest degree to its display label.
func EducationString(e models.Education) string {
	switch e {
	case models.EducationNone:
		return "kein Abschluss"
	case models.EducationLower:
		return "Hauptschulabschluss"
	case models.EducationMiddle:
		return "Realschulabschluss"
	case models.EducationAbitur:
		return "Abitur"
	case models.EducationVocational:
		return "Berufsausbildung"
	case models.EducationUniversity:
		return "Hochschulabschluss"
	case models.EducationOther:
		return "anderes"
	case models.EducationUnknown:
		return "unbekannt"
	}
	return string(e)
}
