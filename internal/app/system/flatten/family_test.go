package flatten

import (
	"reflect"
	"testing"
	"time"

	"github.com/curasoft/famhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFlattenFamily(t *testing.T) {
	now := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	begin := time.Date(2023, 9, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	ff := models.FullFamily{
		Family: models.Family{
			ID:                          primitive.NewObjectID(),
			Number:                      7,
			BeginOfCare:                 begin,
			EndOfCare:                   &end,
			ChildrenInHousehold:         3,
			Location:                    "Köln",
			OtherInstalledProfessionals: "SPFH",
			Children: []models.Child{
				{
					DateOfBirth:    datePtr(2019, 8, 1),
					Gender:         models.GenderMale,
					Disability:     models.DisabilityImpending,
					IsMultiple:     true,
					IsPremature:    false,
					PsychDiagnosis: false,
				},
				{
					Gender:     models.GenderUnknown,
					Disability: models.DisabilityUnknown,
				},
			},
			Caregivers: []models.Caregiver{
				{
					DateOfBirth:         datePtr(1990, 12, 24),
					Gender:              models.GenderFemale,
					Disability:          models.DisabilityNo,
					MigrationBackground: true,
					Education:           models.EducationMiddle,
					PsychDiagnosis:      true,
				},
			},
		},
		CreatedBy:  fullUser("Anna", "Caritas", "Nord", "Süd"),
		ComingFrom: &models.ComingFromOption{ID: primitive.NewObjectID(), Value: "Jugendamt"},
	}

	rec := FlattenFamily(ff, now)

	if rec["familiennummer"] != 7 {
		t.Errorf("familiennummer: got %v", rec["familiennummer"])
	}
	if rec["betreuungsbeginn"] != begin {
		t.Errorf("betreuungsbeginn: got %v", rec["betreuungsbeginn"])
	}
	if rec["anzahl_kinder"] != 3 {
		t.Errorf("anzahl_kinder: got %v", rec["anzahl_kinder"])
	}
	if rec["wohnort"] != "Köln" {
		t.Errorf("wohnort: got %v", rec["wohnort"])
	}
	if rec["andere_fachkraefte"] != "SPFH" {
		t.Errorf("andere_fachkraefte: got %v", rec["andere_fachkraefte"])
	}
	if rec["zugang_ueber"] != "Jugendamt" {
		t.Errorf("zugang_ueber: got %v", rec["zugang_ueber"])
	}

	kinder := rec["kinder"].(map[string]any)
	if len(kinder) != 2 {
		t.Fatalf("kinder: got %d entries", len(kinder))
	}
	first := kinder["1"].(map[string]any)
	if age := first["alter"].(*int); age == nil || *age != 6 {
		t.Errorf("child 1 alter: got %v", first["alter"])
	}
	if first["geschlecht"] != "männlich" || first["behinderung"] != "drohend" {
		t.Errorf("child 1 labels: got %v", first)
	}
	if first["mehrling"] != "ja" || first["fruehgeburt"] != "nein" {
		t.Errorf("child 1 flags: got %v", first)
	}
	second := kinder["2"].(map[string]any)
	if age := second["alter"].(*int); age != nil {
		t.Errorf("child 2 alter should be nil, got %d", *age)
	}
	if second["geschlecht"] != "unbekannt" {
		t.Errorf("child 2 geschlecht: got %v", second["geschlecht"])
	}

	bezug := rec["bezugspersonen"].(map[string]any)
	cg := bezug["1"].(map[string]any)
	if age := cg["alter"].(*int); age == nil || *age != 35 {
		t.Errorf("caregiver alter: got %v", cg["alter"])
	}
	if cg["migrationshintergrund"] != "ja" || cg["bildungsabschluss"] != "Realschulabschluss" {
		t.Errorf("caregiver labels: got %v", cg)
	}
	if cg["psych_diagnose"] != "ja" {
		t.Errorf("caregiver psych_diagnose: got %v", cg["psych_diagnose"])
	}

	resp := rec["verantwortlich"].(map[string]any)
	if resp["organisation"] != "Caritas" {
		t.Errorf("organisation: got %v", resp["organisation"])
	}
	if !reflect.DeepEqual(resp["unterorganisationen"], []string{"Nord", "Süd"}) {
		t.Errorf("unterorganisationen: got %v", resp["unterorganisationen"])
	}
	// The family export never exposes the creator's name.
	if _, exists := resp["name"]; exists {
		t.Error("verantwortlich must not include a name")
	}
}

func TestFlattenFamily_ComingFromFallsBackToFreeText(t *testing.T) {
	ff := models.FullFamily{
		Family: models.Family{ComingFromOtherValue: "Nachbarin"},
	}
	rec := FlattenFamily(ff, time.Now())
	if rec["zugang_ueber"] != "Nachbarin" {
		t.Errorf("zugang_ueber: got %v", rec["zugang_ueber"])
	}
}

func TestFlattenFamily_NoCreator(t *testing.T) {
	rec := FlattenFamily(models.FullFamily{}, time.Now())
	resp := rec["verantwortlich"].(map[string]any)
	if resp["organisation"] != NoOrganization {
		t.Errorf("organisation: got %v, want %q", resp["organisation"], NoOrganization)
	}
	if !reflect.DeepEqual(resp["unterorganisationen"], []string{}) {
		t.Errorf("unterorganisationen: got %v, want empty", resp["unterorganisationen"])
	}
}

func TestResponsibleParty_CreatorWithoutOrganization(t *testing.T) {
	u := fullUser("Bernd", "")
	rec := ResponsibleParty(u, true)
	if rec["organisation"] != NoOrganization {
		t.Errorf("organisation: got %v, want %q", rec["organisation"], NoOrganization)
	}
	if rec["name"] != "Bernd" {
		t.Errorf("name: got %v", rec["name"])
	}
}
