package report

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/haidang-dev/allergycare/internal/allergens"
	"github.com/haidang-dev/allergycare/internal/mealplans"
	"github.com/haidang-dev/allergycare/internal/userallergy"
)

func TestAllergyCardProducesPDF(t *testing.T) {
	data, err := AllergyCard("Nguyen Van A", []userallergy.UserAllergy{
		{
			Severity:       userallergy.SeverityCritical,
			DiagnosisDate:  "2024-01-10T00:00:00",
			DiagnosedBy:    "Dr. A",
			AvoidanceNotes: "carry EpiPen",
			Allergen:       allergens.Allergen{ID: 5, Name: "Peanut"},
		},
		{
			Severity:     userallergy.SeverityMild,
			Outgrown:     true,
			OutgrownDate: "2023-06-01",
			Allergen:     allergens.Allergen{ID: 9, Name: "Egg"},
		},
	})
	if err != nil {
		t.Fatalf("AllergyCard: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header: %q", data[:min(8, len(data))])
	}
}

func TestAllergyCardEmptyProfile(t *testing.T) {
	data, err := AllergyCard("", nil)
	if err != nil {
		t.Fatalf("AllergyCard: %v", err)
	}
	if len(data) == 0 {
		t.Error("empty profile still renders the card frame")
	}
}

func TestMealPlanCSV(t *testing.T) {
	plan := mealplans.MealPlan{
		ID:   1,
		Name: "Week A",
		MealEntries: []mealplans.MealEntry{
			{MealDate: "2024-05-20", MealType: "breakfast", MealName: "Bánh mì", Servings: 1, IsCompleted: true},
			{MealDate: "2024-05-20", MealType: "lunch", MealName: "Cơm, gà", Servings: 2, Notes: "no peanuts"},
		},
	}

	data, err := MealPlanCSV(plan)
	if err != nil {
		t.Fatalf("MealPlanCSV: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "date" || rows[0][5] != "notes" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][4] != "true" || rows[2][4] != "false" {
		t.Errorf("completed column = %q %q", rows[1][4], rows[2][4])
	}
	// A comma inside a meal name must survive the round trip.
	if rows[2][2] != "Cơm, gà" {
		t.Errorf("meal name = %q", rows[2][2])
	}
}
