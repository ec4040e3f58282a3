// Package report renders offline artifacts from loaded state: a printable
// allergy card (PDF) and a meal-plan export (CSV).
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/haidang-dev/allergycare/internal/dateutil"
	"github.com/haidang-dev/allergycare/internal/mealplans"
	"github.com/haidang-dev/allergycare/internal/userallergy"
)

// AllergyCard renders the profile as a one-page PDF meant for wallets,
// schools and restaurants. Critical and severe allergies are flagged;
// outgrown records are listed separately at the bottom.
func AllergyCard(holder string, allergies []userallergy.UserAllergy) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Allergy Card", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Allergy Card")
	pdf.Ln(10)

	if holder != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 7, "Holder: "+holder)
		pdf.Ln(9)
	}

	active, outgrown := splitOutgrown(allergies)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(55, 8, "Allergen", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Severity", "1", 0, "L", true, 0, "")
	pdf.CellFormat(45, 8, "Diagnosed", "1", 0, "L", true, 0, "")
	pdf.CellFormat(65, 8, "Avoidance notes", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, a := range active {
		if a.Severity == userallergy.SeverityCritical || a.Severity == userallergy.SeveritySevere {
			pdf.SetTextColor(200, 0, 0)
		} else {
			pdf.SetTextColor(0, 0, 0)
		}

		diagnosed := strings.TrimSpace(a.DiagnosedBy)
		if date := dateutil.FormatForDisplay(a.DiagnosisDate); date != "" {
			if diagnosed != "" {
				diagnosed += ", "
			}
			diagnosed += date
		}

		pdf.CellFormat(55, 8, a.Allergen.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, a.Severity, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 8, diagnosed, "1", 0, "L", false, 0, "")
		pdf.CellFormat(65, 8, a.AvoidanceNotes, "1", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)

	if len(outgrown) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 8, "Outgrown")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, a := range outgrown {
			line := a.Allergen.Name
			if date := dateutil.FormatForDisplay(a.OutgrownDate); date != "" {
				line += " (since " + date + ")"
			}
			pdf.Cell(0, 6, line)
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render allergy card: %w", err)
	}
	return buf.Bytes(), nil
}

func splitOutgrown(allergies []userallergy.UserAllergy) (active, outgrown []userallergy.UserAllergy) {
	for _, a := range allergies {
		if a.Outgrown {
			outgrown = append(outgrown, a)
		} else {
			active = append(active, a)
		}
	}
	return active, outgrown
}

// MealPlanCSV exports a plan's entries, one row per entry.
func MealPlanCSV(plan mealplans.MealPlan) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "meal_type", "meal_name", "servings", "completed", "notes"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, entry := range plan.MealEntries {
		row := []string{
			entry.MealDate,
			entry.MealType,
			entry.MealName,
			strconv.Itoa(entry.Servings),
			strconv.FormatBool(entry.IsCompleted),
			entry.Notes,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
