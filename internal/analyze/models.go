package analyze

import "github.com/haidang-dev/allergycare/internal/allergens"

// NoFoodDetectedMessage is the backend's literal outcome when an image holds
// nothing recognizable.
const NoFoodDetectedMessage = "no food detect"

// DetectedFood is one food the analyzer recognized in the image.
type DetectedFood struct {
	Name                string             `json:"name"`
	Confidence          float64            `json:"confidence"`
	PotentialAllergens  []string           `json:"potentialAllergens"`
	MatchedIngredientID int                `json:"matchedIngredientId"`
	MatchedIngredient   *MatchedIngredient `json:"matchedIngredient,omitempty"`
}

// MatchedIngredient is the catalog ingredient a detected food resolved to.
type MatchedIngredient struct {
	ID               int                  `json:"id"`
	Name             string               `json:"name"`
	Category         string               `json:"category"`
	Description      string               `json:"description"`
	Allergens        []allergens.Allergen `json:"allergens"`
	AlternativeNames []string             `json:"alternativeNames"`
}

// AllergenWarning ties a detected allergen back to the user's own profile.
type AllergenWarning struct {
	Allergen                   string   `json:"allergen"`
	AllergenDisplayName        string   `json:"allergenDisplayName"`
	RiskLevel                  string   `json:"riskLevel"`
	Description                string   `json:"description"`
	FoundInFoods               []string `json:"foundInFoods"`
	AllergenID                 int      `json:"allergenId"`
	RequiresImmediateAttention bool     `json:"requiresImmediateAttention"`
	EmergencyMedications       []string `json:"emergencyMedications"`
}

// Result is the analyze endpoint's response. It does not use the standard
// envelope: success/message are flat fields.
type Result struct {
	Success          bool              `json:"success"`
	Message          string            `json:"message"`
	DetectedFoods    []DetectedFood    `json:"detectedFoods"`
	AllergenWarnings []AllergenWarning `json:"allergenWarnings"`
	OverallRiskScore float64           `json:"overallRiskScore"`
}

// NoFoodDetected reports whether the analyzer found nothing to score.
func (r *Result) NoFoodDetected() bool {
	return r.Message == NoFoodDetectedMessage
}
