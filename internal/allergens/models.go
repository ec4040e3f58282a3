package allergens

// Allergen is backend-owned reference data, fetched read-only.
type Allergen struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	Category         string   `json:"category"`
	ScientificName   string   `json:"scientificName"`
	Description      string   `json:"description"`
	IsFdaMajor       bool     `json:"isFdaMajor"`
	IsEuMajor        bool     `json:"isEuMajor"`
	AlternativeNames []string `json:"alternativeNames,omitempty"`
}
