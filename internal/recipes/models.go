package recipes

// Recipe as returned by the recommendation and catalog endpoints.
type Recipe struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	MealType        string `json:"mealType"`
	PrepTimeMinutes int    `json:"prepTimeMinutes"`
	CookTimeMinutes int    `json:"cookTimeMinutes"`
	ImageURL        string `json:"imageUrl,omitempty"`
}
