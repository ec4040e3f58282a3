package mealplans

// Canonical meal types. Entry meal types are free text and are matched
// against these through Vietnamese/English synonyms, never by equality alone.
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

// MealEntry is one scheduled meal inside a plan. mealDate carries only the
// date component (YYYY-MM-DD).
type MealEntry struct {
	ID          int    `json:"id"`
	MealDate    string `json:"mealDate"`
	MealType    string `json:"mealType"`
	MealName    string `json:"mealName"`
	Servings    int    `json:"servings"`
	Notes       string `json:"notes"`
	RecipeID    int    `json:"recipeId,omitempty"`
	ProductID   int    `json:"productId,omitempty"`
	IsCompleted bool   `json:"isCompleted"`
}

// MealPlan owns its entries. CompletedMeals is a derived counter and must
// always equal the number of entries with IsCompleted set.
type MealPlan struct {
	ID             int         `json:"id"`
	Name           string      `json:"name"`
	StartDate      string      `json:"startDate"`
	EndDate        string      `json:"endDate"`
	PlanType       string      `json:"planType"`
	Notes          string      `json:"notes"`
	TotalMeals     int         `json:"totalMeals"`
	CompletedMeals int         `json:"completedMeals"`
	MealEntries    []MealEntry `json:"mealEntries"`
}

// PlanPage is the payload of the paginated meal-plan listing.
type PlanPage struct {
	Items           []MealPlan `json:"items"`
	PageNumber      int        `json:"pageNumber"`
	PageSize        int        `json:"pageSize"`
	TotalCount      int        `json:"totalCount"`
	TotalPages      int        `json:"totalPages"`
	HasPreviousPage bool       `json:"hasPreviousPage"`
	HasNextPage     bool       `json:"hasNextPage"`
}
