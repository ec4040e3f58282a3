package mealplans

import (
	"fmt"
	"testing"

	"github.com/haidang-dev/allergycare/internal/recipes"
)

func TestMatchesMealType(t *testing.T) {
	cases := []struct {
		mealType  string
		canonical string
		want      bool
	}{
		{"breakfast", MealTypeBreakfast, true},
		{"Bữa sáng", MealTypeBreakfast, true},
		{"BỮA SÁNG", MealTypeBreakfast, true},
		{"lunch", MealTypeLunch, true},
		{"bữa trưa", MealTypeLunch, true},
		{"dinner", MealTypeDinner, true},
		{"bữa tối", MealTypeDinner, true},
		{"snack time", MealTypeSnack, true},
		{"bữa phụ", MealTypeSnack, true},
		{"dinner", MealTypeLunch, false},
		{"brunch", MealTypeBreakfast, false},
		{"anything", "supper", false},
	}
	for _, tc := range cases {
		if got := MatchesMealType(tc.mealType, tc.canonical); got != tc.want {
			t.Errorf("MatchesMealType(%q, %q) = %v, want %v", tc.mealType, tc.canonical, got, tc.want)
		}
	}
}

func rankedRecipes(n int) []recipes.Recipe {
	out := make([]recipes.Recipe, n)
	for i := range out {
		mealType := "dinner"
		if i%2 == 0 {
			mealType = "bữa sáng"
		}
		out[i] = recipes.Recipe{ID: i + 1, Name: fmt.Sprintf("Recipe %d", i+1), MealType: mealType}
	}
	return out
}

func TestFilterRecommendationsCaps(t *testing.T) {
	ranked := rankedRecipes(20)

	unfiltered := FilterRecommendations(ranked, "")
	if len(unfiltered) != 8 {
		t.Fatalf("unfiltered cap = %d, want 8", len(unfiltered))
	}
	// Ranking order is preserved, never re-sorted.
	for i, r := range unfiltered {
		if r.ID != i+1 {
			t.Fatalf("position %d holds recipe %d", i, r.ID)
		}
	}

	filtered := FilterRecommendations(ranked, MealTypeBreakfast)
	if len(filtered) != 6 {
		t.Fatalf("filtered cap = %d, want 6", len(filtered))
	}
	for _, r := range filtered {
		if !MatchesMealType(r.MealType, MealTypeBreakfast) {
			t.Errorf("recipe %d has meal type %q", r.ID, r.MealType)
		}
	}
}

func TestFilterRecommendationsShortList(t *testing.T) {
	ranked := rankedRecipes(3)
	if got := FilterRecommendations(ranked, ""); len(got) != 3 {
		t.Errorf("len = %d, want all 3", len(got))
	}
	if got := FilterRecommendations(ranked, MealTypeSnack); len(got) != 0 {
		t.Errorf("len = %d, want 0 snack matches", len(got))
	}
}
