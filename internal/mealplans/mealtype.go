package mealplans

import "strings"

// Sort precedence for the today projection. Unrecognized meal types sink to
// the bottom without being dropped.
const (
	rankBreakfast = 1
	rankLunch     = 2
	rankDinner    = 3
	rankSnack     = 4
	rankOther     = 99
)

// mealTypeRank classifies a free-text meal type. The backend stores whatever
// the plan author typed, in Vietnamese or English, so classification goes
// through case-insensitive synonym matching.
func mealTypeRank(mealType string) int {
	normalized := strings.ToLower(strings.TrimSpace(mealType))
	switch {
	case normalized == MealTypeBreakfast || strings.Contains(normalized, "sáng"):
		return rankBreakfast
	case normalized == MealTypeLunch || strings.Contains(normalized, "trưa"):
		return rankLunch
	case normalized == MealTypeDinner || strings.Contains(normalized, "tối"):
		return rankDinner
	case strings.Contains(normalized, MealTypeSnack) || strings.Contains(normalized, "phụ"):
		return rankSnack
	default:
		return rankOther
	}
}

// MatchesMealType reports whether a free-text meal type belongs to the given
// canonical meal type (breakfast, lunch, dinner, snack).
func MatchesMealType(mealType, canonical string) bool {
	target := strings.ToLower(strings.TrimSpace(canonical))
	switch target {
	case MealTypeBreakfast:
		return mealTypeRank(mealType) == rankBreakfast
	case MealTypeLunch:
		return mealTypeRank(mealType) == rankLunch
	case MealTypeDinner:
		return mealTypeRank(mealType) == rankDinner
	case MealTypeSnack:
		return mealTypeRank(mealType) == rankSnack
	default:
		return false
	}
}
