package mealplans

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/haidang-dev/allergycare/internal/dateutil"
	"github.com/haidang-dev/allergycare/internal/recipes"
)

var (
	// ErrPlansUnavailable means the meal-plan listing could not be loaded.
	ErrPlansUnavailable = errors.New("meal plans unavailable")

	// ErrToggleFailed means a completion toggle did not reach the backend or
	// was refused; local state is left untouched.
	ErrToggleFailed = errors.New("completion toggle failed")

	// ErrEntryNotFound means no loaded plan owns the requested entry.
	ErrEntryNotFound = errors.New("meal entry not found")
)

// Display caps for recommendation lists.
const (
	maxRecommendations         = 8
	maxFilteredRecommendations = 6
)

// PlanSource is the slice of Service the tracker needs.
type PlanSource interface {
	List(ctx context.Context) (PlanPage, error)
	ToggleCompletion(ctx context.Context, planID, entryID int, completed bool) error
	Recommendations(ctx context.Context) ([]recipes.Recipe, error)
}

// entryRef locates an entry inside the plan collection. Entries live in
// exactly one place; every view is derived from it, so the plan list and the
// today projection cannot disagree.
type entryRef struct {
	planIdx  int
	entryIdx int
}

// Tracker owns the locally cached meal-plan state of one consumer. It is not
// safe for concurrent use: operations are serialized by user interaction, the
// same as the screens it backs.
type Tracker struct {
	source PlanSource
	plans  []MealPlan
	index  map[int]entryRef

	// today is injectable for tests; defaults to the local device date.
	today func() string
}

// NewTracker creates a tracker over a plan source.
func NewTracker(source PlanSource) *Tracker {
	return &Tracker{
		source: source,
		index:  map[int]entryRef{},
		today:  dateutil.Today,
	}
}

// LoadPlans replaces the cached plan collection with the backend's view and
// rebuilds the entry index. Derived counters are recomputed from the entries
// rather than trusted from the wire.
func (t *Tracker) LoadPlans(ctx context.Context) error {
	page, err := t.source.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPlansUnavailable, err)
	}
	if page.Items == nil {
		return fmt.Errorf("%w: listing has no items collection", ErrPlansUnavailable)
	}

	t.plans = page.Items
	t.reindex()
	return nil
}

func (t *Tracker) reindex() {
	t.index = make(map[int]entryRef)
	for p := range t.plans {
		completed := 0
		for e := range t.plans[p].MealEntries {
			entry := &t.plans[p].MealEntries[e]
			t.index[entry.ID] = entryRef{planIdx: p, entryIdx: e}
			if entry.IsCompleted {
				completed++
			}
		}
		t.plans[p].CompletedMeals = completed
	}
}

// Plans returns the cached plan collection.
func (t *Tracker) Plans() []MealPlan {
	return t.plans
}

// Plan returns the cached plan with the given id.
func (t *Tracker) Plan(planID int) (MealPlan, bool) {
	for _, plan := range t.plans {
		if plan.ID == planID {
			return plan, true
		}
	}
	return MealPlan{}, false
}

// TodaysMeals returns the projection of entries scheduled for the current
// local date. It is recomputed from the plan collection on every call and
// never cached.
func (t *Tracker) TodaysMeals() []MealEntry {
	return t.MealsOn(t.today())
}

// MealsOn flattens entries whose mealDate equals the given date (exact string
// equality on the date component) across all plans, stable-sorted by
// breakfast < lunch < dinner < snack < other.
func (t *Tracker) MealsOn(date string) []MealEntry {
	var meals []MealEntry
	for _, plan := range t.plans {
		for _, entry := range plan.MealEntries {
			if entry.MealDate == date {
				meals = append(meals, entry)
			}
		}
	}
	sort.SliceStable(meals, func(i, j int) bool {
		return mealTypeRank(meals[i].MealType) < mealTypeRank(meals[j].MealType)
	})
	return meals
}

// ToggleCompletion flips an entry's completion state, backend first. Only
// after the server confirms does the cached entry change, and the owning
// plan's completed counter is recomputed from its entries.
func (t *Tracker) ToggleCompletion(ctx context.Context, planID, entryID int) error {
	ref, ok := t.index[entryID]
	if !ok || t.plans[ref.planIdx].ID != planID {
		return fmt.Errorf("%w: plan %d entry %d", ErrEntryNotFound, planID, entryID)
	}

	entry := &t.plans[ref.planIdx].MealEntries[ref.entryIdx]
	if err := t.source.ToggleCompletion(ctx, planID, entryID, !entry.IsCompleted); err != nil {
		return fmt.Errorf("%w: %v", ErrToggleFailed, err)
	}

	entry.IsCompleted = !entry.IsCompleted

	completed := 0
	for _, e := range t.plans[ref.planIdx].MealEntries {
		if e.IsCompleted {
			completed++
		}
	}
	t.plans[ref.planIdx].CompletedMeals = completed
	return nil
}

// CompletionPercent returns a plan's completion as a rounded percentage,
// zero for unknown or empty plans.
func (t *Tracker) CompletionPercent(planID int) int {
	plan, ok := t.Plan(planID)
	if !ok || plan.TotalMeals <= 0 {
		return 0
	}
	return int(float64(plan.CompletedMeals)/float64(plan.TotalMeals)*100 + 0.5)
}

// RecommendedRecipes fetches the ranked list and applies the display policy:
// the unfiltered list is capped at 8; a meal-type filter keeps synonym
// matches and caps at 6.
func (t *Tracker) RecommendedRecipes(ctx context.Context, mealType string) ([]recipes.Recipe, error) {
	ranked, err := t.source.Recommendations(ctx)
	if err != nil {
		return nil, err
	}
	return FilterRecommendations(ranked, mealType), nil
}

// FilterRecommendations applies the client-side meal-type filter and caps.
// An empty mealType means no filtering.
func FilterRecommendations(ranked []recipes.Recipe, mealType string) []recipes.Recipe {
	if mealType == "" {
		if len(ranked) > maxRecommendations {
			return ranked[:maxRecommendations]
		}
		return ranked
	}

	filtered := make([]recipes.Recipe, 0, maxFilteredRecommendations)
	for _, recipe := range ranked {
		if !MatchesMealType(recipe.MealType, mealType) {
			continue
		}
		filtered = append(filtered, recipe)
		if len(filtered) == maxFilteredRecommendations {
			break
		}
	}
	return filtered
}
