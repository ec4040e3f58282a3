package mealplans

import (
	"context"
	"fmt"

	"github.com/haidang-dev/allergycare/internal/api"
	"github.com/haidang-dev/allergycare/internal/recipes"
)

const basePath = "/mealplan"

// Service maps meal-plan operations onto backend calls.
type Service struct {
	client *api.Client
}

// NewService creates a new meal-plan service.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// List fetches the user's meal plans (one page, backend-ordered).
func (s *Service) List(ctx context.Context) (PlanPage, error) {
	env, err := s.client.Get(ctx, basePath)
	if err != nil {
		return PlanPage{}, err
	}
	if !env.IsSucceeded {
		return PlanPage{}, env.Err()
	}

	var page PlanPage
	if err := env.DecodeData(&page); err != nil {
		return PlanPage{}, err
	}
	return page, nil
}

// ToggleCompletion sets an entry's completion state on the backend. The
// server is the source of truth; callers apply local state only after this
// returns nil.
func (s *Service) ToggleCompletion(ctx context.Context, planID, entryID int, completed bool) error {
	path := fmt.Sprintf("%s/%d/entries/%d/completion", basePath, planID, entryID)
	body := struct {
		IsCompleted bool `json:"isCompleted"`
	}{IsCompleted: completed}

	env, err := s.client.Patch(ctx, path, body)
	if err != nil {
		return err
	}
	if !env.IsSucceeded {
		return env.Err()
	}
	return nil
}

// Recommendations fetches the backend's ranked recipe list. Meal-type
// filtering and display caps are applied client-side (see RecommendedRecipes).
func (s *Service) Recommendations(ctx context.Context) ([]recipes.Recipe, error) {
	env, err := s.client.Get(ctx, basePath+"/recommendations")
	if err != nil {
		return nil, err
	}
	if !env.IsSucceeded {
		return nil, env.Err()
	}

	var ranked []recipes.Recipe
	if err := env.DecodeData(&ranked); err != nil {
		return nil, err
	}
	return ranked, nil
}
