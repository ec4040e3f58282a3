package recipes

import (
	"context"

	"github.com/haidang-dev/allergycare/internal/api"
)

const basePath = "/recipe"

// Service fetches recipe reference data.
type Service struct {
	client *api.Client
}

// NewService creates a new recipe service.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Categories returns the ingredient category names used to browse recipes.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	env, err := s.client.Get(ctx, basePath+"/categories")
	if err != nil {
		return nil, err
	}
	if !env.IsSucceeded {
		return nil, env.Err()
	}

	var payload struct {
		IngredientCategories []string `json:"ingredientCategories"`
	}
	if err := env.DecodeData(&payload); err != nil {
		return nil, err
	}
	return payload.IngredientCategories, nil
}
