package allergens

import (
	"context"

	"github.com/haidang-dev/allergycare/internal/api"
)

const basePath = "/allergen"

// Service fetches the allergen catalog.
type Service struct {
	client *api.Client
}

// NewService creates a new allergen catalog service.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// All returns the full allergen catalog.
func (s *Service) All(ctx context.Context) ([]Allergen, error) {
	env, err := s.client.Get(ctx, basePath)
	if err != nil {
		return nil, err
	}
	if !env.IsSucceeded {
		return nil, env.Err()
	}

	var catalog []Allergen
	if err := env.DecodeData(&catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}
