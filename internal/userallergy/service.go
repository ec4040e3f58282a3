package userallergy

import (
	"context"
	"fmt"

	"github.com/haidang-dev/allergycare/internal/api"
)

const basePath = "/userallergy"

// Service maps user-allergy operations onto backend calls.
type Service struct {
	client *api.Client
}

// NewService creates a new user-allergy service.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Profile fetches the user's full allergy profile.
func (s *Service) Profile(ctx context.Context) (Profile, error) {
	env, err := s.client.Get(ctx, basePath+"/profile")
	if err != nil {
		return Profile{}, err
	}
	if !env.IsSucceeded {
		return Profile{}, env.Err()
	}

	var profile Profile
	if err := env.DecodeData(&profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// HasAllergies reports whether the user has recorded any allergies.
func (s *Service) HasAllergies(ctx context.Context) (bool, error) {
	env, err := s.client.Get(ctx, basePath+"/has-allergies")
	if err != nil {
		return false, err
	}
	if !env.IsSucceeded {
		return false, env.Err()
	}

	var has bool
	if err := env.DecodeData(&has); err != nil {
		return false, err
	}
	return has, nil
}

// BulkCreate records several allergies sharing the same details.
func (s *Service) BulkCreate(ctx context.Context, req BulkCreateRequest) error {
	env, err := s.client.Post(ctx, basePath+"/bulk", req)
	if err != nil {
		return err
	}
	if !env.IsSucceeded {
		return env.Err()
	}
	return nil
}

// UpdateAllergenProfile edits a profile slot in place. The slot is addressed
// by the allergen id it currently has; req.NewAllergenID may re-point it to a
// different allergen.
func (s *Service) UpdateAllergenProfile(ctx context.Context, currentAllergenID int, req UpdateAllergenProfileRequest) error {
	path := fmt.Sprintf("%s/profile/%d/change", basePath, currentAllergenID)
	env, err := s.client.Patch(ctx, path, req)
	if err != nil {
		return err
	}
	if !env.IsSucceeded {
		return env.Err()
	}
	return nil
}
