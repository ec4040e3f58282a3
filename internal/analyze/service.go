// Package analyze uploads meal photos for allergen-risk scoring.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/haidang-dev/allergycare/internal/api"
)

const analyzePath = "/foodanalysis/analyze"

// Service wraps the food-analysis endpoint.
type Service struct {
	client *api.Client
}

// NewService creates a new food-analysis service.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Image is an upload-ready meal photo.
type Image struct {
	Reader   io.Reader
	Filename string
	MIMEType string
}

// AnalyzeFood posts the image with the user's known allergy names and decodes
// the analysis. knownAllergies travels as a JSON-encoded string array in a
// plain form field, matching the backend's multipart contract.
func (s *Service) AnalyzeFood(ctx context.Context, image Image, knownAllergies []string) (Result, error) {
	if image.Reader == nil {
		return Result{}, fmt.Errorf("image reader is required")
	}

	filename := image.Filename
	if filename == "" {
		filename = "food_image.jpg"
	}
	mimeType := image.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	if knownAllergies == nil {
		knownAllergies = []string{}
	}
	encodedAllergies, err := json.Marshal(knownAllergies)
	if err != nil {
		return Result{}, fmt.Errorf("encode known allergies: %w", err)
	}

	body, err := s.client.PostMultipart(ctx, analyzePath, []api.MultipartField{
		{Name: "Image", Reader: image.Reader, Filename: filename, MIMEType: mimeType},
		{Name: "KnownAllergies", Value: string(encodedAllergies)},
	})
	if err != nil {
		return Result{}, err
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return Result{}, fmt.Errorf("%w: %v", api.ErrMalformedEnvelope, err)
	}
	if !result.Success && !result.NoFoodDetected() {
		msg := result.Message
		if msg == "" {
			msg = api.FallbackMessage
		}
		return Result{}, fmt.Errorf("%w: %s", api.ErrRejected, msg)
	}
	return result, nil
}
