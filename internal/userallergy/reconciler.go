package userallergy

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/haidang-dev/allergycare/internal/allergens"
	"github.com/haidang-dev/allergycare/internal/api"
	"github.com/haidang-dev/allergycare/internal/dateutil"
)

var (
	// ErrProfileUnavailable means the profile or the allergen catalog could
	// not be loaded; editing cannot start without both.
	ErrProfileUnavailable = errors.New("allergy profile unavailable")

	// ErrRecordNotFound means no profile slot carries the requested allergen.
	ErrRecordNotFound = errors.New("allergy record not found")

	// ErrUpdateRejected means the backend refused the update; the wrapped
	// text carries the server's message when one was provided.
	ErrUpdateRejected = errors.New("update rejected")

	// ErrValidation means a draft failed client-side checks. Validation
	// failures never reach the network.
	ErrValidation = errors.New("validation failed")
)

// CatalogLister supplies the allergen catalog.
type CatalogLister interface {
	All(ctx context.Context) ([]allergens.Allergen, error)
}

// ProfileEditor is the slice of Service the reconciler needs.
type ProfileEditor interface {
	Profile(ctx context.Context) (Profile, error)
	UpdateAllergenProfile(ctx context.Context, currentAllergenID int, req UpdateAllergenProfileRequest) error
}

// Draft is the editable form state for one allergy slot. Dates are held in
// display form (DD-MM-YYYY); empty means "not set".
type Draft struct {
	NewAllergenID     int
	Severity          string
	DiagnosisDate     string
	DiagnosedBy       string
	LastReactionDate  string
	AvoidanceNotes    string
	Outgrown          bool
	OutgrownDate      string
	NeedsVerification bool
}

// Validate applies the required-field rules and returns the first failure.
func (d Draft) Validate() error {
	if d.NewAllergenID <= 0 {
		return fmt.Errorf("%w: an allergen must be selected", ErrValidation)
	}
	if d.Severity == "" {
		return fmt.Errorf("%w: severity is required", ErrValidation)
	}
	if !ValidSeverity(d.Severity) {
		return fmt.Errorf("%w: unknown severity %q", ErrValidation, d.Severity)
	}
	if strings.TrimSpace(d.DiagnosisDate) == "" {
		return fmt.Errorf("%w: diagnosis date is required", ErrValidation)
	}
	if _, ok := dateutil.ParseDisplay(d.DiagnosisDate); !ok {
		return fmt.Errorf("%w: diagnosis date must be DD-MM-YYYY", ErrValidation)
	}
	if strings.TrimSpace(d.DiagnosedBy) == "" {
		return fmt.Errorf("%w: diagnosed-by is required", ErrValidation)
	}
	return nil
}

// toRequest serializes the draft into the update contract. Unset dates become
// the backend sentinel, and the outgrown date is only meaningful while the
// outgrown flag is set; a stale value is dropped otherwise.
func (d Draft) toRequest() UpdateAllergenProfileRequest {
	lastReaction := dateutil.SentinelDate
	if strings.TrimSpace(d.LastReactionDate) != "" {
		lastReaction = dateutil.DisplayToAPI(d.LastReactionDate)
	}

	outgrownDate := dateutil.SentinelDate
	if d.Outgrown && strings.TrimSpace(d.OutgrownDate) != "" {
		outgrownDate = dateutil.DisplayToAPI(d.OutgrownDate)
	}

	return UpdateAllergenProfileRequest{
		NewAllergenID:     d.NewAllergenID,
		Severity:          d.Severity,
		DiagnosisDate:     dateutil.DisplayToAPI(d.DiagnosisDate),
		DiagnosedBy:       d.DiagnosedBy,
		LastReactionDate:  lastReaction,
		AvoidanceNotes:    d.AvoidanceNotes,
		Outgrown:          d.Outgrown,
		OutgrownDate:      outgrownDate,
		NeedsVerification: d.NeedsVerification,
	}
}

// LoadResult is everything the edit form needs: the located record, a draft
// pre-filled from it, and the catalog to re-point the slot against.
type LoadResult struct {
	Current UserAllergy
	Draft   Draft
	Catalog []allergens.Allergen
}

// Reconciler keeps the local edit state of one allergy slot consistent with
// the backend. All mutations are confirm-then-apply: nothing local changes
// until the server reports success.
type Reconciler struct {
	profiles ProfileEditor
	catalog  CatalogLister
}

// NewReconciler creates a reconciler over the profile and catalog services.
func NewReconciler(profiles ProfileEditor, catalog CatalogLister) *Reconciler {
	return &Reconciler{profiles: profiles, catalog: catalog}
}

// Load fetches the profile and the allergen catalog concurrently, locates the
// slot whose allergen id matches allergenID (a route parameter, hence string
// typed) and produces an editable draft.
func (r *Reconciler) Load(ctx context.Context, allergenID string) (LoadResult, error) {
	var (
		profile    Profile
		catalog    []allergens.Allergen
		profileErr error
		catalogErr error
	)

	done := make(chan struct{}, 2)
	go func() {
		profile, profileErr = r.profiles.Profile(ctx)
		done <- struct{}{}
	}()
	go func() {
		catalog, catalogErr = r.catalog.All(ctx)
		done <- struct{}{}
	}()
	<-done
	<-done

	if profileErr != nil {
		return LoadResult{}, fmt.Errorf("%w: %v", ErrProfileUnavailable, profileErr)
	}
	if catalogErr != nil {
		return LoadResult{}, fmt.Errorf("%w: %v", ErrProfileUnavailable, catalogErr)
	}

	wanted := strings.TrimSpace(allergenID)
	for _, allergy := range profile.Allergies {
		if strconv.Itoa(allergy.Allergen.ID) != wanted {
			continue
		}
		return LoadResult{
			Current: allergy,
			Draft:   draftFrom(allergy),
			Catalog: catalog,
		}, nil
	}
	return LoadResult{}, fmt.Errorf("%w: allergen %s", ErrRecordNotFound, wanted)
}

// draftFrom copies a record into editable form, normalizing sentinel dates to
// empty display values.
func draftFrom(a UserAllergy) Draft {
	return Draft{
		NewAllergenID:     a.Allergen.ID,
		Severity:          a.Severity,
		DiagnosisDate:     dateutil.FormatForDisplay(a.DiagnosisDate),
		DiagnosedBy:       a.DiagnosedBy,
		LastReactionDate:  dateutil.FormatForDisplay(a.LastReactionDate),
		AvoidanceNotes:    a.AvoidanceNotes,
		Outgrown:          a.Outgrown,
		OutgrownDate:      dateutil.FormatForDisplay(a.OutgrownDate),
		NeedsVerification: a.NeedsVerification,
	}
}

// Save validates the draft and pushes it to the backend. currentAllergenID
// addresses the slot as it exists now; the draft's NewAllergenID is the
// desired post-update identity and may differ.
func (r *Reconciler) Save(ctx context.Context, currentAllergenID int, draft Draft) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	err := r.profiles.UpdateAllergenProfile(ctx, currentAllergenID, draft.toRequest())
	if err == nil {
		return nil
	}
	if errors.Is(err, api.ErrRejected) || errors.Is(err, api.ErrMalformedEnvelope) {
		return fmt.Errorf("%w: %v", ErrUpdateRejected, err)
	}
	return err
}
