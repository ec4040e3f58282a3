package userallergy

import "github.com/haidang-dev/allergycare/internal/allergens"

// Severity values accepted by the backend.
const (
	SeverityMild     = "mild"
	SeverityModerate = "moderate"
	SeveritySevere   = "severe"
	SeverityCritical = "critical"
)

// ValidSeverity reports whether s is one of the backend's severity levels.
func ValidSeverity(s string) bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere, SeverityCritical:
		return true
	}
	return false
}

// UserAllergy is one profile slot: a user's sensitivity to one allergen.
// Date fields arrive in backend form, possibly as the zero-date sentinel.
type UserAllergy struct {
	ID                int                `json:"id"`
	UserID            int                `json:"userId"`
	AllergenID        int                `json:"allergenId"`
	Severity          string             `json:"severity"`
	DiagnosisDate     string             `json:"diagnosisDate"`
	DiagnosedBy       string             `json:"diagnosedBy"`
	LastReactionDate  string             `json:"lastReactionDate"`
	AvoidanceNotes    string             `json:"avoidanceNotes"`
	Outgrown          bool               `json:"outgrown"`
	OutgrownDate      string             `json:"outgrownDate"`
	NeedsVerification bool               `json:"needsVerification"`
	Allergen          allergens.Allergen `json:"allergen"`
}

// Profile is the payload of GET /userallergy/profile.
type Profile struct {
	Allergies []UserAllergy `json:"allergies"`
}

// UpdateAllergenProfileRequest is the PATCH body for
// /userallergy/profile/{currentAllergenId}/change. Every date field must be
// present; "no date" is expressed as the 0001-01-01 sentinel, never omitted.
type UpdateAllergenProfileRequest struct {
	NewAllergenID     int    `json:"newAllergenId"`
	Severity          string `json:"severity"`
	DiagnosisDate     string `json:"diagnosisDate"`
	DiagnosedBy       string `json:"diagnosedBy"`
	LastReactionDate  string `json:"lastReactionDate"`
	AvoidanceNotes    string `json:"avoidanceNotes"`
	Outgrown          bool   `json:"outgrown"`
	OutgrownDate      string `json:"outgrownDate"`
	NeedsVerification bool   `json:"needsVerification"`
}

// BulkCreateRequest creates several allergy slots at once with shared
// details (the onboarding quiz flow).
type BulkCreateRequest struct {
	AllergenIDs       []int  `json:"allergenIds"`
	Severity          string `json:"severity"`
	DiagnosisDate     string `json:"diagnosisDate"`
	DiagnosedBy       string `json:"diagnosedBy"`
	LastReactionDate  string `json:"lastReactionDate"`
	AvoidanceNotes    string `json:"avoidanceNotes"`
	Outgrown          bool   `json:"outgrown"`
	OutgrownDate      string `json:"outgrownDate"`
	NeedsVerification bool   `json:"needsVerification"`
}
