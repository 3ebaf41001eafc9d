package company

import "time"

// Company is a tenant. PublicID is the externally shareable identifier sent
// as X-Company-ID, ID is internal to the backend.
type Company struct {
	ID        string         `json:"id"`
	PublicID  string         `json:"publicId"`
	Name      string         `json:"name"`
	LogoURL   *string        `json:"logoUrl,omitempty"`
	Settings  map[string]any `json:"settings,omitempty"`
	CreatedAt time.Time      `json:"createdAt,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt,omitempty"`
}
