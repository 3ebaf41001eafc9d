package company

import (
	"net/url"
	"strings"

	"github.com/cmlabs-hris/hris-console-go/internal/pkg/validator"
)

type CreateCompanyRequest struct {
	Name     string         `json:"name"`
	LogoURL  *string        `json:"logoUrl,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
}

func (r *CreateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}
	if r.LogoURL != nil && !isHTTPURL(*r.LogoURL) {
		errs.Add("logoUrl", "logoUrl must be an http(s) URL")
	}

	return errs.Err()
}

type UpdateCompanyRequest struct {
	Name     *string        `json:"name,omitempty"`
	LogoURL  *string        `json:"logoUrl,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name == nil && r.LogoURL == nil && r.Settings == nil {
		errs.Add("company", "at least one field must be provided")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	if r.LogoURL != nil && *r.LogoURL != "" && !isHTTPURL(*r.LogoURL) {
		errs.Add("logoUrl", "logoUrl must be an http(s) URL")
	}

	return errs.Err()
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
