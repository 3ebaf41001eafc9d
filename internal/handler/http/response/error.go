package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/validator"
)

// HandleError maps domain and gateway errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Local refusals
	case errors.Is(err, report.ErrUnsupportedExport):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrReportNotAvailable):
		NotFound(w, "Report not loaded")
	case errors.Is(err, company.ErrSwitchNotPermitted),
		errors.Is(err, user.ErrSuperAdminRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Backend responses
	case errors.Is(err, apiclient.ErrUnauthorized):
		Unauthorized(w, apiclient.Message(err, "Unauthorized"))
	case errors.Is(err, apiclient.ErrForbidden):
		Forbidden(w, apiclient.Message(err, "Forbidden"))
	case errors.Is(err, apiclient.ErrNotFound):
		NotFound(w, apiclient.Message(err, "Not found"))
	case errors.Is(err, apiclient.ErrConflict):
		Conflict(w, apiclient.Message(err, "Conflict"))
	case errors.As(err, new(*apiclient.APIError)):
		BadGateway(w, apiclient.Message(err, "Backend request failed"))

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
