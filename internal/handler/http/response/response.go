package response

import (
	"encoding/json"
	"net/http"
)

type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
	Meta    *Meta        `json:"meta,omitempty"`
}

// ErrorDetail describes a failure. Values echoes the submitted form so the
// page can be re-rendered with what the user typed.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	Values  interface{}       `json:"values,omitempty"`
}

type Meta struct {
	Page       int `json:"page,omitempty"`
	Limit      int `json:"limit,omitempty"`
	TotalItems int `json:"total_items,omitempty"`
	TotalPages int `json:"total_pages,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fallback := Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "ENCODING_ERROR",
				Message: "Failed to encode response",
			},
		}
		_ = json.NewEncoder(w).Encode(fallback)
	}
}

// Success responses
func Success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMessage(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Created(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(w http.ResponseWriter, data interface{}, meta *Meta) {
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error responses

func fail(w http.ResponseWriter, statusCode int, detail ErrorDetail) {
	writeJSON(w, statusCode, Response{Success: false, Error: &detail})
}

func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	fail(w, http.StatusBadRequest, ErrorDetail{Code: "BAD_REQUEST", Message: message, Details: details})
}

func ValidationError(w http.ResponseWriter, details map[string]string) {
	fail(w, http.StatusUnprocessableEntity, ErrorDetail{Code: "VALIDATION_ERROR", Message: "Validation failed", Details: details})
}

// FormError reports a failed form submission together with the submitted
// values. Field errors turn it into a validation failure.
func FormError(w http.ResponseWriter, message string, details map[string]string, values interface{}) {
	detail := ErrorDetail{Code: "ACTION_FAILED", Message: message, Details: details, Values: values}
	if len(details) > 0 {
		detail.Code = "VALIDATION_ERROR"
		fail(w, http.StatusUnprocessableEntity, detail)
		return
	}
	fail(w, http.StatusBadRequest, detail)
}

func Unauthorized(w http.ResponseWriter, message string) {
	fail(w, http.StatusUnauthorized, ErrorDetail{Code: "UNAUTHORIZED", Message: message})
}

func Forbidden(w http.ResponseWriter, message string) {
	fail(w, http.StatusForbidden, ErrorDetail{Code: "FORBIDDEN", Message: message})
}

func NotFound(w http.ResponseWriter, message string) {
	fail(w, http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: message})
}

func InternalServerError(w http.ResponseWriter, message string) {
	fail(w, http.StatusInternalServerError, ErrorDetail{Code: "INTERNAL_SERVER_ERROR", Message: message})
}

func Conflict(w http.ResponseWriter, message string) {
	fail(w, http.StatusConflict, ErrorDetail{Code: "CONFLICT", Message: message})
}

// BadGateway reports a backend failure the console could not map to a page error.
func BadGateway(w http.ResponseWriter, message string) {
	fail(w, http.StatusBadGateway, ErrorDetail{Code: "BAD_GATEWAY", Message: message})
}
