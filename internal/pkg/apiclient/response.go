package apiclient

import "net/http"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Response is the backend envelope {status, data?, message?, pagination?}.
type Response[T any] struct {
	Status     string      `json:"status"`
	Data       T           `json:"data"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// OK reports whether the backend declared the call successful.
func (r *Response[T]) OK() bool {
	return r != nil && r.Status == StatusSuccess
}

// Err converts a declared failure into an *APIError carrying the message.
func (r *Response[T]) Err() error {
	if r.OK() {
		return nil
	}
	if r == nil {
		return &APIError{StatusCode: http.StatusOK}
	}
	return &APIError{StatusCode: http.StatusOK, Message: r.Message}
}
