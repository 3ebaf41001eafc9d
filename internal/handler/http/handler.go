package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-console-go/internal/app"
	"github.com/cmlabs-hris/hris-console-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-console-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/apiclient"
)

// failer is the failure surface shared by every feature store.
type failer interface {
	Error() string
	FieldErrors() map[string]string
}

// instance returns the client bound to the request. Routes are mounted
// behind middleware.Sessions, so it is never nil there.
func instance(r *http.Request) *app.Instance {
	return middleware.Instance(r.Context())
}

// decode reads a JSON form. An empty body decodes as an empty form and is
// left to validation.
func decode(w http.ResponseWriter, r *http.Request, name string, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		slog.Error(name+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// actionFailed reports a store failure. A failure that cleared the session
// (backend 401) is reported as unauthorized so the page leaves for login.
func actionFailed(w http.ResponseWriter, r *http.Request, s failer, values any) {
	if !instance(r).Session.IsAuthenticated() {
		response.Unauthorized(w, s.Error())
		return
	}
	response.FormError(w, s.Error(), s.FieldErrors(), values)
}

func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return n
}

func meta(p *apiclient.Pagination) *response.Meta {
	if p == nil {
		return nil
	}
	return &response.Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		TotalItems: p.Total,
		TotalPages: p.TotalPages,
	}
}
