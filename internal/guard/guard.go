// Package guard decides page access from the session state. Decisions are
// recomputed on every request.
package guard

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-console-go/internal/session"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"

	// FromParam carries the originally requested location through login.
	FromParam = "from"
)

// Requirement is the capability a page needs. An empty Permission only
// requires a logged-in user.
type Requirement struct {
	Name       string
	Permission user.Permission
}

var (
	RequireAuth         = Requirement{Name: "authenticated"}
	AdminProtected      = Requirement{Name: "admin", Permission: user.PermissionAdminPanel}
	SuperAdminProtected = Requirement{Name: "super_admin", Permission: user.PermissionCompanyManage}
)

// Decision is the outcome of a guard check. Redirect is empty when allowed.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Evaluate applies req to state. origin is the requested location, kept
// on the login redirect.
func Evaluate(state session.State, req Requirement, origin string) Decision {
	if !state.IsAuthenticated {
		return Decision{Redirect: LoginURL(origin)}
	}
	if req.Permission != "" && !state.User.Can(req.Permission) {
		return Decision{Redirect: DashboardPath}
	}
	return Decision{Allowed: true}
}

// LoginURL returns the login location preserving origin.
func LoginURL(origin string) string {
	if !safeReturn(origin) {
		return LoginPath
	}
	return LoginPath + "?" + url.Values{FromParam: {origin}}.Encode()
}

// Middleware redirects requests whose session does not satisfy req.
func Middleware(state func(*http.Request) session.State, req Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := Evaluate(state(r), req, r.URL.RequestURI())
			if !d.Allowed {
				http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ReturnTo reads the preserved origin of a login request, or the dashboard
// when none is present or it points off-site.
func ReturnTo(r *http.Request) string {
	from := r.URL.Query().Get(FromParam)
	if from == "" {
		from = r.PostFormValue(FromParam)
	}
	if !safeReturn(from) {
		return DashboardPath
	}
	return from
}

// safeReturn accepts local absolute paths only.
func safeReturn(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return false
	}
	return !strings.HasPrefix(p, LoginPath+"?") && p != LoginPath
}
