package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/cmlabs-hris/hris-console-go/internal/app"
	"github.com/cmlabs-hris/hris-console-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-console-go/internal/session"
)

const (
	// SessionCookie binds a browser to its client instance.
	SessionCookie = "hris_sid"

	sidClaim = "sid"
)

type instanceKey struct{}

// Sessions resolves the client instance of every request from a signed
// session cookie. Requests without a valid cookie receive a new session id.
type Sessions struct {
	ja       *jwtauth.JWTAuth
	registry *app.Registry
	ttl      time.Duration
	secure   bool
}

func NewSessions(secret string, registry *app.Registry, ttl time.Duration, secure bool) *Sessions {
	return &Sessions{
		ja:       jwtauth.New("HS256", []byte(secret), nil),
		registry: registry,
		ttl:      ttl,
		secure:   secure,
	}
}

func (s *Sessions) Handler(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if token, err := jwtauth.VerifyRequest(s.ja, r, tokenFromCookie); err == nil {
			sid = sidOf(token)
		}
		if sid == "" {
			var err error
			sid, err = s.issue(w)
			if err != nil {
				slog.Error("Failed to issue session cookie", "error", err)
				response.InternalServerError(w, "Failed to start session")
				return
			}
		}

		inst, err := s.registry.Get(r.Context(), sid)
		if err != nil {
			slog.Error("Failed to load session", "error", err)
			response.InternalServerError(w, "Failed to load session")
			return
		}

		w.Header().Set("Content-Language", inst.Texts.Language())
		ctx := context.WithValue(r.Context(), instanceKey{}, inst)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(hfn)
}

func (s *Sessions) issue(w http.ResponseWriter) (string, error) {
	sid := uuid.NewString()
	claims := map[string]interface{}{sidClaim: sid}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, s.ttl)

	_, signed, err := s.ja.Encode(claims)
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sid, nil
}

func tokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func sidOf(token jwt.Token) string {
	v, ok := token.Get(sidClaim)
	if !ok {
		return ""
	}
	sid, _ := v.(string)
	if uuid.Validate(sid) != nil {
		return ""
	}
	return sid
}

// Instance returns the client bound to the request, set by Sessions.
func Instance(ctx context.Context) *app.Instance {
	inst, _ := ctx.Value(instanceKey{}).(*app.Instance)
	return inst
}

// State reads the session state of the request for the route guards.
func State(r *http.Request) session.State {
	inst := Instance(r.Context())
	if inst == nil {
		return session.State{}
	}
	return inst.Session.Snapshot()
}
