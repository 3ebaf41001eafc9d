package auth

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-console-go/internal/session"
	"github.com/cmlabs-hris/hris-console-go/internal/store/lifecycle"
)

type AuthStoreImpl struct {
	*lifecycle.Tracker
	client  *apiclient.Client
	session *session.Store
}

func NewAuthStore(client *apiclient.Client, sess *session.Store, tracker *lifecycle.Tracker) auth.Store {
	return &AuthStoreImpl{
		Tracker: tracker,
		client:  client,
		session: sess,
	}
}

// Login implements auth.Store.
func (s *AuthStoreImpl) Login(ctx context.Context, req auth.LoginRequest) bool {
	tk := s.Begin("login")
	s.session.ClearError()

	if err := req.Validate(); err != nil {
		s.fail(tk, err, i18n.LoginFailed)
		return false
	}

	resp, err := apiclient.Do[auth.AuthResult](ctx, s.client, http.MethodPost, "/api/auth/login", req, nil)
	if err != nil {
		s.fail(tk, err, i18n.LoginFailed)
		return false
	}
	if resp.Data.Token == "" {
		s.fail(tk, auth.ErrMissingToken, i18n.LoginFailed)
		return false
	}

	if err := s.establish(ctx, resp.Data); err != nil {
		s.fail(tk, err, i18n.LoginFailed)
		return false
	}
	return s.Commit(tk, nil)
}

// Register implements auth.Store. A backend that withholds the token until
// the email is verified leaves the session logged out.
func (s *AuthStoreImpl) Register(ctx context.Context, req auth.RegisterRequest) bool {
	tk := s.Begin("register")

	if err := req.Validate(); err != nil {
		s.fail(tk, err, i18n.RegisterFailed)
		return false
	}

	resp, err := apiclient.Do[auth.AuthResult](ctx, s.client, http.MethodPost, "/api/auth/register", req, nil)
	if err != nil {
		s.fail(tk, err, i18n.RegisterFailed)
		return false
	}

	if resp.Data.Token != "" {
		if err := s.establish(ctx, resp.Data); err != nil {
			s.fail(tk, err, i18n.RegisterFailed)
			return false
		}
	}
	return s.Commit(tk, nil)
}

// VerifyEmail implements auth.Store.
func (s *AuthStoreImpl) VerifyEmail(ctx context.Context, req auth.VerifyEmailRequest) bool {
	tk := s.Begin("verifyEmail")

	if err := req.Validate(); err != nil {
		s.fail(tk, err, i18n.VerifyEmailFailed)
		return false
	}

	query := url.Values{"token": {req.Token}, "userId": {req.UserID}}
	resp, err := apiclient.Do[auth.AuthResult](ctx, s.client, http.MethodGet, "/api/auth/verify-email", nil, query)
	if err != nil {
		s.fail(tk, err, i18n.VerifyEmailFailed)
		return false
	}
	if resp.Data.Token == "" {
		s.fail(tk, auth.ErrMissingToken, i18n.VerifyEmailFailed)
		return false
	}

	if err := s.establish(ctx, resp.Data); err != nil {
		s.fail(tk, err, i18n.VerifyEmailFailed)
		return false
	}
	return s.Commit(tk, nil)
}

// Logout implements auth.Store. The local session is cleared even when the
// backend call fails.
func (s *AuthStoreImpl) Logout(ctx context.Context) bool {
	tk := s.Begin("logout")

	if s.session.IsAuthenticated() {
		if _, err := apiclient.Call[any](ctx, s.client, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
			s.Logger().Warn("backend logout failed", "error", err)
		}
	}

	if err := s.session.Logout(ctx); err != nil {
		s.fail(tk, err, i18n.Generic)
		return false
	}
	s.Commit(tk, nil)
	return true
}

// FetchMe implements auth.Store.
func (s *AuthStoreImpl) FetchMe(ctx context.Context) (user.User, bool) {
	tk := s.Begin("fetchMe")

	resp, err := apiclient.Do[user.User](ctx, s.client, http.MethodGet, "/api/auth/me", nil, nil)
	if err != nil {
		s.fail(tk, err, i18n.FetchProfileFailed)
		return user.User{}, false
	}

	if !s.Commit(tk, func() { s.updateUser(ctx, resp.Data) }) {
		return user.User{}, false
	}
	return resp.Data, true
}

// UpdateProfile implements auth.Store.
func (s *AuthStoreImpl) UpdateProfile(ctx context.Context, req auth.UpdateProfileRequest) bool {
	tk := s.Begin("updateProfile")

	if err := req.Validate(); err != nil {
		s.fail(tk, err, i18n.UpdateProfileFailed)
		return false
	}

	resp, err := apiclient.Do[user.User](ctx, s.client, http.MethodPut, "/api/auth/profile", req, nil)
	if err != nil {
		s.fail(tk, err, i18n.UpdateProfileFailed)
		return false
	}

	return s.Commit(tk, func() { s.updateUser(ctx, resp.Data) })
}

// ChangePassword implements auth.Store.
func (s *AuthStoreImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) bool {
	tk := s.Begin("changePassword")

	if err := req.Validate(); err != nil {
		s.fail(tk, err, i18n.ChangePasswordFailed)
		return false
	}

	if _, err := apiclient.Do[any](ctx, s.client, http.MethodPut, "/api/auth/password", req, nil); err != nil {
		s.fail(tk, err, i18n.ChangePasswordFailed)
		return false
	}
	return s.Commit(tk, nil)
}

// establish logs the user in, then resolves their company. A failed company
// lookup keeps the session without a company.
func (s *AuthStoreImpl) establish(ctx context.Context, result auth.AuthResult) error {
	if err := s.session.Login(ctx, result.User, nil, result.Token); err != nil {
		return err
	}
	if !result.User.HasCompany() {
		return nil
	}

	path := "/api/companies/" + url.PathEscape(*result.User.CompanyID)
	resp, err := apiclient.Do[company.Company](ctx, s.client, http.MethodGet, path, nil, nil)
	if err != nil {
		s.Logger().Warn("company lookup after login failed", "company_id", *result.User.CompanyID, "error", err)
		return nil
	}

	c := resp.Data
	return s.session.Login(ctx, result.User, &c, result.Token)
}

func (s *AuthStoreImpl) updateUser(ctx context.Context, u user.User) {
	if err := s.session.UpdateUser(ctx, u); err != nil {
		s.Logger().Warn("failed to persist updated user", "error", err)
	}
}

// fail records the failure on the store and mirrors it on the session.
func (s *AuthStoreImpl) fail(tk lifecycle.Ticket, err error, fallback i18n.Key) {
	s.Fail(tk, err, fallback)
	if msg := s.Error(); msg != "" {
		s.session.SetError(msg)
	}
}
