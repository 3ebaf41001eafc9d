package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-console-go/internal/guard"
	"github.com/cmlabs-hris/hris-console-go/internal/handler/http/response"
)

type AuthHandler interface {
	LoginPage(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Register(w http.ResponseWriter, r *http.Request)
	VerifyEmail(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)

	Profile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct{}

func NewAuthHandler() AuthHandler {
	return &AuthHandlerImpl{}
}

// LoginPage is the login view model. An authenticated browser is sent on
// to the preserved origin.
type LoginPage struct {
	From string `json:"from"`
}

// AuthView is returned after a successful login or registration.
type AuthView struct {
	User         *user.User        `json:"user"`
	Company      *company.Company  `json:"company"`
	Capabilities []user.Permission `json:"capabilities"`
	Redirect     string            `json:"redirect"`
}

type registerForm struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type changePasswordForm struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// LoginPage implements AuthHandler.
func (h *AuthHandlerImpl) LoginPage(w http.ResponseWriter, r *http.Request) {
	inst := instance(r)
	if inst.Session.IsAuthenticated() {
		http.Redirect(w, r, guard.ReturnTo(r), http.StatusSeeOther)
		return
	}
	response.Success(w, LoginPage{From: guard.ReturnTo(r)})
}

// Login implements AuthHandler.
func (h *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !decode(w, r, "Login", &req) {
		return
	}

	inst := instance(r)
	if !inst.Auth.Login(r.Context(), req) {
		// Never echo the password
		response.FormError(w, inst.Auth.Error(), inst.Auth.FieldErrors(), map[string]string{"email": req.Email})
		return
	}

	response.SuccessWithMessage(w, "Login successful", authView(r))
}

// Register implements AuthHandler.
func (h *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var form registerForm
	if !decode(w, r, "Register", &form) {
		return
	}

	inst := instance(r)
	ok := inst.Auth.Register(r.Context(), auth.RegisterRequest{
		Name:            form.Name,
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	if !ok {
		response.FormError(w, inst.Auth.Error(), inst.Auth.FieldErrors(), map[string]string{"name": form.Name, "email": form.Email})
		return
	}

	if !inst.Session.IsAuthenticated() {
		// Backend requires email verification before the first login
		response.Created(w, "Registration successful, please verify your email", nil)
		return
	}
	response.Created(w, "Registration successful", authView(r))
}

// VerifyEmail implements AuthHandler.
func (h *AuthHandlerImpl) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	req := auth.VerifyEmailRequest{
		Token:  r.URL.Query().Get("token"),
		UserID: r.URL.Query().Get("userId"),
	}

	inst := instance(r)
	if !inst.Auth.VerifyEmail(r.Context(), req) {
		response.FormError(w, inst.Auth.Error(), inst.Auth.FieldErrors(), nil)
		return
	}

	response.SuccessWithMessage(w, "Email verified", authView(r))
}

// Logout implements AuthHandler.
func (h *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	instance(r).Auth.Logout(r.Context())
	response.SuccessWithMessage(w, "Logged out", map[string]string{"redirect": guard.LoginPath})
}

// Profile implements AuthHandler.
func (h *AuthHandlerImpl) Profile(w http.ResponseWriter, r *http.Request) {
	inst := instance(r)
	u, ok := inst.Auth.FetchMe(r.Context())
	if !ok {
		actionFailed(w, r, inst.Auth, nil)
		return
	}
	response.Success(w, u)
}

// UpdateProfile implements AuthHandler.
func (h *AuthHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req auth.UpdateProfileRequest
	if !decode(w, r, "UpdateProfile", &req) {
		return
	}

	inst := instance(r)
	if !inst.Auth.UpdateProfile(r.Context(), req) {
		actionFailed(w, r, inst.Auth, req)
		return
	}
	response.SuccessWithMessage(w, "Profile updated", inst.Session.Snapshot().User)
}

// ChangePassword implements AuthHandler.
func (h *AuthHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var form changePasswordForm
	if !decode(w, r, "ChangePassword", &form) {
		return
	}

	inst := instance(r)
	ok := inst.Auth.ChangePassword(r.Context(), auth.ChangePasswordRequest{
		CurrentPassword:    form.CurrentPassword,
		NewPassword:        form.NewPassword,
		ConfirmNewPassword: form.ConfirmNewPassword,
	})
	if !ok {
		actionFailed(w, r, inst.Auth, nil)
		return
	}
	response.SuccessWithMessage(w, "Password changed", nil)
}

func authView(r *http.Request) AuthView {
	st := instance(r).Session.Snapshot()
	view := AuthView{User: st.User, Company: st.Company, Redirect: guard.ReturnTo(r)}
	if st.User != nil {
		view.Capabilities = user.Capabilities(st.User.Role)
	}
	return view
}
