package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-console-go/internal/handler/http/response"
)

type AdminHandler interface {
	ListUsers(w http.ResponseWriter, r *http.Request)
	CreateUser(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)

	// Super admin only
	AssignCompany(w http.ResponseWriter, r *http.Request)
	CreateSuperAdmin(w http.ResponseWriter, r *http.Request)
}

type adminHandlerImpl struct{}

func NewAdminHandler() AdminHandler {
	return &adminHandlerImpl{}
}

type superAdminForm struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ListUsers handles GET /admin/users
func (h *adminHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter := user.ListFilter{
		CompanyID: r.URL.Query().Get("companyId"),
		Role:      user.Role(r.URL.Query().Get("role")),
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
	}

	store := instance(r).Admin
	if !store.FetchUsers(r.Context(), filter) {
		actionFailed(w, r, store, nil)
		return
	}
	response.Success(w, store.Users())
}

// CreateUser handles POST /admin/users
func (h *adminHandlerImpl) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if !decode(w, r, "CreateUser", &req) {
		return
	}

	store := instance(r).Admin
	created, ok := store.CreateUser(r.Context(), req)
	if !ok {
		values := req
		values.Password = ""
		actionFailed(w, r, store, values)
		return
	}
	response.Created(w, "User created", created)
}

// UpdateUser handles PUT /admin/users/{id}
func (h *adminHandlerImpl) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateUserRequest
	if !decode(w, r, "UpdateUser", &req) {
		return
	}

	store := instance(r).Admin
	if !store.UpdateUser(r.Context(), chi.URLParam(r, "id"), req) {
		actionFailed(w, r, store, req)
		return
	}
	response.SuccessWithMessage(w, "User updated", store.Users())
}

// DeleteUser handles DELETE /admin/users/{id}
func (h *adminHandlerImpl) DeleteUser(w http.ResponseWriter, r *http.Request) {
	store := instance(r).Admin
	if !store.DeleteUser(r.Context(), chi.URLParam(r, "id")) {
		actionFailed(w, r, store, nil)
		return
	}
	response.SuccessWithMessage(w, "User deleted", nil)
}

// AssignCompany handles POST /super-admin/users/{id}/company
func (h *adminHandlerImpl) AssignCompany(w http.ResponseWriter, r *http.Request) {
	var req user.AssignCompanyRequest
	if !decode(w, r, "AssignCompany", &req) {
		return
	}

	store := instance(r).Admin
	if !store.AssignCompany(r.Context(), chi.URLParam(r, "id"), req) {
		actionFailed(w, r, store, req)
		return
	}
	response.SuccessWithMessage(w, "Company assigned", nil)
}

// CreateSuperAdmin handles POST /super-admin/super-admins. The submitted
// values are echoed only on failure so a successful form starts empty.
func (h *adminHandlerImpl) CreateSuperAdmin(w http.ResponseWriter, r *http.Request) {
	var form superAdminForm
	if !decode(w, r, "CreateSuperAdmin", &form) {
		return
	}

	store := instance(r).Admin
	created, ok := store.CreateSuperAdmin(r.Context(), user.CreateSuperAdminRequest{
		Name:            form.Name,
		Email:           form.Email,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	if !ok {
		actionFailed(w, r, store, map[string]string{"name": form.Name, "email": form.Email})
		return
	}
	response.Created(w, "Super admin created", created)
}
