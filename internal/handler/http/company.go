package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-console-go/internal/handler/http/response"
)

type CompanyHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Switch(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct{}

func NewCompanyHandler() CompanyHandler {
	return &CompanyHandlerImpl{}
}

// List implements CompanyHandler.
func (c *CompanyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	store := instance(r).Company
	if !store.FetchCompanies(r.Context()) {
		actionFailed(w, r, store, nil)
		return
	}
	response.Success(w, store.Companies())
}

// Create implements CompanyHandler.
func (c *CompanyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req company.CreateCompanyRequest
	if !decode(w, r, "CreateCompany", &req) {
		return
	}

	store := instance(r).Company
	created, ok := store.CreateCompany(r.Context(), req)
	if !ok {
		actionFailed(w, r, store, req)
		return
	}
	response.Created(w, "Company created", created)
}

// GetByID implements CompanyHandler.
func (c *CompanyHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	store := instance(r).Company
	found, ok := store.FetchCompany(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		actionFailed(w, r, store, nil)
		return
	}
	response.Success(w, found)
}

// Update implements CompanyHandler.
func (c *CompanyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateCompanyRequest
	if !decode(w, r, "UpdateCompany", &req) {
		return
	}

	store := instance(r).Company
	if !store.UpdateCompany(r.Context(), chi.URLParam(r, "id"), req) {
		actionFailed(w, r, store, req)
		return
	}
	response.SuccessWithMessage(w, "Company updated", store.Companies())
}

// Delete implements CompanyHandler.
func (c *CompanyHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	store := instance(r).Company
	if !store.DeleteCompany(r.Context(), chi.URLParam(r, "id")) {
		actionFailed(w, r, store, nil)
		return
	}
	response.SuccessWithMessage(w, "Company deleted", nil)
}

// Switch implements CompanyHandler.
func (c *CompanyHandlerImpl) Switch(w http.ResponseWriter, r *http.Request) {
	inst := instance(r)
	if !inst.Company.SwitchCompany(r.Context(), chi.URLParam(r, "id")) {
		actionFailed(w, r, inst.Company, nil)
		return
	}
	response.SuccessWithMessage(w, "Company switched", inst.Session.Snapshot().Company)
}
