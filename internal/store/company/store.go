package company

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-console-go/internal/session"
	"github.com/cmlabs-hris/hris-console-go/internal/store/lifecycle"
)

type CompanyStoreImpl struct {
	*lifecycle.Tracker
	client  *apiclient.Client
	session *session.Store

	mu        sync.RWMutex
	companies []company.Company
}

func NewCompanyStore(client *apiclient.Client, sess *session.Store, tracker *lifecycle.Tracker) company.Store {
	return &CompanyStoreImpl{
		Tracker: tracker,
		client:  client,
		session: sess,
	}
}

func companyPath(id string) string {
	return "/api/companies/" + url.PathEscape(id)
}

// FetchCompanies implements company.Store.
func (s *CompanyStoreImpl) FetchCompanies(ctx context.Context) bool {
	tk := s.Begin("companies")

	resp, err := apiclient.Do[[]company.Company](ctx, s.client, http.MethodGet, "/api/companies", nil, nil)
	if err != nil {
		s.Fail(tk, err, i18n.FetchCompaniesFailed)
		return false
	}

	return s.Commit(tk, func() {
		s.mu.Lock()
		s.companies = resp.Data
		s.mu.Unlock()
	})
}

// FetchCompany implements company.Store.
func (s *CompanyStoreImpl) FetchCompany(ctx context.Context, id string) (company.Company, bool) {
	tk := s.Begin("company:" + id)

	resp, err := apiclient.Do[company.Company](ctx, s.client, http.MethodGet, companyPath(id), nil, nil)
	if err != nil {
		s.Fail(tk, err, i18n.FetchCompaniesFailed)
		return company.Company{}, false
	}

	if !s.Commit(tk, func() { s.replace(resp.Data) }) {
		return company.Company{}, false
	}
	return resp.Data, true
}

// CreateCompany implements company.Store.
func (s *CompanyStoreImpl) CreateCompany(ctx context.Context, req company.CreateCompanyRequest) (company.Company, bool) {
	tk := s.Begin("createCompany")

	if err := req.Validate(); err != nil {
		s.Fail(tk, err, i18n.CreateCompanyFailed)
		return company.Company{}, false
	}

	resp, err := apiclient.Do[company.Company](ctx, s.client, http.MethodPost, "/api/companies", req, nil)
	if err != nil {
		s.Fail(tk, err, i18n.CreateCompanyFailed)
		return company.Company{}, false
	}

	s.Commit(tk, func() {
		s.mu.Lock()
		s.companies = append(s.companies, resp.Data)
		s.mu.Unlock()
	})
	return resp.Data, true
}

// UpdateCompany implements company.Store. The selected company in the
// session is refreshed when it is the one updated.
func (s *CompanyStoreImpl) UpdateCompany(ctx context.Context, id string, req company.UpdateCompanyRequest) bool {
	tk := s.Begin("updateCompany")

	if err := req.Validate(); err != nil {
		s.Fail(tk, err, i18n.UpdateCompanyFailed)
		return false
	}

	resp, err := apiclient.Do[company.Company](ctx, s.client, http.MethodPut, companyPath(id), req, nil)
	if err != nil {
		s.Fail(tk, err, i18n.UpdateCompanyFailed)
		return false
	}

	if selected := s.session.Snapshot().Company; selected != nil && selected.ID == resp.Data.ID {
		updated := resp.Data
		if err := s.session.SwitchCompany(ctx, &updated); err != nil {
			s.Logger().Warn("failed to persist updated company", "company_id", id, "error", err)
		}
	}
	return s.Commit(tk, func() { s.replace(resp.Data) })
}

// DeleteCompany implements company.Store.
func (s *CompanyStoreImpl) DeleteCompany(ctx context.Context, id string) bool {
	tk := s.Begin("deleteCompany")

	if _, err := apiclient.Do[any](ctx, s.client, http.MethodDelete, companyPath(id), nil, nil); err != nil {
		s.Fail(tk, err, i18n.DeleteCompanyFailed)
		return false
	}

	if selected := s.session.Snapshot().Company; selected != nil && selected.ID == id {
		if err := s.session.SwitchCompany(ctx, nil); err != nil {
			s.Logger().Warn("failed to persist cleared company", "company_id", id, "error", err)
		}
	}
	return s.Commit(tk, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.companies {
			if s.companies[i].ID == id {
				s.companies = append(s.companies[:i:i], s.companies[i+1:]...)
				return
			}
		}
	})
}

// SwitchCompany implements company.Store. Only a user holding the switch
// capability may select a company; an uncached company is looked up first.
func (s *CompanyStoreImpl) SwitchCompany(ctx context.Context, id string) bool {
	tk := s.Begin("switchCompany")

	if !s.session.Can(user.PermissionCompanySwitch) {
		s.Fail(tk, company.ErrSwitchNotPermitted, i18n.Forbidden)
		return false
	}

	target, cached := s.find(id)
	if !cached {
		resp, err := apiclient.Do[company.Company](ctx, s.client, http.MethodGet, companyPath(id), nil, nil)
		if err != nil {
			s.Fail(tk, err, i18n.SwitchCompanyFailed)
			return false
		}
		target = resp.Data
	}

	if !s.Commit(tk, func() {
		if err := s.session.SwitchCompany(ctx, &target); err != nil {
			s.Logger().Warn("failed to persist switched company", "company_id", target.ID, "error", err)
		}
	}) {
		return false
	}
	s.Logger().Info("company switched", "company_id", target.ID, "public_id", target.PublicID)
	return true
}

// Companies implements company.Store.
func (s *CompanyStoreImpl) Companies() []company.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]company.Company(nil), s.companies...)
}

func (s *CompanyStoreImpl) find(id string) (company.Company, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.companies {
		if c.ID == id {
			return c, true
		}
	}
	return company.Company{}, false
}

func (s *CompanyStoreImpl) replace(updated company.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.companies {
		if s.companies[i].ID == updated.ID {
			s.companies[i] = updated
			return
		}
	}
}
