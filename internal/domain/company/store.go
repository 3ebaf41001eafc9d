package company

import "context"

type Store interface {
	FetchCompanies(ctx context.Context) bool
	FetchCompany(ctx context.Context, id string) (Company, bool)
	CreateCompany(ctx context.Context, req CreateCompanyRequest) (Company, bool)
	UpdateCompany(ctx context.Context, id string, req UpdateCompanyRequest) bool
	DeleteCompany(ctx context.Context, id string) bool
	SwitchCompany(ctx context.Context, id string) bool

	Companies() []Company
	IsLoading() bool
	Error() string
	FieldErrors() map[string]string
	ClearError()
}
