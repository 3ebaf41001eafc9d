package leave

import "context"

type Store interface {
	CreateRequest(ctx context.Context, req CreateRequest) bool
	FetchMyRequests(ctx context.Context) bool
	FetchAllRequests(ctx context.Context, status Status) bool
	UpdateRequest(ctx context.Context, id string, req UpdateRequest) bool
	// UpdateStatus refuses locally, without a request, when the cached request
	// can not move to update.Status (a decided request is never re-decided).
	UpdateStatus(ctx context.Context, id string, update StatusUpdate) bool
	CancelRequest(ctx context.Context, id string) bool

	Requests() []Request
	IsLoading() bool
	Error() string
	FieldErrors() map[string]string
	ClearError()
}
