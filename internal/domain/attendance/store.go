package attendance

import (
	"context"

	"github.com/cmlabs-hris/hris-console-go/internal/pkg/apiclient"
)

type Store interface {
	ClockIn(ctx context.Context, req ClockInRequest) bool
	ClockOut(ctx context.Context, req ClockOutRequest) bool
	FetchToday(ctx context.Context) bool
	FetchRecords(ctx context.Context, filter ListFilter) bool
	FetchAllRecords(ctx context.Context, filter ListFilter) bool

	Today() TodayStatus
	Records() []Record
	Pagination() *apiclient.Pagination
	IsLoading() bool
	Error() string
	FieldErrors() map[string]string
	ClearError()
}
