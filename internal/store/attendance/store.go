package attendance

import (
	"context"
	"net/http"
	"sync"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-console-go/internal/store/lifecycle"
)

type AttendanceStoreImpl struct {
	*lifecycle.Tracker
	client *apiclient.Client

	mu          sync.RWMutex
	today       attendance.TodayStatus
	todayLoaded bool
	records     []attendance.Record
	pagination  *apiclient.Pagination
}

func NewAttendanceStore(client *apiclient.Client, tracker *lifecycle.Tracker) attendance.Store {
	return &AttendanceStoreImpl{
		Tracker: tracker,
		client:  client,
	}
}

// ClockIn implements attendance.Store.
func (s *AttendanceStoreImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) bool {
	tk := s.Begin("clockIn")

	if err := req.Validate(); err != nil {
		s.Fail(tk, err, i18n.ClockInFailed)
		return false
	}

	resp, err := apiclient.Do[attendance.Record](ctx, s.client, http.MethodPost, "/api/attendance/clock-in", req, nil)
	if err != nil {
		s.Fail(tk, err, i18n.ClockInFailed)
		return false
	}

	return s.Commit(tk, func() { s.applyToday(resp.Data) })
}

// ClockOut implements attendance.Store. With today's status loaded, a
// missing clock-in or a second clock-out fails without a network call.
func (s *AttendanceStoreImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) bool {
	tk := s.Begin("clockOut")

	if err := req.Validate(); err != nil {
		s.Fail(tk, err, i18n.ClockOutFailed)
		return false
	}

	s.mu.RLock()
	today, loaded := s.today, s.todayLoaded
	s.mu.RUnlock()
	if loaded && !today.IsClockedIn {
		s.Fail(tk, attendance.ErrNotClockedIn, i18n.NotClockedIn)
		return false
	}
	if loaded && today.IsClockedOut {
		s.Fail(tk, attendance.ErrAlreadyClockedOut, i18n.AlreadyClockedOut)
		return false
	}

	resp, err := apiclient.Do[attendance.Record](ctx, s.client, http.MethodPost, "/api/attendance/clock-out", req, nil)
	if err != nil {
		s.Fail(tk, err, i18n.ClockOutFailed)
		return false
	}

	return s.Commit(tk, func() { s.applyToday(resp.Data) })
}

// FetchToday implements attendance.Store.
func (s *AttendanceStoreImpl) FetchToday(ctx context.Context) bool {
	tk := s.Begin("fetchToday")

	resp, err := apiclient.Do[attendance.TodayStatus](ctx, s.client, http.MethodGet, "/api/attendance/today", nil, nil)
	if err != nil {
		s.Fail(tk, err, i18n.FetchTodayFailed)
		return false
	}

	today := resp.Data
	if today.Record != nil {
		today = attendance.StatusOf(today.Record)
	}
	return s.Commit(tk, func() {
		s.mu.Lock()
		s.today = today
		s.todayLoaded = true
		s.mu.Unlock()
	})
}

// FetchRecords implements attendance.Store.
func (s *AttendanceStoreImpl) FetchRecords(ctx context.Context, filter attendance.ListFilter) bool {
	return s.fetch(ctx, "fetchRecords", "/api/attendance", filter)
}

// FetchAllRecords implements attendance.Store.
func (s *AttendanceStoreImpl) FetchAllRecords(ctx context.Context, filter attendance.ListFilter) bool {
	return s.fetch(ctx, "fetchAllRecords", "/api/attendance/all", filter)
}

func (s *AttendanceStoreImpl) fetch(ctx context.Context, action, path string, filter attendance.ListFilter) bool {
	// Both listings fill the same cache, so they share one fence
	tk := s.Begin("records")

	if err := filter.Validate(); err != nil {
		s.Fail(tk, err, i18n.FetchAttendanceFailed)
		return false
	}

	resp, err := apiclient.Do[[]attendance.Record](ctx, s.client, http.MethodGet, path, nil, filter.Query())
	if err != nil {
		s.Fail(tk, err, i18n.FetchAttendanceFailed)
		return false
	}

	s.Logger().Debug("attendance records loaded", "action", action, "count", len(resp.Data))
	return s.Commit(tk, func() {
		s.mu.Lock()
		s.records = resp.Data
		s.pagination = resp.Pagination
		s.mu.Unlock()
	})
}

// applyToday sets today's status from a fresh record and replaces the record
// in the cached list when it is listed.
func (s *AttendanceStoreImpl) applyToday(rec attendance.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.today = attendance.StatusOf(&rec)
	s.todayLoaded = true

	for i := range s.records {
		if s.records[i].ID == rec.ID {
			s.records[i] = rec
			return
		}
	}
}

// Today implements attendance.Store.
func (s *AttendanceStoreImpl) Today() attendance.TodayStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	today := s.today
	if today.Record != nil {
		rec := *today.Record
		today.Record = &rec
	}
	return today
}

// Records implements attendance.Store.
func (s *AttendanceStoreImpl) Records() []attendance.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]attendance.Record(nil), s.records...)
}

// Pagination implements attendance.Store.
func (s *AttendanceStoreImpl) Pagination() *apiclient.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pagination == nil {
		return nil
	}
	p := *s.pagination
	return &p
}
