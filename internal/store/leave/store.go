package leave

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-console-go/internal/store/lifecycle"
)

type LeaveStoreImpl struct {
	*lifecycle.Tracker
	client *apiclient.Client

	mu       sync.RWMutex
	requests []leave.Request
}

func NewLeaveStore(client *apiclient.Client, tracker *lifecycle.Tracker) leave.Store {
	return &LeaveStoreImpl{
		Tracker: tracker,
		client:  client,
	}
}

// CreateRequest implements leave.Store.
func (s *LeaveStoreImpl) CreateRequest(ctx context.Context, req leave.CreateRequest) bool {
	tk := s.Begin("createRequest")

	if err := req.Validate(); err != nil {
		s.Fail(tk, err, i18n.CreateLeaveFailed)
		return false
	}

	resp, err := apiclient.Do[leave.Request](ctx, s.client, http.MethodPost, "/api/leave", req, nil)
	if err != nil {
		s.Fail(tk, err, i18n.CreateLeaveFailed)
		return false
	}

	return s.Commit(tk, func() {
		s.mu.Lock()
		s.requests = append([]leave.Request{resp.Data}, s.requests...)
		s.mu.Unlock()
	})
}

// FetchMyRequests implements leave.Store.
func (s *LeaveStoreImpl) FetchMyRequests(ctx context.Context) bool {
	return s.fetch(ctx, "/api/leave/my", nil)
}

// FetchAllRequests implements leave.Store. An empty status lists every request.
func (s *LeaveStoreImpl) FetchAllRequests(ctx context.Context, status leave.Status) bool {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}
	return s.fetch(ctx, "/api/leave", query)
}

func (s *LeaveStoreImpl) fetch(ctx context.Context, path string, query url.Values) bool {
	tk := s.Begin("requests")

	resp, err := apiclient.Do[[]leave.Request](ctx, s.client, http.MethodGet, path, nil, query)
	if err != nil {
		s.Fail(tk, err, i18n.FetchLeaveFailed)
		return false
	}

	return s.Commit(tk, func() {
		s.mu.Lock()
		s.requests = resp.Data
		s.mu.Unlock()
	})
}

// UpdateRequest implements leave.Store. A cached request that is no longer
// pending is refused without a network call.
func (s *LeaveStoreImpl) UpdateRequest(ctx context.Context, id string, req leave.UpdateRequest) bool {
	tk := s.Begin("updateRequest")

	current, cached := s.find(id)
	if cached && !current.Editable() {
		s.Fail(tk, leave.ErrLeaveRequestAlreadyProcessed, i18n.LeaveAlreadyProcessed, current.Status)
		return false
	}
	if !cached {
		current = proposed(req)
	}
	if err := req.ValidateAgainst(current); err != nil {
		s.Fail(tk, err, i18n.UpdateLeaveFailed)
		return false
	}

	resp, err := apiclient.Do[leave.Request](ctx, s.client, http.MethodPut, "/api/leave/"+url.PathEscape(id), req, nil)
	if err != nil {
		s.Fail(tk, err, i18n.UpdateLeaveFailed)
		return false
	}

	return s.Commit(tk, func() { s.replace(resp.Data) })
}

// UpdateStatus implements leave.Store. The transition is checked against the
// cached status; an uncached request is left to the backend.
func (s *LeaveStoreImpl) UpdateStatus(ctx context.Context, id string, update leave.StatusUpdate) bool {
	tk := s.Begin("updateStatus")

	if err := update.Validate(); err != nil {
		s.Fail(tk, err, i18n.UpdateLeaveStatusFailed)
		return false
	}
	if current, cached := s.find(id); cached && !leave.CanTransition(current.Status, update.Status) {
		s.Fail(tk, leave.ErrInvalidStatusTransition, i18n.LeaveAlreadyProcessed, current.Status)
		return false
	}

	resp, err := apiclient.Do[leave.Request](ctx, s.client, http.MethodPut, "/api/leave/"+url.PathEscape(id)+"/status", update, nil)
	if err != nil {
		s.Fail(tk, err, i18n.UpdateLeaveStatusFailed)
		return false
	}

	return s.Commit(tk, func() { s.replace(resp.Data) })
}

// CancelRequest implements leave.Store.
func (s *LeaveStoreImpl) CancelRequest(ctx context.Context, id string) bool {
	tk := s.Begin("cancelRequest")

	if current, cached := s.find(id); cached && !current.Editable() {
		s.Fail(tk, leave.ErrLeaveRequestAlreadyProcessed, i18n.LeaveAlreadyProcessed, current.Status)
		return false
	}

	if _, err := apiclient.Do[any](ctx, s.client, http.MethodDelete, "/api/leave/"+url.PathEscape(id), nil, nil); err != nil {
		s.Fail(tk, err, i18n.CancelLeaveFailed)
		return false
	}

	return s.Commit(tk, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.requests {
			if s.requests[i].ID == id {
				s.requests = append(s.requests[:i:i], s.requests[i+1:]...)
				return
			}
		}
	})
}

// Requests implements leave.Store.
func (s *LeaveStoreImpl) Requests() []leave.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]leave.Request(nil), s.requests...)
}

func (s *LeaveStoreImpl) find(id string) (leave.Request, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.requests {
		if r.ID == id {
			return r, true
		}
	}
	return leave.Request{}, false
}

func (s *LeaveStoreImpl) replace(updated leave.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].ID == updated.ID {
			s.requests[i] = updated
			return
		}
	}
}

// proposed stands in for an uncached request, so a partial date edit is
// checked only against itself.
func proposed(req leave.UpdateRequest) leave.Request {
	var r leave.Request
	if req.StartDate != nil {
		r.StartDate, r.EndDate = *req.StartDate, *req.StartDate
	}
	if req.EndDate != nil {
		r.EndDate = *req.EndDate
		if req.StartDate == nil {
			r.StartDate = *req.EndDate
		}
	}
	return r
}
