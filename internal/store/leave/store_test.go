package leave

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-console-go/internal/store/storetest"
)

type fixture struct {
	store leave.Store
	calls atomic.Int32
}

func setup(t *testing.T, register func(r chi.Router)) *fixture {
	t.Helper()
	f := &fixture{}
	b := storetest.NewBackend(t)
	b.Router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			f.calls.Add(1)
			next.ServeHTTP(w, r)
		})
	})
	b.Protected(register)

	sess := storetest.Session(t, &user.User{ID: "admin", Role: user.RoleAdmin}, nil, b.Token(t, "admin"))
	f.store = NewLeaveStore(b.Client(t, sess), storetest.Tracker("leave"))
	return f
}

func pending(id string) leave.Request {
	return leave.Request{ID: id, UserID: "u1", StartDate: "2026-11-02", EndDate: "2026-11-04", LeaveType: leave.TypePaid, Reason: "trip", Status: leave.StatusPending}
}

// ===== CREATE =====

func TestCreateRequest(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantOK    bool
		wantCalls int32
	}{
		{name: "ordered range", start: "2026-11-02", end: "2026-11-04", wantOK: true, wantCalls: 1},
		{name: "single day", start: "2026-11-02", end: "2026-11-02", wantOK: true, wantCalls: 1},
		{name: "inverted range", start: "2026-11-04", end: "2026-11-02", wantOK: false, wantCalls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, func(r chi.Router) {
				r.Post("/api/leave", func(w http.ResponseWriter, r *http.Request) {
					var req leave.CreateRequest
					storetest.Decode(t, r, &req)
					created := pending("l1")
					created.StartDate, created.EndDate = req.StartDate, req.EndDate
					storetest.Success(w, created)
				})
			})

			ok := f.store.CreateRequest(context.Background(), leave.CreateRequest{
				StartDate: tt.start,
				EndDate:   tt.end,
				LeaveType: leave.TypeSick,
				Reason:    "flu",
			})

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCalls, f.calls.Load())
			if tt.wantOK {
				require.Len(t, f.store.Requests(), 1)
				assert.Equal(t, tt.start, f.store.Requests()[0].StartDate)
			} else {
				assert.Contains(t, f.store.FieldErrors(), "endDate")
			}
		})
	}
}

// ===== STATUS =====

func TestUpdateStatus_ApprovesPendingRequest(t *testing.T) {
	f := setup(t, func(r chi.Router) {
		r.Get("/api/leave", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "PENDING", r.URL.Query().Get("status"))
			storetest.Success(w, []leave.Request{pending("l1"), pending("l2")})
		})
		r.Put("/api/leave/{id}/status", func(w http.ResponseWriter, r *http.Request) {
			var update leave.StatusUpdate
			storetest.Decode(t, r, &update)
			decided := pending(chi.URLParam(r, "id"))
			decided.Status = update.Status
			decided.Comment = update.Comment
			storetest.Success(w, decided)
		})
	})
	ctx := context.Background()
	require.True(t, f.store.FetchAllRequests(ctx, leave.StatusPending))

	ok := f.store.UpdateStatus(ctx, "l2", leave.StatusUpdate{Status: leave.StatusApproved, Comment: storetest.Ptr("enjoy")})

	require.True(t, ok)
	requests := f.store.Requests()
	assert.Equal(t, leave.StatusPending, requests[0].Status)
	assert.Equal(t, leave.StatusApproved, requests[1].Status)
	assert.Equal(t, "enjoy", *requests[1].Comment)
}

func TestUpdateStatus_RejectsTransitionFromFinalStatus(t *testing.T) {
	f := setup(t, func(r chi.Router) {
		r.Get("/api/leave", func(w http.ResponseWriter, r *http.Request) {
			approved := pending("l1")
			approved.Status = leave.StatusApproved
			storetest.Success(w, []leave.Request{approved})
		})
		r.Put("/api/leave/{id}/status", func(w http.ResponseWriter, r *http.Request) {
			t.Error("status update must not reach the backend")
		})
	})
	ctx := context.Background()
	require.True(t, f.store.FetchAllRequests(ctx, ""))
	before := f.calls.Load()

	ok := f.store.UpdateStatus(ctx, "l1", leave.StatusUpdate{Status: leave.StatusApproved})

	assert.False(t, ok)
	assert.Equal(t, before, f.calls.Load())
	assert.Equal(t, "This leave request is already APPROVED.", f.store.Error())
}

func TestUpdateStatus_UncachedRequestIsForwarded(t *testing.T) {
	f := setup(t, func(r chi.Router) {
		r.Put("/api/leave/{id}/status", func(w http.ResponseWriter, r *http.Request) {
			storetest.Error(w, http.StatusUnprocessableEntity, "Leave request already processed")
		})
	})

	ok := f.store.UpdateStatus(context.Background(), "l9", leave.StatusUpdate{Status: leave.StatusRejected})

	assert.False(t, ok)
	assert.Equal(t, int32(1), f.calls.Load())
	assert.Equal(t, "Leave request already processed", f.store.Error())
}

func TestUpdateStatus_PendingIsNotADecision(t *testing.T) {
	f := setup(t, func(r chi.Router) {})

	ok := f.store.UpdateStatus(context.Background(), "l1", leave.StatusUpdate{Status: leave.StatusPending})

	assert.False(t, ok)
	assert.Equal(t, int32(0), f.calls.Load())
	assert.Contains(t, f.store.FieldErrors(), "status")
}

// ===== EDIT / CANCEL =====

func TestUpdateRequest_ValidatesAgainstCachedDates(t *testing.T) {
	f := setup(t, func(r chi.Router) {
		r.Get("/api/leave/my", func(w http.ResponseWriter, r *http.Request) {
			storetest.Success(w, []leave.Request{pending("l1")})
		})
		r.Put("/api/leave/{id}", func(w http.ResponseWriter, r *http.Request) {
			var req leave.UpdateRequest
			storetest.Decode(t, r, &req)
			updated := pending("l1")
			updated.Reason = *req.Reason
			storetest.Success(w, updated)
		})
	})
	ctx := context.Background()
	require.True(t, f.store.FetchMyRequests(ctx))

	// End before the cached start
	assert.False(t, f.store.UpdateRequest(ctx, "l1", leave.UpdateRequest{EndDate: storetest.Ptr("2026-11-01")}))
	assert.Contains(t, f.store.FieldErrors(), "endDate")

	require.True(t, f.store.UpdateRequest(ctx, "l1", leave.UpdateRequest{Reason: storetest.Ptr("family trip")}))
	assert.Equal(t, "family trip", f.store.Requests()[0].Reason)
}

func TestCancelRequest(t *testing.T) {
	f := setup(t, func(r chi.Router) {
		r.Get("/api/leave/my", func(w http.ResponseWriter, r *http.Request) {
			rejected := pending("l2")
			rejected.Status = leave.StatusRejected
			storetest.Success(w, []leave.Request{pending("l1"), rejected})
		})
		r.Delete("/api/leave/{id}", func(w http.ResponseWriter, r *http.Request) {
			storetest.Success(w, nil)
		})
	})
	ctx := context.Background()
	require.True(t, f.store.FetchMyRequests(ctx))

	assert.False(t, f.store.CancelRequest(ctx, "l2"))
	assert.Equal(t, "This leave request is already REJECTED.", f.store.Error())

	require.True(t, f.store.CancelRequest(ctx, "l1"))
	requests := f.store.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "l2", requests[0].ID)
}
