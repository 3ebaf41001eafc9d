package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-console-go/internal/handler/http/response"
)

type LeaveHandler interface {
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	UpdateRequest(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)

	ListRequests(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct{}

func NewLeaveHandler() LeaveHandler {
	return &LeaveHandlerImpl{}
}

// LeaveView is a leave request with its inclusive day count. Decided
// requests offer no approve or reject action.
type LeaveView struct {
	leave.Request
	Days     int  `json:"days"`
	Editable bool `json:"editable"`
	Decided  bool `json:"decided"`
}

func leaveViews(requests []leave.Request) []LeaveView {
	out := make([]LeaveView, 0, len(requests))
	for i := range requests {
		out = append(out, LeaveView{
			Request:  requests[i],
			Days:     requests[i].Days(),
			Editable: requests[i].Editable(),
			Decided:  requests[i].Status.IsFinal(),
		})
	}
	return out
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	store := instance(r).Leave
	if !store.FetchMyRequests(r.Context()) {
		actionFailed(w, r, store, nil)
		return
	}
	response.Success(w, leaveViews(store.Requests()))
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateRequest
	if !decode(w, r, "CreateRequest", &req) {
		return
	}

	store := instance(r).Leave
	if !store.CreateRequest(r.Context(), req) {
		actionFailed(w, r, store, req)
		return
	}
	response.Created(w, "Leave request submitted", leaveViews(store.Requests()))
}

// UpdateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")

	var req leave.UpdateRequest
	if !decode(w, r, "UpdateRequest", &req) {
		return
	}

	store := instance(r).Leave
	if !store.UpdateRequest(r.Context(), requestID, req) {
		actionFailed(w, r, store, req)
		return
	}
	response.SuccessWithMessage(w, "Leave request updated", leaveViews(store.Requests()))
}

// CancelRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	store := instance(r).Leave
	if !store.CancelRequest(r.Context(), chi.URLParam(r, "id")) {
		actionFailed(w, r, store, nil)
		return
	}
	response.SuccessWithMessage(w, "Leave request cancelled", leaveViews(store.Requests()))
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	status := leave.Status(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		response.BadRequest(w, "Invalid status filter", map[string]string{"status": "status must be PENDING, APPROVED or REJECTED"})
		return
	}

	store := instance(r).Leave
	if !store.FetchAllRequests(r.Context(), status) {
		actionFailed(w, r, store, nil)
		return
	}
	response.Success(w, leaveViews(store.Requests()))
}

// UpdateStatus implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var update leave.StatusUpdate
	if !decode(w, r, "UpdateStatus", &update) {
		return
	}

	store := instance(r).Leave
	if !store.UpdateStatus(r.Context(), chi.URLParam(r, "id"), update) {
		actionFailed(w, r, store, update)
		return
	}
	response.SuccessWithMessage(w, "Leave request "+string(update.Status), leaveViews(store.Requests()))
}
