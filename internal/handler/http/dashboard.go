package http

import (
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-console-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns today status, own leave requests and capabilities
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct{}

func NewDashboardHandler() DashboardHandler {
	return &dashboardHandlerImpl{}
}

type DashboardView struct {
	User         *user.User        `json:"user"`
	Company      *company.Company  `json:"company"`
	Capabilities []user.Permission `json:"capabilities"`
	Today        TodayView         `json:"today"`
	Leave        []LeaveView       `json:"leave"`
	PendingLeave int               `json:"pendingLeave"`

	// Errors holds the message of each section that failed to load
	Errors map[string]string `json:"errors,omitempty"`
}

// GetDashboard handles GET /dashboard. Sections load concurrently and a
// failed section does not hide the others.
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	inst := instance(r)
	ctx := r.Context()

	var g errgroup.Group
	g.Go(func() error {
		if !inst.Attendance.FetchToday(ctx) {
			return errors.New(inst.Attendance.Error())
		}
		return nil
	})
	g.Go(func() error {
		if !inst.Leave.FetchMyRequests(ctx) {
			return errors.New(inst.Leave.Error())
		}
		return nil
	})
	err := g.Wait()

	st := inst.Session.Snapshot()
	if !st.IsAuthenticated {
		msg := "Session expired"
		if err != nil {
			msg = err.Error()
		}
		response.Unauthorized(w, msg)
		return
	}

	requests := inst.Leave.Requests()
	view := DashboardView{
		User:         st.User,
		Company:      st.Company,
		Capabilities: user.Capabilities(st.User.Role),
		Today:        todayView(inst.Attendance.Today()),
		Leave:        leaveViews(requests),
	}
	for _, req := range requests {
		if req.Status == leave.StatusPending {
			view.PendingLeave++
		}
	}
	if msg := inst.Attendance.Error(); msg != "" {
		view.Errors = map[string]string{"today": msg}
	}
	if msg := inst.Leave.Error(); msg != "" {
		if view.Errors == nil {
			view.Errors = map[string]string{}
		}
		view.Errors["leave"] = msg
	}

	response.Success(w, view)
}
