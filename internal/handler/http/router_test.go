package http

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hris-console-go/internal/app"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-console-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-console-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-console-go/internal/store/storetest"
)

const cookieSecret = "console-cookie-secret"

type console struct {
	backend  *storetest.Backend
	registry *app.Registry
	events   *sse.Hub
	server   *httptest.Server
	client   *http.Client
}

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
}

func newConsole(t *testing.T) *console {
	t.Helper()

	c := &console{backend: storetest.NewBackend(t)}
	c.events = sse.NewHub()
	c.registry = app.NewRegistry(nil, app.Options{BaseURL: c.backend.Server.URL, Events: c.events})
	sessions := middleware.NewSessions(cookieSecret, c.registry, time.Hour, false)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	c.server = httptest.NewServer(NewRouter(RouterConfig{Logger: logger}, sessions, NewHandlers(c.events)))
	t.Cleanup(c.server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	c.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return c
}

func (c *console) do(t *testing.T, method, path string, body any) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp, env
}

// serveLogin answers the backend login with u and a token signed by ja.
func (c *console) serveLogin(t *testing.T, u user.User, ja *jwtauth.JWTAuth) {
	_, token, err := ja.Encode(map[string]interface{}{"user_id": u.ID})
	require.NoError(t, err)

	c.backend.Router.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginRequest
		storetest.Decode(t, r, &req)
		if req.Password != "Secret123" {
			storetest.Error(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		storetest.Success(w, auth.AuthResult{User: u, Token: token})
	})
}

func (c *console) login(t *testing.T, u user.User) {
	t.Helper()
	c.serveLogin(t, u, c.backend.Auth)
	resp, env := c.do(t, http.MethodPost, "/login", auth.LoginRequest{Email: u.Email, Password: "Secret123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Error)
}

func employeeUser() user.User {
	return user.User{ID: "u1", Email: "alice@example.com", Name: "Alice", Role: user.RoleEmployee}
}

func adminUser() user.User {
	return user.User{ID: "u2", Email: "bob@example.com", Name: "Bob", Role: user.RoleAdmin}
}

// ===== GUARDS =====

func TestGuard_UnauthenticatedRedirectsToLogin(t *testing.T) {
	c := newConsole(t)

	resp, _ := c.do(t, http.MethodGet, "/dashboard", nil)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?from=%2Fdashboard", resp.Header.Get("Location"))

	var cookie *http.Cookie
	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.SessionCookie {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
}

func TestGuard_EmployeeIsSentToDashboard(t *testing.T) {
	c := newConsole(t)
	c.login(t, employeeUser())

	for _, path := range []string{"/admin/users", "/super-admin/companies"} {
		resp, _ := c.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/dashboard", resp.Header.Get("Location"), path)
	}
}

func TestGuard_AdminCannotOpenSuperAdminPages(t *testing.T) {
	c := newConsole(t)
	c.login(t, adminUser())

	resp, _ := c.do(t, http.MethodPost, "/super-admin/super-admins", map[string]string{"name": "Eve"})

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

// ===== LOGIN =====

func TestLogin_ReturnsToPreservedOrigin(t *testing.T) {
	c := newConsole(t)
	u := employeeUser()
	c.serveLogin(t, u, c.backend.Auth)

	resp, env := c.do(t, http.MethodPost, "/login?from=%2Fleave", auth.LoginRequest{Email: u.Email, Password: "Secret123"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view AuthView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "/leave", view.Redirect)
	require.NotNil(t, view.User)
	assert.Equal(t, "u1", view.User.ID)
	assert.Contains(t, view.Capabilities, user.PermissionAttendanceClock)
	assert.NotContains(t, view.Capabilities, user.PermissionAdminPanel)

	// An authenticated browser skips the login page
	resp, _ = c.do(t, http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestLogin_FailureEchoesEmailOnly(t *testing.T) {
	c := newConsole(t)
	u := employeeUser()
	c.serveLogin(t, u, c.backend.Auth)

	resp, env := c.do(t, http.MethodPost, "/login", auth.LoginRequest{Email: u.Email, Password: "wrong"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Invalid email or password", env.Error.Message)
	assert.Equal(t, map[string]any{"email": u.Email}, env.Error.Values)
}

func TestLogin_ValidationReportsFields(t *testing.T) {
	c := newConsole(t)

	resp, env := c.do(t, http.MethodPost, "/login", map[string]string{"email": "not-an-email"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "email")
	assert.Contains(t, env.Error.Details, "password")
}

func TestRegister_PasswordMismatchNeverReachesBackend(t *testing.T) {
	c := newConsole(t)
	called := false
	c.backend.Router.Post("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	resp, env := c.do(t, http.MethodPost, "/register", registerForm{
		Name: "Alice", Email: "alice@example.com", Password: "Secret123", ConfirmPassword: "Secret124",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "confirmPassword")
	assert.False(t, called)
}

// ===== DASHBOARD =====

func TestDashboard_LoadsSectionsConcurrently(t *testing.T) {
	c := newConsole(t)
	clockIn := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	c.backend.Protected(func(r chi.Router) {
		r.Get("/api/attendance/today", func(w http.ResponseWriter, r *http.Request) {
			storetest.Success(w, attendance.TodayStatus{
				Record: &attendance.Record{ID: "a1", UserID: "u1", Date: "2026-10-14", ClockInTime: clockIn},
			})
		})
		r.Get("/api/leave/my", func(w http.ResponseWriter, r *http.Request) {
			storetest.Success(w, []leave.Request{
				{ID: "l1", StartDate: "2026-10-20", EndDate: "2026-10-22", LeaveType: leave.TypePaid, Status: leave.StatusPending},
				{ID: "l2", StartDate: "2026-09-01", EndDate: "2026-09-01", LeaveType: leave.TypeSick, Status: leave.StatusApproved},
			})
		})
	})
	c.login(t, employeeUser())

	resp, env := c.do(t, http.MethodGet, "/dashboard", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view DashboardView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.True(t, view.Today.IsClockedIn)
	assert.False(t, view.Today.IsClockedOut)
	assert.Equal(t, "09:00", view.Today.ClockIn)
	assert.Equal(t, attendance.Placeholder, view.Today.ClockOut)
	assert.Equal(t, attendance.Placeholder, view.Today.WorkingHours)
	require.Len(t, view.Leave, 2)
	assert.Equal(t, 3, view.Leave[0].Days)
	assert.True(t, view.Leave[0].Editable)
	assert.False(t, view.Leave[1].Editable)
	assert.False(t, view.Leave[0].Decided)
	assert.True(t, view.Leave[1].Decided)
	assert.Equal(t, 1, view.PendingLeave)
	assert.Empty(t, view.Errors)
}

func TestAttendance_AdminListTotalsClosedRecords(t *testing.T) {
	c := newConsole(t)
	in := time.Date(2026, 10, 13, 9, 0, 0, 0, time.UTC)
	out := in.Add(7*time.Hour + 45*time.Minute)
	c.backend.Protected(func(r chi.Router) {
		r.Get("/api/attendance/all", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "u1", r.URL.Query().Get("userId"))
			storetest.Success(w, []attendance.Record{
				{ID: "a1", UserID: "u1", Date: "2026-10-13", ClockInTime: in, ClockOutTime: &out},
				{ID: "a2", UserID: "u1", Date: "2026-10-14", ClockInTime: in.Add(24 * time.Hour)},
			})
		})
	})
	c.login(t, adminUser())

	resp, env := c.do(t, http.MethodGet, "/admin/attendance?userId=u1", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view AttendanceListView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.Len(t, view.Records, 2)
	assert.Equal(t, "07:45", view.Records[0].WorkingHours)
	assert.Equal(t, attendance.Placeholder, view.Records[1].WorkingHours)
	assert.Equal(t, "07:45", view.TotalWorkingHours)
}

func TestDashboard_PartialFailureKeepsOtherSections(t *testing.T) {
	c := newConsole(t)
	c.backend.Protected(func(r chi.Router) {
		r.Get("/api/attendance/today", func(w http.ResponseWriter, r *http.Request) {
			storetest.Error(w, http.StatusInternalServerError, "Attendance service unavailable")
		})
		r.Get("/api/leave/my", func(w http.ResponseWriter, r *http.Request) {
			storetest.Success(w, []leave.Request{})
		})
	})
	c.login(t, employeeUser())

	resp, env := c.do(t, http.MethodGet, "/dashboard", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view DashboardView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "Attendance service unavailable", view.Errors["today"])
	assert.NotContains(t, view.Errors, "leave")
}

func TestBackend401_LogsTheBrowserOut(t *testing.T) {
	c := newConsole(t)
	c.backend.Protected(func(r chi.Router) {
		r.Get("/api/leave/my", func(w http.ResponseWriter, r *http.Request) {
			storetest.Success(w, []leave.Request{})
		})
	})
	// Token signed with a key the backend does not accept
	c.serveLogin(t, employeeUser(), jwtauth.New("HS256", []byte("rotated-secret"), nil))
	resp, _ := c.do(t, http.MethodPost, "/login", auth.LoginRequest{Email: "alice@example.com", Password: "Secret123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := c.do(t, http.MethodGet, "/leave", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Token expired", env.Error.Message)

	resp, _ = c.do(t, http.MethodGet, "/leave", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login?from=%2Fleave", resp.Header.Get("Location"))
}

// ===== LEAVE =====

func TestLeave_CreateFailureEchoesForm(t *testing.T) {
	c := newConsole(t)
	c.login(t, employeeUser())

	form := leave.CreateRequest{StartDate: "2026-10-22", EndDate: "2026-10-20", LeaveType: leave.TypePaid, Reason: "Trip"}
	resp, env := c.do(t, http.MethodPost, "/leave", form)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "endDate")
	values, ok := env.Error.Values.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Trip", values["reason"])
	assert.Equal(t, "2026-10-22", values["startDate"])
}

func TestLeave_ApproveAsAdmin(t *testing.T) {
	c := newConsole(t)
	c.backend.Protected(func(r chi.Router) {
		r.Get("/api/leave", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "PENDING", r.URL.Query().Get("status"))
			storetest.Success(w, []leave.Request{{ID: "l1", StartDate: "2026-10-20", EndDate: "2026-10-20", Status: leave.StatusPending}})
		})
		r.Put("/api/leave/{id}/status", func(w http.ResponseWriter, r *http.Request) {
			var update leave.StatusUpdate
			storetest.Decode(t, r, &update)
			storetest.Success(w, leave.Request{ID: chi.URLParam(r, "id"), StartDate: "2026-10-20", EndDate: "2026-10-20", Status: update.Status})
		})
	})
	c.login(t, adminUser())

	resp, _ := c.do(t, http.MethodGet, "/admin/leave?status=PENDING", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := c.do(t, http.MethodPost, "/admin/leave/l1/status", leave.StatusUpdate{Status: leave.StatusApproved})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var views []LeaveView
	require.NoError(t, json.Unmarshal(env.Data, &views))
	require.Len(t, views, 1)
	assert.Equal(t, leave.StatusApproved, views[0].Status)

	// Approved is final, the second decision never leaves the console
	resp, env = c.do(t, http.MethodPost, "/admin/leave/l1/status", leave.StatusUpdate{Status: leave.StatusRejected})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "This leave request is already APPROVED.", env.Error.Message)
}

func TestLeave_InvalidStatusFilter(t *testing.T) {
	c := newConsole(t)
	c.login(t, adminUser())

	resp, _ := c.do(t, http.MethodGet, "/admin/leave?status=CANCELLED", nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ===== REPORTS =====

func TestExport_RedirectsToBackendFile(t *testing.T) {
	c := newConsole(t)
	c.login(t, adminUser())
	year := strconv.Itoa(time.Now().Year())

	resp, _ := c.do(t, http.MethodGet, "/admin/reports/export?type=leave&format=csv&year="+year, nil)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, c.backend.Server.URL+"/api/reports/export?format=csv&type=leave&year="+year, resp.Header.Get("Location"))
}

func TestExport_UnsupportedFormat(t *testing.T) {
	c := newConsole(t)
	c.login(t, adminUser())

	resp, env := c.do(t, http.MethodGet, "/admin/reports/export?type=leave&format=docx&year=2026", nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
}

func TestReport_ComplianceWorkbook(t *testing.T) {
	c := newConsole(t)
	c.backend.Protected(func(r chi.Router) {
		r.Get("/api/reports/compliance", func(w http.ResponseWriter, r *http.Request) {
			storetest.Success(w, map[string]any{
				"period":           map[string]any{"year": 2026, "month": 9},
				"companySummary":   map[string]any{"totalEmployees": 1},
				"complianceReport": []map[string]any{{"userId": "u1", "userName": "Alice"}},
			})
		})
	})
	c.login(t, adminUser())

	resp, _ := c.do(t, http.MethodGet, "/admin/reports/compliance?year=2026&month=9&format=xlsx", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, contentTypes["xlsx"], resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "compliance-2026-09.xlsx")
}

// ===== SESSIONS =====

func TestSessions_TamperedCookieStartsNewSession(t *testing.T) {
	c := newConsole(t)

	req, err := http.NewRequest(http.MethodGet, c.server.URL+"/login", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "forged.token.value"})
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	found := false
	for _, ck := range resp.Cookies() {
		if ck.Name == middleware.SessionCookie {
			found = true
			assert.NotEqual(t, "forged.token.value", ck.Value)
		}
	}
	assert.True(t, found)
}

func TestSessions_BrowsersDoNotShareInstances(t *testing.T) {
	c := newConsole(t)
	c.login(t, employeeUser())

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	c.client.Jar = jar

	resp, _ := c.do(t, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, 2, c.registry.Len())
}

// ===== EVENTS =====

// nextEvent reads one server-sent event and returns its name and data.
func nextEvent(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()
	var name, data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			return name, data
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestEvents_StreamSessionChanges(t *testing.T) {
	c := newConsole(t)
	c.login(t, employeeUser())

	resp, err := c.client.Get(c.server.URL + "/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	stream := bufio.NewReader(resp.Body)

	name, data := nextEvent(t, stream)
	assert.Equal(t, app.SessionEventName, name)
	assert.JSONEq(t, `{"isAuthenticated":true,"userId":"u1"}`, data)
	assert.NotContains(t, data, "token")
	assert.Equal(t, 1, c.events.TotalSubscribers())

	logout, _ := c.do(t, http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusOK, logout.StatusCode)

	name, data = nextEvent(t, stream)
	assert.Equal(t, app.SessionEventName, name)
	assert.JSONEq(t, `{"isAuthenticated":false}`, data)
}
