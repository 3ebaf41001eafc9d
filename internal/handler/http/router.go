package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/cmlabs-hris/hris-console-go/internal/guard"
	"github.com/cmlabs-hris/hris-console-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/sse"
)

const AppName = "hris-console"

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

// Handlers groups the page handlers mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	Dashboard  DashboardHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Report     ReportHandler
	Company    CompanyHandler
	Admin      AdminHandler
	Event      EventHandler
}

func NewHandlers(events *sse.Hub) Handlers {
	return Handlers{
		Auth:       NewAuthHandler(),
		Dashboard:  NewDashboardHandler(),
		Attendance: NewAttendanceHandler(),
		Leave:      NewLeaveHandler(),
		Report:     NewReportHandler(),
		Company:    NewCompanyHandler(),
		Admin:      NewAdminHandler(),
		Event:      NewEventHandler(events),
	}
}

// NewLogger builds the JSON logger of the console in the ECS schema.
func NewLogger(env, version string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", AppName),
		slog.String("version", version),
		slog.String("env", env),
	)
}

func NewRouter(cfg RouterConfig, sessions *middleware.Sessions, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Location"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Group(func(r chi.Router) {
		r.Use(sessions.Handler)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, guard.DashboardPath, http.StatusSeeOther)
		})

		// Public pages
		r.Get("/login", h.Auth.LoginPage)
		r.Post("/login", h.Auth.Login)
		r.Post("/register", h.Auth.Register)
		r.Get("/verify-email", h.Auth.VerifyEmail)
		r.Post("/logout", h.Auth.Logout)
		r.Get("/events", h.Event.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(guard.Middleware(middleware.State, guard.RequireAuth))

			r.Get("/dashboard", h.Dashboard.GetDashboard)

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", h.Auth.Profile)
				r.Put("/", h.Auth.UpdateProfile)
				r.Put("/password", h.Auth.ChangePassword)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.GetMyAttendance)
				r.Get("/today", h.Attendance.Today)
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/", h.Leave.GetMyRequests)
				r.Post("/", h.Leave.CreateRequest)
				r.Put("/{id}", h.Leave.UpdateRequest)
				r.Delete("/{id}", h.Leave.CancelRequest)
			})
		})

		// Admin only
		r.Route("/admin", func(r chi.Router) {
			r.Use(guard.Middleware(middleware.State, guard.AdminProtected))

			r.Get("/attendance", h.Attendance.List)

			r.Route("/leave", func(r chi.Router) {
				r.Get("/", h.Leave.ListRequests)
				r.Post("/{id}/status", h.Leave.UpdateStatus)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.Admin.ListUsers)
				r.Post("/", h.Admin.CreateUser)
				r.Put("/{id}", h.Admin.UpdateUser)
				r.Delete("/{id}", h.Admin.DeleteUser)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/export", h.Report.Export)
				r.Get("/export/download", h.Report.Download)
				r.Get("/{kind}", h.Report.GetReport)
			})
		})

		// Super admin only
		r.Route("/super-admin", func(r chi.Router) {
			r.Use(guard.Middleware(middleware.State, guard.SuperAdminProtected))

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", h.Company.List)
				r.Post("/", h.Company.Create)
				r.Get("/{id}", h.Company.GetByID)
				r.Put("/{id}", h.Company.Update)
				r.Delete("/{id}", h.Company.Delete)
				r.Post("/{id}/switch", h.Company.Switch)
			})

			r.Post("/users/{id}/company", h.Admin.AssignCompany)
			r.Post("/super-admins", h.Admin.CreateSuperAdmin)
		})
	})

	return r
}
