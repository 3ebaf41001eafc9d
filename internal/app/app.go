// Package app wires one client: a session, the API gateway bound to it and
// every feature store.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-console-go/internal/session"
	adminStore "github.com/cmlabs-hris/hris-console-go/internal/store/admin"
	attendanceStore "github.com/cmlabs-hris/hris-console-go/internal/store/attendance"
	authStore "github.com/cmlabs-hris/hris-console-go/internal/store/auth"
	companyStore "github.com/cmlabs-hris/hris-console-go/internal/store/company"
	leaveStore "github.com/cmlabs-hris/hris-console-go/internal/store/leave"
	"github.com/cmlabs-hris/hris-console-go/internal/store/lifecycle"
	reportStore "github.com/cmlabs-hris/hris-console-go/internal/store/report"
)

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Locale     string
	Logger     *slog.Logger
	HTTPClient *http.Client

	// Events receives a "session" event after every session mutation of a
	// registry instance, keyed by the session's persistence key.
	Events *sse.Hub
}

type Instance struct {
	Session    *session.Store
	Client     *apiclient.Client
	Texts      *i18n.Localizer
	Auth       auth.Store
	Attendance attendance.Store
	Leave      leave.Store
	Report     report.Store
	Company    company.Store
	Admin      user.AdminStore
}

// NewInstance builds a client whose session is persisted under key. The
// session is not rehydrated here.
func NewInstance(persister session.Persister, key string, opts Options) (*Instance, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sess := session.New(persister, session.WithKey(key), session.WithLogger(logger))

	clientOpts := []apiclient.Option{apiclient.WithLogger(logger)}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, apiclient.WithHTTPClient(opts.HTTPClient))
	}
	if opts.Timeout > 0 {
		clientOpts = append(clientOpts, apiclient.WithTimeout(opts.Timeout))
	}
	client, err := apiclient.New(opts.BaseURL, sess, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	texts := i18n.New(opts.Locale)
	tracker := func(name string) *lifecycle.Tracker {
		return lifecycle.New(name, texts, logger)
	}

	return &Instance{
		Session:    sess,
		Client:     client,
		Texts:      texts,
		Auth:       authStore.NewAuthStore(client, sess, tracker("auth")),
		Attendance: attendanceStore.NewAttendanceStore(client, tracker("attendance")),
		Leave:      leaveStore.NewLeaveStore(client, tracker("leave")),
		Report:     reportStore.NewReportStore(client, tracker("report")),
		Company:    companyStore.NewCompanyStore(client, sess, tracker("company")),
		Admin:      adminStore.NewAdminStore(client, sess, tracker("admin")),
	}, nil
}

// Start builds an instance and rehydrates its session once.
func Start(ctx context.Context, persister session.Persister, key string, opts Options) (*Instance, error) {
	inst, err := NewInstance(persister, key, opts)
	if err != nil {
		return nil, err
	}
	if err := inst.Session.Rehydrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to rehydrate session: %w", err)
	}
	return inst, nil
}
