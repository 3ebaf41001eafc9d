package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/storage"
)

// DefaultNamespace is the persistence key of the session blob.
const DefaultNamespace = "auth-storage"

// ErrNotFound is returned by a Persister that holds no blob for a key.
var ErrNotFound = storage.ErrNotFound

// Persister stores the serialised session. storage.BlobStorage implementations
// satisfy it.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
}

// Deleter is implemented by Persisters that can drop a blob. A logged-out
// session is then removed instead of written.
type Deleter interface {
	Delete(ctx context.Context, key string) error
}

// State is the client-held authentication context.
// IsAuthenticated == (User != nil && Token != "") after every mutation, and a
// logged-out state carries no company.
type State struct {
	User            *user.User       `json:"user"`
	Company         *company.Company `json:"company"`
	Token           string           `json:"token,omitempty"`
	IsAuthenticated bool             `json:"isAuthenticated"`
}

func (s State) consistent() bool {
	if s.IsAuthenticated != (s.User != nil && s.Token != "") {
		return false
	}
	return s.IsAuthenticated || s.Company == nil
}

// Store holds one session. Every mutation is a single assignment under the
// lock followed by a write of the whole state to the Persister.
type Store struct {
	mu        sync.RWMutex
	saveMu    sync.Mutex
	state     State
	errMsg    string
	persister Persister
	key       string
	logger    *slog.Logger
	listeners []func(State)
}

type Option func(*Store)

// WithKey overrides the persistence key, used to keep one blob per browser.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func New(persister Persister, opts ...Option) *Store {
	s := &Store{
		persister: persister,
		key:       DefaultNamespace,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the persistence key of this session.
func (s *Store) Key() string {
	return s.key
}

// Rehydrate replaces the in-memory state with the persisted blob. A missing
// blob leaves the store logged out; an unreadable or inconsistent blob is
// discarded. No token expiry is checked here.
func (s *Store) Rehydrate(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	blob, err := s.persister.Load(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if errors.Is(err, storage.ErrSealBroken) {
		s.logger.Warn("discarding sealed session blob", "key", s.key)
		s.set(State{})
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session %s: %w", s.key, err)
	}

	var st State
	if err := json.Unmarshal(blob, &st); err != nil || !st.consistent() {
		s.logger.Warn("discarding unreadable session blob", "key", s.key, "error", err)
		s.set(State{})
		return nil
	}

	s.set(st)
	return nil
}

// Login overwrites the session unconditionally and clears the error.
func (s *Store) Login(ctx context.Context, u user.User, c *company.Company, token string) error {
	s.mu.Lock()
	s.state = State{
		User:            cloneUser(&u),
		Company:         cloneCompany(c),
		Token:           token,
		IsAuthenticated: token != "",
	}
	if token == "" {
		s.state.User = nil
		s.state.Company = nil
	}
	s.errMsg = ""
	s.mu.Unlock()

	return s.commit(ctx)
}

// Logout clears user, company and token. Clearing an empty session is a no-op
// apart from the persistence write, which removes the blob when the
// Persister is a Deleter.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()

	return s.commit(ctx)
}

// SwitchCompany replaces the selected company only. The store performs no role
// check; see company.Store.SwitchCompany for the capability gate. A logged-out
// session keeps no company, so switching it is a no-op.
func (s *Store) SwitchCompany(ctx context.Context, c *company.Company) error {
	s.mu.Lock()
	if !s.state.IsAuthenticated {
		s.mu.Unlock()
		return nil
	}
	s.state.Company = cloneCompany(c)
	s.mu.Unlock()

	return s.commit(ctx)
}

// UpdateUser replaces the cached user after a profile or admin update, keeping
// the token and company.
func (s *Store) UpdateUser(ctx context.Context, u user.User) error {
	s.mu.Lock()
	if !s.state.IsAuthenticated {
		s.mu.Unlock()
		return nil
	}
	s.state.User = cloneUser(&u)
	s.mu.Unlock()

	return s.commit(ctx)
}

func (s *Store) SetError(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}

func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

func (s *Store) ClearError() {
	s.SetError("")
}

// Snapshot returns a copy of the state safe to read without the lock.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		User:            cloneUser(s.state.User),
		Company:         cloneCompany(s.state.Company),
		Token:           s.state.Token,
		IsAuthenticated: s.state.IsAuthenticated,
	}
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

func (s *Store) IsSuperAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User.IsSuperAdmin()
}

// Can resolves a capability of the current user.
func (s *Store) Can(permission user.Permission) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated && s.state.User.Can(permission)
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Store) CompanyPublicID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Company == nil {
		return ""
	}
	return s.state.Company.PublicID
}

// Subscribe registers fn to be called with the new state after each mutation.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) set(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	s.notify()
}

func (s *Store) commit(ctx context.Context) error {
	s.notify()

	if s.persister == nil {
		return nil
	}

	// Snapshot and write under one lock so the blob never lags a newer write.
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	st := s.Snapshot()
	if d, ok := s.persister.(Deleter); ok && !st.IsAuthenticated {
		if err := d.Delete(ctx, s.key); err != nil {
			return fmt.Errorf("delete session %s: %w", s.key, err)
		}
		return nil
	}
	blob, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.persister.Save(ctx, s.key, blob); err != nil {
		return fmt.Errorf("save session %s: %w", s.key, err)
	}
	return nil
}

func (s *Store) notify() {
	s.mu.RLock()
	listeners := append([]func(State){}, s.listeners...)
	s.mu.RUnlock()

	if len(listeners) == 0 {
		return
	}
	st := s.Snapshot()
	for _, fn := range listeners {
		fn(st)
	}
}

func cloneUser(u *user.User) *user.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.CompanyID != nil {
		id := *u.CompanyID
		c.CompanyID = &id
	}
	return &c
}

func cloneCompany(c *company.Company) *company.Company {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
