package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersister struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	saves   int
	deletes int
	fail    error
}

func newMemPersister() *memPersister {
	return &memPersister{blobs: map[string][]byte{}}
}

func (m *memPersister) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return blob, nil
}

func (m *memPersister) Save(ctx context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.blobs[key] = append([]byte{}, blob...)
	m.saves++
	return nil
}

func (m *memPersister) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	delete(m.blobs, key)
	m.deletes++
	return nil
}

// saveOnly hides Delete, leaving a Persister that can only overwrite.
type saveOnly struct {
	p *memPersister
}

func (s saveOnly) Load(ctx context.Context, key string) ([]byte, error) {
	return s.p.Load(ctx, key)
}

func (s saveOnly) Save(ctx context.Context, key string, blob []byte) error {
	return s.p.Save(ctx, key, blob)
}

func strPtr(s string) *string { return &s }

func testUser(role user.Role) user.User {
	return user.User{ID: "u1", Email: "alice@example.com", Name: "Alice", Role: role, CompanyID: strPtr("c1")}
}

func testCompany() *company.Company {
	return &company.Company{ID: "c1", PublicID: "pub-c1", Name: "Acme"}
}

// ===== LOGIN / LOGOUT =====

func TestStore_LoginSetsAuthenticated(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	s := New(p)
	s.SetError("previous failure")

	// Act
	err := s.Login(ctx, testUser(user.RoleEmployee), testCompany(), "tok-1")

	// Assert
	require.NoError(t, err)
	st := s.Snapshot()
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, "u1", st.User.ID)
	assert.Equal(t, "pub-c1", s.CompanyPublicID())
	assert.Equal(t, "tok-1", s.Token())
	assert.Empty(t, s.Error())
	assert.Equal(t, 1, p.saves)
}

func TestStore_LoginWithoutTokenIsNotAuthenticated(t *testing.T) {
	s := New(nil)

	require.NoError(t, s.Login(context.Background(), testUser(user.RoleEmployee), nil, ""))

	st := s.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.User)
}

func TestStore_LogoutClearsEverything(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	s := New(p)
	require.NoError(t, s.Login(ctx, testUser(user.RoleAdmin), testCompany(), "tok-1"))

	// Act
	require.NoError(t, s.Logout(ctx))
	require.NoError(t, s.Logout(ctx))

	// Assert
	assert.Equal(t, State{}, s.Snapshot())
	assert.Empty(t, s.Token())
	assert.Empty(t, s.CompanyPublicID())

	restored := New(p)
	require.NoError(t, restored.Rehydrate(ctx))
	assert.Equal(t, State{}, restored.Snapshot())
}

func TestStore_LogoutRemovesPersistedBlob(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	s := New(p)
	require.NoError(t, s.Login(ctx, testUser(user.RoleAdmin), testCompany(), "tok-1"))
	require.Contains(t, p.blobs, DefaultNamespace)

	require.NoError(t, s.Logout(ctx))

	assert.NotContains(t, p.blobs, DefaultNamespace)
	assert.Equal(t, 1, p.deletes)
	assert.Equal(t, 1, p.saves)
}

func TestStore_LogoutWithoutDeleterWritesEmptyState(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	s := New(saveOnly{p: p})
	require.NoError(t, s.Login(ctx, testUser(user.RoleAdmin), testCompany(), "tok-1"))

	require.NoError(t, s.Logout(ctx))

	assert.Zero(t, p.deletes)
	assert.JSONEq(t, `{"user":null,"company":null,"isAuthenticated":false}`, string(p.blobs[DefaultNamespace]))
}

func TestStore_SwitchCompanyWhileLoggedOutIsNoop(t *testing.T) {
	ctx := context.Background()
	s := New(nil)

	require.NoError(t, s.SwitchCompany(ctx, testCompany()))

	assert.Empty(t, s.CompanyPublicID())
	assert.Equal(t, State{}, s.Snapshot())
}

func TestStore_SwitchCompanyKeepsUser(t *testing.T) {
	ctx := context.Background()
	s := New(newMemPersister())
	require.NoError(t, s.Login(ctx, testUser(user.RoleSuperAdmin), testCompany(), "tok-1"))

	require.NoError(t, s.SwitchCompany(ctx, &company.Company{ID: "c2", PublicID: "pub-c2", Name: "Acme"}))

	st := s.Snapshot()
	assert.Equal(t, "pub-c2", s.CompanyPublicID())
	assert.Equal(t, "u1", st.User.ID)
	assert.Equal(t, "tok-1", st.Token)
}

func TestStore_UpdateUserIgnoredWhenLoggedOut(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	s := New(p)

	require.NoError(t, s.UpdateUser(ctx, testUser(user.RoleEmployee)))

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, 0, p.saves)
}

func TestStore_PersistFailureKeepsMemoryState(t *testing.T) {
	p := newMemPersister()
	p.fail = errors.New("disk full")
	s := New(p)

	err := s.Login(context.Background(), testUser(user.RoleEmployee), nil, "tok-1")

	assert.Error(t, err)
	assert.True(t, s.IsAuthenticated())
}

// ===== CAPABILITIES =====

func TestStore_IsSuperAdmin(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	assert.False(t, s.IsSuperAdmin())

	require.NoError(t, s.Login(ctx, testUser(user.RoleAdmin), nil, "tok"))
	assert.False(t, s.IsSuperAdmin())
	assert.True(t, s.Can(user.PermissionAdminPanel))
	assert.False(t, s.Can(user.PermissionCompanySwitch))

	require.NoError(t, s.Login(ctx, testUser(user.RoleSuperAdmin), nil, "tok"))
	assert.True(t, s.IsSuperAdmin())
	assert.True(t, s.Can(user.PermissionCompanySwitch))
}

// ===== PERSISTENCE =====

func TestStore_RehydrateRestoresPersistedState(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	first := New(p, WithKey("auth-storage:abc"))
	require.NoError(t, first.Login(ctx, testUser(user.RoleEmployee), testCompany(), "tok-1"))

	second := New(p, WithKey("auth-storage:abc"))
	require.NoError(t, second.Rehydrate(ctx))

	assert.Equal(t, first.Snapshot(), second.Snapshot())

	other := New(p, WithKey("auth-storage:other"))
	require.NoError(t, other.Rehydrate(ctx))
	assert.False(t, other.IsAuthenticated())
}

func TestStore_RehydrateDiscardsInconsistentBlob(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	p.blobs[DefaultNamespace] = []byte(`{"user":null,"token":"tok","isAuthenticated":true}`)

	s := New(p)
	require.NoError(t, s.Rehydrate(ctx))
	assert.False(t, s.IsAuthenticated())

	p.blobs[DefaultNamespace] = []byte(`not json`)
	require.NoError(t, s.Rehydrate(ctx))
	assert.Equal(t, State{}, s.Snapshot())
}

func TestStore_RehydrateDiscardsLoggedOutBlobWithCompany(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	p.blobs[DefaultNamespace] = []byte(`{"user":null,"company":{"id":"c1","publicId":"pub-c1","name":"Acme"},"isAuthenticated":false}`)

	s := New(p)
	require.NoError(t, s.Rehydrate(ctx))

	assert.Equal(t, State{}, s.Snapshot())
	assert.Empty(t, s.CompanyPublicID())
}

func TestStore_SubscribeReceivesMutations(t *testing.T) {
	ctx := context.Background()
	s := New(nil)

	var seen []bool
	s.Subscribe(func(st State) { seen = append(seen, st.IsAuthenticated) })

	require.NoError(t, s.Login(ctx, testUser(user.RoleEmployee), nil, "tok"))
	require.NoError(t, s.Logout(ctx))

	assert.Equal(t, []bool{true, false}, seen)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	s := New(nil)
	require.NoError(t, s.Login(ctx, testUser(user.RoleEmployee), testCompany(), "tok"))

	st := s.Snapshot()
	st.User.Name = "Mallory"
	st.Company.PublicID = "pub-evil"

	assert.Equal(t, "Alice", s.Snapshot().User.Name)
	assert.Equal(t, "pub-c1", s.CompanyPublicID())
}
