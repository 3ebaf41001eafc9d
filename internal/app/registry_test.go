package app

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/storage"
)

func newRegistry(t *testing.T) (*Registry, *storage.LocalStorage) {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewRegistry(files, Options{BaseURL: "http://127.0.0.1:1", Locale: "en"}), files
}

func TestRegistry_OneInstancePerSession(t *testing.T) {
	reg, _ := newRegistry(t)
	ctx := context.Background()

	a1, err := reg.Get(ctx, "sid-a")
	require.NoError(t, err)
	a2, err := reg.Get(ctx, "sid-a")
	require.NoError(t, err)
	b, err := reg.Get(ctx, "sid-b")
	require.NoError(t, err)

	assert.Same(t, a1, a2)
	assert.NotSame(t, a1, b)
	assert.Equal(t, SessionKey("sid-a"), a1.Session.Key())
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_RehydratesAndEvictsOnLogout(t *testing.T) {
	reg, files := newRegistry(t)
	ctx := context.Background()

	// A previous process left a logged-in blob behind
	require.NoError(t, files.Save(ctx, SessionKey("sid-a"),
		[]byte(`{"user":{"id":"u1","email":"a@example.com","name":"A","role":"ADMIN"},"company":null,"token":"tok","isAuthenticated":true}`)))

	inst, err := reg.Get(ctx, "sid-a")
	require.NoError(t, err)
	assert.True(t, inst.Session.IsAuthenticated())
	assert.True(t, inst.Session.Can(user.PermissionAdminPanel))
	assert.Equal(t, "tok", inst.Session.Token())

	require.NoError(t, inst.Session.Logout(ctx))
	assert.Equal(t, 0, reg.Len())
	_, err = files.Load(ctx, SessionKey("sid-a"))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	fresh, err := reg.Get(ctx, "sid-a")
	require.NoError(t, err)
	assert.NotSame(t, inst, fresh)
	assert.False(t, fresh.Session.IsAuthenticated())
}

func TestRegistry_PublishesSessionEvents(t *testing.T) {
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	hub := sse.NewHub()
	reg := NewRegistry(files, Options{BaseURL: "http://127.0.0.1:1", Locale: "en", Events: hub})
	ctx := context.Background()

	events, cleanup := hub.Subscribe(SessionKey("sid-a"))
	defer cleanup()

	inst, err := reg.Get(ctx, "sid-a")
	require.NoError(t, err)
	require.NoError(t, inst.Session.Login(ctx, user.User{ID: "u1", Role: user.RoleEmployee}, nil, "tok"))
	require.NoError(t, inst.Session.Logout(ctx))

	require.Len(t, events, 2)
	in := <-events
	assert.Equal(t, SessionEventName, in.Event)
	assert.Equal(t, SessionEvent{IsAuthenticated: true, UserID: "u1"}, in.Data)
	out := <-events
	assert.Equal(t, SessionEvent{}, out.Data)
}

func TestRegistry_ConcurrentLogoutAlwaysEvicts(t *testing.T) {
	reg, _ := newRegistry(t)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		sid := fmt.Sprintf("sid-%d", i)
		var wg sync.WaitGroup
		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				inst, err := reg.Get(ctx, sid)
				if assert.NoError(t, err) {
					assert.NoError(t, inst.Session.Logout(ctx))
				}
			}()
		}
		wg.Wait()
	}

	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_Sweep(t *testing.T) {
	reg, _ := newRegistry(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	_, err := reg.Get(ctx, "old")
	require.NoError(t, err)
	now = now.Add(2 * time.Hour)
	_, err = reg.Get(ctx, "new")
	require.NoError(t, err)

	assert.Equal(t, 1, reg.Sweep(time.Hour))
	assert.Equal(t, 1, reg.Len())
}

func TestNewInstance_RejectsBadBaseURL(t *testing.T) {
	_, err := NewInstance(nil, "k", Options{BaseURL: "not a url"})
	assert.Error(t, err)
}
