package admin

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-console-go/internal/session"
	"github.com/cmlabs-hris/hris-console-go/internal/store/lifecycle"
)

// AdminStoreImpl manages users of the selected company, and across
// companies for a super admin.
type AdminStoreImpl struct {
	*lifecycle.Tracker
	client  *apiclient.Client
	session *session.Store

	mu         sync.RWMutex
	users      []user.User
	pagination *apiclient.Pagination
}

func NewAdminStore(client *apiclient.Client, sess *session.Store, tracker *lifecycle.Tracker) user.AdminStore {
	return &AdminStoreImpl{
		Tracker: tracker,
		client:  client,
		session: sess,
	}
}

func userPath(id string) string {
	return "/api/admin/users/" + url.PathEscape(id)
}

// FetchUsers implements user.AdminStore.
func (s *AdminStoreImpl) FetchUsers(ctx context.Context, filter user.ListFilter) bool {
	tk := s.Begin("users")

	resp, err := apiclient.Do[[]user.User](ctx, s.client, http.MethodGet, "/api/admin/users", nil, filter.Query())
	if err != nil {
		s.Fail(tk, err, i18n.FetchUsersFailed)
		return false
	}

	return s.Commit(tk, func() {
		s.mu.Lock()
		s.users = resp.Data
		s.pagination = resp.Pagination
		s.mu.Unlock()
	})
}

// CreateUser implements user.AdminStore.
func (s *AdminStoreImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.User, bool) {
	tk := s.Begin("createUser")

	if err := req.Validate(); err != nil {
		s.Fail(tk, err, i18n.CreateUserFailed)
		return user.User{}, false
	}
	if req.Role == user.RoleSuperAdmin && !s.session.Can(user.PermissionSuperAdminCreate) {
		s.Fail(tk, user.ErrSuperAdminRequired, i18n.Forbidden)
		return user.User{}, false
	}

	resp, err := apiclient.Do[user.User](ctx, s.client, http.MethodPost, "/api/admin/users", req, nil)
	if err != nil {
		s.Fail(tk, err, i18n.CreateUserFailed)
		return user.User{}, false
	}

	s.Commit(tk, func() { s.add(resp.Data) })
	return resp.Data, true
}

// UpdateUser implements user.AdminStore. Updating oneself also refreshes
// the session user.
func (s *AdminStoreImpl) UpdateUser(ctx context.Context, id string, req user.UpdateUserRequest) bool {
	tk := s.Begin("updateUser")

	if err := req.Validate(); err != nil {
		s.Fail(tk, err, i18n.UpdateUserFailed)
		return false
	}

	resp, err := apiclient.Do[user.User](ctx, s.client, http.MethodPut, userPath(id), req, nil)
	if err != nil {
		s.Fail(tk, err, i18n.UpdateUserFailed)
		return false
	}

	s.syncSelf(ctx, resp.Data)
	return s.Commit(tk, func() { s.replace(resp.Data) })
}

// DeleteUser implements user.AdminStore.
func (s *AdminStoreImpl) DeleteUser(ctx context.Context, id string) bool {
	tk := s.Begin("deleteUser")

	if _, err := apiclient.Do[any](ctx, s.client, http.MethodDelete, userPath(id), nil, nil); err != nil {
		s.Fail(tk, err, i18n.DeleteUserFailed)
		return false
	}

	return s.Commit(tk, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.users {
			if s.users[i].ID == id {
				s.users = append(s.users[:i:i], s.users[i+1:]...)
				return
			}
		}
	})
}

// AssignCompany implements user.AdminStore.
func (s *AdminStoreImpl) AssignCompany(ctx context.Context, id string, req user.AssignCompanyRequest) bool {
	tk := s.Begin("assignCompany")

	if !s.session.Can(user.PermissionCompanyAssign) {
		s.Fail(tk, user.ErrSuperAdminRequired, i18n.Forbidden)
		return false
	}
	if err := req.Validate(); err != nil {
		s.Fail(tk, err, i18n.AssignCompanyFailed)
		return false
	}

	resp, err := apiclient.Do[user.User](ctx, s.client, http.MethodPut, userPath(id)+"/company", req, nil)
	if err != nil {
		s.Fail(tk, err, i18n.AssignCompanyFailed)
		return false
	}

	s.syncSelf(ctx, resp.Data)
	return s.Commit(tk, func() { s.replace(resp.Data) })
}

// CreateSuperAdmin implements user.AdminStore.
func (s *AdminStoreImpl) CreateSuperAdmin(ctx context.Context, req user.CreateSuperAdminRequest) (user.User, bool) {
	tk := s.Begin("createSuperAdmin")

	if !s.session.Can(user.PermissionSuperAdminCreate) {
		s.Fail(tk, user.ErrSuperAdminRequired, i18n.Forbidden)
		return user.User{}, false
	}
	if err := req.Validate(); err != nil {
		s.Fail(tk, err, i18n.CreateSuperAdminFailed)
		return user.User{}, false
	}

	resp, err := apiclient.Do[user.User](ctx, s.client, http.MethodPost, "/api/admin/super-admins", req, nil)
	if err != nil {
		s.Fail(tk, err, i18n.CreateSuperAdminFailed)
		return user.User{}, false
	}

	s.Commit(tk, func() { s.add(resp.Data) })
	return resp.Data, true
}

// Users implements user.AdminStore.
func (s *AdminStoreImpl) Users() []user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]user.User(nil), s.users...)
}

func (s *AdminStoreImpl) Pagination() *apiclient.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pagination == nil {
		return nil
	}
	p := *s.pagination
	return &p
}

func (s *AdminStoreImpl) syncSelf(ctx context.Context, updated user.User) {
	current := s.session.Snapshot().User
	if current == nil || current.ID != updated.ID {
		return
	}
	if err := s.session.UpdateUser(ctx, updated); err != nil {
		s.Logger().Warn("failed to persist updated user", "user_id", updated.ID, "error", err)
	}
}

func (s *AdminStoreImpl) add(u user.User) {
	s.mu.Lock()
	s.users = append(s.users, u)
	s.mu.Unlock()
}

func (s *AdminStoreImpl) replace(updated user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == updated.ID {
			s.users[i] = updated
			return
		}
	}
}
