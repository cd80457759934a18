package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/user/model"
	"library-backend/pkg/jwt"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return model.ErrUserNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(context.Background(), email)
	return err == nil, nil
}

// memStore is an in-memory cache.Store for tests.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *memStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memStore) Ping(_ context.Context) error { return nil }

func newTestUserService() (ServiceInterface, *fakeUserRepo, *memStore) {
	repo := newFakeUserRepo()
	store := newMemStore()
	tokens := jwt.NewManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	return NewUserService(repo, tokens, store), repo, store
}

func registerReq() model.RegisterRequest {
	return model.RegisterRequest{
		Email:    "reader@example.com",
		Password: "correct-horse-1",
		FullName: "Avid Reader",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestUserService()

	auth, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", auth.User.Email)
	assert.Equal(t, model.RoleUser, auth.User.Role)
	assert.NotEmpty(t, auth.Tokens.AccessToken)
	assert.NotEmpty(t, auth.Tokens.RefreshToken)

	login, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "reader@example.com",
		Password: "correct-horse-1",
	})
	require.NoError(t, err)
	assert.Equal(t, auth.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	req := registerReq()
	req.Email = "READER@example.com"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), model.LoginRequest{
		Email:    "reader@example.com",
		Password: "wrong-password-1",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-123",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, repo, _ := newTestUserService()

	auth, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	repo.users[auth.User.ID].IsActive = false

	_, err = svc.Login(context.Background(), model.LoginRequest{
		Email:    "reader@example.com",
		Password: "correct-horse-1",
	})
	assert.ErrorIs(t, err, model.ErrUserInactive)
}

func TestRefreshRotatesSession(t *testing.T) {
	svc, _, _ := newTestUserService()

	auth, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	pair, err := svc.Refresh(context.Background(), model.RefreshRequest{
		RefreshToken: auth.Tokens.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	// The rotated-out token is no longer accepted.
	_, err = svc.Refresh(context.Background(), model.RefreshRequest{
		RefreshToken: auth.Tokens.RefreshToken,
	})
	assert.ErrorIs(t, err, model.ErrInvalidSession)

	_, err = svc.Refresh(context.Background(), model.RefreshRequest{
		RefreshToken: pair.RefreshToken,
	})
	assert.NoError(t, err)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, _, _ := newTestUserService()

	auth, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), auth.User.ID))

	_, err = svc.Refresh(context.Background(), model.RefreshRequest{
		RefreshToken: auth.Tokens.RefreshToken,
	})
	assert.ErrorIs(t, err, model.ErrInvalidSession)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _ := newTestUserService()

	auth, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), model.RefreshRequest{
		RefreshToken: auth.Tokens.AccessToken,
	})
	assert.ErrorIs(t, err, model.ErrInvalidSession)
}

func TestChangePasswordInvalidatesSessionAndRehashes(t *testing.T) {
	svc, _, _ := newTestUserService()

	auth, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), auth.User.ID, model.ChangePasswordRequest{
		CurrentPassword: "correct-horse-1",
		NewPassword:     "battery-staple-2",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), model.RefreshRequest{
		RefreshToken: auth.Tokens.RefreshToken,
	})
	assert.ErrorIs(t, err, model.ErrInvalidSession)

	_, err = svc.Login(context.Background(), model.LoginRequest{
		Email:    "reader@example.com",
		Password: "correct-horse-1",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), model.LoginRequest{
		Email:    "reader@example.com",
		Password: "battery-staple-2",
	})
	assert.NoError(t, err)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, _, _ := newTestUserService()

	auth, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), auth.User.ID, model.ChangePasswordRequest{
		CurrentPassword: "not-the-password-1",
		NewPassword:     "battery-staple-2",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}
