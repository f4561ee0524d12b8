// Copyright (c) 2026 Kurpejovica Enciklopedija. All rights reserved.
// Author: huzeir2k@gmail.com

package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/apperr"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/platform/sec"
	"github.com/huzeir2k/kurpejovica-enciklopedija-sub000/internal/users/auth"
)

// # Fakes

type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*auth.User{}}
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if user, ok := repo.users[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, user := range repo.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for _, user := range repo.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.users[user.ID] = user
	return nil
}

func (repo *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.users[user.ID] = user
	return nil
}

func (repo *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if user, ok := repo.users[userID]; ok {
		user.PasswordHash = newHash
	}
	return nil
}

func (repo *fakeUserRepository) SoftDelete(_ context.Context, id string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.users, id)
	return nil
}

type fakeSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*auth.Session // keyed by token hash
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: map[string]*auth.Session{}}
}

func (repo *fakeSessionRepository) Create(_ context.Context, session *auth.Session) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.sessions[session.TokenHash] = session
	return nil
}

func (repo *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	session, ok := repo.sessions[tokenHash]
	if !ok || session.ExpiresAt.Before(time.Now()) {
		return nil, apperr.NotFound("Session not found or expired")
	}
	return session, nil
}

func (repo *fakeSessionRepository) Revoke(_ context.Context, tokenHash string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.sessions, tokenHash)
	return nil
}

func (repo *fakeSessionRepository) RevokeOthers(_ context.Context, userID, currentTokenHash string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	for hash, session := range repo.sessions {
		if session.UserID == userID && hash != currentTokenHash {
			delete(repo.sessions, hash)
		}
	}
	return nil
}

func (repo *fakeSessionRepository) count() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return len(repo.sessions)
}

// fakeTokenProvider issues predictable access tokens.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "access-" + userID, nil
}

func newTestService() (*auth.Service, *fakeUserRepository, *fakeSessionRepository) {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := auth.NewService(users, sessions, fakeTokenProvider{})
	return service, users, sessions
}

func register(t *testing.T, service *auth.Service) *auth.User {
	t.Helper()
	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username:    "huzeir",
		Email:       "huzeir@enciklopedija.me",
		Password:    "correct-horse-battery",
		DisplayName: "Huzeir",
	})
	require.NoError(t, err)
	return user
}

// # Tests

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a viewer with a hashed password", func(t *testing.T) {
		service, _, _ := newTestService()

		user := register(t, service)
		assert.Equal(t, sec.RoleViewer, user.Role)
		assert.NotEqual(t, "correct-horse-battery", user.PasswordHash)
		assert.True(t, sec.CheckPasswordHash("correct-horse-battery", user.PasswordHash))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		service, _, _ := newTestService()
		register(t, service)

		_, err := service.Register(ctx, auth.RegisterInput{
			Username: "someone_else",
			Email:    "huzeir@enciklopedija.me",
			Password: "another-password",
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		service, _, _ := newTestService()
		register(t, service)

		_, err := service.Register(ctx, auth.RegisterInput{
			Username: "huzeir",
			Email:    "other@enciklopedija.me",
			Password: "another-password",
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a session keyed by the refresh token hash", func(t *testing.T) {
		service, _, sessions := newTestService()
		user := register(t, service)

		login, err := service.Login(ctx, auth.LoginInput{
			Login:    "huzeir@enciklopedija.me",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)
		assert.Equal(t, "access-"+user.ID, login.AccessToken)
		assert.NotEmpty(t, login.RefreshToken)

		stored, err := sessions.FindByTokenHash(ctx, sec.HashToken(login.RefreshToken))
		require.NoError(t, err)
		assert.Equal(t, user.ID, stored.UserID)
	})

	t.Run("accepts username in place of email", func(t *testing.T) {
		service, _, _ := newTestService()
		register(t, service)

		_, err := service.Login(ctx, auth.LoginInput{
			Login:    "huzeir",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		service, _, _ := newTestService()
		register(t, service)

		_, err := service.Login(ctx, auth.LoginInput{
			Login:    "huzeir",
			Password: "wrong",
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
	})

	t.Run("unknown account is unauthorized", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.Login(ctx, auth.LoginInput{
			Login:    "nobody",
			Password: "whatever",
		})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
	})
}

func TestService_Logout(t *testing.T) {
	ctx := context.Background()
	service, _, sessions := newTestService()
	register(t, service)

	login, err := service.Login(ctx, auth.LoginInput{
		Login:    "huzeir",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, login.RefreshToken))
	assert.Equal(t, 0, sessions.count())

	// Logging out again is a no-op, not an error.
	require.NoError(t, service.Logout(ctx, login.RefreshToken))
}

func TestService_RefreshSession(t *testing.T) {
	ctx := context.Background()

	t.Run("rotation invalidates the previous refresh token", func(t *testing.T) {
		service, _, sessions := newTestService()
		register(t, service)

		login, err := service.Login(ctx, auth.LoginInput{
			Login:    "huzeir",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)

		refreshed, err := service.RefreshSession(ctx, login.RefreshToken, "", "")
		require.NoError(t, err)
		assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
		assert.Equal(t, 1, sessions.count())

		// Replaying the rotated-out token must fail.
		_, err = service.RefreshSession(ctx, login.RefreshToken, "", "")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.RefreshSession(ctx, "not-a-token", "", "")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
	})
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes every session except the current one", func(t *testing.T) {
		service, _, sessions := newTestService()
		user := register(t, service)

		first, err := service.Login(ctx, auth.LoginInput{Login: "huzeir", Password: "correct-horse-battery"})
		require.NoError(t, err)
		second, err := service.Login(ctx, auth.LoginInput{Login: "huzeir", Password: "correct-horse-battery"})
		require.NoError(t, err)
		require.Equal(t, 2, sessions.count())

		err = service.ChangePassword(ctx, user.ID, "correct-horse-battery", "an-even-better-one", second.RefreshToken)
		require.NoError(t, err)

		_, err = sessions.FindByTokenHash(ctx, sec.HashToken(second.RefreshToken))
		assert.NoError(t, err)
		_, err = sessions.FindByTokenHash(ctx, sec.HashToken(first.RefreshToken))
		assert.Error(t, err)

		// Only the new password works from here on.
		_, err = service.Login(ctx, auth.LoginInput{Login: "huzeir", Password: "correct-horse-battery"})
		require.Error(t, err)
		_, err = service.Login(ctx, auth.LoginInput{Login: "huzeir", Password: "an-even-better-one"})
		require.NoError(t, err)
	})

	t.Run("wrong current password is unauthorized", func(t *testing.T) {
		service, _, _ := newTestService()
		user := register(t, service)

		err := service.ChangePassword(ctx, user.ID, "wrong", "new-password", "")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
	})
}
