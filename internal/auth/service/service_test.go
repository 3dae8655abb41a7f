package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"leadflow_backend/internal/auth/password"
	"leadflow_backend/internal/auth/repository"
	"leadflow_backend/internal/events"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/logger"
)

type fakeRepo struct {
	users  map[uuid.UUID]repository.User
	tokens map[string]uuid.UUID

	revokedAllFor *uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:  make(map[uuid.UUID]repository.User),
		tokens: make(map[string]uuid.UUID),
	}
}

func (f *fakeRepo) CreateUser(_ context.Context, email, passwordHash, fullName, role string) (repository.User, error) {
	u := repository.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Role:         role,
		IsActive:     true,
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (repository.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return repository.User{}, apperr.NotFound("user not found")
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uuid.UUID) (repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeRepo) CountUsers(context.Context) (int, error) {
	return len(f.users), nil
}

func (f *fakeRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return apperr.NotFound("user not found")
	}
	u.PasswordHash = passwordHash
	f.users[id] = u
	return nil
}

func (f *fakeRepo) CreateRefreshToken(_ context.Context, userID uuid.UUID, tokenHash string, _ time.Time) error {
	f.tokens[tokenHash] = userID
	return nil
}

func (f *fakeRepo) GetRefreshToken(_ context.Context, tokenHash string) (uuid.UUID, time.Time, error) {
	userID, ok := f.tokens[tokenHash]
	if !ok {
		return uuid.Nil, time.Time{}, apperr.Unauthorized("refresh token not found")
	}
	return userID, time.Now().Add(time.Hour), nil
}

func (f *fakeRepo) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	delete(f.tokens, tokenHash)
	return nil
}

func (f *fakeRepo) RevokeAllRefreshTokens(_ context.Context, userID uuid.UUID) error {
	f.revokedAllFor = &userID
	for hash, owner := range f.tokens {
		if owner == userID {
			delete(f.tokens, hash)
		}
	}
	return nil
}

type testJWTConfig struct{}

func (testJWTConfig) JWTSecret() string              { return "test-secret" }
func (testJWTConfig) AccessTokenTTL() time.Duration  { return 15 * time.Minute }
func (testJWTConfig) RefreshTokenTTL() time.Duration { return 24 * time.Hour }

func newTestService(repo repository.Repository) *Service {
	log := logger.New("test")
	return New(repo, testJWTConfig{}, events.NewInMemoryBus(log), log)
}

func seedUser(t *testing.T, repo *fakeRepo, email, plain string) repository.User {
	t.Helper()
	hash, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := repo.CreateUser(context.Background(), email, hash, "Test User", RoleRep)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestSignUpFirstUserBecomesAdmin(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	first, err := svc.SignUp(context.Background(), "one@example.com", "password123", "First User")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if first.User.Role != RoleAdmin {
		t.Fatalf("first user role = %q, want %q", first.User.Role, RoleAdmin)
	}

	second, err := svc.SignUp(context.Background(), "two@example.com", "password123", "Second User")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if second.User.Role != RoleRep {
		t.Fatalf("second user role = %q, want %q", second.User.Role, RoleRep)
	}
}

func TestChangePasswordRotatesHashAndRevokesTokens(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	user := seedUser(t, repo, "rep@example.com", "old-password")

	pair, err := svc.SignIn(context.Background(), user.Email, "old-password")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}

	if err := svc.ChangePassword(context.Background(), user.ID, "old-password", "new-password"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if repo.revokedAllFor == nil || *repo.revokedAllFor != user.ID {
		t.Fatal("outstanding refresh tokens were not revoked")
	}
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("Refresh(old token) error = %v, want unauthorized", err)
	}

	if _, err := svc.SignIn(context.Background(), user.Email, "old-password"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("SignIn(old password) error = %v, want unauthorized", err)
	}
	if _, err := svc.SignIn(context.Background(), user.Email, "new-password"); err != nil {
		t.Fatalf("SignIn(new password) error = %v", err)
	}
}

func TestChangePasswordRejectsWrongCurrent(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	user := seedUser(t, repo, "rep@example.com", "old-password")

	err := svc.ChangePassword(context.Background(), user.ID, "wrong-password", "new-password")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("ChangePassword() error = %v, want unauthorized", err)
	}

	if _, err := svc.SignIn(context.Background(), user.Email, "old-password"); err != nil {
		t.Fatalf("old password no longer accepted: %v", err)
	}
	if repo.revokedAllFor != nil {
		t.Fatal("tokens revoked despite failed password check")
	}
}
