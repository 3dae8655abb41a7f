package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"leadflow_backend/internal/auth/password"
	"leadflow_backend/internal/auth/repository"
	"leadflow_backend/internal/auth/token"
	"leadflow_backend/internal/events"
	"leadflow_backend/platform/apperr"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"

	// RoleAdmin manages users, pipeline configuration, and imports.
	RoleAdmin = "admin"
	// RoleRep works assigned leads only.
	RoleRep = "rep"
)

// TokenPair is an issued access/refresh token pair with the account.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	User         repository.User
}

type Service struct {
	repo repository.Repository
	cfg  config.JWTConfig
	bus  events.Bus
	log  *logger.Logger
}

func New(repo repository.Repository, cfg config.JWTConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, log: log}
}

// SignUp registers a new account and signs it in. The very first
// account becomes an admin so a fresh deployment can be bootstrapped;
// everyone after that is a rep until promoted.
func (s *Service) SignUp(ctx context.Context, email, plainPassword, fullName string) (TokenPair, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return TokenPair{}, err
	}

	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return TokenPair{}, err
	}
	role := RoleRep
	if count == 0 {
		role = RoleAdmin
	}

	user, err := s.repo.CreateUser(ctx, email, hash, fullName, role)
	if err != nil {
		return TokenPair{}, err
	}

	s.log.AuthEvent("sign_up", user.Email, true)
	s.bus.Publish(ctx, events.UserSignedUp{
		BaseEvent: events.NewBaseEvent(),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
	})

	return s.issueTokens(ctx, user)
}

// SignIn exchanges credentials for a token pair.
func (s *Service) SignIn(ctx context.Context, email, plainPassword string) (TokenPair, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("sign_in", email, false)
		return TokenPair{}, apperr.Unauthorized("invalid credentials")
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("sign_in", email, false)
		return TokenPair{}, apperr.Unauthorized("invalid credentials")
	}

	if !user.IsActive {
		return TokenPair{}, apperr.Forbidden("account is deactivated")
	}

	s.log.AuthEvent("sign_in", email, true)
	return s.issueTokens(ctx, user)
}

// Refresh rotates a refresh token: the presented token is revoked and a
// new pair is issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	hash := token.HashSHA256(refreshToken)
	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return TokenPair{}, apperr.Unauthorized("invalid refresh token")
	}

	if time.Now().After(expiresAt) {
		_ = s.repo.RevokeRefreshToken(ctx, hash)
		return TokenPair{}, apperr.Unauthorized("refresh token expired")
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return TokenPair{}, apperr.Unauthorized("invalid refresh token")
	}
	if !user.IsActive {
		return TokenPair{}, apperr.Forbidden("account is deactivated")
	}

	_ = s.repo.RevokeRefreshToken(ctx, hash)
	return s.issueTokens(ctx, user)
}

// SignOut revokes the presented refresh token.
func (s *Service) SignOut(ctx context.Context, refreshToken string) error {
	hash := token.HashSHA256(refreshToken)
	return s.repo.RevokeRefreshToken(ctx, hash)
}

// ChangePassword verifies the current password, stores the new hash,
// and revokes every outstanding refresh token. Existing sessions must
// sign in again with the new password.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := password.Compare(user.PasswordHash, currentPassword); err != nil {
		s.log.AuthEvent("change_password", user.Email, false)
		return apperr.Unauthorized("current password is incorrect")
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.log.AuthEvent("change_password", user.Email, true)
	return s.repo.RevokeAllRefreshTokens(ctx, userID)
}

// GetMe returns the account for the given ID.
func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *Service) issueTokens(ctx context.Context, user repository.User) (TokenPair, error) {
	accessToken, err := s.signJWT(user.ID, []string{user.Role}, s.cfg.AccessTokenTTL(), accessTokenType)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := token.GenerateRandomToken(48)
	if err != nil {
		return TokenPair{}, err
	}

	hash := token.HashSHA256(refreshToken)
	expiresAt := time.Now().Add(s.cfg.RefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, user.ID, hash, expiresAt); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken, User: user}, nil
}

func (s *Service) signJWT(userID uuid.UUID, roles []string, ttl time.Duration, tokenType string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"type":  tokenType,
		"roles": roles,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.JWTSecret()))
}
