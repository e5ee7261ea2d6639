package users

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/decentrix/decentrix/internal/common"
	"github.com/decentrix/decentrix/internal/logging"
	"github.com/decentrix/decentrix/internal/server/auth"
)

type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	logger                      logging.Logger
}

func NewService(repo Repository, jwtSecret []byte, accessTokenValidity time.Duration, logger logging.Logger) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   jwtSecret,
		accessTokenValidityDuration: accessTokenValidity,
		logger:                      logger,
	}
}

// Register creates an account and returns a bearer token for it. An email
// already in use fails with common.ErrorConflict.
func (s *Service) Register(ctx context.Context, email, password, firstName, lastName string) (string, error) {

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", common.ErrorInternal
	}

	user := &User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return "", common.ErrorConflict
		}
		return "", common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "id", user.ID)
	return s.issueToken(user)
}

// Login checks the password and returns a bearer token. A missing account
// and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", common.ErrorUnauthorized
	}

	return s.issueToken(user)
}

// Profile loads the account a bearer token belongs to.
func (s *Service) Profile(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// VerifyToken validates a bearer token and returns the user ID inside it.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	userID, err := auth.GetUserIDFromToken(tokenString, s.jwtSecret)
	if err != nil {
		return "", common.ErrorUnauthorized
	}
	return userID, nil
}

func (s *Service) issueToken(user *User) (string, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
