// Package services contains the server-side business logic. This file
// implements UserService: registration, credential verification, session
// issue/revocation, and current-user lookup.
package services

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/dbx"
	"github.com/dmitrijs2005/filekeeper/internal/logging"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filekeeper/internal/server/sessions"
)

// UserService provides account and authentication operations:
//   - Register: create users (unique email)
//   - Login / LoginBasic: verify credentials and open a session
//   - Logout: revoke a session token
//   - WhoAmI / ResolveToken: identity lookup for authenticated requests
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    sessions.Store
	logger      logging.Logger
}

// NewUserService constructs a UserService from its collaborators.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, st sessions.Store, logger logging.Logger) *UserService {
	return &UserService{db: db, repomanager: m, sessions: st, logger: logger}
}

// Register creates a new user. Missing fields are validation errors; a
// duplicate email is reported as common.ErrorAlreadyExists. The existence
// check and insert run in one transaction so concurrent registrations of the
// same email cannot both succeed.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: missing email", common.ErrorValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: missing password", common.ErrorValidation)
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	hash, err := bcrypt.GenerateFromPassword(pw, bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByEmail(ctx, email)
		if err == nil {
			return common.ErrorAlreadyExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		user, err = repo.Create(ctx, &models.User{Email: email, PasswordHash: hash})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "user registration failed", "error", err)
		return nil, common.ErrorStoreUnavailable
	}

	return user, nil
}

// Authenticate verifies raw credentials against the user store and returns
// the full user record. Unknown emails and wrong passwords are both reported
// as common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ErrorStoreUnavailable
	}

	pw := []byte(password)
	defer common.WipeByteArray(pw)

	if bcrypt.CompareHashAndPassword(user.PasswordHash, pw) != nil {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// DecodeBasicCredential splits a base64 "email:password" credential string.
func DecodeBasicCredential(encoded string) (string, string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", common.ErrorUnauthorized
	}
	defer common.WipeByteArray(raw)
	email, password, found := strings.Cut(string(raw), ":")
	if !found {
		return "", "", common.ErrorUnauthorized
	}
	return email, password, nil
}

// Login verifies credentials and opens a new session, returning its token.
// One user may hold multiple concurrent sessions.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		s.logger.Error(ctx, "session creation failed", "error", err)
		return "", common.ErrorStoreUnavailable
	}
	return token, nil
}

// LoginBasic is Login for a single encoded "email:password" credential.
func (s *UserService) LoginBasic(ctx context.Context, encoded string) (string, error) {
	email, password, err := DecodeBasicCredential(encoded)
	if err != nil {
		return "", err
	}
	return s.Login(ctx, email, password)
}

// Logout revokes the session. An unknown or expired token is unauthorized.
func (s *UserService) Logout(ctx context.Context, token string) error {
	userID, err := s.ResolveToken(ctx, token)
	if err != nil {
		return err
	}
	if userID == "" {
		return common.ErrorUnauthorized
	}

	if err := s.sessions.Revoke(ctx, token); err != nil {
		s.logger.Error(ctx, "session revocation failed", "error", err)
		return common.ErrorStoreUnavailable
	}
	return nil
}

// ResolveToken maps a session token to a user id. Absent or expired tokens
// resolve to the empty string without error, so callers treat them
// uniformly as anonymous.
func (s *UserService) ResolveToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", nil
	}
	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		s.logger.Error(ctx, "session lookup failed", "error", err)
		return "", common.ErrorStoreUnavailable
	}
	return userID, nil
}

// WhoAmI returns the user behind a session token.
func (s *UserService) WhoAmI(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Session outlived the account; treat as unauthenticated.
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ErrorStoreUnavailable
	}
	return user, nil
}
