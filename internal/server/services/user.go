// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login, and mints the access
// tokens returned to clients.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/dbx"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
	"github.com/dmitrijs2005/authgate/internal/server/config"
	"github.com/dmitrijs2005/authgate/internal/server/models"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create users with hashed passwords
// - Login: verify credentials and mint an access token
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	hasher                *auth.Hasher
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, h *auth.Hasher, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		hasher:                h,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new user with the given username and a bcrypt hash of
// the password. The availability pre-check and the insert run in one
// transaction; the store's unique constraint remains the final arbiter, so a
// registration that loses a race to a concurrent duplicate still comes back
// as common.ErrorDuplicate.
func (s *UserService) Register(ctx context.Context, username string, password string) (*models.User, error) {

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	var created *models.User

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if _, err := repo.GetByUsername(ctx, username); err == nil {
			return common.ErrorDuplicate
		} else if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error checking username: %w", err)
		}

		user, err := repo.Create(ctx, &models.User{Username: username, Password: hash})
		if err != nil {
			if errors.Is(err, common.ErrorDuplicate) {
				return common.ErrorDuplicate
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		created = user
		return nil
	})

	if err != nil {
		return nil, err
	}

	return created, nil
}

// Login verifies the provided password against the stored hash and, on
// success, returns the user together with a freshly minted access token.
// Unknown usernames and wrong passwords are indistinguishable to the caller:
// both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username string, password string) (*models.User, string, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.Password) {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}
