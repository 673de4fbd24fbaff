package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/repositories/users"
)

type authServiceImpl struct {
	logger zerolog.Logger
	users  users.Repository
	tokens TokenService
}

func NewAuthService(
	logger zerolog.Logger,
	userRepo users.Repository,
	tokenService TokenService,
) AuthService {
	return &authServiceImpl{
		logger: logger,
		users:  userRepo,
		tokens: tokenService,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	now := time.Now()
	user := &models.User{
		Name:      params.Name,
		Email:     params.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	userUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate user uuid")
		return nil, fmt.Errorf("failed to generate user uuid: %w", err)
	}
	user.ID = userUUID.String()

	// Hashing is CPU-bound and runs on the request goroutine,
	// so it never blocks unrelated in-flight requests.
	passwordHash, err := argon2id.CreateHash(params.Password, argon2id.DefaultParams)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = passwordHash

	err = s.users.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			s.logger.Error().
				Str("email", user.Email).
				Msg("user with this email already exists")
			return nil, ErrUserAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("inserted user")

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue token")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("registered user")
	return &AuthResult{
		User:           user,
		Token:          token,
		TokenExpiresAt: expiresAt,
	}, nil
}

func (s *authServiceImpl) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	user, err := s.users.SelectByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			s.logger.Error().
				Str("email", params.Email).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("email", params.Email).
			Msg("failed to select user by email")
		return nil, err
	}
	s.logger.Debug().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("selected user")

	match, err := argon2id.ComparePasswordAndHash(params.Password, user.Password)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to compare password")
		return nil, err
	} else if !match {
		s.logger.Error().Msg("passwords do not match")
		return nil, ErrUserPasswordMismatch
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to issue token")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("logged in")
	return &AuthResult{
		User:           user,
		Token:          token,
		TokenExpiresAt: expiresAt,
	}, nil
}

func (s *authServiceImpl) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.SelectByID(ctx, id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			s.logger.Error().
				Str("user_id", id).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to select user by id")
		return nil, err
	}
	return user, nil
}
