package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type tokenServiceImpl struct {
	logger     zerolog.Logger
	issuer     string
	signingKey []byte
	tokenTTL   time.Duration
}

func NewTokenService(
	logger zerolog.Logger,
	issuer string,
	signingKey []byte,
	tokenTTL time.Duration,
) TokenService {
	return &tokenServiceImpl{
		logger:     logger,
		issuer:     issuer,
		signingKey: signingKey,
		tokenTTL:   tokenTTL,
	}
}

func (s *tokenServiceImpl) Issue(userID string) (string, time.Time, error) {
	tokenUUID, err := uuid.NewRandom()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token id: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        tokenUUID.String(),
		Issuer:    s.issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to sign token")
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Time("expires_at", expiresAt).
		Msg("issued token")
	return signed, expiresAt, nil
}

func (s *tokenServiceImpl) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Warn().Msg("token expired")
			return "", ErrTokenExpired
		}

		s.logger.Warn().
			Err(err).
			Msg("failed to parse token")
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		s.logger.Warn().Msg("token has no subject")
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
