package adapters

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
)

const (
	tokenIssuer = "minn-platform"

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// CustomClaims represents the custom claims for JWT tokens. Role is carried
// in the token so authorization does not need a user lookup per request.
type CustomClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// tokenService implements adapter.TokenService with HS256-signed JWTs.
// Refresh tokens are additionally tracked in the database so they can be
// revoked before their expiry.
type tokenService struct {
	secret          []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
	tokens          adapter.TokenRepository
	parser          []jwt.ParserOption
}

// NewTokenService builds the JWT issuer and verifier. The expiries
// apply to newly minted pairs.
func NewTokenService(secret string, accessDuration, refreshDuration time.Duration, tokens adapter.TokenRepository) adapter.TokenService {
	return &tokenService{
		secret:          []byte(secret),
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
		tokens:          tokens,
		parser: []jwt.ParserOption{
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithExpirationRequired(),
		},
	}
}

// GenerateTokenPair mints an access and refresh token pair and stores the
// refresh token for later revocation.
func (s *tokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, role entity.Role) (*adapter.TokenPair, error) {
	accessToken, err := s.sign(userID, email, role, tokenTypeAccess, s.accessDuration)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	refreshToken, err := s.sign(userID, email, role, tokenTypeRefresh, s.refreshDuration)
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	expiresAt := time.Now().UTC().Add(s.refreshDuration)
	if err := s.tokens.SaveRefreshToken(ctx, refreshToken, userID, expiresAt); err != nil {
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}

	return &adapter.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateAccessToken verifies an access token and returns its claims.
func (s *tokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.verify(token, tokenTypeAccess)
}

// ValidateRefreshToken verifies a refresh token and returns its claims.
func (s *tokenService) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.verify(token, tokenTypeRefresh)
}

// InvalidateRefreshToken revokes one refresh token.
func (s *tokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	return s.tokens.InvalidateRefreshToken(ctx, token)
}

// InvalidateAllUserTokens revokes every refresh token of a user.
func (s *tokenService) InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	return s.tokens.InvalidateAllUserRefreshTokens(ctx, userID)
}

// IsRefreshTokenValid reports whether a refresh token is still usable.
func (s *tokenService) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	return s.tokens.IsRefreshTokenValid(ctx, token)
}

// sign mints one JWT. Timestamps are second-granular, so a random jti keeps
// tokens issued within the same second distinct and rotation never reuses a
// stored token.
func (s *tokenService) sign(userID uuid.UUID, email string, role entity.Role, tokenType string, lifetime time.Duration) (string, error) {
	jti := make([]byte, 8)
	if _, err := rand.Read(jti); err != nil {
		return "", fmt.Errorf("generating token id: %w", err)
	}

	now := time.Now().UTC()
	claims := CustomClaims{
		UserID:    userID.String(),
		Email:     email,
		Role:      string(role),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        hex.EncodeToString(jti),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// verify checks the signature, the registered claims and the token type,
// then converts the claims for the application layer.
func (s *tokenService) verify(token, wantType string) (*adapter.TokenClaims, error) {
	var claims CustomClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, s.parser...)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeExpiredToken,
			"token has expired",
			domainerror.ErrExpiredToken,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.TokenType != wantType {
		return nil, fmt.Errorf("wrong token type: want %s", wantType)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("malformed user id claim: %w", err)
	}

	return &adapter.TokenClaims{
		UserID:    userID,
		Email:     claims.Email,
		Role:      entity.Role(claims.Role),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
