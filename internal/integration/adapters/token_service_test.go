package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/minn-platform/backend/internal/domain/entity"
)

// memoryTokenRepo keeps tokens in maps so the service round trips can be
// tested without a database.
type memoryTokenRepo struct {
	refresh map[string]bool // token -> still valid
	owners  map[string]uuid.UUID
	resets  map[string]*entity.PasswordResetToken
}

func newMemoryTokenRepo() *memoryTokenRepo {
	return &memoryTokenRepo{
		refresh: make(map[string]bool),
		owners:  make(map[string]uuid.UUID),
		resets:  make(map[string]*entity.PasswordResetToken),
	}
}

func (r *memoryTokenRepo) SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	r.refresh[token] = true
	r.owners[token] = userID
	return nil
}

func (r *memoryTokenRepo) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	return r.refresh[token], nil
}

func (r *memoryTokenRepo) InvalidateRefreshToken(ctx context.Context, token string) error {
	if _, ok := r.refresh[token]; ok {
		r.refresh[token] = false
	}
	return nil
}

func (r *memoryTokenRepo) InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	for token, owner := range r.owners {
		if owner == userID {
			r.refresh[token] = false
		}
	}
	return nil
}

func (r *memoryTokenRepo) SavePasswordResetToken(ctx context.Context, token *entity.PasswordResetToken) error {
	r.resets[token.Token] = token
	return nil
}

func (r *memoryTokenRepo) GetPasswordResetToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	stored, ok := r.resets[token]
	if !ok || stored.Used {
		return nil, nil
	}
	return stored, nil
}

func (r *memoryTokenRepo) MarkPasswordResetTokenUsed(ctx context.Context, token string) error {
	if stored, ok := r.resets[token]; ok {
		now := time.Now().UTC()
		stored.Used = true
		stored.UsedAt = &now
	}
	return nil
}

func TestTokenService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryTokenRepo()
	service := NewTokenService("test-secret", 15*time.Minute, 7*24*time.Hour, repo)

	userID := uuid.New()
	pair, err := service.GenerateTokenPair(ctx, userID, "jane@example.org", entity.RoleResearcher)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Error("access and refresh tokens must differ")
	}

	t.Run("access token carries the identity claims", func(t *testing.T) {
		claims, err := service.ValidateAccessToken(ctx, pair.AccessToken)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.UserID != userID {
			t.Errorf("expected user id %s, got %s", userID, claims.UserID)
		}
		if claims.Email != "jane@example.org" {
			t.Errorf("expected email jane@example.org, got %s", claims.Email)
		}
		if claims.Role != entity.RoleResearcher {
			t.Errorf("expected role Researcher, got %s", claims.Role)
		}
		if remaining := time.Until(claims.ExpiresAt); remaining <= 0 || remaining > 15*time.Minute {
			t.Errorf("expected expiry within 15 minutes, got %v", remaining)
		}
	})

	t.Run("token types are not interchangeable", func(t *testing.T) {
		if _, err := service.ValidateAccessToken(ctx, pair.RefreshToken); err == nil {
			t.Error("expected a refresh token to fail access validation")
		}
		if _, err := service.ValidateRefreshToken(ctx, pair.AccessToken); err == nil {
			t.Error("expected an access token to fail refresh validation")
		}
	})

	t.Run("tampered tokens are rejected", func(t *testing.T) {
		if _, err := service.ValidateAccessToken(ctx, pair.AccessToken+"x"); err == nil {
			t.Error("expected a tampered token to be rejected")
		}

		other := NewTokenService("different-secret", 15*time.Minute, 7*24*time.Hour, newMemoryTokenRepo())
		foreign, err := other.GenerateTokenPair(ctx, userID, "jane@example.org", entity.RoleResearcher)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := service.ValidateAccessToken(ctx, foreign.AccessToken); err == nil {
			t.Error("expected a token signed with another secret to be rejected")
		}
	})

	t.Run("refresh token is stored and can be revoked", func(t *testing.T) {
		valid, err := service.IsRefreshTokenValid(ctx, pair.RefreshToken)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !valid {
			t.Fatal("expected the refresh token to be valid after issue")
		}

		if err := service.InvalidateRefreshToken(ctx, pair.RefreshToken); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		valid, err = service.IsRefreshTokenValid(ctx, pair.RefreshToken)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if valid {
			t.Error("expected the refresh token to be invalid after revocation")
		}
	})

	t.Run("all tokens of a user can be revoked at once", func(t *testing.T) {
		first, err := service.GenerateTokenPair(ctx, userID, "jane@example.org", entity.RoleResearcher)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := service.GenerateTokenPair(ctx, userID, "jane@example.org", entity.RoleResearcher)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.RefreshToken == second.RefreshToken {
			t.Fatal("expected distinct refresh tokens per issue")
		}

		if err := service.InvalidateAllUserTokens(ctx, userID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, token := range []string{first.RefreshToken, second.RefreshToken} {
			valid, err := service.IsRefreshTokenValid(ctx, token)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if valid {
				t.Error("expected every refresh token to be revoked")
			}
		}
	})
}
