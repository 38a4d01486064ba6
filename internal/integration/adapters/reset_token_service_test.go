package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestResetTokenService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryTokenRepo()
	service := NewPasswordResetTokenService(repo)

	userID := uuid.New()
	issued, err := service.GenerateResetToken(ctx, userID, "jane@example.org")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issued.Token) != 64 {
		t.Errorf("token length = %d, want 64 hex characters", len(issued.Token))
	}
	if issued.UserID != userID || issued.Email != "jane@example.org" {
		t.Errorf("token bound to %s/%s, want %s/jane@example.org", issued.UserID, issued.Email, userID)
	}
	if ttl := time.Until(issued.ExpiresAt); ttl <= 0 || ttl > time.Hour {
		t.Errorf("expiry in %v, want within one hour", ttl)
	}

	stored, err := service.ValidateResetToken(ctx, issued.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.UserID != userID {
		t.Errorf("validated token belongs to %s, want %s", stored.UserID, userID)
	}

	if err := service.InvalidateResetToken(ctx, issued.Token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := service.ValidateResetToken(ctx, issued.Token); err == nil {
		t.Error("redeemed token validated again, want error")
	}
}

func TestResetTokenService_UnknownToken(t *testing.T) {
	service := NewPasswordResetTokenService(newMemoryTokenRepo())
	if _, err := service.ValidateResetToken(context.Background(), "never-issued"); err == nil {
		t.Error("unknown token validated, want error")
	}
}

func TestResetTokenService_TokensAreUnique(t *testing.T) {
	ctx := context.Background()
	service := NewPasswordResetTokenService(newMemoryTokenRepo())

	userID := uuid.New()
	first, err := service.GenerateResetToken(ctx, userID, "jane@example.org")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.GenerateResetToken(ctx, userID, "jane@example.org")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Token == second.Token {
		t.Error("two issued tokens are identical")
	}
}
