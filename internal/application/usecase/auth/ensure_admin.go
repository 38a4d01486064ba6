package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
)

// DefaultAdmin describes the administrator account created at startup when
// none exists yet.
type DefaultAdmin struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	Country      string
	Organization string
}

// EnsureAdminUseCase creates the default administrator account on first
// startup. Self-service registration never produces administrators, so
// without this a fresh deployment would have no way to reach the admin API.
type EnsureAdminUseCase struct {
	userRepo        adapter.UserRepository
	identityService adapter.IdentityService
	passwordService adapter.PasswordService
	auditRepo       adapter.AuditRepository
	admin           DefaultAdmin
}

// NewEnsureAdminUseCase creates a new EnsureAdminUseCase instance.
func NewEnsureAdminUseCase(
	userRepo adapter.UserRepository,
	identityService adapter.IdentityService,
	passwordService adapter.PasswordService,
	auditRepo adapter.AuditRepository,
	admin DefaultAdmin,
) *EnsureAdminUseCase {
	return &EnsureAdminUseCase{
		userRepo:        userRepo,
		identityService: identityService,
		passwordService: passwordService,
		auditRepo:       auditRepo,
		admin:           admin,
	}
}

// Execute creates the default administrator if no administrator exists.
// It is idempotent and safe to run on every startup.
func (uc *EnsureAdminUseCase) Execute(ctx context.Context) error {
	counts, err := uc.userRepo.CountByRole(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users by role: %w", err)
	}
	if counts[entity.RoleAdministrator] > 0 {
		return nil
	}

	publicID, err := uc.identityService.GeneratePublicID(ctx, uc.admin.FirstName, uc.admin.LastName)
	if err != nil {
		return fmt.Errorf("failed to generate account id: %w", err)
	}
	username, err := uc.identityService.GenerateUsername(ctx, uc.admin.FirstName, uc.admin.LastName, uc.admin.Country, uc.admin.Organization)
	if err != nil {
		return fmt.Errorf("failed to generate username: %w", err)
	}
	passwordHash, err := uc.passwordService.HashPassword(uc.admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(publicID, username, uc.admin.FirstName, uc.admin.LastName,
		uc.admin.Email, uc.admin.Country, uc.admin.Organization, entity.RoleAdministrator, passwordHash)

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create default administrator: %w", err)
	}

	recordAudit(ctx, uc.auditRepo, entity.NewAuditEvent(entity.AuditUserCreated, user.PublicID, user.Username, "").
		WithMetadata("email", user.Email).
		WithMetadata("role", string(user.Role)).
		WithMetadata("bootstrap", true))

	slog.Warn("Created default administrator account, change its password",
		"username", user.Username,
		"email", user.Email,
		"userID", user.PublicID,
	)
	return nil
}
