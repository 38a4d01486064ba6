package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
)

// RegisterUserInput carries the signup form fields.
type RegisterUserInput struct {
	FirstName    string
	LastName     string
	Email        string
	Country      string
	Organization string
	Role         string
	Password     string
	ClientIP     string
}

// RegisterUserOutput carries the stored account.
type RegisterUserOutput struct {
	User *entity.User
}

// RegisterUserUseCase creates accounts with generated identifiers.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	identityService adapter.IdentityService
	passwordService adapter.PasswordService
	auditRepo       adapter.AuditRepository
}

// NewRegisterUserUseCase builds the use case.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	identityService adapter.IdentityService,
	passwordService adapter.PasswordService,
	auditRepo adapter.AuditRepository,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		identityService: identityService,
		passwordService: passwordService,
		auditRepo:       auditRepo,
	}
}

// Execute performs the user registration. The password is hashed as given;
// the strength meter on the signup page is advisory and nothing is rejected
// for being weak.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	input.Country = strings.TrimSpace(input.Country)
	input.Organization = strings.TrimSpace(input.Organization)

	if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.Country == "" || input.Password == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"first name, last name, email, country and password are required",
			nil,
		)
	}

	if !isValidEmail(input.Email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	// Default to Researcher like the public signup form
	role := entity.Role(input.Role)
	if input.Role == "" {
		role = entity.RoleResearcher
	}
	if !entity.ValidRole(string(role)) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidRole,
			"unknown role",
			domainerror.ErrInvalidRole,
		)
	}
	if !entity.SelfServiceRole(role) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeRoleNotAllowed,
			"administrator accounts must be created by an admin",
			domainerror.ErrRoleNotAllowed,
		)
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeEmailExists,
			"an account with that email already exists",
			domainerror.ErrEmailAlreadyExists,
		)
	}

	// Generate public account identifier and username
	publicID, err := uc.identityService.GeneratePublicID(ctx, input.FirstName, input.LastName)
	if err != nil {
		return nil, fmt.Errorf("failed to generate account id: %w", err)
	}
	username, err := uc.identityService.GenerateUsername(ctx, input.FirstName, input.LastName, input.Country, input.Organization)
	if err != nil {
		return nil, fmt.Errorf("failed to generate username: %w", err)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(publicID, username, input.FirstName, input.LastName, input.Email, input.Country, input.Organization, role, passwordHash)

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	recordAudit(ctx, uc.auditRepo, entity.NewAuditEvent(entity.AuditUserCreated, user.PublicID, user.Username, input.ClientIP).
		WithMetadata("email", user.Email).
		WithMetadata("country", user.Country).
		WithMetadata("role", string(user.Role)))

	return &RegisterUserOutput{User: user}, nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// isValidEmail checks the shape of an address, not its deliverability.
func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
