// Package controller translates HTTP requests into use case calls and
// renders the results as JSON.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minn-platform/backend/internal/application/usecase/auth"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
	"github.com/minn-platform/backend/internal/integration/entrypoint/dto"
)

// authStatus maps domain error codes to HTTP statuses. Codes missing from
// the map answer as internal errors.
var authStatus = map[domainerror.AuthErrorCode]int{
	domainerror.ErrCodeEmailExists:        http.StatusConflict,
	domainerror.ErrCodeInvalidEmail:       http.StatusBadRequest,
	domainerror.ErrCodeMissingFields:      http.StatusBadRequest,
	domainerror.ErrCodeInvalidRole:        http.StatusBadRequest,
	domainerror.ErrCodeRoleNotAllowed:     http.StatusBadRequest,
	domainerror.ErrCodeInvalidResetToken:  http.StatusBadRequest,
	domainerror.ErrCodeExpiredResetToken:  http.StatusBadRequest,
	domainerror.ErrCodeInvalidCredentials: http.StatusUnauthorized,
	domainerror.ErrCodeUserNotFound:       http.StatusUnauthorized,
	domainerror.ErrCodeInvalidToken:       http.StatusUnauthorized,
	domainerror.ErrCodeExpiredToken:       http.StatusUnauthorized,
	domainerror.ErrCodeMissingToken:       http.StatusUnauthorized,
	domainerror.ErrCodeForbidden:          http.StatusForbidden,
	domainerror.ErrCodeAccountLocked:      http.StatusLocked,
	domainerror.ErrCodeRateLimited:        http.StatusTooManyRequests,
}

// AuthController handles the authentication endpoints.
type AuthController struct {
	registerUseCase       *auth.RegisterUserUseCase
	loginUseCase          *auth.LoginUserUseCase
	refreshTokenUseCase   *auth.RefreshTokenUseCase
	logoutUseCase         *auth.LogoutUserUseCase
	forgotPasswordUseCase *auth.ForgotPasswordUseCase
	resetPasswordUseCase  *auth.ResetPasswordUseCase
}

// NewAuthController bundles the six account flows.
func NewAuthController(
	registerUseCase *auth.RegisterUserUseCase,
	loginUseCase *auth.LoginUserUseCase,
	refreshTokenUseCase *auth.RefreshTokenUseCase,
	logoutUseCase *auth.LogoutUserUseCase,
	forgotPasswordUseCase *auth.ForgotPasswordUseCase,
	resetPasswordUseCase *auth.ResetPasswordUseCase,
) *AuthController {
	return &AuthController{
		registerUseCase:       registerUseCase,
		loginUseCase:          loginUseCase,
		refreshTokenUseCase:   refreshTokenUseCase,
		logoutUseCase:         logoutUseCase,
		forgotPasswordUseCase: forgotPasswordUseCase,
		resetPasswordUseCase:  resetPasswordUseCase,
	}
}

// Register handles POST /auth/register requests. A new account is not
// signed in automatically; the response carries the generated username
// the caller signs in with.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !bindBody(ctx, &req, domainerror.ErrCodeMissingFields) {
		return
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Country:      req.Country,
		Organization: req.Organization,
		Role:         req.Role,
		Password:     req.Password,
		ClientIP:     ctx.ClientIP(),
	})
	if err != nil {
		respondAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RegisterResponse{
		Message:  "Account created",
		Username: output.User.Username,
		User:     dto.ToUserResponse(output.User),
	})
}

// Login handles POST /auth/login requests. Repeated failures lock
// the account for the configured window.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindBody(ctx, &req, domainerror.ErrCodeMissingFields) {
		return
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Username: req.Username,
		Password: req.Password,
		ClientIP: ctx.ClientIP(),
	})
	if err != nil {
		respondAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         dto.ToUserResponse(output.User),
	})
}

// RefreshToken handles POST /auth/refresh requests. The presented
// token is retired and a fresh pair minted.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindBody(ctx, &req, domainerror.ErrCodeMissingToken) {
		return
	}

	output, err := c.refreshTokenUseCase.Execute(ctx.Request.Context(), auth.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		respondAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	})
}

// Logout handles POST /auth/logout requests. Logout never fails: an
// unreadable body means there is no token to revoke, which is the same
// end state as revoking one.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Successfully logged out"})
		return
	}

	output, _ := c.logoutUseCase.Execute(ctx.Request.Context(), auth.LogoutUserInput{
		RefreshToken: req.RefreshToken,
	})

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

// ForgotPassword handles POST /auth/forgot-password requests. The
// answer is the same whether or not the address has an account.
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindBody(ctx, &req, domainerror.ErrCodeInvalidEmail) {
		return
	}

	output, err := c.forgotPasswordUseCase.Execute(ctx.Request.Context(), auth.ForgotPasswordInput{
		Email: req.Email,
	})
	if err != nil {
		respondAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

// ResetPassword handles POST /auth/reset-password requests. A reset
// token redeems exactly once.
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindBody(ctx, &req, domainerror.ErrCodeMissingFields) {
		return
	}

	output, err := c.resetPasswordUseCase.Execute(ctx.Request.Context(), auth.ResetPasswordInput{
		Token:       req.Token,
		NewPassword: req.Password,
		ClientIP:    ctx.ClientIP(),
	})
	if err != nil {
		respondAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

// bindBody decodes the JSON body into req. On failure it writes a 400
// carrying the given code and reports false.
func bindBody(ctx *gin.Context, req interface{}, code domainerror.AuthErrorCode) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(code),
		})
		return false
	}
	return true
}

// respondAuthError translates a use case error into an HTTP response.
func respondAuthError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if !errors.As(err, &authErr) {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	status, ok := authStatus[authErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}
	ctx.JSON(status, dto.ErrorResponse{
		Error: authErr.Message,
		Code:  string(authErr.Code),
	})
}
