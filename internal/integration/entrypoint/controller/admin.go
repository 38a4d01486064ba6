package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minn-platform/backend/internal/application/usecase/admin"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
	"github.com/minn-platform/backend/internal/integration/entrypoint/dto"
	"github.com/minn-platform/backend/internal/integration/entrypoint/middleware"
)

// AdminController handles administrator-only endpoints. Role gating
// happens in the router middleware; handlers here assume the caller is
// an administrator.
type AdminController struct {
	overviewUseCase *admin.GetOverviewUseCase
	auditUseCase    *admin.ListAuditEventsUseCase
	unlockUseCase   *admin.UnlockAccountUseCase
}

// NewAdminController creates a new admin controller instance.
func NewAdminController(
	overviewUseCase *admin.GetOverviewUseCase,
	auditUseCase *admin.ListAuditEventsUseCase,
	unlockUseCase *admin.UnlockAccountUseCase,
) *AdminController {
	return &AdminController{
		overviewUseCase: overviewUseCase,
		auditUseCase:    auditUseCase,
		unlockUseCase:   unlockUseCase,
	}
}

// Overview handles GET /admin/overview requests.
func (c *AdminController) Overview(ctx *gin.Context) {
	output, err := c.overviewUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleAdminError(ctx, err)
		return
	}

	users := make([]dto.AdminUserResponse, 0, len(output.Users))
	for _, u := range output.Users {
		users = append(users, dto.ToAdminUserResponse(u))
	}

	roleCounts := make(map[string]int64, len(output.RoleCounts))
	for role, count := range output.RoleCounts {
		roleCounts[string(role)] = count
	}

	ctx.JSON(http.StatusOK, dto.OverviewResponse{
		TotalUsers: len(users),
		RoleCounts: roleCounts,
		Users:      users,
	})
}

// Audit handles GET /admin/audit requests. Supports user_id and limit
// query parameters.
func (c *AdminController) Audit(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "limit must be a non-negative integer",
			})
			return
		}
		limit = parsed
	}

	output, err := c.auditUseCase.Execute(ctx.Request.Context(), admin.ListAuditEventsInput{
		UserID: ctx.Query("user_id"),
		Limit:  limit,
	})
	if err != nil {
		c.handleAdminError(ctx, err)
		return
	}

	events := make([]dto.AuditEventResponse, 0, len(output.Events))
	for _, event := range output.Events {
		events = append(events, dto.ToAuditEventResponse(event))
	}

	ctx.JSON(http.StatusOK, dto.AuditListResponse{
		Events: events,
		Count:  len(events),
	})
}

// Unlock handles POST /admin/users/:userId/unlock requests. The path
// parameter is the public account identifier.
func (c *AdminController) Unlock(ctx *gin.Context) {
	unlockedBy, _ := middleware.GetUserEmailFromContext(ctx)

	output, err := c.unlockUseCase.Execute(ctx.Request.Context(), admin.UnlockAccountInput{
		UserID:     ctx.Param("userId"),
		UnlockedBy: unlockedBy,
		ClientIP:   ctx.ClientIP(),
	})
	if err != nil {
		c.handleAdminError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UnlockResponse{
		Message: "Account unlocked",
		User:    dto.ToAdminUserResponse(output.User),
	})
}

// handleAdminError handles admin errors and returns appropriate HTTP
// responses. Unknown accounts are 404 here, unlike login where the same
// code hides behind 401.
func (c *AdminController) handleAdminError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		status := http.StatusInternalServerError
		if authErr.Code == domainerror.ErrCodeUserNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
