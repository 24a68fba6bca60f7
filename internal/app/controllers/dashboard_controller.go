package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/studentdesk/internal/app/auth"
	"github.com/yigit/studentdesk/internal/app/models/dto"
	"github.com/yigit/studentdesk/internal/app/services"
	"github.com/yigit/studentdesk/internal/middleware"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

// DashboardController serves the landing dashboard
type DashboardController struct {
	dashboard *services.DashboardService
	logger    zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboard *services.DashboardService, logger zerolog.Logger) *DashboardController {
	return &DashboardController{
		dashboard: dashboard,
		logger:    logger,
	}
}

// GetDashboard godoc
// @Summary Dashboard
// @Description Staff get record totals by status and program. Students are pointed to their profile.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse{summary=services.Summary}} "Dashboard view"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "No dashboard for this role"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	switch appAuth.DashboardFor(identity.Role) {
	case appAuth.DashboardProfile:
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.DashboardResponse{View: "profile"}))
	case appAuth.DashboardFull:
		summary, err := c.dashboard.Summary(ctx.Request.Context(), identity)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Dashboard summary failed")
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.DashboardResponse{View: "summary", Summary: summary}))
	default:
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
	}
}
