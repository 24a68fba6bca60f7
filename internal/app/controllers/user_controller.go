package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/app/models/dto"
	"github.com/yigit/studentdesk/internal/app/services"
	"github.com/yigit/studentdesk/internal/middleware"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

// UserController exposes login accounts to staff so records can be linked to them
type UserController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(authService *services.AuthService, logger zerolog.Logger) *UserController {
	return &UserController{
		authService: authService,
		logger:      logger,
	}
}

// ListUsers godoc
// @Summary List accounts
// @Description Lists login accounts, optionally narrowed to one role. Used to pick the account a student record is linked to.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Only accounts with this role" Enums(admin, professor, student)
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Accounts"
// @Failure 400 {object} dto.ErrorResponse "Unknown role"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Staff only"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	role := models.Role(ctx.Query("role"))
	if role != "" && !role.Valid() {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Unknown role"))
		return
	}

	users, err := c.authService.ListUsers(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list users")
		middleware.HandleAPIError(ctx, err)
		return
	}

	result := make([]*models.User, 0, len(users))
	for _, u := range users {
		if role == "" || u.Role == role {
			result = append(result, u)
		}
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
