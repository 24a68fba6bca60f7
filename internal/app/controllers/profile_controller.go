package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/studentdesk/internal/app/models/dto"
	"github.com/yigit/studentdesk/internal/app/profile"
	"github.com/yigit/studentdesk/internal/app/services"
	"github.com/yigit/studentdesk/internal/middleware"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

// ProfileController serves a student's own record
type ProfileController struct {
	students services.StudentService
	logger   zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(students services.StudentService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		students: students,
		logger:   logger,
	}
}

func (c *ProfileController) mount(ctx *gin.Context) (*profile.Controller, bool) {
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return nil, false
	}

	ctl, err := profile.NewController(c.students, identity, c.logger)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return ctl, true
}

// GetProfile godoc
// @Summary Get my profile
// @Description Returns the record linked to the caller's account. State is no-record when none is linked.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=profile.View} "Profile view"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Students only"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	ctl, ok := c.mount(ctx)
	if !ok {
		return
	}

	view, err := ctl.Load(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view))
}

// UpdateProfile godoc
// @Summary Update my profile
// @Description Edits the record linked to the caller's account and returns the reloaded view
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentRequest true "Student record"
// @Success 200 {object} dto.APIResponse{data=profile.View} "Profile view"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Students only"
// @Failure 404 {object} dto.ErrorResponse "No record linked to this account"
// @Failure 409 {object} dto.ErrorResponse "Enrollment code or email already in use"
// @Router /profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	ctl, ok := c.mount(ctx)
	if !ok {
		return
	}

	in, ok := bindStudentInput(ctx)
	if !ok {
		return
	}

	view, err := ctl.Update(ctx.Request.Context(), in)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to update profile")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view))
}
