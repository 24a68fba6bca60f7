package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/studentdesk/internal/app/directory"
	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/app/models/dto"
	"github.com/yigit/studentdesk/internal/app/services"
	"github.com/yigit/studentdesk/internal/middleware"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	"github.com/yigit/studentdesk/internal/pkg/helpers"
)

// StudentController serves the student directory. Each caller works against
// their own directory session.
type StudentController struct {
	sessions *directory.Sessions
	students services.StudentService
	logger   zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(sessions *directory.Sessions, students services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		sessions: sessions,
		students: students,
		logger:   logger,
	}
}

// session returns the caller's directory, writing the error response when it cannot
func (c *StudentController) session(ctx *gin.Context) (*directory.Controller, bool) {
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return nil, false
	}

	dir, err := c.sessions.Get(identity)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return dir, true
}

// GetStudents godoc
// @Summary List students
// @Description Mounts the caller's directory, fetching every record on first use. Pass refresh=true to fetch again. q narrows the list by full name, enrollment code, program or email.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search query"
// @Param refresh query bool false "Fetch the records again"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse} "Directory view"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Directory not available for this role"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /students [get]
func (c *StudentController) GetStudents(ctx *gin.Context) {
	dir, ok := c.session(ctx)
	if !ok {
		return
	}

	var err error
	switch {
	case ctx.Query("refresh") == "true":
		err = dir.Refresh(ctx.Request.Context())
	case dir.State() != directory.StateReady:
		err = dir.Load(ctx.Request.Context())
	}
	if err != nil {
		c.logger.Warn().Err(err).Msg("Directory fetch failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	if q, present := ctx.GetQuery("q"); present {
		if _, err := dir.Search(q); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.listResponse(ctx, dir)))
}

// SearchStudents godoc
// @Summary Search loaded students
// @Description Filters the records already fetched by the caller's directory. No fetch is made.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search query, empty shows every record"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse} "Directory view"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Directory not available for this role"
// @Failure 409 {object} dto.ErrorResponse "Directory not loaded yet"
// @Router /students/search [get]
func (c *StudentController) SearchStudents(ctx *gin.Context) {
	dir, ok := c.session(ctx)
	if !ok {
		return
	}

	if _, err := dir.Search(ctx.Query("q")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.listResponse(ctx, dir)))
}

func (c *StudentController) listResponse(ctx *gin.Context, dir *directory.Controller) dto.StudentListResponse {
	visible := dir.Visible()
	page, size := helpers.ParsePaginationParams(ctx)
	start, end := helpers.CalculateSliceIndices(page, size, len(visible))
	if end > len(visible) {
		end = len(visible)
	}

	return dto.StudentListResponse{
		State:         string(dir.State()),
		Query:         dir.Query(),
		Items:         visible[start:end],
		Pagination:    helpers.NewPaginationInfo(int64(len(visible)), page, size),
		PendingDelete: dir.PendingDelete(),
	}
}

// GetStudent godoc
// @Summary Get a student
// @Description Returns one student record. Students may only read the record linked to their account.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student record"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	identity, ok := middleware.GetIdentity(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	id, ok := parseStudentID(ctx)
	if !ok {
		return
	}

	student, err := c.students.Get(ctx.Request.Context(), identity, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// CreateStudent godoc
// @Summary Create a student
// @Description Validates and stores a new record, then refreshes the caller's directory
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentRequest true "Student record"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Created record"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 409 {object} dto.ErrorResponse "Enrollment code, email or account already in use"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	dir, ok := c.session(ctx)
	if !ok {
		return
	}

	in, ok := bindStudentInput(ctx)
	if !ok {
		return
	}

	student, err := dir.Create(ctx.Request.Context(), in)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to create student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student))
}

// UpdateStudent godoc
// @Summary Update a student
// @Description Replaces the editable fields of a record, then refreshes the caller's directory
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.StudentRequest true "Student record"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Updated record"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Enrollment code, email or account already in use"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	dir, ok := c.session(ctx)
	if !ok {
		return
	}

	id, ok := parseStudentID(ctx)
	if !ok {
		return
	}

	in, ok := bindStudentInput(ctx)
	if !ok {
		return
	}

	student, err := dir.Update(ctx.Request.Context(), id, in)
	if err != nil {
		c.logger.Warn().Err(err).Int64("studentID", id).Msg("Failed to update student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// RequestDelete godoc
// @Summary Select a student for deletion
// @Description Marks a loaded record as awaiting confirmation. Nothing is deleted until the request is confirmed.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.DeleteRequestResponse} "Awaiting confirmation"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Student not loaded"
// @Failure 409 {object} dto.ErrorResponse "Directory not loaded yet"
// @Router /students/{id}/delete-request [post]
func (c *StudentController) RequestDelete(ctx *gin.Context) {
	dir, ok := c.session(ctx)
	if !ok {
		return
	}

	id, ok := parseStudentID(ctx)
	if !ok {
		return
	}

	pending, err := dir.RequestDelete(id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.DeleteRequestResponse{
		Pending: pending,
		Message: "Confirm to permanently delete this student",
	}))
}

// ConfirmDelete godoc
// @Summary Confirm the pending deletion
// @Description Deletes the record selected with delete-request. The selection is cleared whatever the outcome.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Student deleted"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Student no longer exists"
// @Failure 409 {object} dto.ErrorResponse "No delete is awaiting confirmation"
// @Failure 502 {object} dto.ErrorResponse "Backend unavailable"
// @Router /students/delete-request/confirm [post]
func (c *StudentController) ConfirmDelete(ctx *gin.Context) {
	dir, ok := c.session(ctx)
	if !ok {
		return
	}

	if err := dir.ConfirmDelete(ctx.Request.Context()); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to delete student")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Student deleted"}))
}

// CancelDelete godoc
// @Summary Cancel the pending deletion
// @Description Clears the record selected with delete-request without deleting it
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Selection cleared"
// @Failure 403 {object} dto.ErrorResponse "Directory not available for this role"
// @Router /students/delete-request [delete]
func (c *StudentController) CancelDelete(ctx *gin.Context) {
	dir, ok := c.session(ctx)
	if !ok {
		return
	}

	dir.CancelDelete()
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Delete cancelled"}))
}

func parseStudentID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid student ID"))
		return 0, false
	}
	return id, true
}

func bindStudentInput(ctx *gin.Context) (models.StudentInput, bool) {
	var req dto.StudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return models.StudentInput{}, false
	}

	in, err := req.ToInput()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return models.StudentInput{}, false
	}
	return in, true
}
