package profile

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/studentdesk/internal/app/auth"
	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/app/services"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

// State of the profile view
type State string

const (
	StateLoading   State = "loading"
	StateHasRecord State = "has-record"
	StateNoRecord  State = "no-record"
)

// View is what the profile page renders
type View struct {
	State    State           `json:"state" example:"has-record" enums:"loading,has-record,no-record"`
	Identity models.Identity `json:"identity"`
	Student  *models.Student `json:"student,omitempty"`
}

// Controller shows a student the one record linked to their account
type Controller struct {
	students services.StudentService
	identity models.Identity
	logger   zerolog.Logger
}

// NewController creates a profile controller for identity
func NewController(students services.StudentService, identity models.Identity, logger zerolog.Logger) (*Controller, error) {
	if !auth.CanView(identity.Role, auth.SectionProfile) {
		return nil, fmt.Errorf("%w: profile is not available to %s", apperrors.ErrPermissionDenied, identity.Role)
	}
	return &Controller{students: students, identity: identity, logger: logger}, nil
}

// Load fetches the linked record. On a failed fetch the view falls back to
// no-record and the error is returned alongside it.
func (c *Controller) Load(ctx context.Context) (View, error) {
	view := View{State: StateNoRecord, Identity: c.identity}

	record, err := c.students.GetOwned(ctx, c.identity)
	if err != nil {
		c.logger.Warn().Err(err).Str("userID", c.identity.UserID.String()).Msg("Profile fetch failed")
		return view, err
	}
	if record != nil {
		view.State = StateHasRecord
		view.Student = record
	}
	return view, nil
}

// Update applies a self-edit to the linked record and returns the refreshed view
func (c *Controller) Update(ctx context.Context, in models.StudentInput) (View, error) {
	current, err := c.Load(ctx)
	if err != nil {
		return current, err
	}
	if current.Student == nil {
		return current, apperrors.ErrStudentNotFound
	}

	if _, err := c.students.Update(ctx, c.identity, current.Student.ID, in); err != nil {
		return current, err
	}
	return c.Load(ctx)
}
