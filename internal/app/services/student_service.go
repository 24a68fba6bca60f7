package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/studentdesk/internal/app/auth"
	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/app/repositories"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	"github.com/yigit/studentdesk/internal/pkg/events"
	"github.com/yigit/studentdesk/internal/pkg/validation"
)

// StudentService defines the student record operations available to an identity
type StudentService interface {
	List(ctx context.Context, identity models.Identity) ([]*models.Student, error)
	Get(ctx context.Context, identity models.Identity, id int64) (*models.Student, error)
	// GetOwned returns the record linked to identity, or nil when there is none
	GetOwned(ctx context.Context, identity models.Identity) (*models.Student, error)
	Create(ctx context.Context, identity models.Identity, in models.StudentInput) (*models.Student, error)
	Update(ctx context.Context, identity models.Identity, id int64, in models.StudentInput) (*models.Student, error)
	Delete(ctx context.Context, identity models.Identity, id int64) error
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	students  repositories.StudentStore
	users     repositories.UserStore
	schema    *validation.Schema
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(
	students repositories.StudentStore,
	users repositories.UserStore,
	schema *validation.Schema,
	publisher events.Publisher,
	logger zerolog.Logger,
) StudentService {
	if schema == nil {
		schema = validation.Default
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &studentServiceImpl{
		students:  students,
		users:     users,
		schema:    schema,
		publisher: publisher,
		logger:    logger,
	}
}

// SortByName orders records by full name, case-insensitively, keeping ties stable
func SortByName(records []*models.Student) {
	slices.SortStableFunc(records, func(a, b *models.Student) int {
		return strings.Compare(strings.ToLower(a.FullName), strings.ToLower(b.FullName))
	})
}

// List returns every record for identities allowed to view all
func (s *studentServiceImpl) List(ctx context.Context, identity models.Identity) ([]*models.Student, error) {
	if err := auth.Authorize(identity, auth.OpViewAll, nil); err != nil {
		return nil, err
	}

	records, err := s.students.List(ctx)
	if err != nil {
		return nil, translateStoreError("list students", err)
	}
	SortByName(records)
	return records, nil
}

// Get returns a single record the identity may view
func (s *studentServiceImpl) Get(ctx context.Context, identity models.Identity, id int64) (*models.Student, error) {
	if !auth.MayAttempt(identity.Role, auth.OpView) {
		return nil, auth.Authorize(identity, auth.OpView, nil)
	}

	record, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, translateStoreError("get student", err)
	}
	if err := auth.Authorize(identity, auth.OpView, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetOwned returns the record linked to the identity
func (s *studentServiceImpl) GetOwned(ctx context.Context, identity models.Identity) (*models.Student, error) {
	if !auth.CanView(identity.Role, auth.SectionProfile) {
		return nil, fmt.Errorf("%w: profile is only available to students", apperrors.ErrPermissionDenied)
	}

	record, err := s.students.GetByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, translateStoreError("get owned student", err)
	}
	return record, nil
}

// Create stores a new record after the policy and validation checks pass
func (s *studentServiceImpl) Create(ctx context.Context, identity models.Identity, in models.StudentInput) (*models.Student, error) {
	if err := auth.Authorize(identity, auth.OpCreate, nil); err != nil {
		return nil, err
	}
	if err := s.schema.Student(in); err != nil {
		return nil, err
	}
	if in.OwnerUserID != nil {
		if err := s.checkOwner(ctx, *in.OwnerUserID); err != nil {
			return nil, err
		}
	}

	record := &models.Student{}
	normalize(in).Apply(record)

	created, err := s.students.Insert(ctx, record)
	if err != nil {
		return nil, translateStoreError("create student", err)
	}

	s.publish(ctx, events.New(events.StudentCreated, created.ID, identity))
	return created, nil
}

// Update replaces the fields of an existing record
func (s *studentServiceImpl) Update(ctx context.Context, identity models.Identity, id int64, in models.StudentInput) (*models.Student, error) {
	if !auth.MayAttempt(identity.Role, auth.OpEdit) {
		return nil, auth.Authorize(identity, auth.OpEdit, nil)
	}

	current, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, translateStoreError("get student", err)
	}
	if err := auth.Authorize(identity, auth.OpEdit, current); err != nil {
		return nil, err
	}

	relink := in.OwnerUserID != nil && !current.IsOwnedBy(*in.OwnerUserID)
	if relink && !identity.Role.IsStaff() {
		return nil, fmt.Errorf("%w: students cannot change the linked account", apperrors.ErrPermissionDenied)
	}

	if err := s.schema.Student(in); err != nil {
		return nil, err
	}
	if relink {
		if err := s.checkOwner(ctx, *in.OwnerUserID); err != nil {
			return nil, err
		}
	}

	normalize(in).Apply(current)

	updated, err := s.students.Update(ctx, current)
	if err != nil {
		return nil, translateStoreError("update student", err)
	}

	s.publish(ctx, events.New(events.StudentUpdated, updated.ID, identity))
	return updated, nil
}

// Delete permanently removes a record. Denied roles never reach the store.
func (s *studentServiceImpl) Delete(ctx context.Context, identity models.Identity, id int64) error {
	if err := auth.Authorize(identity, auth.OpDelete, nil); err != nil {
		return err
	}

	if err := s.students.Delete(ctx, id); err != nil {
		return translateStoreError("delete student", err)
	}

	s.publish(ctx, events.New(events.StudentDeleted, id, identity))
	return nil
}

// checkOwner requires the linked account to exist and to be a student
func (s *studentServiceImpl) checkOwner(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) || apperrors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.NewValidationError(map[string]string{"ownerUserId": "ownerUserId must reference an existing account"})
		}
		return translateStoreError("get user", err)
	}
	if user.Role != models.RoleStudent {
		return apperrors.NewValidationError(map[string]string{"ownerUserId": "ownerUserId must reference a student account"})
	}
	return nil
}

func (s *studentServiceImpl) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn().Err(err).
			Str("type", string(event.Type)).
			Int64("studentID", event.StudentID).
			Msg("Failed to publish student event")
	}
}

// normalize trims the free-text fields before they are stored
func normalize(in models.StudentInput) models.StudentInput {
	in.FullName = strings.TrimSpace(in.FullName)
	in.EnrollmentCode = strings.TrimSpace(in.EnrollmentCode)
	in.Program = strings.TrimSpace(in.Program)
	in.Email = strings.TrimSpace(in.Email)
	return in
}
