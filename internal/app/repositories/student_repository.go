package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	"github.com/yigit/studentdesk/internal/pkg/dberrors"
	"github.com/yigit/studentdesk/internal/pkg/logger"
)

var studentColumns = []string{
	"id", "full_name", "enrollment_code", "program", "email",
	"status", "owner_user_id", "created_at", "updated_at",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db DBTX) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	var status string
	err := row.Scan(&s.ID, &s.FullName, &s.EnrollmentCode, &s.Program, &s.Email,
		&status, &s.OwnerUserID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Status = models.StudentStatus(status)
	return s, nil
}

// List retrieves all students ordered by name, case-insensitively
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("LOWER(full_name) ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, apperrors.ErrStudentNotFound)
}

// GetByOwner retrieves the student linked to a user; nil when none is linked
func (r *StudentRepository) GetByOwner(ctx context.Context, userID uuid.UUID) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"owner_user_id": userID}, nil)
}

func (r *StudentRepository) getOne(ctx context.Context, where squirrel.Eq, notFound error) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound
		}
		logger.Error().Err(err).Interface("where", where).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return s, nil
}

// Insert creates a new student and returns the stored record
func (r *StudentRepository) Insert(ctx context.Context, student *models.Student) (*models.Student, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("full_name", "enrollment_code", "program", "email", "status", "owner_user_id").
		Values(student.FullName, student.EnrollmentCode, student.Program, student.Email, string(student.Status), student.OwnerUserID).
		Suffix("RETURNING " + strings.Join(studentColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert student query: %w", err)
	}

	created, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if _, ok := dberrors.UniqueViolation(err); ok {
			return nil, dberrors.AsConstraintError(err)
		}
		logger.Error().Err(err).Msg("Error executing insert student query")
		return nil, fmt.Errorf("error creating student: %w", err)
	}
	return created, nil
}

// Update replaces the editable fields of a student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) (*models.Student, error) {
	sql, args, err := r.sb.Update("students").
		SetMap(map[string]interface{}{
			"full_name":       student.FullName,
			"enrollment_code": student.EnrollmentCode,
			"program":         student.Program,
			"email":           student.Email,
			"status":          string(student.Status),
			"owner_user_id":   student.OwnerUserID,
			"updated_at":      squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": student.ID}).
		Suffix("RETURNING " + strings.Join(studentColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update student query: %w", err)
	}

	updated, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		if _, ok := dberrors.UniqueViolation(err); ok {
			return nil, dberrors.AsConstraintError(err)
		}
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return nil, fmt.Errorf("error updating student: %w", err)
	}
	return updated, nil
}

// Delete permanently removes a student
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Count returns the number of stored students
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From("students").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var n int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return n, nil
}
