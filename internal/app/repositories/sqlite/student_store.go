package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	"github.com/yigit/studentdesk/internal/pkg/dberrors"
	"github.com/yigit/studentdesk/internal/pkg/logger"
)

var studentColumns = []string{
	"id", "full_name", "enrollment_code", "program", "email",
	"status", "owner_user_id", "created_at", "updated_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

// StudentStore keeps student records in SQLite
type StudentStore struct {
	db  *sql.DB
	sb  squirrel.StatementBuilderType
	now func() time.Time
}

// NewStudentStore creates a StudentStore over an opened database
func NewStudentStore(database *sql.DB) *StudentStore {
	return &StudentStore{
		db:  database,
		sb:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		now: func() time.Time { return time.Now().UTC() },
	}
}

func scanStudent(row rowScanner) (*models.Student, error) {
	var (
		s                models.Student
		status           string
		owner            sql.NullString
		created, updated string
	)
	if err := row.Scan(&s.ID, &s.FullName, &s.EnrollmentCode, &s.Program, &s.Email,
		&status, &owner, &created, &updated); err != nil {
		return nil, err
	}
	s.Status = models.StudentStatus(status)

	if owner.Valid {
		id, err := uuid.Parse(owner.String)
		if err != nil {
			return nil, fmt.Errorf("invalid owner_user_id %q: %w", owner.String, err)
		}
		s.OwnerUserID = &id
	}

	var err error
	if s.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &s, nil
}

func parseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", v, err)
	}
	return t, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func ownerArg(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

// List returns every record ordered by full name, case-insensitively
func (s *StudentStore) List(ctx context.Context) ([]*models.Student, error) {
	query, args, err := s.sb.Select(studentColumns...).
		From("students").
		OrderBy("LOWER(full_name) ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

// GetByID returns a single record
func (s *StudentStore) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.getOne(ctx, squirrel.Eq{"id": id}, apperrors.ErrStudentNotFound)
}

// GetByOwner returns the record linked to userID, or nil when there is none
func (s *StudentStore) GetByOwner(ctx context.Context, userID uuid.UUID) (*models.Student, error) {
	return s.getOne(ctx, squirrel.Eq{"owner_user_id": userID.String()}, nil)
}

func (s *StudentStore) getOne(ctx context.Context, where squirrel.Eq, notFound error) (*models.Student, error) {
	query, args, err := s.sb.Select(studentColumns...).
		From("students").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound
		}
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return student, nil
}

// Insert stores a new record and returns it with its assigned id
func (s *StudentStore) Insert(ctx context.Context, student *models.Student) (*models.Student, error) {
	now := formatTime(s.now())
	query, args, err := s.sb.Insert("students").
		Columns("full_name", "enrollment_code", "program", "email", "status", "owner_user_id", "created_at", "updated_at").
		Values(student.FullName, student.EnrollmentCode, student.Program, student.Email,
			string(student.Status), ownerArg(student.OwnerUserID), now, now).
		Suffix("RETURNING " + strings.Join(studentColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert student query: %w", err)
	}

	created, err := scanStudent(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if _, ok := dberrors.UniqueViolation(err); ok {
			return nil, dberrors.AsConstraintError(err)
		}
		logger.Error().Err(err).Msg("Error executing insert student query")
		return nil, fmt.Errorf("error creating student: %w", err)
	}
	return created, nil
}

// Update replaces the editable fields of a record
func (s *StudentStore) Update(ctx context.Context, student *models.Student) (*models.Student, error) {
	query, args, err := s.sb.Update("students").
		Set("full_name", student.FullName).
		Set("enrollment_code", student.EnrollmentCode).
		Set("program", student.Program).
		Set("email", student.Email).
		Set("status", string(student.Status)).
		Set("owner_user_id", ownerArg(student.OwnerUserID)).
		Set("updated_at", formatTime(s.now())).
		Where(squirrel.Eq{"id": student.ID}).
		Suffix("RETURNING " + strings.Join(studentColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update student query: %w", err)
	}

	updated, err := scanStudent(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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

// Delete permanently removes a record
func (s *StudentStore) Delete(ctx context.Context, id int64) error {
	query, args, err := s.sb.Delete("students").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if n == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Count returns the number of stored records
func (s *StudentStore) Count(ctx context.Context) (int, error) {
	query, args, err := s.sb.Select("COUNT(*)").From("students").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return n, nil
}
