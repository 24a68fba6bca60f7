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
)

// UserStore keeps login accounts in SQLite
type UserStore struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

// NewUserStore creates a UserStore over an opened database
func NewUserStore(database *sql.DB) *UserStore {
	return &UserStore{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u         models.User
		id, role  string
		createdAt string
	)
	if err := row.Scan(&id, &u.Email, &u.PasswordHash, &u.DisplayName, &role, &createdAt); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}
	u.ID = parsed
	u.Role = models.Role(role)
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) selectUsers() squirrel.SelectBuilder {
	return s.sb.Select("id", "email", "password_hash", "display_name", "role", "created_at").From("users")
}

// GetByID returns a user by id
func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getOne(ctx, squirrel.Eq{"id": id.String()})
}

// GetByEmail returns a user by email, case-insensitively
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getOne(ctx, squirrel.Expr("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))))
}

func (s *UserStore) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	query, args, err := s.selectUsers().Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	u, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return u, nil
}

// Create stores a new user; the caller assigns the ID
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	query, args, err := s.sb.Insert("users").
		Columns("id", "email", "password_hash", "display_name", "role", "created_at").
		Values(user.ID.String(), user.Email, user.PasswordHash, user.DisplayName, string(user.Role), formatTime(user.CreatedAt)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if _, ok := dberrors.UniqueViolation(err); ok {
			return dberrors.AsConstraintError(err)
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// List returns all users ordered by role then name
func (s *UserStore) List(ctx context.Context) ([]*models.User, error) {
	query, args, err := s.selectUsers().OrderBy("role ASC", "LOWER(display_name) ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
