package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yigit/studentdesk/internal/app/models"
)

// StudentStore is the record store the services talk to
type StudentStore interface {
	// List returns every record ordered by full name
	List(ctx context.Context) ([]*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	// GetByOwner returns the record linked to userID, or nil when there is none
	GetByOwner(ctx context.Context, userID uuid.UUID) (*models.Student, error)
	Insert(ctx context.Context, student *models.Student) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// UserStore holds login accounts
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
}

// DBTX is the subset of pgxpool.Pool / pgx.Tx the repositories use
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	Students StudentStore
	Users    UserStore
}

// NewRepositories initializes the Postgres repositories
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		Students: NewStudentRepository(db),
		Users:    NewUserRepository(db),
	}
}
