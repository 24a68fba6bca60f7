package dberrors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn" // Import pgconn for PgError
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

// Postgres unique constraints on the students table
const (
	ConstraintEnrollmentCode = "students_enrollment_code_key"
	ConstraintEmail          = "students_email_key"
	ConstraintOwner          = "students_owner_user_id_key"
	ConstraintUserEmail      = "users_email_key"
)

// pgUniqueViolation is the SQLSTATE for unique_violation
const pgUniqueViolation = "23505"

// constraintFields maps constraint names (Postgres) and table.column pairs (SQLite)
// to the json field they protect.
var constraintFields = map[string]string{
	ConstraintEnrollmentCode:   "enrollmentCode",
	ConstraintEmail:            "email",
	ConstraintOwner:            "ownerUserId",
	ConstraintUserEmail:        "email",
	"students.enrollment_code": "enrollmentCode",
	"students.email":           "email",
	"students.owner_user_id":   "ownerUserId",
	"users.email":              "email",
}

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraintName
}

// UniqueViolation reports whether err is a unique violation from either store and
// returns the constraint that fired.
func UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}
		return pgErr.ConstraintName, true
	}

	var liteErr *sqlite.Error
	if !errors.As(err, &liteErr) {
		return "", false
	}
	if liteErr.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE && liteErr.Code() != sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
		return "", false
	}

	// SQLite: "UNIQUE constraint failed: students.email (2067)"
	const marker = "UNIQUE constraint failed: "
	msg := err.Error()
	idx := strings.Index(msg, marker)
	if idx < 0 {
		return "", false
	}
	column := msg[idx+len(marker):]
	if end := strings.IndexAny(column, " ,"); end >= 0 {
		column = column[:end]
	}
	return column, true
}

// AsConstraintError converts a unique violation into an apperrors.ConstraintError.
// Any other error is returned unchanged.
func AsConstraintError(err error) error {
	constraint, ok := UniqueViolation(err)
	if !ok {
		return err
	}
	return &apperrors.ConstraintError{
		Field:      constraintFields[constraint],
		Constraint: constraint,
	}
}
