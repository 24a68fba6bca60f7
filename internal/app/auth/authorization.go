package auth

import (
	"fmt"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

// Operation is an action requested against student records
type Operation string

const (
	OpCreate  Operation = "create"
	OpEdit    Operation = "edit"
	OpDelete  Operation = "delete"
	OpViewAll Operation = "view-all"
	OpView    Operation = "view"
)

// Section is a navigable area of the dashboard
type Section string

const (
	SectionDashboard Section = "dashboard"
	SectionDirectory Section = "directory"
	SectionProfile   Section = "profile"
)

// DashboardScope describes what the dashboard section shows for a role
type DashboardScope string

const (
	DashboardFull    DashboardScope = "full"
	DashboardProfile DashboardScope = "profile-only"
	DashboardNone    DashboardScope = "none"
)

// Sections returns the sections visible to a role, in navigation order.
// Unknown roles see nothing.
func Sections(role models.Role) []Section {
	switch role {
	case models.RoleAdmin, models.RoleProfessor:
		return []Section{SectionDashboard, SectionDirectory}
	case models.RoleStudent:
		return []Section{SectionProfile}
	default:
		return nil
	}
}

// CanView reports whether role may open section
func CanView(role models.Role, section Section) bool {
	for _, s := range Sections(role) {
		if s == section {
			return true
		}
	}
	return false
}

// DashboardFor returns the dashboard variant for a role
func DashboardFor(role models.Role) DashboardScope {
	switch role {
	case models.RoleAdmin, models.RoleProfessor:
		return DashboardFull
	case models.RoleStudent:
		return DashboardProfile
	default:
		return DashboardNone
	}
}

// CanPerform decides whether identity may run op on record.
// record may be nil for operations that do not target a single record.
func CanPerform(identity models.Identity, op Operation, record *models.Student) bool {
	switch identity.Role {
	case models.RoleAdmin:
		return isKnown(op)
	case models.RoleProfessor:
		switch op {
		case OpCreate, OpEdit, OpViewAll, OpView:
			return true
		}
		return false
	case models.RoleStudent:
		switch op {
		case OpView, OpEdit:
			return record.IsOwnedBy(identity.UserID)
		}
		return false
	default:
		return false
	}
}

// Authorize returns a permission error when identity may not run op on record
func Authorize(identity models.Identity, op Operation, record *models.Student) error {
	if CanPerform(identity, op, record) {
		return nil
	}
	return fmt.Errorf("%w: %s may not %s this record", apperrors.ErrPermissionDenied, roleLabel(identity.Role), op)
}

// MayAttempt is the record-independent pre-check: false means op is denied for the
// role whatever the record, so no store call is needed to refuse it.
func MayAttempt(role models.Role, op Operation) bool {
	switch role {
	case models.RoleAdmin:
		return isKnown(op)
	case models.RoleProfessor:
		return op != OpDelete && isKnown(op)
	case models.RoleStudent:
		return op == OpView || op == OpEdit
	default:
		return false
	}
}

func isKnown(op Operation) bool {
	switch op {
	case OpCreate, OpEdit, OpDelete, OpViewAll, OpView:
		return true
	}
	return false
}

func roleLabel(role models.Role) string {
	if role.Valid() {
		return string(role)
	}
	return "unknown role"
}
