package auth

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

func identity(role models.Role) models.Identity {
	return models.Identity{UserID: uuid.New(), Role: role, DisplayName: string(role)}
}

func TestSections(t *testing.T) {
	assert.Equal(t, []Section{SectionDashboard, SectionDirectory}, Sections(models.RoleAdmin))
	assert.Equal(t, []Section{SectionDashboard, SectionDirectory}, Sections(models.RoleProfessor))
	assert.Equal(t, []Section{SectionProfile}, Sections(models.RoleStudent))
	assert.Empty(t, Sections("janitor"))

	assert.True(t, CanView(models.RoleStudent, SectionProfile))
	assert.False(t, CanView(models.RoleStudent, SectionDirectory))
	assert.False(t, CanView(models.RoleProfessor, SectionProfile))
}

func TestDashboardFor(t *testing.T) {
	assert.Equal(t, DashboardFull, DashboardFor(models.RoleAdmin))
	assert.Equal(t, DashboardFull, DashboardFor(models.RoleProfessor))
	assert.Equal(t, DashboardProfile, DashboardFor(models.RoleStudent))
	assert.Equal(t, DashboardNone, DashboardFor(""))
}

func TestCanPerform_Matrix(t *testing.T) {
	record := &models.Student{ID: 1}

	tests := []struct {
		role models.Role
		op   Operation
		want bool
	}{
		{models.RoleAdmin, OpCreate, true},
		{models.RoleAdmin, OpEdit, true},
		{models.RoleAdmin, OpDelete, true},
		{models.RoleAdmin, OpViewAll, true},
		{models.RoleAdmin, OpView, true},
		{models.RoleProfessor, OpCreate, true},
		{models.RoleProfessor, OpEdit, true},
		{models.RoleProfessor, OpDelete, false},
		{models.RoleProfessor, OpViewAll, true},
		{models.RoleProfessor, OpView, true},
		{models.RoleStudent, OpCreate, false},
		{models.RoleStudent, OpEdit, false},
		{models.RoleStudent, OpDelete, false},
		{models.RoleStudent, OpViewAll, false},
		{models.RoleStudent, OpView, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.op), func(t *testing.T) {
			assert.Equal(t, tt.want, CanPerform(identity(tt.role), tt.op, record))
		})
	}
}

func TestCanPerform_StudentOwnsRecord(t *testing.T) {
	me := identity(models.RoleStudent)
	mine := &models.Student{ID: 1, OwnerUserID: &me.UserID}
	other := uuid.New()
	theirs := &models.Student{ID: 2, OwnerUserID: &other}

	assert.True(t, CanPerform(me, OpView, mine))
	assert.True(t, CanPerform(me, OpEdit, mine))
	assert.False(t, CanPerform(me, OpDelete, mine))
	assert.False(t, CanPerform(me, OpView, theirs))
	assert.False(t, CanPerform(me, OpEdit, theirs))
	assert.False(t, CanPerform(me, OpView, &models.Student{ID: 3}))
	assert.False(t, CanPerform(me, OpView, nil))
}

func TestCanPerform_UnknownRoleAndOperation(t *testing.T) {
	for _, op := range []Operation{OpCreate, OpEdit, OpDelete, OpViewAll, OpView} {
		assert.False(t, CanPerform(identity("guest"), op, &models.Student{}))
	}
	assert.False(t, CanPerform(identity(models.RoleAdmin), "archive", nil))
}

func TestMayAttemptAgreesWithCanPerform(t *testing.T) {
	for _, role := range models.AllRoles {
		id := identity(role)
		owned := &models.Student{OwnerUserID: &id.UserID}
		for _, op := range []Operation{OpCreate, OpEdit, OpDelete, OpViewAll, OpView} {
			if !MayAttempt(role, op) {
				assert.False(t, CanPerform(id, op, owned), "%s/%s", role, op)
			} else {
				assert.True(t, CanPerform(id, op, owned), "%s/%s", role, op)
			}
		}
	}
}

func TestAuthorize(t *testing.T) {
	err := Authorize(identity(models.RoleProfessor), OpDelete, &models.Student{})
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
	assert.NoError(t, Authorize(identity(models.RoleAdmin), OpDelete, &models.Student{}))
}
