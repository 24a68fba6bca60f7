package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

func TestAggregate(t *testing.T) {
	summary := Aggregate([]*models.Student{
		student("A", "1", "Physics", models.StatusActive),
		student("B", "2", "History", models.StatusActive),
		student("C", "3", "Physics", models.StatusInactive),
	})

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.ActiveCount)
	assert.Equal(t, 1, summary.InactiveCount)
	assert.Equal(t, []ProgramCount{{Program: "Physics", Count: 2}, {Program: "History", Count: 1}}, summary.ByProgram)
}

func TestAggregate_Empty(t *testing.T) {
	summary := Aggregate(nil)
	assert.Zero(t, summary.Total)
	assert.Zero(t, summary.InactiveCount)
	assert.NotNil(t, summary.ByProgram)
	assert.Empty(t, summary.ByProgram)
}

func TestDashboardService_Summary(t *testing.T) {
	store := newFakeStudentStore(
		student("A", "1", "Physics", models.StatusActive),
		student("B", "2", "Physics", models.StatusInactive),
	)
	svc := NewDashboardService(newTestStudentService(store, nil, nil))

	for _, role := range []models.Role{models.RoleAdmin, models.RoleProfessor} {
		summary, err := svc.Summary(context.Background(), identityOf(role))
		require.NoError(t, err)
		assert.Equal(t, 2, summary.Total)
		assert.Equal(t, 1, summary.ActiveCount)
	}
	assert.Equal(t, 2, store.count("list"))
}

func TestDashboardService_StudentDenied(t *testing.T) {
	store := newFakeStudentStore()
	_, err := NewDashboardService(newTestStudentService(store, nil, nil)).Summary(context.Background(), identityOf(models.RoleStudent))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, 0, store.count("list"))
}
