package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/app/services"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	"github.com/yigit/studentdesk/internal/pkg/validation"
)

// memoryStore is just enough of a StudentStore for the profile flows
type memoryStore struct {
	records map[int64]*models.Student
	err     error
}

func (m *memoryStore) List(context.Context) ([]*models.Student, error) { return nil, m.err }
func (m *memoryStore) Count(context.Context) (int, error)              { return len(m.records), m.err }
func (m *memoryStore) Insert(context.Context, *models.Student) (*models.Student, error) {
	return nil, errors.New("not used")
}
func (m *memoryStore) Delete(context.Context, int64) error { return errors.New("not used") }

func (m *memoryStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.records[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memoryStore) GetByOwner(_ context.Context, userID uuid.UUID) (*models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, r := range m.records {
		if r.IsOwnedBy(userID) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memoryStore) Update(_ context.Context, s *models.Student) (*models.Student, error) {
	cp := *s
	m.records[s.ID] = &cp
	return &cp, nil
}

type noUsers struct{}

func (noUsers) GetByID(context.Context, uuid.UUID) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}
func (noUsers) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, apperrors.ErrUserNotFound
}
func (noUsers) Create(context.Context, *models.User) error   { return nil }
func (noUsers) List(context.Context) ([]*models.User, error) { return nil, nil }

func setup(t *testing.T) (*memoryStore, models.Identity, models.Identity) {
	t.Helper()
	owner := models.Identity{UserID: uuid.New(), Role: models.RoleStudent, DisplayName: "Maria"}
	stranger := models.Identity{UserID: uuid.New(), Role: models.RoleStudent, DisplayName: "Nobody"}
	store := &memoryStore{records: map[int64]*models.Student{
		1: {ID: 1, FullName: "Maria Souza", EnrollmentCode: "ENR-001", Program: "Physics", Email: "maria@school.edu", Status: models.StatusActive, OwnerUserID: &owner.UserID},
		2: {ID: 2, FullName: "Marco Rossi", EnrollmentCode: "ENR-002", Program: "History", Email: "marco@school.edu", Status: models.StatusActive},
	}}
	return store, owner, stranger
}

func newController(t *testing.T, store *memoryStore, identity models.Identity) *Controller {
	t.Helper()
	svc := services.NewStudentService(store, noUsers{}, validation.Default, nil, zerolog.Nop())
	c, err := NewController(svc, identity, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestProfile_OwnerSeesExactlyTheirRecord(t *testing.T) {
	store, owner, _ := setup(t)

	view, err := newController(t, store, owner).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateHasRecord, view.State)
	require.NotNil(t, view.Student)
	assert.Equal(t, int64(1), view.Student.ID)
	assert.Equal(t, owner, view.Identity)
}

func TestProfile_NoLinkedRecord(t *testing.T) {
	store, _, stranger := setup(t)

	view, err := newController(t, store, stranger).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateNoRecord, view.State)
	assert.Nil(t, view.Student)
}

func TestProfile_FetchFailureFallsBackToNoRecord(t *testing.T) {
	store, owner, _ := setup(t)
	store.err = errors.New("connection refused")

	view, err := newController(t, store, owner).Load(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrTransport)
	assert.Equal(t, StateNoRecord, view.State)
}

func TestProfile_StaffCannotOpen(t *testing.T) {
	_, err := NewController(nil, models.Identity{UserID: uuid.New(), Role: models.RoleAdmin}, zerolog.Nop())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestProfile_SelfEdit(t *testing.T) {
	store, owner, _ := setup(t)
	c := newController(t, store, owner)

	in := models.InputFrom(store.records[1])
	in.Program = "Astrophysics"
	view, err := c.Update(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Astrophysics", view.Student.Program)
	assert.Equal(t, StateHasRecord, view.State)
}

func TestProfile_SelfEditValidates(t *testing.T) {
	store, owner, _ := setup(t)
	c := newController(t, store, owner)

	in := models.InputFrom(store.records[1])
	in.Email = "not-an-email"
	_, err := c.Update(context.Background(), in)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	assert.Equal(t, "maria@school.edu", store.records[1].Email)
}

func TestProfile_EditWithoutRecord(t *testing.T) {
	store, _, stranger := setup(t)
	_, err := newController(t, store, stranger).Update(context.Background(), models.StudentInput{})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
