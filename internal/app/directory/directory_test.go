package directory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

// stubService answers List from a queue of scripted responses
type stubService struct {
	mu        sync.Mutex
	responses []func() ([]*models.Student, error)
	listCalls int
	deleted   []int64
	deleteErr error
	created   int
}

func (s *stubService) List(context.Context, models.Identity) ([]*models.Student, error) {
	s.mu.Lock()
	s.listCalls++
	next := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	s.mu.Unlock()
	return next()
}

func (s *stubService) Get(context.Context, models.Identity, int64) (*models.Student, error) {
	return nil, apperrors.ErrStudentNotFound
}

func (s *stubService) GetOwned(context.Context, models.Identity) (*models.Student, error) {
	return nil, nil
}

func (s *stubService) Create(_ context.Context, _ models.Identity, in models.StudentInput) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created++
	r := &models.Student{ID: 100}
	in.Apply(r)
	return r, nil
}

func (s *stubService) Update(_ context.Context, _ models.Identity, id int64, in models.StudentInput) (*models.Student, error) {
	r := &models.Student{ID: id}
	in.Apply(r)
	return r, nil
}

func (s *stubService) Delete(_ context.Context, _ models.Identity, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubService) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

func returning(records ...*models.Student) func() ([]*models.Student, error) {
	return func() ([]*models.Student, error) { return records, nil }
}

func rec(id int64, name, code, program string) *models.Student {
	return &models.Student{
		ID:             id,
		FullName:       name,
		EnrollmentCode: code,
		Program:        program,
		Email:          code + "@school.edu",
		Status:         models.StatusActive,
	}
}

var (
	maria  = rec(1, "Maria Souza", "ENR-001", "Physics")
	marco  = rec(2, "Marco Rossi", "ENR-002", "History")
	carlos = rec(3, "Carlos Lima", "ENR-003", "Chemistry")
)

func staff(role models.Role) models.Identity {
	return models.Identity{UserID: uuid.New(), Role: role}
}

func mount(t *testing.T, svc *stubService, role models.Role) *Controller {
	t.Helper()
	c, err := NewController(svc, staff(role), zerolog.Nop())
	require.NoError(t, err)
	return c
}

func names(records []*models.Student) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.FullName
	}
	return out
}

func TestFilter(t *testing.T) {
	all := []*models.Student{maria, carlos, marco}

	assert.Equal(t, []string{"Maria Souza", "Marco Rossi"}, names(Filter(all, "mar")))
	assert.Equal(t, []string{"Maria Souza", "Marco Rossi"}, names(Filter(all, "MAR")))
	assert.Equal(t, []string{"Maria Souza", "Carlos Lima", "Marco Rossi"}, names(Filter(all, " ")))
	assert.Empty(t, Filter(all, "  MAR "))
	assert.Equal(t, []string{"Carlos Lima"}, names(Filter(all, "chem")))
	assert.Equal(t, []string{"Marco Rossi"}, names(Filter(all, "enr-002")))
	assert.Equal(t, []string{"Carlos Lima"}, names(Filter(all, "ENR-003@school")))
	assert.Len(t, Filter(all, ""), 3)
	assert.Empty(t, Filter(all, "zzz"))
}

func TestFilter_KeepsSurroundingSpaces(t *testing.T) {
	ana := rec(1, "Ana", "ENR-010", "Art")
	mariaSouza := rec(2, "Maria Souza", "ENR-011", "Art")
	all := []*models.Student{ana, mariaSouza}

	assert.Equal(t, []string{"Maria Souza"}, names(Filter(all, "a ")))
	assert.Equal(t, []string{"Maria Souza"}, names(Filter(all, " ")))
}

func TestController_StudentCannotMount(t *testing.T) {
	_, err := NewController(&stubService{}, staff(models.RoleStudent), zerolog.Nop())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestController_LoadAndSearch(t *testing.T) {
	svc := &stubService{responses: []func() ([]*models.Student, error){returning(maria, marco, carlos)}}
	c := mount(t, svc, models.RoleProfessor)
	assert.Equal(t, StateLoading, c.State())

	_, err := c.Search("carlos")
	assert.ErrorIs(t, err, apperrors.ErrDirectoryNotReady)
	assert.Empty(t, c.Query())

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, StateReady, c.State())
	assert.Len(t, c.Visible(), 3)

	visible, err := c.Search("mar")
	require.NoError(t, err)
	assert.Equal(t, []string{"Maria Souza", "Marco Rossi"}, names(visible))
	assert.Equal(t, "mar", c.Query())
	assert.Equal(t, names(visible), names(c.Visible()))
	assert.Len(t, c.All(), 3)

	_, err = c.Search("")
	require.NoError(t, err)
	assert.Len(t, c.Visible(), 3)
	assert.Equal(t, 1, svc.calls())
}

func TestController_FetchFailureEntersErrorState(t *testing.T) {
	boom := apperrors.NewTransportError("list students", errors.New("network down"))
	svc := &stubService{responses: []func() ([]*models.Student, error){
		func() ([]*models.Student, error) { return nil, boom },
	}}
	c := mount(t, svc, models.RoleAdmin)

	err := c.Load(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrTransport)
	assert.Equal(t, StateError, c.State())
	assert.ErrorIs(t, c.Err(), apperrors.ErrTransport)
	assert.Equal(t, 1, svc.calls())
}

func TestController_SupersededFetchIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	svc := &stubService{responses: []func() ([]*models.Student, error){
		func() ([]*models.Student, error) {
			close(started)
			<-release
			return []*models.Student{carlos}, nil
		},
		returning(maria, marco),
	}}
	c := mount(t, svc, models.RoleAdmin)

	done := make(chan error, 1)
	go func() { done <- c.Load(context.Background()) }()
	<-started

	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, []string{"Maria Souza", "Marco Rossi"}, names(c.All()))

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, StateReady, c.State())
	assert.Equal(t, []string{"Maria Souza", "Marco Rossi"}, names(c.All()))
}

func TestController_ConcurrentLoadsShareOneFetch(t *testing.T) {
	release := make(chan struct{})
	svc := &stubService{responses: []func() ([]*models.Student, error){
		func() ([]*models.Student, error) {
			<-release
			return []*models.Student{maria}, nil
		},
	}}
	c := mount(t, svc, models.RoleAdmin)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Load(context.Background()))
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, 1, svc.calls())
	assert.Equal(t, StateReady, c.State())
}

func TestController_DeleteRequiresConfirmation(t *testing.T) {
	svc := &stubService{responses: []func() ([]*models.Student, error){
		returning(maria, marco, carlos),
		returning(maria, carlos),
	}}
	c := mount(t, svc, models.RoleAdmin)
	require.NoError(t, c.Load(context.Background()))

	target, err := c.RequestDelete(marco.ID)
	require.NoError(t, err)
	assert.Equal(t, marco.ID, target.ID)
	assert.Equal(t, marco, c.PendingDelete())
	assert.Empty(t, svc.deleted)

	require.NoError(t, c.ConfirmDelete(context.Background()))
	assert.Equal(t, []int64{marco.ID}, svc.deleted)
	assert.Nil(t, c.PendingDelete())
	assert.Equal(t, 2, svc.calls())
	assert.Equal(t, []string{"Maria Souza", "Carlos Lima"}, names(c.All()))

	assert.ErrorIs(t, c.ConfirmDelete(context.Background()), apperrors.ErrNoPendingDelete)
}

func TestController_CancelDeleteTouchesNothing(t *testing.T) {
	svc := &stubService{responses: []func() ([]*models.Student, error){returning(maria, marco)}}
	c := mount(t, svc, models.RoleAdmin)
	require.NoError(t, c.Load(context.Background()))

	_, err := c.RequestDelete(maria.ID)
	require.NoError(t, err)
	c.CancelDelete()

	assert.Nil(t, c.PendingDelete())
	assert.Empty(t, svc.deleted)
	assert.Equal(t, 1, svc.calls())
}

func TestController_ProfessorCannotRequestDelete(t *testing.T) {
	svc := &stubService{responses: []func() ([]*models.Student, error){returning(maria)}}
	c := mount(t, svc, models.RoleProfessor)
	require.NoError(t, c.Load(context.Background()))

	_, err := c.RequestDelete(maria.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Nil(t, c.PendingDelete())

	_, err = c.RequestDelete(404)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestController_FailedDeleteClearsSelectionWithoutRefetch(t *testing.T) {
	svc := &stubService{
		responses: []func() ([]*models.Student, error){returning(maria)},
		deleteErr: apperrors.NewTransportError("delete student", errors.New("timeout")),
	}
	c := mount(t, svc, models.RoleAdmin)
	require.NoError(t, c.Load(context.Background()))
	_, err := c.RequestDelete(maria.ID)
	require.NoError(t, err)

	err = c.ConfirmDelete(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrTransport)
	assert.Nil(t, c.PendingDelete())
	assert.Equal(t, 1, svc.calls())
	assert.Equal(t, StateReady, c.State())
}

func TestController_CreateRefetches(t *testing.T) {
	svc := &stubService{responses: []func() ([]*models.Student, error){
		returning(maria),
		returning(maria, marco),
	}}
	c := mount(t, svc, models.RoleProfessor)
	require.NoError(t, c.Load(context.Background()))

	_, err := c.Create(context.Background(), models.InputFrom(marco))
	require.NoError(t, err)
	assert.Equal(t, 2, svc.calls())
	assert.Len(t, c.All(), 2)
}

func TestController_UnmountDropsLateResults(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	svc := &stubService{responses: []func() ([]*models.Student, error){
		func() ([]*models.Student, error) {
			close(started)
			<-release
			return []*models.Student{maria}, nil
		},
	}}
	c := mount(t, svc, models.RoleAdmin)

	done := make(chan error, 1)
	go func() { done <- c.Load(context.Background()) }()
	<-started
	c.Unmount()
	close(release)

	require.NoError(t, <-done)
	assert.Empty(t, c.All())
	assert.ErrorIs(t, c.Load(context.Background()), apperrors.ErrDirectoryNotReady)
}
