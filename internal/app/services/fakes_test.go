package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
	"github.com/yigit/studentdesk/internal/pkg/events"
)

// fakeStudentStore is an in-memory StudentStore that counts calls
type fakeStudentStore struct {
	mu      sync.Mutex
	records map[int64]*models.Student
	nextID  int64
	calls   map[string]int
	err     error
}

func newFakeStudentStore(records ...*models.Student) *fakeStudentStore {
	f := &fakeStudentStore{records: map[int64]*models.Student{}, calls: map[string]int{}}
	for _, r := range records {
		f.nextID++
		if r.ID == 0 {
			r.ID = f.nextID
		}
		f.records[r.ID] = r
	}
	return f
}

func (f *fakeStudentStore) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeStudentStore) track(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.err
}

func (f *fakeStudentStore) List(context.Context) ([]*models.Student, error) {
	if err := f.track("list"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Student, 0, len(f.records))
	for _, r := range f.records {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	if err := f.track("get"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStudentStore) GetByOwner(_ context.Context, userID uuid.UUID) (*models.Student, error) {
	if err := f.track("getByOwner"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.IsOwnedBy(userID) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStudentStore) Insert(_ context.Context, s *models.Student) (*models.Student, error) {
	if err := f.track("insert"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.EnrollmentCode == s.EnrollmentCode {
			return nil, &apperrors.ConstraintError{Field: "enrollmentCode", Constraint: "students_enrollment_code_key"}
		}
	}
	f.nextID++
	cp := *s
	cp.ID = f.nextID
	f.records[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeStudentStore) Update(_ context.Context, s *models.Student) (*models.Student, error) {
	if err := f.track("update"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[s.ID]; !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *s
	f.records[s.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeStudentStore) Delete(_ context.Context, id int64) error {
	if err := f.track("delete"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeStudentStore) Count(context.Context) (int, error) {
	if err := f.track("count"); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records), nil
}

// fakeUserStore is an in-memory UserStore
type fakeUserStore struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	f := &fakeUserStore{users: map[uuid.UUID]*models.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return &apperrors.ConstraintError{Field: "email", Constraint: "users_email_key"}
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) List(context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func identityOf(role models.Role) models.Identity {
	return models.Identity{UserID: uuid.New(), Role: role, DisplayName: string(role), Email: string(role) + "@example.com"}
}

func student(name, code, program string, status models.StudentStatus) *models.Student {
	return &models.Student{
		FullName:       name,
		EnrollmentCode: code,
		Program:        program,
		Email:          code + "@example.com",
		Status:         status,
	}
}

func validInput() models.StudentInput {
	return models.StudentInput{
		FullName:       "Grace Hopper",
		EnrollmentCode: "ENR-100",
		Program:        "Computer Science",
		Email:          "grace@example.com",
		Status:         models.StatusActive,
	}
}
