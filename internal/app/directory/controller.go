package directory

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/yigit/studentdesk/internal/app/auth"
	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/app/services"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

// State of the directory view
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// Controller holds one identity's view of the student directory: the fetched
// records, the current search query and a pending delete.
type Controller struct {
	students services.StudentService
	identity models.Identity
	logger   zerolog.Logger
	group    singleflight.Group

	mu         sync.RWMutex
	state      State
	records    []*models.Student
	query      string
	err        error
	pending    *models.Student
	generation uint64
	inflight   int
	unmounted  bool
	lastUsed   time.Time
}

// NewController mounts the directory for identity. Roles that cannot open the
// directory get a permission error.
func NewController(students services.StudentService, identity models.Identity, logger zerolog.Logger) (*Controller, error) {
	if !auth.CanView(identity.Role, auth.SectionDirectory) {
		return nil, fmt.Errorf("%w: directory is not available to %s", apperrors.ErrPermissionDenied, identity.Role)
	}
	return &Controller{
		students: students,
		identity: identity,
		logger:   logger.With().Str("userID", identity.UserID.String()).Logger(),
		state:    StateLoading,
		lastUsed: time.Now(),
	}, nil
}

// Identity returns the identity the controller was mounted for
func (c *Controller) Identity() models.Identity {
	return c.identity
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Err returns the error of the last failed fetch
func (c *Controller) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Load fetches every record. A call made while a fetch is in flight joins it.
func (c *Controller) Load(ctx context.Context) error {
	return c.fetch(ctx, false)
}

// Refresh starts a new fetch and discards whatever is still in flight
func (c *Controller) Refresh(ctx context.Context) error {
	return c.fetch(ctx, true)
}

func (c *Controller) fetch(ctx context.Context, supersede bool) error {
	c.mu.Lock()
	if c.unmounted {
		c.mu.Unlock()
		return apperrors.ErrDirectoryNotReady
	}
	if supersede || c.inflight == 0 {
		c.generation++
	}
	gen := c.generation
	c.inflight++
	c.state = StateLoading
	c.mu.Unlock()

	v, err, _ := c.group.Do(strconv.FormatUint(gen, 10), func() (interface{}, error) {
		return c.students.List(ctx, c.identity)
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--

	if gen != c.generation || c.unmounted {
		c.logger.Debug().Uint64("generation", gen).Msg("Discarded superseded directory fetch")
		return nil
	}

	if err != nil {
		c.state = StateError
		c.err = err
		c.logger.Warn().Err(err).Msg("Directory fetch failed")
		return err
	}

	c.records = v.([]*models.Student)
	c.state = StateReady
	c.err = nil
	return nil
}

// Search sets the query applied to the fetched records. It never fetches.
func (c *Controller) Search(query string) ([]*models.Student, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return nil, apperrors.ErrDirectoryNotReady
	}
	c.query = query
	return Filter(c.records, c.query), nil
}

// Query returns the current search query
func (c *Controller) Query() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

// Visible returns the fetched records matching the current query
func (c *Controller) Visible() []*models.Student {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Filter(c.records, c.query)
}

// All returns every fetched record
func (c *Controller) All() []*models.Student {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*models.Student, len(c.records))
	copy(out, c.records)
	return out
}

// Create stores a new record and refetches
func (c *Controller) Create(ctx context.Context, in models.StudentInput) (*models.Student, error) {
	created, err := c.students.Create(ctx, c.identity, in)
	if err != nil {
		return nil, err
	}
	c.refreshAfterMutation(ctx)
	return created, nil
}

// Update edits a record and refetches
func (c *Controller) Update(ctx context.Context, id int64, in models.StudentInput) (*models.Student, error) {
	updated, err := c.students.Update(ctx, c.identity, id, in)
	if err != nil {
		return nil, err
	}
	c.refreshAfterMutation(ctx)
	return updated, nil
}

// RequestDelete selects a fetched record for deletion. Nothing is deleted until
// ConfirmDelete.
func (c *Controller) RequestDelete(id int64) (*models.Student, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return nil, apperrors.ErrDirectoryNotReady
	}

	var target *models.Student
	for _, r := range c.records {
		if r.ID == id {
			target = r
			break
		}
	}
	if target == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	if err := auth.Authorize(c.identity, auth.OpDelete, target); err != nil {
		return nil, err
	}

	c.pending = target
	return target, nil
}

// PendingDelete returns the record awaiting confirmation, if any
func (c *Controller) PendingDelete() *models.Student {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pending
}

// ConfirmDelete deletes the pending record and refetches. The selection is
// cleared whatever the outcome.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	target := c.pending
	c.pending = nil
	c.mu.Unlock()

	if target == nil {
		return apperrors.ErrNoPendingDelete
	}

	if err := c.students.Delete(ctx, c.identity, target.ID); err != nil {
		return err
	}
	c.refreshAfterMutation(ctx)
	return nil
}

// CancelDelete clears the selection without touching the store
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
}

// Unmount discards the controller; in-flight fetches are dropped on arrival
func (c *Controller) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unmounted = true
	c.generation++
	c.pending = nil
}

func (c *Controller) refreshAfterMutation(ctx context.Context) {
	if err := c.Refresh(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("Refetch after mutation failed")
	}
}

func (c *Controller) touch(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastUsed = now
}

func (c *Controller) idleSince(now time.Time) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return now.Sub(c.lastUsed)
}
