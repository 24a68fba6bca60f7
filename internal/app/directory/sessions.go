package directory

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron"
	"github.com/rs/zerolog"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/app/services"
)

// Sessions keeps one mounted Controller per signed-in user and unmounts the
// ones left idle.
type Sessions struct {
	students services.StudentService
	idle     time.Duration
	logger   zerolog.Logger
	now      func() time.Time

	mu          sync.Mutex
	controllers map[uuid.UUID]*Controller
	cron        *cron.Cron
}

// NewSessions creates an empty registry
func NewSessions(students services.StudentService, idle time.Duration, logger zerolog.Logger) *Sessions {
	return &Sessions{
		students:    students,
		idle:        idle,
		logger:      logger,
		now:         time.Now,
		controllers: make(map[uuid.UUID]*Controller),
	}
}

// Get returns the controller for identity, mounting one when needed. A changed
// role mounts a fresh controller.
func (s *Sessions) Get(identity models.Identity) (*Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.controllers[identity.UserID]; ok {
		if c.Identity().Role == identity.Role {
			c.touch(s.now())
			return c, nil
		}
		c.Unmount()
		delete(s.controllers, identity.UserID)
	}

	c, err := NewController(s.students, identity, s.logger)
	if err != nil {
		return nil, err
	}
	c.touch(s.now())
	s.controllers[identity.UserID] = c
	return c, nil
}

// Drop unmounts the controller of userID
func (s *Sessions) Drop(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.controllers[userID]; ok {
		c.Unmount()
		delete(s.controllers, userID)
	}
}

// Len returns the number of mounted controllers
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.controllers)
}

// Sweep unmounts controllers idle for longer than the configured timeout and
// returns how many were removed
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, c := range s.controllers {
		if c.idleSince(now) > s.idle {
			c.Unmount()
			delete(s.controllers, id)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Int("remaining", len(s.controllers)).Msg("Swept idle directory sessions")
	}
	return removed
}

// Start runs Sweep on schedule (cron syntax, e.g. "@every 1m")
func (s *Sessions) Start(schedule string) error {
	c := cron.New()
	if err := c.AddFunc(schedule, func() { s.Sweep() }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	c.Start()

	s.mu.Lock()
	s.cron = c
	s.mu.Unlock()
	return nil
}

// Stop halts the sweep schedule
func (s *Sessions) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
}
