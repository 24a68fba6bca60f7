package services

import (
	"context"
	"fmt"

	"github.com/yigit/studentdesk/internal/app/auth"
	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

// ProgramCount is one row of the per-program breakdown
type ProgramCount struct {
	Program string `json:"program" example:"Computer Science"`
	Count   int    `json:"count" example:"12"`
}

// Summary is the dashboard aggregate over the fetched records
type Summary struct {
	Total         int            `json:"total" example:"3"`
	ActiveCount   int            `json:"activeCount" example:"2"`
	InactiveCount int            `json:"inactiveCount" example:"1"`
	ByProgram     []ProgramCount `json:"byProgram"`
}

// Aggregate computes the dashboard summary. Programs keep the order in which
// they first appear in records.
func Aggregate(records []*models.Student) Summary {
	summary := Summary{ByProgram: []ProgramCount{}}
	index := make(map[string]int)

	for _, r := range records {
		summary.Total++
		if r.Status == models.StatusActive {
			summary.ActiveCount++
		}

		i, ok := index[r.Program]
		if !ok {
			i = len(summary.ByProgram)
			index[r.Program] = i
			summary.ByProgram = append(summary.ByProgram, ProgramCount{Program: r.Program})
		}
		summary.ByProgram[i].Count++
	}

	summary.InactiveCount = summary.Total - summary.ActiveCount
	return summary
}

// DashboardService computes the staff dashboard
type DashboardService struct {
	students StudentService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(students StudentService) *DashboardService {
	return &DashboardService{students: students}
}

// Summary fetches every record and aggregates it. Each call refetches.
func (s *DashboardService) Summary(ctx context.Context, identity models.Identity) (Summary, error) {
	if auth.DashboardFor(identity.Role) != auth.DashboardFull {
		return Summary{}, fmt.Errorf("%w: dashboard summary is for staff only", apperrors.ErrPermissionDenied)
	}

	records, err := s.students.List(ctx, identity)
	if err != nil {
		return Summary{}, err
	}
	return Aggregate(records), nil
}
