package dto

import (
	"strings"

	"github.com/google/uuid"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/apperrors"
)

// StudentRequest is the body of create and update calls
type StudentRequest struct {
	FullName       string  `json:"fullName" example:"Maria Souza"`
	EnrollmentCode string  `json:"enrollmentCode" example:"2024001"`
	Program        string  `json:"program" example:"Computer Science"`
	Email          string  `json:"email" example:"maria@school.edu"`
	Status         string  `json:"status" example:"active" enums:"active,inactive"`
	OwnerUserID    *string `json:"ownerUserId,omitempty" example:"4a0e0e0c-5f9c-4c1e-9d3c-0a7b1c2d3e4f"`
}

// ToInput converts the request into a candidate record. A malformed owner id
// is reported as a field error.
func (r StudentRequest) ToInput() (models.StudentInput, error) {
	in := models.StudentInput{
		FullName:       r.FullName,
		EnrollmentCode: r.EnrollmentCode,
		Program:        r.Program,
		Email:          r.Email,
		Status:         models.StudentStatus(r.Status),
	}
	if r.OwnerUserID != nil && strings.TrimSpace(*r.OwnerUserID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*r.OwnerUserID))
		if err != nil {
			return in, apperrors.NewValidationError(map[string]string{"ownerUserId": "ownerUserId must be a valid UUID"})
		}
		in.OwnerUserID = &id
	}
	return in, nil
}

// StudentListResponse is the directory view: the fetched set narrowed by query
type StudentListResponse struct {
	State         string            `json:"state" example:"ready" enums:"loading,ready,error"`
	Query         string            `json:"query" example:"mar"`
	Items         []*models.Student `json:"items"`
	Pagination    PaginationInfo    `json:"pagination"`
	PendingDelete *models.Student   `json:"pendingDelete,omitempty"`
}

// DeleteRequestResponse names the record awaiting confirmation
type DeleteRequestResponse struct {
	Pending *models.Student `json:"pending"`
	Message string          `json:"message" example:"Confirm to permanently delete this student"`
}

// DashboardResponse is the dashboard view. Students are sent to their profile.
type DashboardResponse struct {
	View    string      `json:"view" example:"summary" enums:"summary,profile"`
	Summary interface{} `json:"summary,omitempty"`
}
