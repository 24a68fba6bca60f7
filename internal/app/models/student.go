package models

import (
	"time"

	"github.com/google/uuid"
)

// Student defines the student record based on the 'students' table
type Student struct {
	ID             int64         `json:"id" db:"id" example:"1"`                                      // System-assigned identifier
	FullName       string        `json:"fullName" db:"full_name" example:"Maria Souza"`               // Student's full name
	EnrollmentCode string        `json:"enrollmentCode" db:"enrollment_code" example:"2024001"`       // Unique enrollment code
	Program        string        `json:"program" db:"program" example:"Computer Science"`             // Academic program
	Email          string        `json:"email" db:"email" example:"maria@school.edu"`                 // Unique contact email
	Status         StudentStatus `json:"status" db:"status" example:"active" enums:"active,inactive"` // Enrollment status
	OwnerUserID    *uuid.UUID    `json:"ownerUserId,omitempty" db:"owner_user_id"`                    // Linked student login (nullable)
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`
}

// IsOwnedBy reports whether the record is linked to the given user
func (s *Student) IsOwnedBy(userID uuid.UUID) bool {
	return s != nil && s.OwnerUserID != nil && *s.OwnerUserID == userID
}

// StudentInput is a candidate record as submitted through a form
type StudentInput struct {
	FullName       string        `json:"fullName" validate:"trimmin=3,trimmax=100"`
	EnrollmentCode string        `json:"enrollmentCode" validate:"trimmin=3,trimmax=50"`
	Program        string        `json:"program" validate:"trimmin=3,trimmax=100"`
	Email          string        `json:"email" validate:"required,max=255,email"`
	Status         StudentStatus `json:"status" validate:"oneof=active inactive"`

	// OwnerUserID links the record to a student login. Staff only.
	OwnerUserID *uuid.UUID `json:"ownerUserId,omitempty" validate:"-"`
}

// InputFrom returns the editable fields of an existing record
func InputFrom(s *Student) StudentInput {
	return StudentInput{
		FullName:       s.FullName,
		EnrollmentCode: s.EnrollmentCode,
		Program:        s.Program,
		Email:          s.Email,
		Status:         s.Status,
		OwnerUserID:    s.OwnerUserID,
	}
}

// Apply copies the submitted fields onto the record. A nil OwnerUserID keeps the current link.
func (in StudentInput) Apply(s *Student) {
	s.FullName = in.FullName
	s.EnrollmentCode = in.EnrollmentCode
	s.Program = in.Program
	s.Email = in.Email
	s.Status = in.Status
	if in.OwnerUserID != nil {
		s.OwnerUserID = in.OwnerUserID
	}
}
