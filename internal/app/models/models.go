package models

// Role defines the role carried by an authenticated identity
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleProfessor Role = "professor"
	RoleStudent   Role = "student"
)

// AllRoles lists every role the access policy knows about
var AllRoles = []Role{RoleAdmin, RoleProfessor, RoleStudent}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProfessor, RoleStudent:
		return true
	}
	return false
}

// IsStaff reports whether the role manages the whole directory
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleProfessor
}

// StudentStatus is the enrollment status of a student record
type StudentStatus string

const (
	StatusActive   StudentStatus = "active"
	StatusInactive StudentStatus = "inactive"
)
