package models

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
)

// Identity is the authenticated user of the single live session. Subject is
// set only for admins, StudentID only for students.
type Identity struct {
	DisplayName string `json:"username"`
	Role        Role   `json:"role"`
	Subject     string `json:"subject,omitempty"`
	StudentID   string `json:"studentId,omitempty"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

func (i Identity) IsStudent() bool {
	return i.Role == RoleStudent
}
