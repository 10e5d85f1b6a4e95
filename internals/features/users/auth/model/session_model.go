package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionRoleAdmin   = "admin"
	SessionRoleStudent = "student"
)

// SessionModel is one logged-in client. The token is opaque; everything
// about the identity lives server-side in this row.
type SessionModel struct {
	SessionToken uuid.UUID `gorm:"column:session_token;type:uuid;primaryKey" json:"session_token"`
	SessionRole  string    `gorm:"column:session_role;type:varchar(20);not null" json:"session_role"`

	// Set iff session_role = student.
	SessionStudentSID *string `gorm:"column:session_student_sid;size:64;index" json:"session_student_sid,omitempty"`

	SessionExpiresAt time.Time `gorm:"column:session_expires_at;not null" json:"session_expires_at"`
	CreatedAt        time.Time `gorm:"column:session_created_at;autoCreateTime" json:"session_created_at"`
}

func (SessionModel) TableName() string { return "sessions" }

func (s *SessionModel) IsAdmin() bool { return s.SessionRole == SessionRoleAdmin }

func (s *SessionModel) IsStudent() bool { return s.SessionRole == SessionRoleStudent }

func (s *SessionModel) IsExpired(now time.Time) bool {
	return now.After(s.SessionExpiresAt)
}

// SID returns the student id for student sessions, "" otherwise.
func (s *SessionModel) SID() string {
	if s.SessionStudentSID == nil {
		return ""
	}
	return *s.SessionStudentSID
}
