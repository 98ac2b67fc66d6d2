package models

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleMember  Role = "member"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// ParseRole converts a raw role string into the closed Role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMember, RoleTrainer, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type User struct {
	ID    string `json:"id" gorm:"primaryKey;size:36"`
	Name  string `json:"name" gorm:"size:100"`
	Email string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role  Role   `json:"role" gorm:"not null;default:member;size:20"`

	// Application status mirror, meaningful only while a trainer
	// application is outstanding.
	Status   *ApplicationStatus `json:"status,omitempty" gorm:"size:20"`
	Feedback *string            `json:"feedback,omitempty" gorm:"size:1000"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}
