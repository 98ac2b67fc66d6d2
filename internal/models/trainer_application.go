package models

import (
	"time"

	"gorm.io/datatypes"
)

// TrainerApplication tracks a member's request for the trainer role.
// It is correlated to a User by email, not by id.
type TrainerApplication struct {
	ID    string `json:"id" gorm:"primaryKey;size:36"`
	Email string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Name  string `json:"name" gorm:"size:100"`

	Role     Role              `json:"role" gorm:"not null;default:member;size:20"`
	Status   ApplicationStatus `json:"status" gorm:"not null;default:pending;size:20"`
	Feedback *string           `json:"feedback,omitempty" gorm:"size:1000"`

	// Free-form applicant profile (skills, availability, certifications)
	// supplied by the client at submission time.
	Profile datatypes.JSON `json:"profile,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TrainerApplication) TableName() string {
	return "trainer_applications"
}

// Terminal reports whether the application has reached a decision.
func (a *TrainerApplication) Terminal() bool {
	return a.Status == StatusApproved || a.Status == StatusRejected
}
