package model

import (
	"fmt"
	"time"
)

var (
	// ApplicationStatusPending is the initial status of every application.
	ApplicationStatusPending = "pending"
	// ApplicationStatusReviewed indicates the employer has looked at the application.
	ApplicationStatusReviewed = "reviewed"
	// ApplicationStatusAccepted indicates the application has been accepted.
	ApplicationStatusAccepted = "accepted"
	// ApplicationStatusRejected indicates the application has been rejected.
	ApplicationStatusRejected = "rejected"
)

// JobApplication links a job seeker to a job they applied for. The composite
// unique index closes the duplicate-application race at the schema level; the
// handler still does a read-first check to give a friendly warning.
type JobApplication struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	JobID uint `gorm:"not null;index;uniqueIndex:idx_one_application_per_job" json:"job_id"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID;constraint:OnDelete:CASCADE" json:"job,omitempty"`

	JobSeekerID uint      `gorm:"not null;index;uniqueIndex:idx_one_application_per_job" json:"job_seeker_id"`
	JobSeeker   JobSeeker `gorm:"foreignKey:JobSeekerID;references:ID;constraint:OnDelete:CASCADE" json:"job_seeker,omitempty"`

	CoverLetter string `gorm:"type:text" json:"cover_letter"`

	ResumeID *int `json:"resume_id"`
	Resume   File `gorm:"foreignKey:ResumeID;references:ID" json:"-"`

	Status    string    `gorm:"type:text;default:'pending'" json:"status"`
	AppliedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"applied_at"`
}

// UpdateStatus moves the application along the pending -> reviewed ->
// accepted/rejected flow and rejects any other transition.
func (a *JobApplication) UpdateStatus(newStatus string) error {
	switch {
	case a.Status == ApplicationStatusPending && newStatus == ApplicationStatusReviewed:
	case a.Status == ApplicationStatusReviewed &&
		(newStatus == ApplicationStatusAccepted || newStatus == ApplicationStatusRejected):
	default:
		return fmt.Errorf("cannot move application from %q to %q", a.Status, newStatus)
	}

	a.Status = newStatus
	return nil
}
