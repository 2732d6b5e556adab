package model

import "time"

// SavedJob is a bookmark linking a job seeker to a job.
type SavedJob struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	JobID uint `gorm:"not null;index;uniqueIndex:idx_one_save_per_job" json:"job_id"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID;constraint:OnDelete:CASCADE" json:"job,omitempty"`

	JobSeekerID uint      `gorm:"not null;index;uniqueIndex:idx_one_save_per_job" json:"job_seeker_id"`
	JobSeeker   JobSeeker `gorm:"foreignKey:JobSeekerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	SavedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"saved_at"`
}

// ProfileView records one employer looking at one seeker profile. Rows are
// written best-effort when an employer opens a profile; the seeker dashboard
// only counts them.
type ProfileView struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	JobSeekerID uint      `gorm:"not null;index" json:"job_seeker_id"`
	JobSeeker   JobSeeker `gorm:"foreignKey:JobSeekerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	EmployerID uint     `gorm:"not null;index" json:"employer_id"`
	Employer   Employer `gorm:"foreignKey:EmployerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	ViewedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"viewed_at"`
}
