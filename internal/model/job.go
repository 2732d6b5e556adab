package model

import (
	"encoding/json"
	"time"
)

// Job type choices
var (
	JobTypeFullTime   = "full_time"
	JobTypePartTime   = "part_time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
	JobTypeRemote     = "remote"
)

// JobTypeDisplay maps a job type value to its human readable label.
var JobTypeDisplay = map[string]string{
	JobTypeFullTime:   "Full Time",
	JobTypePartTime:   "Part Time",
	JobTypeContract:   "Contract",
	JobTypeInternship: "Internship",
	JobTypeRemote:     "Remote",
}

// EditableJobInfo is the part of a job listing that comes straight from the
// post-job form.
type EditableJobInfo struct {
	Title        string    `gorm:"type:text" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Requirements string    `gorm:"type:text" json:"requirements"`
	Location     string    `gorm:"type:text" json:"location"`
	JobType      string    `gorm:"type:text" json:"job_type"`
	Salary       string    `gorm:"type:text" json:"salary"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	Deadline     time.Time `gorm:"type:date" json:"deadline"`
}

// Job is a gorm model for one job listing. Deleting a job cascades to its
// applications and saved-job records.
type Job struct {
	ID uint `gorm:"primaryKey;autoIncrement;->" json:"id"`

	CategoryID uint     `gorm:"not null;index" json:"category_id"`
	Category   Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	EmployerID uint     `gorm:"not null;index;<-:create" json:"employer_id"`
	Employer   Employer `gorm:"foreignKey:EmployerID;references:ID;constraint:OnDelete:CASCADE" json:"employer"`

	EditableJobInfo

	IsActive bool `gorm:"default:true" json:"is_active"`

	Applications []JobApplication `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`
	SavedBy      []SavedJob       `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

// IsExpired reports whether the application deadline has passed. A deadline
// equal to today's date is still open; the listing expires the day after.
func (j *Job) IsExpired() bool {
	return dateOf(time.Now()).After(dateOf(j.Deadline))
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// JobResponse is a job listing enriched with per-caller fields.
type JobResponse struct {
	ID             uint      `json:"id"`
	CategoryID     uint      `json:"category_id"`
	EmployerID     uint      `json:"employer_id"`
	Employer       Employer  `json:"employer"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	JobTypeLabel   string    `json:"job_type_label"`
	UserApplied    bool      `json:"user_applied"`
	EditableJobInfo
}

// ToJobResponse converts a Job to a JobResponse, marking whether the given
// user already has an application on it. Applications must be preloaded.
func (j *Job) ToJobResponse(user User) (JobResponse, error) {

	var resp JobResponse

	b, err := json.Marshal(j)
	if err != nil {
		return resp, err
	}

	if err := json.Unmarshal(b, &resp); err != nil {
		return resp, err
	}

	resp.JobTypeLabel = JobTypeDisplay[j.JobType]

	for _, application := range j.Applications {
		if application.JobSeeker.UserID.String() == user.ID.String() {
			resp.UserApplied = true
			break
		}
	}

	return resp, nil
}
