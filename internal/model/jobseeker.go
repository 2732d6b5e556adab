package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EditableSeekerInfo is the part of a job seeker profile that the profile
// forms can overwrite.
type EditableSeekerInfo struct {
	Phone       string `gorm:"type:text" json:"phone"`
	Location    string `gorm:"type:text" json:"location"`
	Skills      string `gorm:"type:text" json:"skills"`
	Experience  string `gorm:"type:text" json:"experience"`
	Education   string `gorm:"type:text" json:"education"`
	About       string `gorm:"type:text" json:"about"`
	LinkedinURL string `gorm:"type:text" json:"linkedin_url"`
	GithubURL   string `gorm:"type:text" json:"github_url"`
}

// JobSeeker is the candidate-side profile. It is not created at signup but
// lazily, the first time the user performs a profile-touching action or
// applies to a job.
type JobSeeker struct {
	ID     uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"user"`

	EditableSeekerInfo

	ResumeID  *int `json:"resume_id"`
	Resume    File `gorm:"foreignKey:ResumeID;references:ID" json:"-"`
	PictureID *int `json:"picture_id"`
	Picture   File `gorm:"foreignKey:PictureID;references:ID" json:"-"`

	Applications []JobApplication `gorm:"foreignKey:JobSeekerID" json:"applications,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}

// FirstSkill returns the leading comma-separated token of the skills field.
// The dashboard uses it to pick a category for the trending-jobs query.
func (s *JobSeeker) FirstSkill() string {
	first, _, _ := strings.Cut(s.Skills, ",")
	return strings.TrimSpace(first)
}
