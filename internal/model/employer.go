package model

import (
	"time"

	"github.com/google/uuid"
)

// EditableEmployerInfo is the part of an employer profile that can be
// overwritten from request data.
type EditableEmployerInfo struct {
	CompanyName        string `gorm:"type:text" json:"company_name"`
	CompanyDescription string `gorm:"type:text" json:"company_description"`
	Phone              string `gorm:"type:text" json:"phone"`
	Website            string `gorm:"type:text" json:"website"`
	Location           string `gorm:"type:text" json:"location"`
}

// Employer is the company-side profile. Like JobSeeker it is created lazily,
// on the first job-post action; the stored company name is kept in sync with
// the latest submitted value.
type Employer struct {
	ID     uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"user"`

	EditableEmployerInfo

	Jobs []Job `gorm:"foreignKey:EmployerID" json:"jobs,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
