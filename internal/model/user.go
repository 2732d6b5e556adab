package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EditableUserInfo is the part of the account record that profile endpoints
// are allowed to overwrite.
type EditableUserInfo struct {
	FirstName string `gorm:"type:text" json:"first_name"`
	LastName  string `gorm:"type:text" json:"last_name"`
}

// User is the account record. Email is the login identifier and is always
// stored lowercase. There is no role column: a user acts as a job seeker or
// an employer according to which profile row exists for them (see JobSeeker
// and Employer).
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Email    *string   `gorm:"uniqueIndex" json:"email"`
	Username string    `gorm:"uniqueIndex;not null" json:"username"`
	Password string    `gorm:"type:text" json:"-"`
	GoogleId string    `json:"-"`
	EditableUserInfo
	IsStaff    bool      `gorm:"default:false" json:"is_staff"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	DateJoined time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"date_joined"`
}

// FullName returns "First Last", falling back to the username when both name
// fields are blank. Used for the employer notification email.
func (u *User) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.Username
	}
	return name
}
