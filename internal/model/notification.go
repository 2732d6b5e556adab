package model

import "time"

// ApplicationNotification tells an employer that one of their jobs received
// an application. Created synchronously with the application write
// (best-effort: a failure is logged, never surfaced); mutated only by the
// read acknowledgment endpoint.
type ApplicationNotification struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	EmployerID uint     `gorm:"not null;index" json:"employer_id"`
	Employer   Employer `gorm:"foreignKey:EmployerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	ApplicationID uint           `gorm:"not null;index" json:"application_id"`
	Application   JobApplication `gorm:"foreignKey:ApplicationID;references:ID;constraint:OnDelete:CASCADE" json:"application,omitempty"`

	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
