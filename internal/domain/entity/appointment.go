package entity

import (
	"fmt"
	"nailstudio/internal/domain/constant"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment is a booking submitted through the reservation form.
// Column names follow the table the dashboard already reads (camelCase columns are quoted by gorm).
type Appointment struct {
	ID        string                     `gorm:"column:id;primaryKey"`
	Name      string                     `gorm:"column:name;not null"`
	Phone     string                     `gorm:"column:phone;not null"`
	ContactID *string                    `gorm:"column:contactId"`
	Date      string                     `gorm:"column:date;not null;index"`
	TimeSlot  string                     `gorm:"column:timeSlot;not null"`
	Services  []string                   `gorm:"column:services;type:text;serializer:json;not null"`
	Style     string                     `gorm:"column:style;not null"`
	Status    constant.AppointmentStatus `gorm:"column:status;not null;default:'PENDING'"`
	UserID    *string                    `gorm:"column:user_id;index"`
	CreatedAt time.Time                  `gorm:"column:created_at"`
}

// TableName specifies the table name for the Appointment entity.
func (Appointment) TableName() string {
	return "appointments"
}

// BeforeCreate assigns a UUID when the caller did not.
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// GetStatus returns the status, treating an empty column as pending.
func (a *Appointment) GetStatus() constant.AppointmentStatus {
	if a.Status == "" {
		return constant.StatusPending
	}
	return a.Status
}

// ConfirmationText is the LINE message sent when the appointment is confirmed.
func (a *Appointment) ConfirmationText() string {
	return fmt.Sprintf("您好！您的預約已確認。\n\n時間: %s %s\n項目: %s\n\n期待您的光臨！", a.Date, a.TimeSlot, a.Style)
}
