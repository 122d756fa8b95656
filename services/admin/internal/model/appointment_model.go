package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentModel struct {
	ID            string     `gorm:"type:uuid;primary_key" json:"id"`
	Name          string     `gorm:"type:varchar(255);not null" json:"name"`
	Email         string     `gorm:"type:varchar(255);not null" json:"email"`
	Phone         string     `gorm:"type:varchar(50)" json:"phone"`
	Service       string     `gorm:"type:varchar(100);not null" json:"service"`
	PreferredDate *time.Time `json:"preferred_date"`
	Message       string     `gorm:"type:text" json:"message"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pendiente';index" json:"status"`
	Archived      bool       `gorm:"not null;default:false;index" json:"archived"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (AppointmentModel) TableName() string {
	return "appointments"
}

func (a *AppointmentModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
