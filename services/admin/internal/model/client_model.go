package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);index" json:"email"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Company   string    `gorm:"type:varchar(255)" json:"company"`
	Service   string    `gorm:"type:varchar(30);not null;index" json:"service"`
	Notes     string    `gorm:"type:text" json:"notes"`
	Archived  bool      `gorm:"not null;default:false;index" json:"archived"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ClientModel) TableName() string {
	return "clients"
}

func (c *ClientModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
