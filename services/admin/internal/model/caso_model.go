package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CasoModel struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	CaseNumber  string    `gorm:"type:varchar(50);index" json:"case_number"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	ClientName  string    `gorm:"type:varchar(255);not null" json:"client_name"`
	ClientID    *string   `gorm:"type:uuid;index" json:"client_id"`
	AssignedTo  string    `gorm:"type:varchar(255)" json:"assigned_to"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"type:varchar(30);not null;default:'abierto';index" json:"status"`
	Archived    bool      `gorm:"not null;default:false;index" json:"archived"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CasoModel) TableName() string {
	return "casos"
}

func (c *CasoModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
