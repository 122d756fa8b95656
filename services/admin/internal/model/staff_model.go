package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffUserModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;default:'editor'" json:"role"`
	IsActive  bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StaffUserModel) TableName() string {
	return "staff_users"
}

func (u *StaffUserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// AllModels lists every table, in dependency order, for migrations in tests
// and tooling.
func AllModels() []interface{} {
	return []interface{}{
		&StaffUserModel{},
		&BlogPostModel{},
		&LegalBlogPostModel{},
		&ClientModel{},
		&CasoModel{},
		&AppointmentModel{},
	}
}
