package entity

import "time"

type StaffRole string

const (
	RoleAdmin  StaffRole = "admin"
	RoleEditor StaffRole = "editor"
)

type StaffUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	Role      StaffRole `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
