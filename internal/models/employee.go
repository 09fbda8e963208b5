package models

import (
	"time"

	"gorm.io/gorm"
)

type EmployeeRole string

const (
	RoleEmployee EmployeeRole = "employee"
	RoleAdmin    EmployeeRole = "admin"
)

func (r EmployeeRole) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

type Employee struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Email     string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name      string         `gorm:"type:varchar(255)" json:"name"`
	Role      EmployeeRole   `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Commitments []Commitment `gorm:"foreignKey:OwnerID" json:"-"`
}

// IsAdmin reports whether the employee has the global view.
func (e Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
