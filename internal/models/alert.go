package models

import (
	"time"

	"gorm.io/gorm"
)

type AlertStatus string

const (
	AlertStatusNew          AlertStatus = "NEW"
	AlertStatusAcknowledged AlertStatus = "ACKNOWLEDGED"
	AlertStatusResolved     AlertStatus = "RESOLVED"
)

func (s AlertStatus) Valid() bool {
	switch s {
	case AlertStatusNew, AlertStatusAcknowledged, AlertStatusResolved:
		return true
	}
	return false
}

// Alert is the durable record of a notable event on a commitment.
type Alert struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	CommitmentID uint64         `gorm:"not null;index" json:"commitment_id"`
	Message      string         `gorm:"type:text;not null" json:"message"`
	Status       AlertStatus    `gorm:"type:varchar(20);not null;default:'NEW';index" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Alert) BeforeSave(tx *gorm.DB) error {
	a.CreatedAt = a.CreatedAt.UTC()
	return nil
}
