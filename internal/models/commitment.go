package models

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

type CommitmentStatus string

const (
	CommitmentStatusPending   CommitmentStatus = "PENDING"
	CommitmentStatusOverdue   CommitmentStatus = "OVERDUE"
	CommitmentStatusCompleted CommitmentStatus = "COMPLETED"
)

// Valid reports whether s is one of the known statuses.
func (s CommitmentStatus) Valid() bool {
	switch s {
	case CommitmentStatusPending, CommitmentStatusOverdue, CommitmentStatusCompleted:
		return true
	}
	return false
}

// Commitment is a tracked follow-up obligation.
type Commitment struct {
	ID               uint64           `gorm:"primarykey" json:"id"`
	Title            string           `gorm:"type:varchar(255);not null" json:"title"`
	Description      string           `gorm:"type:text" json:"description"`
	OrganizationName string           `gorm:"type:varchar(255);not null" json:"organization_name"`
	ContactPerson    string           `gorm:"type:varchar(255)" json:"contact_person"`
	DueDate          time.Time        `gorm:"not null;index:idx_commitments_status_due,priority:2" json:"due_date"`
	Status           CommitmentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_commitments_status_due,priority:1" json:"status"`
	OwnerID          *uint64          `gorm:"index" json:"owner_id"`
	Version          uint64           `gorm:"not null;default:0" json:"-"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relations
	Owner  *Employee `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Alerts []Alert   `gorm:"foreignKey:CommitmentID" json:"alerts,omitempty"`
}

// BeforeSave stores the due date in UTC so overdue comparisons hold across offsets.
func (c *Commitment) BeforeSave(tx *gorm.DB) error {
	c.DueDate = c.DueDate.UTC()
	return nil
}

// OwnerKey returns the owner's identity as addressed by the notification channel,
// or "" for an unassigned commitment.
func (c Commitment) OwnerKey() string {
	if c.OwnerID == nil || *c.OwnerID == 0 {
		return ""
	}
	return strconv.FormatUint(*c.OwnerID, 10)
}

// OwnedBy reports whether the commitment belongs to the given employee.
func (c Commitment) OwnedBy(employeeID uint64) bool {
	return c.OwnerID != nil && *c.OwnerID == employeeID
}
