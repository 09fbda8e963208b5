package repository

import (
	"context"
	"errors"
	"time"

	"github.com/AbdullahHad/WaadFinal/internal/models"
)

// ErrVersionConflict is returned when a row changed between read and write.
var ErrVersionConflict = errors.New("repository: row was modified concurrently")

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	// Create creates a new employee
	Create(employee *models.Employee) error

	// FindByID finds an employee by ID
	FindByID(id uint64) (*models.Employee, error)

	// FindByEmail finds an employee by email
	FindByEmail(email string) (*models.Employee, error)

	// List returns all employees ordered by email
	List() ([]models.Employee, error)
}

// CommitmentRepository defines the interface for commitment data access
type CommitmentRepository interface {
	// CreateWithAlert creates a commitment and its companion alert in one transaction
	CreateWithAlert(commitment *models.Commitment, alert *models.Alert) error

	// FindByID finds a commitment by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Commitment, error)

	// List retrieves commitments with filtering and pagination
	List(filter CommitmentFilter) ([]models.Commitment, int64, error)

	// Update writes every field of the commitment if its version is unchanged.
	// A non-nil alert is inserted in the same transaction.
	Update(commitment *models.Commitment, alert *models.Alert) error

	// DeleteWithAlerts deletes a commitment and every alert referencing it
	DeleteWithAlerts(id uint64) error

	// CountByStatus counts an owner's commitments per status
	CountByStatus(ownerID uint64) (map[models.CommitmentStatus]int64, error)

	OverdueStore
}

// OverdueStore is the slice of the record store the overdue scanner works against.
type OverdueStore interface {
	// FindOverdueCandidates returns every pending commitment due at or before now
	FindOverdueCandidates(ctx context.Context, now time.Time) ([]models.Commitment, error)

	// SaveOverdueBatch persists status changes and new alerts in one transaction.
	// Rows changed by someone else since they were read are skipped together with their alerts.
	SaveOverdueBatch(ctx context.Context, changed []models.Commitment, alerts []models.Alert) (OverdueBatchResult, error)
}

// OverdueBatchResult reports what a batch write actually changed
type OverdueBatchResult struct {
	Updated []models.Commitment
	Skipped []models.Commitment
	Alerts  []models.Alert
}

// CommitmentFilter holds filtering options for listing commitments
type CommitmentFilter struct {
	OwnerID  *uint64
	Status   *models.CommitmentStatus
	Preload  []string
	Page     int
	PageSize int
}

// AlertRepository defines the interface for alert data access
type AlertRepository interface {
	// FindByID finds an alert by ID
	FindByID(id uint64) (*models.Alert, error)

	// List retrieves alerts newest first with filtering and pagination
	List(filter AlertFilter) ([]models.Alert, int64, error)

	// ListByCommitment returns every alert referencing a commitment
	ListByCommitment(commitmentID uint64) ([]models.Alert, error)

	// UpdateStatus moves an alert to a new status
	UpdateStatus(id uint64, status models.AlertStatus) error

	// Count counts alerts matching the filter, ignoring pagination
	Count(filter AlertFilter) (int64, error)
}

// AlertFilter holds filtering options for listing alerts
type AlertFilter struct {
	OwnerID  *uint64
	Status   *models.AlertStatus
	Page     int
	PageSize int
}
