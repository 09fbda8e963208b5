package services

import (
	"errors"
	"fmt"

	"github.com/AbdullahHad/WaadFinal/internal/models"
	"github.com/AbdullahHad/WaadFinal/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAlertNotFound      = errors.New("alert not found")
	ErrAlertResolved      = errors.New("alert is already resolved")
	ErrInvalidAlertStatus = errors.New("invalid alert status")
)

// AlertService handles alert listing and acknowledgement
type AlertService struct {
	alertRepo      repository.AlertRepository
	commitmentRepo repository.CommitmentRepository
}

// NewAlertService creates a new AlertService
func NewAlertService(alertRepo repository.AlertRepository, commitmentRepo repository.CommitmentRepository) *AlertService {
	return &AlertService{
		alertRepo:      alertRepo,
		commitmentRepo: commitmentRepo,
	}
}

// ListAlertsInput represents filters for listing alerts
type ListAlertsInput struct {
	EmployeeID uint64
	IsAdmin    bool
	Status     *models.AlertStatus
	Page       int
	PageSize   int
}

// List returns alerts newest first. Employees only see alerts on their own commitments.
func (s *AlertService) List(input ListAlertsInput) ([]models.Alert, int64, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, 0, ErrInvalidAlertStatus
	}

	filter := repository.AlertFilter{
		Status:   input.Status,
		Page:     input.Page,
		PageSize: input.PageSize,
	}
	if !input.IsAdmin {
		employeeID := input.EmployeeID
		filter.OwnerID = &employeeID
	}

	alerts, total, err := s.alertRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, total, nil
}

// ListForCommitment returns the history of one commitment, oldest first.
// Access to the commitment is checked by the caller.
func (s *AlertService) ListForCommitment(commitmentID uint64) ([]models.Alert, error) {
	alerts, err := s.alertRepo.ListByCommitment(commitmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list commitment alerts: %w", err)
	}
	return alerts, nil
}

// Acknowledge marks a new alert as acknowledged. Acknowledging twice is a no-op.
func (s *AlertService) Acknowledge(alertID, employeeID uint64, isAdmin bool) (*models.Alert, error) {
	alert, err := s.alertRepo.FindByID(alertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to find alert: %w", err)
	}

	if !isAdmin {
		commitment, err := s.commitmentRepo.FindByID(alert.CommitmentID)
		if err != nil {
			// Orphaned alerts belong to nobody but admins
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAlertNotFound
			}
			return nil, fmt.Errorf("failed to find commitment: %w", err)
		}
		if !commitment.OwnedBy(employeeID) {
			return nil, ErrAlertNotFound
		}
	}

	switch alert.Status {
	case models.AlertStatusAcknowledged:
		return alert, nil
	case models.AlertStatusResolved:
		return nil, ErrAlertResolved
	}

	if err := s.alertRepo.UpdateStatus(alert.ID, models.AlertStatusAcknowledged); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to acknowledge alert: %w", err)
	}

	alert.Status = models.AlertStatusAcknowledged
	return alert, nil
}
