package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AbdullahHad/WaadFinal/internal/constants"
	"github.com/AbdullahHad/WaadFinal/internal/messages"
	"github.com/AbdullahHad/WaadFinal/internal/models"
	"github.com/AbdullahHad/WaadFinal/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCommitmentNotFound   = errors.New("commitment not found")
	ErrTitleRequired        = errors.New("title is required")
	ErrOrganizationRequired = errors.New("organization name is required")
	ErrDueDateRequired      = errors.New("due date is required")
	ErrInvalidStatus        = errors.New("invalid commitment status")
	ErrCommitmentConflict   = errors.New("commitment was modified by someone else, reload and retry")
)

// CommitmentService handles follow-up commitments for their owners
type CommitmentService struct {
	commitmentRepo repository.CommitmentRepository
	alertRepo      repository.AlertRepository
	now            func() time.Time
}

// NewCommitmentService creates a new CommitmentService
func NewCommitmentService(commitmentRepo repository.CommitmentRepository, alertRepo repository.AlertRepository) *CommitmentService {
	return &CommitmentService{
		commitmentRepo: commitmentRepo,
		alertRepo:      alertRepo,
		now:            time.Now,
	}
}

// ListCommitmentsInput represents filters for listing commitments
type ListCommitmentsInput struct {
	OwnerID  *uint64
	Status   *models.CommitmentStatus
	Page     int
	PageSize int
}

// CreateCommitmentInput represents input for creating a commitment
type CreateCommitmentInput struct {
	Title            string
	Description      string
	OrganizationName string
	ContactPerson    string
	DueDate          time.Time
	Status           models.CommitmentStatus
	OwnerID          uint64
}

// UpdateCommitmentInput represents a partial update; nil fields are left unchanged
type UpdateCommitmentInput struct {
	Title            *string
	Description      *string
	OrganizationName *string
	ContactPerson    *string
	DueDate          *time.Time
	Status           *models.CommitmentStatus
}

// DashboardSummary is the per-employee overview
type DashboardSummary struct {
	PendingCount      int64
	OverdueCount      int64
	CompletedCount    int64
	NewAlertsCount    int64
	RecentCommitments []models.Commitment
	RecentAlerts      []models.Alert
}

// List returns commitments matching the filters, latest due date first
func (s *CommitmentService) List(input ListCommitmentsInput) ([]models.Commitment, int64, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}

	commitments, total, err := s.commitmentRepo.List(repository.CommitmentFilter{
		OwnerID:  input.OwnerID,
		Status:   input.Status,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list commitments: %w", err)
	}
	return commitments, total, nil
}

// ListForEmployee returns the employee's own commitments
func (s *CommitmentService) ListForEmployee(employeeID uint64, status *models.CommitmentStatus, page, pageSize int) ([]models.Commitment, int64, error) {
	return s.List(ListCommitmentsInput{
		OwnerID:  &employeeID,
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	})
}

// Get returns a commitment by ID
func (s *CommitmentService) Get(id uint64) (*models.Commitment, error) {
	commitment, err := s.commitmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommitmentNotFound
		}
		return nil, fmt.Errorf("failed to find commitment: %w", err)
	}
	return commitment, nil
}

// Create records a new commitment for its owner together with a creation alert
func (s *CommitmentService) Create(input CreateCommitmentInput) (*models.Commitment, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	organization := strings.TrimSpace(input.OrganizationName)
	if organization == "" {
		return nil, ErrOrganizationRequired
	}
	if input.DueDate.IsZero() {
		return nil, ErrDueDateRequired
	}
	if input.Status == "" {
		input.Status = models.CommitmentStatusPending
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	ownerID := input.OwnerID
	commitment := &models.Commitment{
		Title:            title,
		Description:      input.Description,
		OrganizationName: organization,
		ContactPerson:    strings.TrimSpace(input.ContactPerson),
		DueDate:          input.DueDate,
		Status:           input.Status,
		OwnerID:          &ownerID,
	}
	alert := &models.Alert{
		Message:   messages.CreatedAlert(organization, title),
		CreatedAt: s.now(),
		Status:    models.AlertStatusNew,
	}

	if err := s.commitmentRepo.CreateWithAlert(commitment, alert); err != nil {
		return nil, fmt.Errorf("failed to create commitment: %w", err)
	}

	return commitment, nil
}

// Update applies a partial update. Moving a commitment into overdue records an alert.
func (s *CommitmentService) Update(id uint64, input UpdateCommitmentInput) (*models.Commitment, error) {
	commitment, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		commitment.Title = title
	}
	if input.OrganizationName != nil {
		organization := strings.TrimSpace(*input.OrganizationName)
		if organization == "" {
			return nil, ErrOrganizationRequired
		}
		commitment.OrganizationName = organization
	}
	if input.Description != nil {
		commitment.Description = *input.Description
	}
	if input.ContactPerson != nil {
		commitment.ContactPerson = strings.TrimSpace(*input.ContactPerson)
	}
	if input.DueDate != nil {
		if input.DueDate.IsZero() {
			return nil, ErrDueDateRequired
		}
		commitment.DueDate = *input.DueDate
	}

	var alert *models.Alert
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		alert = s.transitionAlert(commitment, *input.Status)
		commitment.Status = *input.Status
	}

	return s.save(commitment, alert)
}

// SetStatus overrides the status of any commitment, with the same alert rule as Update
func (s *CommitmentService) SetStatus(id uint64, status models.CommitmentStatus) (*models.Commitment, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.Update(id, UpdateCommitmentInput{Status: &status})
}

// Delete removes a commitment and every alert referencing it
func (s *CommitmentService) Delete(id uint64) error {
	if err := s.commitmentRepo.DeleteWithAlerts(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommitmentNotFound
		}
		return fmt.Errorf("failed to delete commitment: %w", err)
	}
	return nil
}

// Dashboard returns the status counts and the most recent activity for an employee
func (s *CommitmentService) Dashboard(employeeID uint64) (*DashboardSummary, error) {
	counts, err := s.commitmentRepo.CountByStatus(employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to count commitments: %w", err)
	}

	newStatus := models.AlertStatusNew
	newAlerts, err := s.alertRepo.Count(repository.AlertFilter{OwnerID: &employeeID, Status: &newStatus})
	if err != nil {
		return nil, fmt.Errorf("failed to count alerts: %w", err)
	}

	recent, _, err := s.commitmentRepo.List(repository.CommitmentFilter{
		OwnerID:  &employeeID,
		Page:     1,
		PageSize: constants.RecentItemsLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent commitments: %w", err)
	}

	recentAlerts, _, err := s.alertRepo.List(repository.AlertFilter{
		OwnerID:  &employeeID,
		Page:     1,
		PageSize: constants.RecentItemsLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent alerts: %w", err)
	}

	return &DashboardSummary{
		PendingCount:      counts[models.CommitmentStatusPending],
		OverdueCount:      counts[models.CommitmentStatusOverdue],
		CompletedCount:    counts[models.CommitmentStatusCompleted],
		NewAlertsCount:    newAlerts,
		RecentCommitments: recent,
		RecentAlerts:      recentAlerts,
	}, nil
}

// transitionAlert returns the alert to record when a commitment moves into overdue by hand
func (s *CommitmentService) transitionAlert(commitment *models.Commitment, next models.CommitmentStatus) *models.Alert {
	if next != models.CommitmentStatusOverdue || commitment.Status == models.CommitmentStatusOverdue {
		return nil
	}
	return &models.Alert{
		Message:   messages.MarkedOverdueAlert(commitment.Title),
		CreatedAt: s.now(),
		Status:    models.AlertStatusNew,
	}
}

func (s *CommitmentService) save(commitment *models.Commitment, alert *models.Alert) (*models.Commitment, error) {
	if err := s.commitmentRepo.Update(commitment, alert); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, ErrCommitmentConflict
		}
		return nil, fmt.Errorf("failed to update commitment: %w", err)
	}

	updated, err := s.Get(commitment.ID)
	if err != nil {
		return nil, err
	}
	return updated, nil
}
