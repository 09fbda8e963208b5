package services

import (
	"fmt"

	"github.com/AbdullahHad/WaadFinal/internal/models"
	"github.com/AbdullahHad/WaadFinal/internal/repository"
)

// AdminService exposes the cross-employee views
type AdminService struct {
	commitmentRepo repository.CommitmentRepository
	commitments    *CommitmentService
	employees      *EmployeeService
}

// NewAdminService creates a new AdminService
func NewAdminService(commitmentRepo repository.CommitmentRepository, commitments *CommitmentService, employees *EmployeeService) *AdminService {
	return &AdminService{
		commitmentRepo: commitmentRepo,
		commitments:    commitments,
		employees:      employees,
	}
}

// ListAllCommitments returns every commitment with its owner, latest due date first
func (s *AdminService) ListAllCommitments(status *models.CommitmentStatus, page, pageSize int) ([]models.Commitment, int64, error) {
	if status != nil && !status.Valid() {
		return nil, 0, ErrInvalidStatus
	}

	commitments, total, err := s.commitmentRepo.List(repository.CommitmentFilter{
		Status:   status,
		Preload:  []string{"Owner"},
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list commitments: %w", err)
	}
	return commitments, total, nil
}

// ListEmployees returns every employee
func (s *AdminService) ListEmployees() ([]models.Employee, error) {
	return s.employees.List()
}

// EmployeeCommitments returns all commitments owned by an employee
func (s *AdminService) EmployeeCommitments(employeeID uint64) (*models.Employee, []models.Commitment, error) {
	employee, err := s.employees.Get(employeeID)
	if err != nil {
		return nil, nil, err
	}

	commitments, _, err := s.commitmentRepo.List(repository.CommitmentFilter{OwnerID: &employee.ID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list employee commitments: %w", err)
	}
	return employee, commitments, nil
}

// OverrideStatus sets the status of any commitment
func (s *AdminService) OverrideStatus(commitmentID uint64, status models.CommitmentStatus) (*models.Commitment, error) {
	return s.commitments.SetStatus(commitmentID, status)
}
