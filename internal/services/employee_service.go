package services

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/AbdullahHad/WaadFinal/internal/models"
	"github.com/AbdullahHad/WaadFinal/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailTaken       = errors.New("email is already registered")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrNameRequired     = errors.New("name is required")
	ErrInvalidRole      = errors.New("invalid employee role")
)

// EmployeeService handles employee records
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// Create registers a new employee
func (s *EmployeeService) Create(email, name string, role models.EmployeeRole) (*models.Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if role == "" {
		role = models.RoleEmployee
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.employeeRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	employee := &models.Employee{
		Email: email,
		Name:  name,
		Role:  role,
	}
	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return employee, nil
}

// Get returns an employee by ID
func (s *EmployeeService) Get(id uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}

// List returns every employee
func (s *EmployeeService) List() ([]models.Employee, error) {
	employees, err := s.employeeRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}
