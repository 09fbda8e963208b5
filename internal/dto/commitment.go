package dto

import (
	"time"

	"github.com/AbdullahHad/WaadFinal/internal/models"
)

// EmployeeDTO represents an employee in API responses
type EmployeeDTO struct {
	ID    uint64              `json:"id"`
	Email string              `json:"email"`
	Name  string              `json:"name"`
	Role  models.EmployeeRole `json:"role"`
}

// CommitmentDTO represents a commitment in API responses
type CommitmentDTO struct {
	ID               uint64                  `json:"id"`
	Title            string                  `json:"title"`
	Description      string                  `json:"description"`
	OrganizationName string                  `json:"organization_name"`
	ContactPerson    string                  `json:"contact_person"`
	DueDate          time.Time               `json:"due_date"`
	Status           models.CommitmentStatus `json:"status"`
	OwnerID          *uint64                 `json:"owner_id"`
	Owner            *EmployeeDTO            `json:"owner,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// CommitmentListResponse represents a paginated list of commitments
type CommitmentListResponse struct {
	Commitments []CommitmentDTO `json:"commitments"`
	Page        int             `json:"page"`
	PageSize    int             `json:"page_size"`
	TotalCount  int64           `json:"total_count"`
	TotalPages  int             `json:"total_pages"`
}

// CreateCommitmentRequest is the body of POST /api/commitments
type CreateCommitmentRequest struct {
	Title            string                  `json:"title" binding:"required"`
	Description      string                  `json:"description"`
	OrganizationName string                  `json:"organization_name" binding:"required"`
	ContactPerson    string                  `json:"contact_person"`
	DueDate          time.Time               `json:"due_date" binding:"required"`
	Status           models.CommitmentStatus `json:"status"`
}

// UpdateCommitmentRequest is the body of PATCH /api/commitments/:id
type UpdateCommitmentRequest struct {
	Title            *string                  `json:"title"`
	Description      *string                  `json:"description"`
	OrganizationName *string                  `json:"organization_name"`
	ContactPerson    *string                  `json:"contact_person"`
	DueDate          *time.Time               `json:"due_date"`
	Status           *models.CommitmentStatus `json:"status"`
}

// UpdateStatusRequest is the body of PATCH /api/admin/commitments/:id/status
type UpdateStatusRequest struct {
	Status models.CommitmentStatus `json:"status" binding:"required"`
}

// ToEmployeeDTO converts an Employee model to EmployeeDTO
func ToEmployeeDTO(employee models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:    employee.ID,
		Email: employee.Email,
		Name:  employee.Name,
		Role:  employee.Role,
	}
}

// ToEmployeeDTOs converts a slice of employees
func ToEmployeeDTOs(employees []models.Employee) []EmployeeDTO {
	items := make([]EmployeeDTO, len(employees))
	for i, employee := range employees {
		items[i] = ToEmployeeDTO(employee)
	}
	return items
}

// ToCommitmentDTO converts a Commitment model to CommitmentDTO
func ToCommitmentDTO(commitment models.Commitment) CommitmentDTO {
	dto := CommitmentDTO{
		ID:               commitment.ID,
		Title:            commitment.Title,
		Description:      commitment.Description,
		OrganizationName: commitment.OrganizationName,
		ContactPerson:    commitment.ContactPerson,
		DueDate:          commitment.DueDate,
		Status:           commitment.Status,
		OwnerID:          commitment.OwnerID,
		CreatedAt:        commitment.CreatedAt,
		UpdatedAt:        commitment.UpdatedAt,
	}

	// Include owner if preloaded
	if commitment.Owner != nil {
		owner := ToEmployeeDTO(*commitment.Owner)
		dto.Owner = &owner
	}

	return dto
}

// ToCommitmentDTOs converts a slice of commitments
func ToCommitmentDTOs(commitments []models.Commitment) []CommitmentDTO {
	items := make([]CommitmentDTO, len(commitments))
	for i, commitment := range commitments {
		items[i] = ToCommitmentDTO(commitment)
	}
	return items
}

// ToCommitmentListResponse converts a page of commitments to CommitmentListResponse
func ToCommitmentListResponse(commitments []models.Commitment, page, pageSize int, totalCount int64) CommitmentListResponse {
	return CommitmentListResponse{
		Commitments: ToCommitmentDTOs(commitments),
		Page:        page,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		TotalPages:  totalPages(totalCount, pageSize),
	}
}

func totalPages(totalCount int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		pages++
	}
	return pages
}
