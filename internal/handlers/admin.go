package handlers

import (
	"net/http"

	"github.com/AbdullahHad/WaadFinal/internal/dto"
	apierrors "github.com/AbdullahHad/WaadFinal/internal/errors"
	"github.com/AbdullahHad/WaadFinal/internal/services"
	"github.com/AbdullahHad/WaadFinal/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminHandler handles the admin-only views
type AdminHandler struct {
	admin *services.AdminService
	log   zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admin *services.AdminService, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		admin: admin,
		log:   log,
	}
}

// ListCommitments returns every commitment with its owner
func (h *AdminHandler) ListCommitments(c *gin.Context) {
	params := utils.PageFromQuery(c)
	commitments, total, err := h.admin.ListAllCommitments(commitmentStatusQuery(c), params.Page, params.Size)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommitmentListResponse(commitments, params.Page, params.Size, total))
}

// ListEmployees returns every employee
func (h *AdminHandler) ListEmployees(c *gin.Context) {
	employees, err := h.admin.ListEmployees()
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": dto.ToEmployeeDTOs(employees)})
}

// EmployeeCommitments returns one employee with all of their commitments
func (h *AdminHandler) EmployeeCommitments(c *gin.Context) {
	employeeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	employee, commitments, err := h.admin.EmployeeCommitments(employeeID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employee":    dto.ToEmployeeDTO(*employee),
		"commitments": dto.ToCommitmentDTOs(commitments),
	})
}

// UpdateCommitmentStatus overrides the status of any commitment
func (h *AdminHandler) UpdateCommitmentStatus(c *gin.Context) {
	commitmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	commitment, err := h.admin.OverrideStatus(commitmentID, req.Status)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommitmentDTO(*commitment))
}
