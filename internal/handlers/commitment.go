package handlers

import (
	"net/http"

	"github.com/AbdullahHad/WaadFinal/internal/dto"
	apierrors "github.com/AbdullahHad/WaadFinal/internal/errors"
	"github.com/AbdullahHad/WaadFinal/internal/middleware"
	"github.com/AbdullahHad/WaadFinal/internal/services"
	"github.com/AbdullahHad/WaadFinal/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommitmentHandler handles commitment requests
type CommitmentHandler struct {
	commitments *services.CommitmentService
	log         zerolog.Logger
}

// NewCommitmentHandler creates a new CommitmentHandler
func NewCommitmentHandler(commitments *services.CommitmentService, log zerolog.Logger) *CommitmentHandler {
	return &CommitmentHandler{
		commitments: commitments,
		log:         log,
	}
}

// ListCommitments returns the current employee's commitments, latest due date first
func (h *CommitmentHandler) ListCommitments(c *gin.Context) {
	employeeID, ok := middleware.GetEmployeeID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.PageFromQuery(c)
	commitments, total, err := h.commitments.ListForEmployee(employeeID, commitmentStatusQuery(c), params.Page, params.Size)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommitmentListResponse(commitments, params.Page, params.Size, total))
}

// GetCommitment returns the commitment loaded by RequireCommitmentAccess
func (h *CommitmentHandler) GetCommitment(c *gin.Context) {
	commitment, ok := middleware.GetCommitment(c)
	if !ok {
		apierrors.InternalError(c, "Commitment not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToCommitmentDTO(commitment))
}

// CreateCommitment records a new commitment owned by the caller
func (h *CommitmentHandler) CreateCommitment(c *gin.Context) {
	employeeID, ok := middleware.GetEmployeeID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.CreateCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	commitment, err := h.commitments.Create(services.CreateCommitmentInput{
		Title:            req.Title,
		Description:      req.Description,
		OrganizationName: req.OrganizationName,
		ContactPerson:    req.ContactPerson,
		DueDate:          req.DueDate,
		Status:           req.Status,
		OwnerID:          employeeID,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommitmentDTO(*commitment))
}

// UpdateCommitment applies a partial update
func (h *CommitmentHandler) UpdateCommitment(c *gin.Context) {
	commitment, ok := middleware.GetCommitment(c)
	if !ok {
		apierrors.InternalError(c, "Commitment not found in context")
		return
	}

	var req dto.UpdateCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	updated, err := h.commitments.Update(commitment.ID, services.UpdateCommitmentInput{
		Title:            req.Title,
		Description:      req.Description,
		OrganizationName: req.OrganizationName,
		ContactPerson:    req.ContactPerson,
		DueDate:          req.DueDate,
		Status:           req.Status,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCommitmentDTO(*updated))
}

// DeleteCommitment removes a commitment and its alerts
func (h *CommitmentHandler) DeleteCommitment(c *gin.Context) {
	commitment, ok := middleware.GetCommitment(c)
	if !ok {
		apierrors.InternalError(c, "Commitment not found in context")
		return
	}

	if err := h.commitments.Delete(commitment.ID); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Dashboard returns status counts and recent activity for the caller
func (h *CommitmentHandler) Dashboard(c *gin.Context) {
	employeeID, ok := middleware.GetEmployeeID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	summary, err := h.commitments.Dashboard(employeeID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardDTO(*summary))
}
