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

// AlertHandler handles alert requests
type AlertHandler struct {
	alerts *services.AlertService
	log    zerolog.Logger
}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler(alerts *services.AlertService, log zerolog.Logger) *AlertHandler {
	return &AlertHandler{
		alerts: alerts,
		log:    log,
	}
}

// ListAlerts returns alerts newest first; admins see every alert
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	employee, ok := middleware.GetEmployee(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.PageFromQuery(c)
	alerts, total, err := h.alerts.List(services.ListAlertsInput{
		EmployeeID: employee.ID,
		IsAdmin:    employee.IsAdmin(),
		Status:     alertStatusQuery(c),
		Page:       params.Page,
		PageSize:   params.Size,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAlertListResponse(alerts, params.Page, params.Size, total))
}

// AcknowledgeAlert marks an alert as seen
func (h *AlertHandler) AcknowledgeAlert(c *gin.Context) {
	employee, ok := middleware.GetEmployee(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	alertID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	alert, err := h.alerts.Acknowledge(alertID, employee.ID, employee.IsAdmin())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAlertDTO(*alert))
}

// ListCommitmentAlerts returns the alert history of the commitment loaded by RequireCommitmentAccess
func (h *AlertHandler) ListCommitmentAlerts(c *gin.Context) {
	commitment, ok := middleware.GetCommitment(c)
	if !ok {
		apierrors.InternalError(c, "Commitment not found in context")
		return
	}

	alerts, err := h.alerts.ListForCommitment(commitment.ID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": dto.ToAlertDTOs(alerts)})
}
