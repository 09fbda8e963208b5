package handlers

import (
	"errors"
	"strconv"
	"strings"

	apierrors "github.com/AbdullahHad/WaadFinal/internal/errors"
	"github.com/AbdullahHad/WaadFinal/internal/models"
	"github.com/AbdullahHad/WaadFinal/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondServiceError maps service sentinel errors onto API errors
func respondServiceError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrCommitmentNotFound),
		errors.Is(err, services.ErrAlertNotFound),
		errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrOrganizationRequired),
		errors.Is(err, services.ErrDueDateRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidAlertStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCommitmentConflict):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrAlertResolved):
		apierrors.UnprocessableEntity(c, err.Error())
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		apierrors.InternalError(c, "")
	}
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func commitmentStatusQuery(c *gin.Context) *models.CommitmentStatus {
	raw := strings.TrimSpace(c.Query("status"))
	if raw == "" {
		return nil
	}
	status := models.CommitmentStatus(strings.ToUpper(raw))
	return &status
}

func alertStatusQuery(c *gin.Context) *models.AlertStatus {
	raw := strings.TrimSpace(c.Query("status"))
	if raw == "" {
		return nil
	}
	status := models.AlertStatus(strings.ToUpper(raw))
	return &status
}
