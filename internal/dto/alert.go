package dto

import (
	"time"

	"github.com/AbdullahHad/WaadFinal/internal/models"
)

// AlertDTO represents an alert in API responses
type AlertDTO struct {
	ID           uint64             `json:"id"`
	CommitmentID uint64             `json:"commitment_id"`
	Message      string             `json:"message"`
	Status       models.AlertStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
}

// AlertListResponse represents a paginated list of alerts
type AlertListResponse struct {
	Alerts     []AlertDTO `json:"alerts"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalCount int64      `json:"total_count"`
	TotalPages int        `json:"total_pages"`
}

// ToAlertDTO converts an Alert model to AlertDTO
func ToAlertDTO(alert models.Alert) AlertDTO {
	return AlertDTO{
		ID:           alert.ID,
		CommitmentID: alert.CommitmentID,
		Message:      alert.Message,
		Status:       alert.Status,
		CreatedAt:    alert.CreatedAt,
	}
}

// ToAlertDTOs converts a slice of alerts
func ToAlertDTOs(alerts []models.Alert) []AlertDTO {
	items := make([]AlertDTO, len(alerts))
	for i, alert := range alerts {
		items[i] = ToAlertDTO(alert)
	}
	return items
}

// ToAlertListResponse converts a page of alerts to AlertListResponse
func ToAlertListResponse(alerts []models.Alert, page, pageSize int, totalCount int64) AlertListResponse {
	return AlertListResponse{
		Alerts:     ToAlertDTOs(alerts),
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, pageSize),
	}
}
