package dto

import "github.com/AbdullahHad/WaadFinal/internal/services"

// DashboardDTO is the response of GET /api/dashboard
type DashboardDTO struct {
	PendingCount      int64           `json:"pending_count"`
	OverdueCount      int64           `json:"overdue_count"`
	CompletedCount    int64           `json:"completed_count"`
	NewAlertsCount    int64           `json:"new_alerts_count"`
	RecentCommitments []CommitmentDTO `json:"recent_commitments"`
	RecentAlerts      []AlertDTO      `json:"recent_alerts"`
}

// ToDashboardDTO converts a dashboard summary to DashboardDTO
func ToDashboardDTO(summary services.DashboardSummary) DashboardDTO {
	return DashboardDTO{
		PendingCount:      summary.PendingCount,
		OverdueCount:      summary.OverdueCount,
		CompletedCount:    summary.CompletedCount,
		NewAlertsCount:    summary.NewAlertsCount,
		RecentCommitments: ToCommitmentDTOs(summary.RecentCommitments),
		RecentAlerts:      ToAlertDTOs(summary.RecentAlerts),
	}
}
