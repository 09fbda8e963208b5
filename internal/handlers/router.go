package handlers

import (
	"github.com/AbdullahHad/WaadFinal/internal/middleware"
	"github.com/AbdullahHad/WaadFinal/internal/repository"
	"github.com/gin-gonic/gin"
)

// Routes bundles everything the HTTP API is built from
type Routes struct {
	Employees     repository.EmployeeRepository
	Commitments   repository.CommitmentRepository
	Health        *HealthHandler
	Commitment    *CommitmentHandler
	Alert         *AlertHandler
	Admin         *AdminHandler
	Notifications *NotificationHandler
}

// Register mounts the API on r
func (rt Routes) Register(r *gin.Engine) {
	r.GET("/health", rt.Health.Health)

	api := r.Group("/api")
	api.Use(middleware.RequireEmployee(rt.Employees))
	{
		api.GET("/dashboard", rt.Commitment.Dashboard)

		commitments := api.Group("/commitments")
		{
			commitments.GET("", rt.Commitment.ListCommitments)
			commitments.POST("", rt.Commitment.CreateCommitment)
			commitments.GET("/:id", middleware.RequireCommitmentAccess(rt.Commitments), rt.Commitment.GetCommitment)
			commitments.PATCH("/:id", middleware.RequireCommitmentAccess(rt.Commitments), rt.Commitment.UpdateCommitment)
			commitments.DELETE("/:id", middleware.RequireCommitmentAccess(rt.Commitments), rt.Commitment.DeleteCommitment)
			commitments.GET("/:id/alerts", middleware.RequireCommitmentAccess(rt.Commitments), rt.Alert.ListCommitmentAlerts)
		}

		alerts := api.Group("/alerts")
		{
			alerts.GET("", rt.Alert.ListAlerts)
			alerts.POST("/:id/acknowledge", rt.Alert.AcknowledgeAlert)
		}

		api.GET("/notifications/stream", rt.Notifications.Stream)

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/commitments", rt.Admin.ListCommitments)
			admin.PATCH("/commitments/:id/status", rt.Admin.UpdateCommitmentStatus)
			admin.GET("/employees", rt.Admin.ListEmployees)
			admin.GET("/employees/:id/commitments", rt.Admin.EmployeeCommitments)
		}
	}
}
