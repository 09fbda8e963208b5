package middleware

import (
	"strconv"

	"github.com/AbdullahHad/WaadFinal/internal/constants"
	apierrors "github.com/AbdullahHad/WaadFinal/internal/errors"
	"github.com/AbdullahHad/WaadFinal/internal/models"
	"github.com/AbdullahHad/WaadFinal/internal/repository"
	"github.com/gin-gonic/gin"
)

// RequireCommitmentAccess loads the commitment in :id and checks the caller owns it.
// Admins can reach every commitment.
func RequireCommitmentAccess(commitments repository.CommitmentRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		commitmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid commitment ID")
			c.Abort()
			return
		}

		employee, ok := GetEmployee(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		commitment, err := commitments.FindByID(commitmentID, "Owner")
		if err != nil {
			apierrors.NotFound(c, "Commitment not found")
			c.Abort()
			return
		}

		// 404 rather than 403 so other employees' commitments stay invisible
		if !employee.IsAdmin() && !commitment.OwnedBy(employee.ID) {
			apierrors.NotFound(c, "Commitment not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCommitment, *commitment)
		c.Next()
	}
}

// GetCommitment retrieves the commitment loaded by RequireCommitmentAccess
func GetCommitment(c *gin.Context) (models.Commitment, bool) {
	value, exists := c.Get(constants.ContextKeyCommitment)
	if !exists {
		return models.Commitment{}, false
	}
	commitment, ok := value.(models.Commitment)
	return commitment, ok
}
