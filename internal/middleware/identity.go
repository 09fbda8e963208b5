package middleware

import (
	"strconv"
	"strings"

	"github.com/AbdullahHad/WaadFinal/internal/constants"
	apierrors "github.com/AbdullahHad/WaadFinal/internal/errors"
	"github.com/AbdullahHad/WaadFinal/internal/models"
	"github.com/AbdullahHad/WaadFinal/internal/repository"
	"github.com/gin-gonic/gin"
)

// RequireEmployee resolves the caller from the gateway's employee header
func RequireEmployee(employees repository.EmployeeRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(constants.HeaderEmployeeID))
		if raw == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		employeeID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || employeeID == 0 {
			apierrors.Unauthorized(c, "Invalid employee identity")
			c.Abort()
			return
		}

		employee, err := employees.FindByID(employeeID)
		if err != nil {
			apierrors.Unauthorized(c, "Unknown employee")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyEmployeeID, employee.ID)
		c.Set(constants.ContextKeyEmployee, *employee)
		c.Next()
	}
}

// RequireAdmin must run after RequireEmployee
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		employee, ok := GetEmployee(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !employee.IsAdmin() {
			apierrors.Forbidden(c, "Admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetEmployeeID retrieves the current employee ID from context
func GetEmployeeID(c *gin.Context) (uint64, bool) {
	employeeID, exists := c.Get(constants.ContextKeyEmployeeID)
	if !exists {
		return 0, false
	}

	switch v := employeeID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetEmployee retrieves the current employee from context
func GetEmployee(c *gin.Context) (models.Employee, bool) {
	value, exists := c.Get(constants.ContextKeyEmployee)
	if !exists {
		return models.Employee{}, false
	}
	employee, ok := value.(models.Employee)
	return employee, ok
}
