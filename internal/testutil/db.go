// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/AbdullahHad/WaadFinal/internal/database"
	"github.com/AbdullahHad/WaadFinal/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database that lives until the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: database.UTCNow,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Employee{},
		&models.Commitment{},
		&models.Alert{},
	))

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// CreateEmployee inserts an employee with the given email and role.
func CreateEmployee(t testing.TB, db *gorm.DB, email string, role models.EmployeeRole) *models.Employee {
	t.Helper()

	employee := &models.Employee{
		Email: email,
		Name:  email,
		Role:  role,
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}

// CreateCommitment inserts a commitment owned by ownerID (nil for unassigned).
func CreateCommitment(t testing.TB, db *gorm.DB, title string, due time.Time, status models.CommitmentStatus, ownerID *uint64) *models.Commitment {
	t.Helper()

	commitment := &models.Commitment{
		Title:            title,
		Description:      "Test Description",
		OrganizationName: "Acme Corp",
		ContactPerson:    "Jane Roe",
		DueDate:          due,
		Status:           status,
		OwnerID:          ownerID,
	}
	require.NoError(t, db.Create(commitment).Error)
	return commitment
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
