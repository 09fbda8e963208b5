package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/AbdullahHad/WaadFinal/internal/models"
	"github.com/AbdullahHad/WaadFinal/internal/utils"
)

// Paginate limits a listing to one page. A zero page or size leaves the query unbounded.
func Paginate(page, size int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page <= 0 || size <= 0 {
			return db
		}
		req := utils.NewPageRequest(page, size)
		return db.Offset(req.Offset).Limit(req.Size)
	}
}

// PendingDueBy selects pending commitments whose due date is at or before now
func PendingDueBy(now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("commitments.status = ? AND commitments.due_date <= ?", models.CommitmentStatusPending, now.UTC())
	}
}

// OwnedBy restricts commitments to one owner
func OwnedBy(ownerID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("commitments.owner_id = ?", ownerID)
	}
}
