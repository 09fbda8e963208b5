package repository

import (
	"github.com/AbdullahHad/WaadFinal/internal/database"
	"github.com/AbdullahHad/WaadFinal/internal/models"
	"gorm.io/gorm"
)

// GormAlertRepository is a GORM implementation of AlertRepository
type GormAlertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a new AlertRepository
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &GormAlertRepository{db: db}
}

// FindByID finds an alert by ID
func (r *GormAlertRepository) FindByID(id uint64) (*models.Alert, error) {
	var alert models.Alert
	if err := r.db.First(&alert, id).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

// List retrieves alerts newest first with filtering and pagination
func (r *GormAlertRepository) List(filter AlertFilter) ([]models.Alert, int64, error) {
	var alerts []models.Alert

	query := r.filtered(filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("alerts.created_at DESC").Order("alerts.id DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))

	if err := listQuery.Find(&alerts).Error; err != nil {
		return nil, 0, err
	}

	return alerts, total, nil
}

// ListByCommitment returns every alert referencing a commitment, oldest first
func (r *GormAlertRepository) ListByCommitment(commitmentID uint64) ([]models.Alert, error) {
	var alerts []models.Alert
	err := r.db.Where("commitment_id = ?", commitmentID).
		Order("created_at ASC").Order("id ASC").
		Find(&alerts).Error
	return alerts, err
}

// UpdateStatus moves an alert to a new status
func (r *GormAlertRepository) UpdateStatus(id uint64, status models.AlertStatus) error {
	result := r.db.Model(&models.Alert{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count counts alerts matching the filter, ignoring pagination
func (r *GormAlertRepository) Count(filter AlertFilter) (int64, error) {
	var total int64
	err := r.filtered(filter).Count(&total).Error
	return total, err
}

func (r *GormAlertRepository) filtered(filter AlertFilter) *gorm.DB {
	query := r.db.Model(&models.Alert{})

	if filter.OwnerID != nil {
		ownerSubQuery := r.db.Model(&models.Commitment{}).
			Select("1").
			Where("commitments.id = alerts.commitment_id").
			Where("commitments.owner_id = ?", *filter.OwnerID).
			Where("commitments.deleted_at IS NULL")
		query = query.Where("EXISTS (?)", ownerSubQuery)
	}
	if filter.Status != nil {
		query = query.Where("alerts.status = ?", *filter.Status)
	}

	// Count and Find both run off this chain.
	return query.Session(&gorm.Session{})
}
