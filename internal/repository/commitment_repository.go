package repository

import (
	"context"
	"time"

	"github.com/AbdullahHad/WaadFinal/internal/database"
	"github.com/AbdullahHad/WaadFinal/internal/models"
	"gorm.io/gorm"
)

// GormCommitmentRepository is a GORM implementation of CommitmentRepository
type GormCommitmentRepository struct {
	db *gorm.DB
}

// NewCommitmentRepository creates a new CommitmentRepository
func NewCommitmentRepository(db *gorm.DB) CommitmentRepository {
	return &GormCommitmentRepository{db: db}
}

// CreateWithAlert creates a commitment and its companion alert in one transaction
func (r *GormCommitmentRepository) CreateWithAlert(commitment *models.Commitment, alert *models.Alert) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(commitment).Error; err != nil {
			return err
		}
		if alert == nil {
			return nil
		}

		alert.CommitmentID = commitment.ID
		return tx.Create(alert).Error
	})
}

// FindByID finds a commitment by ID with optional preloading
func (r *GormCommitmentRepository) FindByID(id uint64, preload ...string) (*models.Commitment, error) {
	var commitment models.Commitment
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&commitment, id).Error; err != nil {
		return nil, err
	}

	return &commitment, nil
}

// List retrieves commitments with filtering and pagination, latest due date first
func (r *GormCommitmentRepository) List(filter CommitmentFilter) ([]models.Commitment, int64, error) {
	var commitments []models.Commitment

	query := r.db.Model(&models.Commitment{})
	if filter.OwnerID != nil {
		query = query.Scopes(database.OwnedBy(*filter.OwnerID))
	}
	if filter.Status != nil {
		query = query.Where("commitments.status = ?", *filter.Status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("commitments.due_date DESC").Order("commitments.id DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize))
	for _, p := range filter.Preload {
		listQuery = listQuery.Preload(p)
	}

	if err := listQuery.Find(&commitments).Error; err != nil {
		return nil, 0, err
	}

	return commitments, total, nil
}

// Update writes every field of the commitment if its version is unchanged
func (r *GormCommitmentRepository) Update(commitment *models.Commitment, alert *models.Alert) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Commitment{}).
			Where("id = ? AND version = ?", commitment.ID, commitment.Version).
			Updates(map[string]interface{}{
				"title":             commitment.Title,
				"description":       commitment.Description,
				"organization_name": commitment.OrganizationName,
				"contact_person":    commitment.ContactPerson,
				"due_date":          commitment.DueDate.UTC(),
				"status":            commitment.Status,
				"owner_id":          commitment.OwnerID,
				"version":           gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVersionConflict
		}
		commitment.Version++
		commitment.DueDate = commitment.DueDate.UTC()

		if alert == nil {
			return nil
		}
		alert.CommitmentID = commitment.ID
		return tx.Create(alert).Error
	})
}

// DeleteWithAlerts soft deletes a commitment together with its alerts
func (r *GormCommitmentRepository) DeleteWithAlerts(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("commitment_id = ?", id).Delete(&models.Alert{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Commitment{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountByStatus counts an owner's commitments per status
func (r *GormCommitmentRepository) CountByStatus(ownerID uint64) (map[models.CommitmentStatus]int64, error) {
	var rows []struct {
		Status models.CommitmentStatus
		Count  int64
	}

	err := r.db.Model(&models.Commitment{}).
		Select("status, COUNT(*) AS count").
		Scopes(database.OwnedBy(ownerID)).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[models.CommitmentStatus]int64{
		models.CommitmentStatusPending:   0,
		models.CommitmentStatusOverdue:   0,
		models.CommitmentStatusCompleted: 0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// FindOverdueCandidates returns every pending commitment due at or before now
func (r *GormCommitmentRepository) FindOverdueCandidates(ctx context.Context, now time.Time) ([]models.Commitment, error) {
	var commitments []models.Commitment
	err := r.db.WithContext(ctx).
		Scopes(database.PendingDueBy(now)).
		Find(&commitments).Error
	if err != nil {
		return nil, err
	}
	return commitments, nil
}

// SaveOverdueBatch persists status changes and new alerts in one transaction.
// Each update only applies while the row is still pending at the version that was read;
// rows that lost that race are reported as skipped and their alerts are dropped.
func (r *GormCommitmentRepository) SaveOverdueBatch(ctx context.Context, changed []models.Commitment, alerts []models.Alert) (OverdueBatchResult, error) {
	var result OverdueBatchResult
	if len(changed) == 0 {
		return result, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result = OverdueBatchResult{}
		applied := make(map[uint64]struct{}, len(changed))

		for _, c := range changed {
			res := tx.Model(&models.Commitment{}).
				Where("id = ? AND status = ? AND version = ?", c.ID, models.CommitmentStatusPending, c.Version).
				Updates(map[string]interface{}{
					"status":  c.Status,
					"version": gorm.Expr("version + 1"),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				result.Skipped = append(result.Skipped, c)
				continue
			}

			c.Version++
			applied[c.ID] = struct{}{}
			result.Updated = append(result.Updated, c)
		}

		toInsert := make([]models.Alert, 0, len(alerts))
		for _, a := range alerts {
			if _, ok := applied[a.CommitmentID]; ok {
				toInsert = append(toInsert, a)
			}
		}
		if len(toInsert) > 0 {
			if err := tx.Create(&toInsert).Error; err != nil {
				return err
			}
		}
		result.Alerts = toInsert
		return nil
	})
	if err != nil {
		return OverdueBatchResult{}, err
	}

	return result, nil
}
