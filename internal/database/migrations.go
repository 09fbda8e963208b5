package database

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// indexes lists the lookups the dashboard and alert views depend on beyond the ones
// declared on the models.
var indexes = []index{
	{"commitments", "idx_commitments_owner_status", "owner_id, status"},
	{"commitments", "idx_commitments_owner_due", "owner_id, due_date"},
	{"alerts", "idx_alerts_commitment_status", "commitment_id, status"},
	{"alerts", "idx_alerts_created_at", "created_at"},
}

// AddIndexes adds the composite indexes that are not expressed through struct tags
func AddIndexes(db *gorm.DB, log zerolog.Logger) error {
	migrator := db.Migrator()

	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug().Str("index", idx.name).Msg("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info().Str("index", idx.name).Str("table", idx.table).Str("columns", idx.columns).Msg("Created index")
	}

	return nil
}
