package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// AddIndexes adds the hot-path indexes that AutoMigrate's tag-driven ones
// don't cover.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Week view reads (date, position) ordered
		{"schedule_tasks", "idx_schedule_tasks_date_position", "task_date, position"},
		{"schedule_tasks", "idx_schedule_tasks_author_id", "author_id"},

		// Assignment lookups by owning task
		{"task_assignments", "idx_task_assignments_task_position", "task_id, position"},

		// Audit log reads newest-first
		{"activity_logs", "idx_activity_logs_timestamp", "timestamp"},

		// Signup path resolves codes directly
		{"invitations", "idx_invitations_code", "code"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, idx.table, idx.name).Scan(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
