package audit

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hld/work-schedule-api/internal/models"
)

func TestRecord_PersistsEntry(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ActivityLog{}))

	recorder := NewRecorder(db)
	recorder.Record(7, "Create Task", "added task for 2024-06-03")

	var entry models.ActivityLog
	require.NoError(t, db.First(&entry).Error)
	require.Equal(t, uint64(7), entry.UserID)
	require.Equal(t, "Create Task", entry.Action)
	require.Equal(t, "added task for 2024-06-03", entry.Details)
	require.False(t, entry.Timestamp.IsZero())
}

func TestRecord_WriteErrorIsDropped(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// No migration: the insert fails, but Record must not panic.

	recorder := NewRecorder(db)
	recorder.Record(7, "Create Task", "")
}
