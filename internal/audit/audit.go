package audit

import (
	"log"
	"time"

	"github.com/hld/work-schedule-api/internal/models"
	"gorm.io/gorm"
)

// Recorder captures who did what. It is injected into the mutation layer
// so the core stays testable without a real persistence backend.
type Recorder interface {
	Record(actorID uint64, action, details string)
}

// GormRecorder persists activity entries to the database.
type GormRecorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *GormRecorder {
	return &GormRecorder{db: db}
}

// Record writes one audit entry. Audit persistence never fails the
// mutation it describes; a write error is logged and dropped.
func (r *GormRecorder) Record(actorID uint64, action, details string) {
	entry := models.ActivityLog{
		UserID:    actorID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	}
	if err := r.db.Create(&entry).Error; err != nil {
		log.Printf("failed to record activity %q: %v", action, err)
	}
}
