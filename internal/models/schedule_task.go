package models

import (
	"time"

	"gorm.io/gorm"
)

// ScheduleTask is one work item pinned to a single calendar date. Display
// order among tasks sharing a date is manual, via Position. Version backs
// the optimistic lock: every accepted edit or reorder increments it by one,
// soft delete and restore leave it alone.
type ScheduleTask struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	TaskDate  time.Time      `gorm:"type:date;not null;index" json:"task_date"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Position  int            `gorm:"not null;default:0" json:"position"`
	Version   int            `gorm:"not null;default:0" json:"version"`
	AuthorID  uint64         `gorm:"not null" json:"author_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Author      User             `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
}

// PersonnelNames returns the assigned names in display order. Assignments
// must have been preloaded.
func (t *ScheduleTask) PersonnelNames() []string {
	names := make([]string, len(t.Assignments))
	for i, a := range t.Assignments {
		names[i] = a.PersonnelName
	}
	return names
}
