package models

// TaskAssignment attaches one personnel name to a task. Assignments are
// owned by their task: editing a task replaces the whole list, and they
// carry no foreign key into the personnel directory. The name is a
// snapshot, so deleting a directory entry never rewrites history.
type TaskAssignment struct {
	ID            uint64 `gorm:"primarykey" json:"id"`
	TaskID        uint64 `gorm:"not null;index" json:"task_id"`
	PersonnelName string `gorm:"type:varchar(100);not null" json:"personnel_name"`
	Position      int    `gorm:"not null;default:0" json:"position"`

	// Relations
	Task ScheduleTask `gorm:"foreignKey:TaskID" json:"-"`
}
