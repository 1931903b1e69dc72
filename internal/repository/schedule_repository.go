package repository

import (
	"errors"
	"time"

	"github.com/hld/work-schedule-api/internal/constants"
	"github.com/hld/work-schedule-api/internal/models"
	"gorm.io/gorm"
)

// ErrVersionConflict is returned when a conditional write finds a version
// other than the one the caller observed.
var ErrVersionConflict = errors.New("schedule repository: version conflict")

// GormScheduleRepository is a GORM implementation of ScheduleRepository
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &GormScheduleRepository{db: db}
}

func preloadAssignments(db *gorm.DB) *gorm.DB {
	return db.Order("task_assignments.position ASC")
}

// Create inserts a task after the last active task of its day and creates
// the assignment rows with positions 0..n-1.
func (r *GormScheduleRepository) Create(task *models.ScheduleTask, personnel []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxPosition int
		err := tx.Model(&models.ScheduleTask{}).
			Where("task_date = ?", task.TaskDate).
			Select("COALESCE(MAX(position), -1)").
			Scan(&maxPosition).Error
		if err != nil {
			return err
		}
		task.Position = maxPosition + 1

		if err := tx.Create(task).Error; err != nil {
			return err
		}

		if len(personnel) == 0 {
			return nil
		}

		assignments := make([]models.TaskAssignment, len(personnel))
		for i, name := range personnel {
			assignments[i] = models.TaskAssignment{
				TaskID:        task.ID,
				PersonnelName: name,
				Position:      i,
			}
		}
		if err := tx.Create(&assignments).Error; err != nil {
			return err
		}

		task.Assignments = assignments
		return nil
	})
}

// FindByID finds an active task with its ordered assignments
func (r *GormScheduleRepository) FindByID(id uint64) (*models.ScheduleTask, error) {
	var task models.ScheduleTask
	err := r.db.
		Preload("Assignments", preloadAssignments).
		Preload("Author").
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// FindAnyByID finds a task regardless of its deletion state
func (r *GormScheduleRepository) FindAnyByID(id uint64) (*models.ScheduleTask, error) {
	var task models.ScheduleTask
	err := r.db.Unscoped().
		Preload("Assignments", preloadAssignments).
		Preload("Author").
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListWeek returns the week's active tasks ordered by (date, position)
func (r *GormScheduleRepository) ListWeek(weekStart time.Time) ([]models.ScheduleTask, error) {
	weekEnd := weekStart.AddDate(0, 0, constants.DaysPerWeek-1)

	var tasks []models.ScheduleTask
	err := r.db.
		Where("task_date BETWEEN ? AND ?", weekStart, weekEnd).
		Order("task_date ASC, position ASC").
		Preload("Assignments", preloadAssignments).
		Preload("Author").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByDate returns one day's active tasks ordered by position
func (r *GormScheduleRepository) ListByDate(date time.Time) ([]models.ScheduleTask, error) {
	var tasks []models.ScheduleTask
	err := r.db.
		Where("task_date = ?", date).
		Order("position ASC").
		Preload("Assignments", preloadAssignments).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateWithVersion applies the edit as a single conditional UPDATE so the
// version check and the increment cannot race, then rebuilds the
// assignment sub-list inside the same transaction.
func (r *GormScheduleRepository) UpdateWithVersion(id uint64, expectedVersion *int, content string, taskDate time.Time, personnel []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.ScheduleTask{}).Where("id = ?", id)
		if expectedVersion != nil {
			query = query.Where("version = ?", *expectedVersion)
		}

		result := query.Updates(map[string]interface{}{
			"content":   content,
			"task_date": taskDate,
			"version":   gorm.Expr("version + 1"),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// The row exists with a different version, or not at all.
			var current models.ScheduleTask
			if err := tx.First(&current, id).Error; err != nil {
				return err
			}
			return ErrVersionConflict
		}

		// Destroy-all-then-recreate keeps assignment renumbering trivial.
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		if len(personnel) == 0 {
			return nil
		}
		assignments := make([]models.TaskAssignment, len(personnel))
		for i, name := range personnel {
			assignments[i] = models.TaskAssignment{
				TaskID:        id,
				PersonnelName: name,
				Position:      i,
			}
		}
		return tx.Create(&assignments).Error
	})
}

// Reorder moves a task to its target day and rewrites every affected
// position in one transaction. The moved task's version gates the whole
// mutation; every task in either list gets its version bumped so siblings
// held by other clients go stale. Any failure rolls everything back.
func (r *GormScheduleRepository) Reorder(input ReorderInput) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ScheduleTask{}).
			Where("id = ? AND version = ?", input.MovedTaskID, input.ExpectedVersion).
			Updates(map[string]interface{}{
				"task_date": input.Target.Date,
				"version":   gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var moved models.ScheduleTask
			if err := tx.First(&moved, input.MovedTaskID).Error; err != nil {
				return err
			}
			return ErrVersionConflict
		}

		lists := []ReorderList{input.Target}
		if input.Source != nil {
			lists = append(lists, *input.Source)
		}

		siblings := make([]uint64, 0)
		seen := map[uint64]struct{}{input.MovedTaskID: {}}
		for _, list := range lists {
			for index, taskID := range list.TaskIDs {
				err := tx.Model(&models.ScheduleTask{}).
					Where("id = ?", taskID).
					Update("position", index).Error
				if err != nil {
					return err
				}
				if _, ok := seen[taskID]; !ok {
					seen[taskID] = struct{}{}
					siblings = append(siblings, taskID)
				}
			}
		}

		if len(siblings) == 0 {
			return nil
		}
		return tx.Model(&models.ScheduleTask{}).
			Where("id IN ?", siblings).
			Update("version", gorm.Expr("version + 1")).Error
	})
}

// SoftDelete marks an active task deleted. The version counter is not
// part of the delete protocol: delete is last-writer-wins.
func (r *GormScheduleRepository) SoftDelete(id uint64) error {
	result := r.db.Delete(&models.ScheduleTask{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Restore clears the deletion mark, leaving version and position as they
// were before the delete.
func (r *GormScheduleRepository) Restore(id uint64) error {
	result := r.db.Unscoped().
		Model(&models.ScheduleTask{}).
		Where("id = ?", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
