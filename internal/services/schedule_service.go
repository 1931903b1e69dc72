package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hld/work-schedule-api/internal/audit"
	"github.com/hld/work-schedule-api/internal/constants"
	"github.com/hld/work-schedule-api/internal/models"
	"github.com/hld/work-schedule-api/internal/repository"
	"github.com/hld/work-schedule-api/internal/sanitize"
	"github.com/hld/work-schedule-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskNotDeleted    = errors.New("task is not deleted")
	ErrInvalidDate       = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidDateRange  = errors.New("end date must not be before start date")
	ErrDateRangeTooLong  = errors.New("date range spans too many days")
	ErrContentRequired   = errors.New("content is required")
	ErrPersonnelRequired = errors.New("at least one personnel name is required")
	ErrEmptyTargetList   = errors.New("target list must contain at least one task id")
)

// ConflictError rejects a stale mutation and carries the authoritative
// current state so the caller can reconcile.
type ConflictError struct {
	Content   string
	Personnel []string
	Version   int
}

func (e *ConflictError) Error() string {
	return "task was modified by another user"
}

// ScheduleService handles the schedule's business logic. Edits and
// reorders are version-checked; delete deliberately is not, so a
// concurrent delete wins over an in-flight edit if it commits last.
type ScheduleService struct {
	repo    repository.ScheduleRepository
	auditor audit.Recorder
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(repo repository.ScheduleRepository, auditor audit.Recorder) *ScheduleService {
	return &ScheduleService{
		repo:    repo,
		auditor: auditor,
	}
}

// TaskView is a task together with the contiguous date span its
// content+personnel combination covers.
type TaskView struct {
	Task      models.ScheduleTask
	StartDate time.Time
	EndDate   time.Time
}

// CreateTasksInput represents input for creating tasks over a date range
type CreateTasksInput struct {
	StartDate string
	EndDate   string
	Content   string
	Personnel []string
	AuthorID  uint64
}

// CreateTasks replicates one task per date in the inclusive range. Each
// replica is independent, with its own id, version 0 and end-of-day
// position.
func (s *ScheduleService) CreateTasks(input CreateTasksInput) ([]models.ScheduleTask, error) {
	if input.StartDate == "" {
		return nil, ErrInvalidDate
	}
	if len(input.Personnel) == 0 {
		return nil, ErrPersonnelRequired
	}

	content := sanitize.Content(input.Content)
	if sanitize.IsEmpty(content) {
		return nil, ErrContentRequired
	}

	startDate, err := utils.ParseDate(input.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	endDate := startDate
	if input.EndDate != "" {
		endDate, err = utils.ParseDate(input.EndDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
	}
	if endDate.Before(startDate) {
		return nil, ErrInvalidDateRange
	}
	if endDate.Sub(startDate) > constants.MaxCreateRangeDays*24*time.Hour {
		return nil, ErrDateRangeTooLong
	}

	var created []models.ScheduleTask
	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		task := &models.ScheduleTask{
			TaskDate: date,
			Content:  content,
			AuthorID: input.AuthorID,
		}
		if err := s.repo.Create(task, input.Personnel); err != nil {
			return nil, fmt.Errorf("failed to create task: %w", err)
		}
		created = append(created, *task)
	}

	s.record(input.AuthorID, "Create Task",
		fmt.Sprintf("added task for %s to %s: %s", utils.FormatDate(startDate), utils.FormatDate(endDate), content))

	return created, nil
}

// ListWeek returns the active tasks of the week starting at weekStart,
// ordered by (date, position).
func (s *ScheduleService) ListWeek(weekStart time.Time) ([]models.ScheduleTask, error) {
	tasks, err := s.repo.ListWeek(weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to list week: %w", err)
	}
	return tasks, nil
}

// GetTask returns an active task by id.
func (s *ScheduleService) GetTask(taskID uint64) (*models.ScheduleTask, error) {
	task, err := s.repo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// GetTaskWithRange returns a task plus the contiguous span of adjacent
// days holding a task with identical content and personnel set. Each day
// of a multi-day block is a separate row; this lets an editor see the
// block as a whole. The walk is capped in both directions.
func (s *ScheduleService) GetTaskWithRange(taskID uint64) (*TaskView, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	names := task.PersonnelNames()

	start := task.TaskDate
	for i := 0; i < constants.MaxInferredRangeDays; i++ {
		day := start.AddDate(0, 0, -1)
		match, err := s.hasMatchingTask(day, task.Content, names)
		if err != nil {
			return nil, err
		}
		if !match {
			break
		}
		start = day
	}

	end := task.TaskDate
	for i := 0; i < constants.MaxInferredRangeDays; i++ {
		day := end.AddDate(0, 0, 1)
		match, err := s.hasMatchingTask(day, task.Content, names)
		if err != nil {
			return nil, err
		}
		if !match {
			break
		}
		end = day
	}

	return &TaskView{Task: *task, StartDate: start, EndDate: end}, nil
}

func (s *ScheduleService) hasMatchingTask(date time.Time, content string, names []string) (bool, error) {
	tasks, err := s.repo.ListByDate(date)
	if err != nil {
		return false, fmt.Errorf("failed to scan adjacent day: %w", err)
	}
	for _, candidate := range tasks {
		if candidate.Content == content && sameNameSet(candidate.PersonnelNames(), names) {
			return true, nil
		}
	}
	return false, nil
}

// sameNameSet compares personnel lists as sets: ordering differences do
// not split a block.
func sameNameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// UpdateTaskInput represents input for updating a task. Nil fields keep
// their current value. A nil ExpectedVersion skips the conflict check.
type UpdateTaskInput struct {
	TaskID          uint64
	ExpectedVersion *int
	Content         *string
	Personnel       []string
	TaskDate        *string
	ActorID         uint64
}

// UpdateTask applies an edit under the optimistic lock. On a stale
// version nothing is written and a ConflictError carrying the current
// content, personnel and version is returned.
func (s *ScheduleService) UpdateTask(input UpdateTaskInput) (*models.ScheduleTask, error) {
	task, err := s.GetTask(input.TaskID)
	if err != nil {
		return nil, err
	}

	taskDate := task.TaskDate
	if input.TaskDate != nil {
		taskDate, err = utils.ParseDate(*input.TaskDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
	}

	content := task.Content
	if input.Content != nil {
		content = sanitize.Content(*input.Content)
		if sanitize.IsEmpty(content) {
			return nil, ErrContentRequired
		}
	}

	personnel := task.PersonnelNames()
	if input.Personnel != nil {
		if len(input.Personnel) == 0 {
			return nil, ErrPersonnelRequired
		}
		personnel = input.Personnel
	}

	err = s.repo.UpdateWithVersion(task.ID, input.ExpectedVersion, content, taskDate, personnel)
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, s.buildConflict(task.ID)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.record(input.ActorID, "Update Task", fmt.Sprintf("updated task %d", task.ID))

	return s.GetTask(task.ID)
}

// buildConflict fetches the authoritative state for the conflict payload.
func (s *ScheduleService) buildConflict(taskID uint64) error {
	current, err := s.repo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The competing writer deleted the task.
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to load conflicting task: %w", err)
	}
	return &ConflictError{
		Content:   current.Content,
		Personnel: current.PersonnelNames(),
		Version:   current.Version,
	}
}

// ReorderTasksInput represents a drag-and-drop reorder, possibly across
// days. Lists carry the complete ordered ids of their day after the drag.
type ReorderTasksInput struct {
	MovedTaskID     uint64
	ExpectedVersion int
	TargetDate      string
	TargetTaskIDs   []uint64
	SourceDate      string
	SourceTaskIDs   []uint64
	ActorID         uint64
}

// ReorderTasks moves one task and rewrites sibling positions as a single
// all-or-nothing transaction.
func (s *ScheduleService) ReorderTasks(input ReorderTasksInput) error {
	if len(input.TargetTaskIDs) == 0 {
		return ErrEmptyTargetList
	}
	targetDate, err := utils.ParseDate(input.TargetDate)
	if err != nil {
		return ErrInvalidDate
	}

	repoInput := repository.ReorderInput{
		MovedTaskID:     input.MovedTaskID,
		ExpectedVersion: input.ExpectedVersion,
		Target: repository.ReorderList{
			Date:    targetDate,
			TaskIDs: input.TargetTaskIDs,
		},
	}
	if input.SourceDate != "" {
		sourceDate, err := utils.ParseDate(input.SourceDate)
		if err != nil {
			return ErrInvalidDate
		}
		repoInput.Source = &repository.ReorderList{
			Date:    sourceDate,
			TaskIDs: input.SourceTaskIDs,
		}
	}

	err = s.repo.Reorder(repoInput)
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return s.buildConflict(input.MovedTaskID)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to reorder tasks: %w", err)
	}

	affected := len(input.TargetTaskIDs) + len(input.SourceTaskIDs)
	s.record(input.ActorID, "Reorder Tasks", fmt.Sprintf("updated the order of %d tasks", affected))

	return nil
}

// DeleteTask soft deletes a task. No version check: a concurrent delete
// simply wins over an in-flight edit.
func (s *ScheduleService) DeleteTask(taskID, actorID uint64) (*models.ScheduleTask, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SoftDelete(task.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	s.record(actorID, "Delete Task", fmt.Sprintf("deleted task %d: %s", task.ID, task.Content))

	return task, nil
}

// RestoreTask brings a soft-deleted task back with its content,
// assignments, position and version intact.
func (s *ScheduleService) RestoreTask(taskID, actorID uint64) (*models.ScheduleTask, error) {
	task, err := s.repo.FindAnyByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if !task.DeletedAt.Valid {
		return nil, ErrTaskNotDeleted
	}

	if err := s.repo.Restore(task.ID); err != nil {
		return nil, fmt.Errorf("failed to restore task: %w", err)
	}

	s.record(actorID, "Restore Task", fmt.Sprintf("restored task %d", task.ID))

	return s.GetTask(task.ID)
}

func (s *ScheduleService) record(actorID uint64, action, details string) {
	if s.auditor != nil {
		s.auditor.Record(actorID, action, details)
	}
}
