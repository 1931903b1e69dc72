package dto

import (
	"time"

	"github.com/hld/work-schedule-api/internal/constants"
	"github.com/hld/work-schedule-api/internal/models"
	"github.com/hld/work-schedule-api/internal/services"
	"github.com/hld/work-schedule-api/internal/utils"
)

// TaskDTO represents a schedule task in API responses
type TaskDTO struct {
	ID        uint64    `json:"id"`
	TaskDate  string    `json:"task_date"`
	Content   string    `json:"content"`
	Position  int       `json:"position"`
	Version   int       `json:"version"`
	Personnel []string  `json:"personnel"`
	AuthorID  uint64    `json:"author_id"`
	Author    *UserDTO  `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskDetailDTO is a task with its inferred contiguous date span
type TaskDetailDTO struct {
	TaskDTO
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ConflictDataDTO is the authoritative state attached to a 409 response
type ConflictDataDTO struct {
	Content   string   `json:"content"`
	Personnel []string `json:"personnel"`
	Version   int      `json:"version"`
}

// DayDTO is one day's ordered tasks in the week view
type DayDTO struct {
	Date  string    `json:"date"`
	Tasks []TaskDTO `json:"tasks"`
}

// WeekResponse is the full week view with navigation cursors
type WeekResponse struct {
	WeekStart     string   `json:"week_start"`
	WeekEnd       string   `json:"week_end"`
	PrevWeek      string   `json:"prev_week"`
	NextWeek      string   `json:"next_week"`
	IsCurrentWeek bool     `json:"is_current_week"`
	Days          []DayDTO `json:"days"`
}

// ToTaskDTO converts a ScheduleTask model to TaskDTO
func ToTaskDTO(task models.ScheduleTask) TaskDTO {
	dto := TaskDTO{
		ID:        task.ID,
		TaskDate:  utils.FormatDate(task.TaskDate),
		Content:   task.Content,
		Position:  task.Position,
		Version:   task.Version,
		Personnel: task.PersonnelNames(),
		AuthorID:  task.AuthorID,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}

	// Include author if preloaded
	if task.Author.ID != 0 {
		author := ToUserDTO(task.Author)
		dto.Author = &author
	}

	return dto
}

// ToTaskDetailDTO converts a TaskView to TaskDetailDTO
func ToTaskDetailDTO(view services.TaskView) TaskDetailDTO {
	return TaskDetailDTO{
		TaskDTO:   ToTaskDTO(view.Task),
		StartDate: utils.FormatDate(view.StartDate),
		EndDate:   utils.FormatDate(view.EndDate),
	}
}

// ToConflictDataDTO converts a ConflictError to its response payload
func ToConflictDataDTO(conflict *services.ConflictError) ConflictDataDTO {
	return ConflictDataDTO{
		Content:   conflict.Content,
		Personnel: conflict.Personnel,
		Version:   conflict.Version,
	}
}

// ToWeekResponse buckets a week's tasks into their days and attaches the
// navigation cursors.
func ToWeekResponse(weekStart time.Time, tasks []models.ScheduleTask, today time.Time) WeekResponse {
	days := make([]DayDTO, constants.DaysPerWeek)
	for i := range days {
		days[i] = DayDTO{
			Date:  utils.FormatDate(weekStart.AddDate(0, 0, i)),
			Tasks: []TaskDTO{},
		}
	}

	for _, task := range tasks {
		day := int(task.TaskDate.Sub(weekStart).Hours() / 24)
		if day < 0 || day >= constants.DaysPerWeek {
			continue
		}
		days[day].Tasks = append(days[day].Tasks, ToTaskDTO(task))
	}

	return WeekResponse{
		WeekStart:     utils.FormatDate(weekStart),
		WeekEnd:       utils.FormatDate(utils.WeekEnd(weekStart)),
		PrevWeek:      utils.FormatDate(weekStart.AddDate(0, 0, -constants.DaysPerWeek)),
		NextWeek:      utils.FormatDate(weekStart.AddDate(0, 0, constants.DaysPerWeek)),
		IsCurrentWeek: weekStart.Equal(utils.WeekStart(today)),
		Days:          days,
	}
}
