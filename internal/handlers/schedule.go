package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hld/work-schedule-api/internal/dto"
	apierrors "github.com/hld/work-schedule-api/internal/errors"
	"github.com/hld/work-schedule-api/internal/middleware"
	"github.com/hld/work-schedule-api/internal/services"
	"github.com/hld/work-schedule-api/internal/utils"
)

// ScheduleHandler serves the week view and the task mutation API.
type ScheduleHandler struct {
	scheduleService *services.ScheduleService
	exportService   *services.ExportService
}

// NewScheduleHandler creates a new ScheduleHandler
func NewScheduleHandler(scheduleService *services.ScheduleService, exportService *services.ExportService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		exportService:   exportService,
	}
}

// resolveWeekStart turns the optional start_date query into the Monday of
// its week, defaulting to the current week.
func resolveWeekStart(c *gin.Context) (time.Time, bool) {
	startDateStr := c.Query("start_date")
	if startDateStr == "" {
		return utils.WeekStart(time.Now()), true
	}
	date, err := utils.ParseDate(startDateStr)
	if err != nil {
		apierrors.BadRequest(c, services.ErrInvalidDate.Error())
		return time.Time{}, false
	}
	return utils.WeekStart(date), true
}

// GetWeek returns the 7-day view for the week containing start_date.
func (h *ScheduleHandler) GetWeek(c *gin.Context) {
	weekStart, ok := resolveWeekStart(c)
	if !ok {
		return
	}

	tasks, err := h.scheduleService.ListWeek(weekStart)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch schedule")
		return
	}

	c.JSON(http.StatusOK, dto.ToWeekResponse(weekStart, tasks, time.Now()))
}

// CreateTasks creates one task per date in the inclusive range.
func (h *ScheduleHandler) CreateTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTasksRequest struct {
		StartDate string   `json:"start_date" binding:"required"`
		EndDate   string   `json:"end_date"`
		Content   string   `json:"content" binding:"required"`
		Personnel []string `json:"personnel" binding:"required"`
	}

	var req CreateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	tasks, err := h.scheduleService.CreateTasks(services.CreateTasksInput{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Content:   req.Content,
		Personnel: req.Personnel,
		AuthorID:  userID,
	})
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	items := make([]dto.TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = dto.ToTaskDTO(task)
	}

	c.JSON(http.StatusCreated, gin.H{"tasks": items})
}

// GetTask returns one task with its inferred contiguous date span.
func (h *ScheduleHandler) GetTask(c *gin.Context) {
	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	view, err := h.scheduleService.GetTaskWithRange(taskID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDetailDTO(*view))
}

// UpdateTask applies a version-checked edit. A stale version gets a 409
// carrying the authoritative current state.
func (h *ScheduleHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Content   *string  `json:"content"`
		Personnel []string `json:"personnel"`
		TaskDate  *string  `json:"task_date"`
		Version   *int     `json:"version"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.scheduleService.UpdateTask(services.UpdateTaskInput{
		TaskID:          taskID,
		ExpectedVersion: req.Version,
		Content:         req.Content,
		Personnel:       req.Personnel,
		TaskDate:        req.TaskDate,
		ActorID:         userID,
	})
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ReorderTasks applies a drag-and-drop reorder, possibly moving the
// dragged task to another day.
func (h *ScheduleHandler) ReorderTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type reorderList struct {
		Date    string   `json:"date" binding:"required"`
		TaskIDs []uint64 `json:"task_ids" binding:"required"`
	}
	type ReorderRequest struct {
		MovedTask struct {
			ID      uint64 `json:"id" binding:"required"`
			Version int    `json:"version"`
		} `json:"moved_task" binding:"required"`
		TargetList reorderList  `json:"target_list" binding:"required"`
		SourceList *reorderList `json:"source_list"`
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.ReorderTasksInput{
		MovedTaskID:     req.MovedTask.ID,
		ExpectedVersion: req.MovedTask.Version,
		TargetDate:      req.TargetList.Date,
		TargetTaskIDs:   req.TargetList.TaskIDs,
		ActorID:         userID,
	}
	if req.SourceList != nil {
		input.SourceDate = req.SourceList.Date
		input.SourceTaskIDs = req.SourceList.TaskIDs
	}

	if err := h.scheduleService.ReorderTasks(input); err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteTask soft deletes a task.
func (h *ScheduleHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if _, err := h.scheduleService.DeleteTask(taskID, userID); err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// RestoreTask brings a soft-deleted task back.
func (h *ScheduleHandler) RestoreTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.scheduleService.RestoreTask(taskID, userID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ExportWeek streams the week as an xlsx attachment.
func (h *ScheduleHandler) ExportWeek(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	weekStart, ok := resolveWeekStart(c)
	if !ok {
		return
	}

	tasks, err := h.scheduleService.ListWeek(weekStart)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch schedule")
		return
	}
	if len(tasks) == 0 {
		apierrors.NotFound(c, "No tasks to export for this week")
		return
	}

	buf, err := h.exportService.WriteWorkbook(weekStart, tasks, userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to export schedule")
		return
	}

	weekEnd := utils.WeekEnd(weekStart)
	filename := fmt.Sprintf("work_schedule_%s_to_%s.xlsx", utils.FormatDate(weekStart), utils.FormatDate(weekEnd))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return taskID, true
}

func respondScheduleError(c *gin.Context, err error) {
	var conflict *services.ConflictError
	switch {
	case errors.As(err, &conflict):
		apierrors.VersionConflict(c, dto.ToConflictDataDTO(conflict))
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskNotDeleted):
		apierrors.InvalidOperation(c, err.Error())
	case errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrDateRangeTooLong),
		errors.Is(err, services.ErrContentRequired),
		errors.Is(err, services.ErrPersonnelRequired),
		errors.Is(err, services.ErrEmptyTargetList):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.OperationFailed(c, "")
	}
}
