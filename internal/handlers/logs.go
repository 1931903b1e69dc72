package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hld/work-schedule-api/internal/database"
	"github.com/hld/work-schedule-api/internal/dto"
	apierrors "github.com/hld/work-schedule-api/internal/errors"
	"github.com/hld/work-schedule-api/internal/models"
	"github.com/hld/work-schedule-api/internal/utils"
)

// LogHandler serves the audit trail.
type LogHandler struct{}

// NewLogHandler creates a new LogHandler
func NewLogHandler() *LogHandler {
	return &LogHandler{}
}

// ListLogs returns audit entries newest first, paginated.
func (h *LogHandler) ListLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.ActivityLog{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to count logs")
		return
	}

	var entries []models.ActivityLog
	err := query.
		Order("timestamp DESC").
		Scopes(database.Paginate(params)).
		Preload("User").
		Find(&entries).Error
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch logs")
		return
	}

	items := make([]dto.ActivityLogDTO, len(entries))
	for i, entry := range entries {
		items[i] = dto.ToActivityLogDTO(entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"logs": items,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}
