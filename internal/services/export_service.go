package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/hld/work-schedule-api/internal/audit"
	"github.com/hld/work-schedule-api/internal/constants"
	"github.com/hld/work-schedule-api/internal/models"
	"github.com/hld/work-schedule-api/internal/utils"
	"github.com/xuri/excelize/v2"
)

// ExportService turns a week of tasks into a spreadsheet. Projection is a
// pure read; the store is never touched.
type ExportService struct {
	auditor audit.Recorder
}

// NewExportService creates a new ExportService
func NewExportService(auditor audit.Recorder) *ExportService {
	return &ExportService{auditor: auditor}
}

// ProjectWeek lays the week out as 7 day-columns. Each task contributes
// two rows, its content and the joined personnel names, and every column
// is padded with empty strings to the longest day's height. Days without
// tasks come out entirely blank.
func (s *ExportService) ProjectWeek(weekStart time.Time, tasks []models.ScheduleTask) [][]string {
	columns := make([][]string, constants.DaysPerWeek)

	for _, task := range tasks {
		day := int(task.TaskDate.Sub(weekStart).Hours() / 24)
		if day < 0 || day >= constants.DaysPerWeek {
			continue
		}
		columns[day] = append(columns[day],
			task.Content,
			strings.Join(task.PersonnelNames(), ", "),
		)
	}

	height := 0
	for _, column := range columns {
		if len(column) > height {
			height = len(column)
		}
	}
	for i, column := range columns {
		for len(column) < height {
			column = append(column, "")
		}
		columns[i] = column
	}

	return columns
}

// WriteWorkbook renders the projected week as an xlsx workbook, one
// column per day with the date as header.
func (s *ExportService) WriteWorkbook(weekStart time.Time, tasks []models.ScheduleTask, actorID uint64) (*bytes.Buffer, error) {
	columns := s.ProjectWeek(weekStart, tasks)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Weekly Schedule"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for day := 0; day < constants.DaysPerWeek; day++ {
		cell, err := excelize.CoordinatesToCellName(day+1, 1)
		if err != nil {
			return nil, err
		}
		date := weekStart.AddDate(0, 0, day)
		if err := f.SetCellValue(sheet, cell, utils.FormatDate(date)); err != nil {
			return nil, err
		}
	}

	for day, column := range columns {
		for row, value := range column {
			cell, err := excelize.CoordinatesToCellName(day+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "G", 28); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	if s.auditor != nil {
		weekEnd := utils.WeekEnd(weekStart)
		s.auditor.Record(actorID, "Export Schedule",
			fmt.Sprintf("exported the schedule for %s to %s", utils.FormatDate(weekStart), utils.FormatDate(weekEnd)))
	}

	return buf, nil
}
