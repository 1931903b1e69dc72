package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hld/work-schedule-api/internal/models"
	"github.com/hld/work-schedule-api/internal/repository"
	"github.com/hld/work-schedule-api/internal/utils"
)

type recordedActivity struct {
	ActorID uint64
	Action  string
	Details string
}

// fakeRecorder collects audit tuples instead of persisting them.
type fakeRecorder struct {
	entries []recordedActivity
}

func (f *fakeRecorder) Record(actorID uint64, action, details string) {
	f.entries = append(f.entries, recordedActivity{ActorID: actorID, Action: action, Details: details})
}

type ScheduleServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  *ScheduleService
	recorder *fakeRecorder
	author   *models.User
}

func (suite *ScheduleServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.ScheduleTask{},
		&models.TaskAssignment{},
	)
	suite.Require().NoError(err)

	suite.recorder = &fakeRecorder{}
	suite.service = NewScheduleService(repository.NewScheduleRepository(suite.db), suite.recorder)

	suite.author = &models.User{Username: "author", PasswordHash: "hashed", CanAdd: true, CanEdit: true, CanDelete: true}
	suite.Require().NoError(suite.db.Create(suite.author).Error)
}

func (suite *ScheduleServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ScheduleServiceTestSuite) createTask(date, content string, personnel ...string) models.ScheduleTask {
	tasks, err := suite.service.CreateTasks(CreateTasksInput{
		StartDate: date,
		Content:   content,
		Personnel: personnel,
		AuthorID:  suite.author.ID,
	})
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 1)
	return tasks[0]
}

func (suite *ScheduleServiceTestSuite) reloadTask(id uint64) models.ScheduleTask {
	task, err := suite.service.GetTask(id)
	suite.Require().NoError(err)
	return *task
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func (suite *ScheduleServiceTestSuite) TestCreateTasks_ReplicatesOverRange() {
	tasks, err := suite.service.CreateTasks(CreateTasksInput{
		StartDate: "2024-06-03",
		EndDate:   "2024-06-05",
		Content:   "<p>C</p>",
		Personnel: []string{"A", "B"},
		AuthorID:  suite.author.ID,
	})
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 3)

	wantDates := []string{"2024-06-03", "2024-06-04", "2024-06-05"}
	seenIDs := make(map[uint64]struct{})
	for i, task := range tasks {
		suite.Equal(wantDates[i], utils.FormatDate(task.TaskDate))
		suite.Equal(0, task.Version)
		suite.Equal(0, task.Position)
		suite.Equal([]string{"A", "B"}, task.PersonnelNames())
		suite.Equal(0, task.Assignments[0].Position)
		suite.Equal(1, task.Assignments[1].Position)
		seenIDs[task.ID] = struct{}{}
	}
	suite.Len(seenIDs, 3, "each replica must have its own id")
}

func (suite *ScheduleServiceTestSuite) TestCreateTasks_AppendsToEndOfDay() {
	first := suite.createTask("2024-06-03", "first", "A")
	second := suite.createTask("2024-06-03", "second", "A")

	suite.Equal(0, first.Position)
	suite.Equal(1, second.Position)
}

func (suite *ScheduleServiceTestSuite) TestCreateTasks_SanitizesContent() {
	task := suite.createTask("2024-06-03", `<p>plan</p><script>alert(1)</script>`, "A")

	suite.Equal("<p>plan</p>", task.Content)
}

func (suite *ScheduleServiceTestSuite) TestCreateTasks_Validation() {
	_, err := suite.service.CreateTasks(CreateTasksInput{
		StartDate: "06/03/2024",
		Content:   "C",
		Personnel: []string{"A"},
		AuthorID:  suite.author.ID,
	})
	suite.ErrorIs(err, ErrInvalidDate)

	_, err = suite.service.CreateTasks(CreateTasksInput{
		StartDate: "2024-06-03",
		Content:   "C",
		AuthorID:  suite.author.ID,
	})
	suite.ErrorIs(err, ErrPersonnelRequired)

	_, err = suite.service.CreateTasks(CreateTasksInput{
		StartDate: "2024-06-03",
		Content:   "<script>only</script>",
		Personnel: []string{"A"},
		AuthorID:  suite.author.ID,
	})
	suite.ErrorIs(err, ErrContentRequired)

	_, err = suite.service.CreateTasks(CreateTasksInput{
		StartDate: "2024-06-05",
		EndDate:   "2024-06-03",
		Content:   "C",
		Personnel: []string{"A"},
		AuthorID:  suite.author.ID,
	})
	suite.ErrorIs(err, ErrInvalidDateRange)
}

func (suite *ScheduleServiceTestSuite) TestListWeek_FiltersAndOrders() {
	monday, err := utils.ParseDate("2024-06-03")
	suite.Require().NoError(err)

	// Two tasks on Monday, one on Sunday, one outside the week.
	first := suite.createTask("2024-06-03", "mon-first", "A")
	second := suite.createTask("2024-06-03", "mon-second", "A")
	sunday := suite.createTask("2024-06-09", "sunday", "A")
	suite.createTask("2024-06-10", "next-week", "A")

	// A deleted task must not appear.
	deleted := suite.createTask("2024-06-04", "gone", "A")
	_, err = suite.service.DeleteTask(deleted.ID, suite.author.ID)
	suite.Require().NoError(err)

	tasks, err := suite.service.ListWeek(monday)
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 3)
	suite.Equal(first.ID, tasks[0].ID)
	suite.Equal(second.ID, tasks[1].ID)
	suite.Equal(sunday.ID, tasks[2].ID)
}

func (suite *ScheduleServiceTestSuite) TestGetTask_Idempotent() {
	task := suite.createTask("2024-06-03", "stable", "A", "B")

	one := suite.reloadTask(task.ID)
	two := suite.reloadTask(task.ID)

	suite.Equal(one.Content, two.Content)
	suite.Equal(one.PersonnelNames(), two.PersonnelNames())
	suite.Equal(one.Version, two.Version)
}

func (suite *ScheduleServiceTestSuite) TestUpdateTask_IncrementsVersionByOne() {
	task := suite.createTask("2024-06-03", "before", "A")

	updated, err := suite.service.UpdateTask(UpdateTaskInput{
		TaskID:          task.ID,
		ExpectedVersion: intPtr(0),
		Content:         strPtr("after"),
		Personnel:       []string{"B", "C"},
		ActorID:         suite.author.ID,
	})
	suite.Require().NoError(err)

	suite.Equal(1, updated.Version)
	suite.Equal("after", updated.Content)
	suite.Equal([]string{"B", "C"}, updated.PersonnelNames())
	suite.Equal(0, updated.Assignments[0].Position)
	suite.Equal(1, updated.Assignments[1].Position)
}

func (suite *ScheduleServiceTestSuite) TestUpdateTask_StaleVersionConflicts() {
	task := suite.createTask("2024-06-03", "original", "A")

	// First writer brings the task to version 1.
	_, err := suite.service.UpdateTask(UpdateTaskInput{
		TaskID:          task.ID,
		ExpectedVersion: intPtr(0),
		Content:         strPtr("first writer"),
		Personnel:       []string{"B"},
		ActorID:         suite.author.ID,
	})
	suite.Require().NoError(err)

	// Second writer still holds version 0.
	_, err = suite.service.UpdateTask(UpdateTaskInput{
		TaskID:          task.ID,
		ExpectedVersion: intPtr(0),
		Content:         strPtr("second writer"),
		Personnel:       []string{"C"},
		ActorID:         suite.author.ID,
	})
	suite.Require().Error(err)

	var conflict *ConflictError
	suite.Require().ErrorAs(err, &conflict)
	suite.Equal(1, conflict.Version)
	suite.Equal("first writer", conflict.Content)
	suite.Equal([]string{"B"}, conflict.Personnel)

	// Nothing was written by the losing edit.
	current := suite.reloadTask(task.ID)
	suite.Equal("first writer", current.Content)
	suite.Equal([]string{"B"}, current.PersonnelNames())
	suite.Equal(1, current.Version)
}

func (suite *ScheduleServiceTestSuite) TestUpdateTask_WithoutVersionSkipsCheck() {
	task := suite.createTask("2024-06-03", "original", "A")

	updated, err := suite.service.UpdateTask(UpdateTaskInput{
		TaskID:  task.ID,
		Content: strPtr("forced"),
		ActorID: suite.author.ID,
	})
	suite.Require().NoError(err)
	suite.Equal("forced", updated.Content)
	suite.Equal(1, updated.Version)
	suite.Equal([]string{"A"}, updated.PersonnelNames(), "omitted personnel keeps the current list")
}

func (suite *ScheduleServiceTestSuite) TestUpdateTask_InvalidDate() {
	task := suite.createTask("2024-06-03", "original", "A")

	_, err := suite.service.UpdateTask(UpdateTaskInput{
		TaskID:          task.ID,
		ExpectedVersion: intPtr(0),
		TaskDate:        strPtr("not-a-date"),
		ActorID:         suite.author.ID,
	})
	suite.ErrorIs(err, ErrInvalidDate)

	current := suite.reloadTask(task.ID)
	suite.Equal(0, current.Version, "validation failures must not touch storage")
}

func (suite *ScheduleServiceTestSuite) TestReorderTasks_SameDay() {
	a := suite.createTask("2024-06-03", "a", "A")
	b := suite.createTask("2024-06-03", "b", "A")
	c := suite.createTask("2024-06-03", "c", "A")

	err := suite.service.ReorderTasks(ReorderTasksInput{
		MovedTaskID:     c.ID,
		ExpectedVersion: 0,
		TargetDate:      "2024-06-03",
		TargetTaskIDs:   []uint64{c.ID, a.ID, b.ID},
		ActorID:         suite.author.ID,
	})
	suite.Require().NoError(err)

	suite.Equal(0, suite.reloadTask(c.ID).Position)
	suite.Equal(1, suite.reloadTask(a.ID).Position)
	suite.Equal(2, suite.reloadTask(b.ID).Position)

	// Every task in the rewritten list goes stale for other clients.
	suite.Equal(1, suite.reloadTask(a.ID).Version)
	suite.Equal(1, suite.reloadTask(b.ID).Version)
	suite.Equal(1, suite.reloadTask(c.ID).Version)
}

func (suite *ScheduleServiceTestSuite) TestReorderTasks_MoveAcrossDays() {
	moved := suite.createTask("2024-06-03", "moved", "A")
	staying := suite.createTask("2024-06-03", "staying", "A")
	neighbor := suite.createTask("2024-06-04", "neighbor", "A")

	err := suite.service.ReorderTasks(ReorderTasksInput{
		MovedTaskID:     moved.ID,
		ExpectedVersion: 0,
		TargetDate:      "2024-06-04",
		TargetTaskIDs:   []uint64{neighbor.ID, moved.ID},
		SourceDate:      "2024-06-03",
		SourceTaskIDs:   []uint64{staying.ID},
		ActorID:         suite.author.ID,
	})
	suite.Require().NoError(err)

	movedNow := suite.reloadTask(moved.ID)
	suite.Equal("2024-06-04", utils.FormatDate(movedNow.TaskDate))
	suite.Equal(1, movedNow.Position)
	suite.Equal(1, movedNow.Version)

	suite.Equal(0, suite.reloadTask(neighbor.ID).Position)
	suite.Equal(1, suite.reloadTask(neighbor.ID).Version)
	suite.Equal(0, suite.reloadTask(staying.ID).Position)
	suite.Equal(1, suite.reloadTask(staying.ID).Version)
}

func (suite *ScheduleServiceTestSuite) TestReorderTasks_StaleVersionLeavesStateUntouched() {
	a := suite.createTask("2024-06-03", "a", "A")
	b := suite.createTask("2024-06-03", "b", "A")

	err := suite.service.ReorderTasks(ReorderTasksInput{
		MovedTaskID:     b.ID,
		ExpectedVersion: 7,
		TargetDate:      "2024-06-03",
		TargetTaskIDs:   []uint64{b.ID, a.ID},
		ActorID:         suite.author.ID,
	})
	suite.Require().Error(err)

	var conflict *ConflictError
	suite.Require().ErrorAs(err, &conflict)
	suite.Equal(0, conflict.Version)

	suite.Equal(0, suite.reloadTask(a.ID).Position)
	suite.Equal(1, suite.reloadTask(b.ID).Position)
	suite.Equal(0, suite.reloadTask(a.ID).Version)
	suite.Equal(0, suite.reloadTask(b.ID).Version)
}

func (suite *ScheduleServiceTestSuite) TestDeleteAndRestore_RoundTrip() {
	task := suite.createTask("2024-06-03", "keep me", "A", "B")

	_, err := suite.service.UpdateTask(UpdateTaskInput{
		TaskID:          task.ID,
		ExpectedVersion: intPtr(0),
		Content:         strPtr("edited"),
		Personnel:       []string{"A", "B"},
		ActorID:         suite.author.ID,
	})
	suite.Require().NoError(err)
	before := suite.reloadTask(task.ID)

	_, err = suite.service.DeleteTask(task.ID, suite.author.ID)
	suite.Require().NoError(err)

	_, err = suite.service.GetTask(task.ID)
	suite.ErrorIs(err, ErrTaskNotFound)

	_, err = suite.service.DeleteTask(task.ID, suite.author.ID)
	suite.ErrorIs(err, ErrTaskNotFound, "deleting a deleted task is not found")

	restored, err := suite.service.RestoreTask(task.ID, suite.author.ID)
	suite.Require().NoError(err)

	suite.Equal(before.Content, restored.Content)
	suite.Equal(before.PersonnelNames(), restored.PersonnelNames())
	suite.Equal(before.Position, restored.Position)
	suite.Equal(before.Version, restored.Version, "delete and restore never touch the version")
}

func (suite *ScheduleServiceTestSuite) TestRestoreTask_ActiveTaskFails() {
	task := suite.createTask("2024-06-03", "active", "A")

	_, err := suite.service.RestoreTask(task.ID, suite.author.ID)
	suite.ErrorIs(err, ErrTaskNotDeleted)
}

func (suite *ScheduleServiceTestSuite) TestGetTaskWithRange_WalksContiguousBlock() {
	// Same content and personnel set Mon through Wed; personnel order on
	// Tuesday differs, which must not split the block.
	suite.createTask("2024-06-03", "block", "A", "B")
	anchor := suite.createTask("2024-06-04", "block", "B", "A")
	suite.createTask("2024-06-05", "block", "A", "B")
	suite.createTask("2024-06-06", "different", "A", "B")

	view, err := suite.service.GetTaskWithRange(anchor.ID)
	suite.Require().NoError(err)
	suite.Equal("2024-06-03", utils.FormatDate(view.StartDate))
	suite.Equal("2024-06-05", utils.FormatDate(view.EndDate))
}

func (suite *ScheduleServiceTestSuite) TestGetTaskWithRange_DeletedDaysBreakTheBlock() {
	suite.createTask("2024-06-03", "block", "A")
	middle := suite.createTask("2024-06-04", "block", "A")
	anchor := suite.createTask("2024-06-05", "block", "A")

	_, err := suite.service.DeleteTask(middle.ID, suite.author.ID)
	suite.Require().NoError(err)

	view, err := suite.service.GetTaskWithRange(anchor.ID)
	suite.Require().NoError(err)
	suite.Equal("2024-06-05", utils.FormatDate(view.StartDate))
	suite.Equal("2024-06-05", utils.FormatDate(view.EndDate))
}

func (suite *ScheduleServiceTestSuite) TestAuditTrail() {
	task := suite.createTask("2024-06-03", "tracked", "A")

	_, err := suite.service.UpdateTask(UpdateTaskInput{
		TaskID:          task.ID,
		ExpectedVersion: intPtr(0),
		Content:         strPtr("tracked still"),
		ActorID:         suite.author.ID,
	})
	suite.Require().NoError(err)

	_, err = suite.service.DeleteTask(task.ID, suite.author.ID)
	suite.Require().NoError(err)

	actions := make([]string, len(suite.recorder.entries))
	for i, entry := range suite.recorder.entries {
		actions[i] = entry.Action
		suite.Equal(suite.author.ID, entry.ActorID)
	}
	suite.Equal([]string{"Create Task", "Update Task", "Delete Task"}, actions)
}

func TestScheduleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleServiceTestSuite))
}
