package repository

import (
	"time"

	"github.com/hld/work-schedule-api/internal/models"
)

// ScheduleRepository defines the interface for schedule task data access
type ScheduleRepository interface {
	// Create inserts a task at the end of its day's active list and
	// creates its assignment rows in the given order, atomically.
	Create(task *models.ScheduleTask, personnel []string) error

	// FindByID finds an active task with its ordered assignments
	FindByID(id uint64) (*models.ScheduleTask, error)

	// FindAnyByID finds a task regardless of its deletion state
	FindAnyByID(id uint64) (*models.ScheduleTask, error)

	// ListWeek returns the active tasks of the 7-day span starting at
	// weekStart, ordered by (date, position), assignments preloaded
	ListWeek(weekStart time.Time) ([]models.ScheduleTask, error)

	// ListByDate returns the active tasks of a single day, ordered by
	// position, assignments preloaded
	ListByDate(date time.Time) ([]models.ScheduleTask, error)

	// UpdateWithVersion applies content/date changes and rebuilds the
	// assignment list in one transaction. The write is conditional on the
	// stored version when expectedVersion is non-nil and always increments
	// the version by one. Returns ErrVersionConflict on a stale version.
	UpdateWithVersion(id uint64, expectedVersion *int, content string, taskDate time.Time, personnel []string) error

	// Reorder moves one task and rewrites sibling positions atomically.
	Reorder(input ReorderInput) error

	// SoftDelete marks an active task deleted; version and position are
	// left untouched.
	SoftDelete(id uint64) error

	// Restore clears a task's deletion mark.
	Restore(id uint64) error
}

// ReorderList is the full ordered id list of one day after a drag.
type ReorderList struct {
	Date    time.Time
	TaskIDs []uint64
}

// ReorderInput describes a reorder/move mutation. Source is nil when the
// task stayed within its original day.
type ReorderInput struct {
	MovedTaskID     uint64
	ExpectedVersion int
	Target          ReorderList
	Source          *ReorderList
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithInvitation creates the user and consumes the invitation
	// code within a single transaction.
	CreateWithInvitation(user *models.User, invitation *models.Invitation) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List returns all users ordered by username
	List() ([]models.User, error)

	// Count returns the number of registered users
	Count() (int64, error)

	// UpdatePermissions overwrites a user's permission flags
	UpdatePermissions(id uint64, isAdmin, canAdd, canEdit, canDelete bool) error
}

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	// Create creates a new invitation
	Create(invitation *models.Invitation) error

	// FindUnusedByCode finds an unconsumed invitation by its code
	FindUnusedByCode(code string) (*models.Invitation, error)

	// ListByCreator lists a user's invitations, newest first
	ListByCreator(creatorID uint64) ([]models.Invitation, error)
}

// PersonnelRepository defines the interface for the personnel directory
type PersonnelRepository interface {
	// Create creates a new directory entry
	Create(person *models.Personnel) error

	// FindByID finds an entry by ID
	FindByID(id uint64) (*models.Personnel, error)

	// FindByName finds an entry by its unique name
	FindByName(name string) (*models.Personnel, error)

	// List returns all entries ordered by name
	List() ([]models.Personnel, error)

	// Delete removes an entry. Historical task assignments keep their
	// snapshot of the name.
	Delete(id uint64) error
}
