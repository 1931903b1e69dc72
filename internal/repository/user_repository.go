package repository

import (
	"errors"
	"fmt"

	"github.com/hld/work-schedule-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the signup transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrConsumeInvitation is returned when marking the invitation used fails inside the signup transaction.
	ErrConsumeInvitation = errors.New("user repository: consume invitation failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// CreateWithInvitation creates the user and consumes the invitation code atomically.
func (r *GormUserRepository) CreateWithInvitation(user *models.User, invitation *models.Invitation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		result := tx.Model(&models.Invitation{}).
			Where("id = ? AND is_used = ?", invitation.ID, false).
			Update("is_used", true)
		if result.Error != nil {
			return fmt.Errorf("%w: %v", ErrConsumeInvitation, result.Error)
		}
		if result.RowsAffected == 0 {
			// Someone consumed the code between lookup and signup.
			return fmt.Errorf("%w: invitation already used", ErrConsumeInvitation)
		}

		invitation.IsUsed = true
		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users ordered by username
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the number of registered users
func (r *GormUserRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdatePermissions overwrites a user's permission flags
func (r *GormUserRepository) UpdatePermissions(id uint64, isAdmin, canAdd, canEdit, canDelete bool) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_admin":   isAdmin,
			"can_add":    canAdd,
			"can_edit":   canEdit,
			"can_delete": canDelete,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
