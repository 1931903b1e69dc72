package repository

import (
	"github.com/hld/work-schedule-api/internal/models"
	"gorm.io/gorm"
)

// GormPersonnelRepository is a GORM implementation of PersonnelRepository
type GormPersonnelRepository struct {
	db *gorm.DB
}

// NewPersonnelRepository creates a new PersonnelRepository
func NewPersonnelRepository(db *gorm.DB) PersonnelRepository {
	return &GormPersonnelRepository{db: db}
}

// Create creates a new directory entry
func (r *GormPersonnelRepository) Create(person *models.Personnel) error {
	return r.db.Create(person).Error
}

// FindByID finds an entry by ID
func (r *GormPersonnelRepository) FindByID(id uint64) (*models.Personnel, error) {
	var person models.Personnel
	if err := r.db.First(&person, id).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// FindByName finds an entry by its unique name
func (r *GormPersonnelRepository) FindByName(name string) (*models.Personnel, error) {
	var person models.Personnel
	if err := r.db.Where("name = ?", name).First(&person).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// List returns all entries ordered by name
func (r *GormPersonnelRepository) List() ([]models.Personnel, error) {
	var personnel []models.Personnel
	if err := r.db.Order("name ASC").Find(&personnel).Error; err != nil {
		return nil, err
	}
	return personnel, nil
}

// Delete removes an entry without touching historical assignments.
func (r *GormPersonnelRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Personnel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
