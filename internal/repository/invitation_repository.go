package repository

import (
	"github.com/hld/work-schedule-api/internal/models"
	"gorm.io/gorm"
)

// GormInvitationRepository is a GORM implementation of InvitationRepository
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &GormInvitationRepository{db: db}
}

// Create creates a new invitation
func (r *GormInvitationRepository) Create(invitation *models.Invitation) error {
	return r.db.Create(invitation).Error
}

// FindUnusedByCode finds an unconsumed invitation by its code
func (r *GormInvitationRepository) FindUnusedByCode(code string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.db.Where("code = ? AND is_used = ?", code, false).First(&invitation).Error
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// ListByCreator lists a user's invitations, newest first
func (r *GormInvitationRepository) ListByCreator(creatorID uint64) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := r.db.
		Where("created_by_id = ?", creatorID).
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}
