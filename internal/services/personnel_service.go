package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hld/work-schedule-api/internal/audit"
	"github.com/hld/work-schedule-api/internal/models"
	"github.com/hld/work-schedule-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPersonnelNameRequired = errors.New("personnel name is required")
	ErrPersonnelExists       = errors.New("personnel name already exists")
	ErrPersonnelNotFound     = errors.New("personnel not found")
)

// PersonnelService manages the directory of assignable names.
type PersonnelService struct {
	repo    repository.PersonnelRepository
	auditor audit.Recorder
}

// NewPersonnelService creates a new PersonnelService
func NewPersonnelService(repo repository.PersonnelRepository, auditor audit.Recorder) *PersonnelService {
	return &PersonnelService{
		repo:    repo,
		auditor: auditor,
	}
}

// List returns the directory ordered by name.
func (s *PersonnelService) List() ([]models.Personnel, error) {
	personnel, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list personnel: %w", err)
	}
	return personnel, nil
}

// Create adds a uniqueness-checked directory entry.
func (s *PersonnelService) Create(name string, actorID uint64) (*models.Personnel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPersonnelNameRequired
	}

	if _, err := s.repo.FindByName(name); err == nil {
		return nil, ErrPersonnelExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check personnel name: %w", err)
	}

	person := &models.Personnel{Name: name}
	if err := s.repo.Create(person); err != nil {
		return nil, fmt.Errorf("failed to create personnel: %w", err)
	}

	if s.auditor != nil {
		s.auditor.Record(actorID, "Add Personnel", fmt.Sprintf("added personnel: %s", person.Name))
	}

	return person, nil
}

// Delete removes a directory entry. Tasks keep their assignment
// snapshots; nothing cascades.
func (s *PersonnelService) Delete(id, actorID uint64) error {
	person, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonnelNotFound
		}
		return fmt.Errorf("failed to find personnel: %w", err)
	}

	if err := s.repo.Delete(person.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonnelNotFound
		}
		return fmt.Errorf("failed to delete personnel: %w", err)
	}

	if s.auditor != nil {
		s.auditor.Record(actorID, "Delete Personnel", fmt.Sprintf("deleted personnel: %s", person.Name))
	}

	return nil
}
