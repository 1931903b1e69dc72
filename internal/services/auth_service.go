package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hld/work-schedule-api/internal/audit"
	"github.com/hld/work-schedule-api/internal/constants"
	"github.com/hld/work-schedule-api/internal/models"
	"github.com/hld/work-schedule-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameRequired     = errors.New("username is required")
	ErrInvalidInviteCode    = errors.New("invitation code is invalid or already used")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// AuthService handles signup, login and invitation issuance.
type AuthService struct {
	userRepo   repository.UserRepository
	inviteRepo repository.InvitationRepository
	auditor    audit.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, inviteRepo repository.InvitationRepository, auditor audit.Recorder) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		inviteRepo: inviteRepo,
		auditor:    auditor,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username   string
	Password   string
	InviteCode string
}

// Signup creates a new user from an unused invitation code. The code is
// consumed in the same transaction as the account creation. The first
// account ever created becomes the administrator.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	invitation, err := s.inviteRepo.FindUnusedByCode(input.InviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to check invitation: %w", err)
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	userCount, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		IsAdmin:      userCount == 0,
	}

	if err := s.userRepo.CreateWithInvitation(user, invitation); err != nil {
		if errors.Is(err, repository.ErrConsumeInvitation) {
			return nil, ErrInvalidInviteCode
		}
		return nil, ErrFailedToCreateUser
	}

	if s.auditor != nil {
		s.auditor.Record(user.ID, "User Signup",
			fmt.Sprintf("user %s registered with invitation code %s", user.Username, invitation.Code))
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if s.auditor != nil {
		s.auditor.Record(user.ID, "User Login", "")
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// CreateInvitation issues a single-use signup code for the actor.
func (s *AuthService) CreateInvitation(actorID uint64) (*models.Invitation, error) {
	invitation := &models.Invitation{
		Code:        uuid.NewString(),
		CreatedByID: actorID,
	}
	if err := s.inviteRepo.Create(invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	if s.auditor != nil {
		s.auditor.Record(actorID, "Create Invitation", fmt.Sprintf("generated invitation code %s", invitation.Code))
	}

	return invitation, nil
}

// ListInvitations returns the actor's issued codes, newest first.
func (s *AuthService) ListInvitations(actorID uint64) ([]models.Invitation, error) {
	invitations, err := s.inviteRepo.ListByCreator(actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}
