// internal/services/profile_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rewear/rewear-backend/internal/config"
	"github.com/rewear/rewear-backend/internal/models"
	"github.com/rewear/rewear-backend/internal/utils"
)

type ProfileService struct {
	db  *gorm.DB
	cfg *config.Config
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,max=100"`
	Bio         string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Location    string `json:"location,omitempty" validate:"omitempty,max=255"`
	Avatar      string `json:"avatar,omitempty" validate:"omitempty,max=512"`
}

func NewProfileService(db *gorm.DB, cfg *config.Config) *ProfileService {
	return &ProfileService{db: db, cfg: cfg}
}

// EnsureProfile returns the user's profile, creating it with zeroed
// counters on first call. The admin flag is decided here from the
// configured email allowlist.
func (s *ProfileService) EnsureProfile(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	now := time.Now()
	profile = models.Profile{
		UserID:      userID,
		DisplayName: user.Username,
		IsAdmin:     s.cfg.IsAdminEmail(user.Email),
		JoinedAt:    &now,
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return &profile, nil
}

// GetProfile returns the profile with its user loaded.
func (s *ProfileService) GetProfile(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).Preload("User").First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &profile, nil
}

func (s *ProfileService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.Profile, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	profile, err := s.EnsureProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.DisplayName != "" {
		updates["display_name"] = req.DisplayName
	}
	if req.Bio != "" {
		updates["bio"] = req.Bio
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}

	if len(updates) > 0 {
		if err := s.db.Model(profile).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return s.GetProfile(userID)
}

// IsAdmin reports whether the user's profile carries the admin flag.
func (s *ProfileService) IsAdmin(userID uuid.UUID) (bool, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("database error: %w", err)
	}
	return profile.IsAdmin, nil
}
