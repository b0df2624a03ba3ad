// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rewear/rewear-backend/internal/config"
	"github.com/rewear/rewear-backend/internal/messaging"
	"github.com/rewear/rewear-backend/internal/models"
	"github.com/rewear/rewear-backend/internal/utils"
)

// AdminService is the moderation gate. Route-level middleware already
// guarantees an admin caller; these methods only enforce the remaining
// per-record rules.
type AdminService struct {
	db                  *gorm.DB
	cfg                 *config.Config
	pointsService       *PointsService
	notificationService *NotificationService
	storageService      *StorageService
	events              *messaging.Publisher
}

type ReviewItemRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// PendingItemView is the moderation queue row: the item plus uploader
// identity and the first photo.
type PendingItemView struct {
	models.Item
	UploaderName  string `json:"uploader_name"`
	UploaderEmail string `json:"uploader_email"`
	FirstImageURL string `json:"first_image_url,omitempty"`
}

type PlatformStats struct {
	PendingItems   int64 `json:"pending_items"`
	ApprovedItems  int64 `json:"approved_items"`
	RejectedItems  int64 `json:"rejected_items"`
	TotalItems     int64 `json:"total_items"`
	TotalUsers     int64 `json:"total_users"`
	TotalSwaps     int64 `json:"total_swaps"`
	CompletedSwaps int64 `json:"completed_swaps"`
}

type AdminUserView struct {
	UserID              uuid.UUID `json:"user_id"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	DisplayName         string    `json:"display_name"`
	Points              int       `json:"points"`
	TotalItemsListed    int       `json:"total_items_listed"`
	TotalSwapsCompleted int       `json:"total_swaps_completed"`
	IsAdmin             bool      `json:"is_admin"`
	CreatedAt           time.Time `json:"created_at"`
}

func NewAdminService(db *gorm.DB, cfg *config.Config, pointsService *PointsService, notificationService *NotificationService, storageService *StorageService, events *messaging.Publisher) *AdminService {
	return &AdminService{
		db:                  db,
		cfg:                 cfg,
		pointsService:       pointsService,
		notificationService: notificationService,
		storageService:      storageService,
		events:              events,
	}
}

// GetPendingItems returns the moderation queue, oldest first so the
// longest-waiting listing is reviewed next.
func (s *AdminService) GetPendingItems() ([]PendingItemView, error) {
	var items []models.Item
	if err := s.db.Where("status = ?", models.ItemStatusPending).
		Order("created_at ASC").
		Preload("Uploader").Preload("Uploader.Profile").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch pending items: %w", err)
	}

	views := make([]PendingItemView, 0, len(items))
	for _, item := range items {
		view := PendingItemView{
			Item:          item,
			UploaderName:  item.Uploader.DisplayName(),
			UploaderEmail: item.Uploader.Email,
		}
		if len(item.Images) > 0 {
			view.FirstImageURL = s.storageService.ResolveURL(item.Images[0])
		}
		views = append(views, view)
	}
	return views, nil
}

// ReviewItem settles a pending listing. Approval makes the item
// available and credits the listing reward; both write paths share one
// transaction with the status change, and reviewing anything but a
// pending item fails on the transition guard.
func (s *AdminService) ReviewItem(itemID uuid.UUID, req *ReviewItemRequest) (*models.Item, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var item models.Item
	var balance int
	reward := s.cfg.Points.ListingReward

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if req.Approve {
			if err := item.Approve(); err != nil {
				return err
			}
		} else {
			if err := item.Reject(req.Reason); err != nil {
				return err
			}
		}

		if err := tx.Model(&item).Updates(map[string]interface{}{
			"status":           item.Status,
			"is_available":     item.IsAvailable,
			"rejection_reason": item.RejectionReason,
		}).Error; err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}

		if req.Approve {
			_, newBalance, err := s.pointsService.award(tx, item.UploaderID, reward,
				models.PointTransactionItemListed,
				fmt.Sprintf("Listing approved: %s", item.Title), &item.ID, nil)
			if err != nil {
				return err
			}
			balance = newBalance

			return s.notificationService.notify(tx, item.UploaderID,
				models.NotificationItemApproved,
				"Item approved",
				fmt.Sprintf("Your item %q is now live. You earned %d points.", item.Title, reward),
				&item.ID, nil)
		}

		message := fmt.Sprintf("Your item %q was not approved", item.Title)
		if req.Reason != "" {
			message = fmt.Sprintf("Your item %q was not approved: %s", item.Title, req.Reason)
		}
		return s.notificationService.notify(tx, item.UploaderID,
			models.NotificationItemRejected, "Item rejected", message, &item.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	if req.Approve {
		s.pointsService.afterBalanceChange(item.UploaderID, reward, models.PointTransactionItemListed, balance)
	} else if len(item.Images) > 0 {
		go s.cleanupImages(item.Images)
	}

	s.events.Publish("item.reviewed", messaging.ItemEvent{
		ItemID:    item.ID.String(),
		OwnerID:   item.UploaderID.String(),
		Title:     item.Title,
		Status:    string(item.Status),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})

	return &item, nil
}

// cleanupImages removes the stored photos of a rejected listing.
func (s *AdminService) cleanupImages(keys []string) {
	for _, key := range keys {
		if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
			continue
		}
		if err := s.storageService.DeleteFile(key); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("Failed to delete rejected item image")
		}
	}
}

// GetStats aggregates platform counters for the admin dashboard.
func (s *AdminService) GetStats() (*PlatformStats, error) {
	stats := &PlatformStats{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.PendingItems, s.db.Model(&models.Item{}).Where("status = ?", models.ItemStatusPending)},
		{&stats.ApprovedItems, s.db.Model(&models.Item{}).Where("status = ?", models.ItemStatusApproved)},
		{&stats.RejectedItems, s.db.Model(&models.Item{}).Where("status = ?", models.ItemStatusRejected)},
		{&stats.TotalItems, s.db.Model(&models.Item{})},
		{&stats.TotalUsers, s.db.Model(&models.User{})},
		{&stats.TotalSwaps, s.db.Model(&models.Swap{})},
		{&stats.CompletedSwaps, s.db.Model(&models.Swap{}).Where("status = ?", models.SwapStatusCompleted)},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to compute stats: %w", err)
		}
	}

	return stats, nil
}

// GetUsers lists all users with their marketplace state.
func (s *AdminService) GetUsers() ([]AdminUserView, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").
		Preload("Profile").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	views := make([]AdminUserView, 0, len(users))
	for _, user := range users {
		view := AdminUserView{
			UserID:    user.ID,
			Username:  user.Username,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		}
		if user.Profile != nil {
			view.DisplayName = user.Profile.DisplayName
			view.Points = user.Profile.Points
			view.TotalItemsListed = user.Profile.TotalItemsListed
			view.TotalSwapsCompleted = user.Profile.TotalSwapsCompleted
			view.IsAdmin = user.Profile.IsAdmin
		}
		views = append(views, view)
	}
	return views, nil
}

// ToggleAdmin flips another user's admin flag. Admins cannot change
// their own.
func (s *AdminService) ToggleAdmin(callerID, targetUserID uuid.UUID) (*models.Profile, error) {
	if callerID == targetUserID {
		return nil, ErrOwnAdminStatus
	}

	var profile models.Profile
	if err := s.db.Where("user_id = ?", targetUserID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&profile).Update("is_admin", !profile.IsAdmin).Error; err != nil {
		return nil, fmt.Errorf("failed to update admin flag: %w", err)
	}

	profile.IsAdmin = !profile.IsAdmin
	return &profile, nil
}
