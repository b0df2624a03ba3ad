// internal/services/notification_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/rewear/rewear-backend/internal/models"
)

// NotificationService is an insert-only fan-out: moderation, swap and
// points paths write rows here so users see what happened to their
// stuff. Delivery failures are logged, never propagated into the
// triggering operation.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// notify inserts on the caller's transaction handle so the row commits
// with the operation that caused it.
func (s *NotificationService) notify(tx *gorm.DB, userID uuid.UUID, nType models.NotificationType, title, message string, relatedItemID, relatedSwapID *uuid.UUID) error {
	notification := &models.Notification{
		UserID:        userID,
		Type:          nType,
		Title:         title,
		Message:       message,
		RelatedItemID: relatedItemID,
		RelatedSwapID: relatedSwapID,
	}
	if err := tx.Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// Notify writes a notification outside any caller transaction.
func (s *NotificationService) Notify(userID uuid.UUID, nType models.NotificationType, title, message string, relatedItemID, relatedSwapID *uuid.UUID) {
	if err := s.notify(s.db, userID, nType, title, message, relatedItemID, relatedSwapID); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"type":    nType,
		}).Error("Failed to send notification")
	}
}

// GetNotifications returns the user's latest notifications, newest
// first.
func (s *NotificationService) GetNotifications(userID uuid.UUID, unreadOnly bool) ([]models.Notification, error) {
	query := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(50).Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(userID, notificationID uuid.UUID) error {
	var notification models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", notificationID, userID).
		First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&notification).Update("is_read", true).Error; err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(userID uuid.UUID) (int64, error) {
	result := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CountUnread returns the number of unread notifications.
func (s *NotificationService) CountUnread(userID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}
