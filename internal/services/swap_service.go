// internal/services/swap_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rewear/rewear-backend/internal/config"
	"github.com/rewear/rewear-backend/internal/messaging"
	"github.com/rewear/rewear-backend/internal/models"
	"github.com/rewear/rewear-backend/internal/utils"
)

type SwapService struct {
	db                  *gorm.DB
	cfg                 *config.Config
	pointsService       *PointsService
	notificationService *NotificationService
	events              *messaging.Publisher
}

type CreateSwapRequest struct {
	OwnerItemID     uuid.UUID `json:"owner_item_id" validate:"required"`
	RequesterItemID uuid.UUID `json:"requester_item_id" validate:"required"`
	Message         string    `json:"message,omitempty" validate:"omitempty,max=1000"`
}

type RespondSwapRequest struct {
	Accept bool   `json:"accept"`
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// SwapView enriches a swap with both items and the counterparty's
// display name for the caller's inbox/outbox lists.
type SwapView struct {
	models.Swap
	RequesterName string `json:"requester_name"`
	OwnerName     string `json:"owner_name"`
}

func NewSwapService(db *gorm.DB, cfg *config.Config, pointsService *PointsService, notificationService *NotificationService, events *messaging.Publisher) *SwapService {
	return &SwapService{
		db:                  db,
		cfg:                 cfg,
		pointsService:       pointsService,
		notificationService: notificationService,
		events:              events,
	}
}

// CreateSwap proposes trading the requester's item for the owner's.
// Both items must be approved and available; you cannot request your
// own item or offer one you don't own.
func (s *SwapService) CreateSwap(requesterID uuid.UUID, req *CreateSwapRequest) (*models.Swap, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var swap *models.Swap
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ownerItem models.Item
		if err := tx.First(&ownerItem, req.OwnerItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if ownerItem.UploaderID == requesterID {
			return ErrOwnItem
		}
		if ownerItem.Status != models.ItemStatusApproved || !ownerItem.IsAvailable {
			return models.ErrItemNotAvailable
		}

		var requesterItem models.Item
		if err := tx.First(&requesterItem, req.RequesterItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if requesterItem.UploaderID != requesterID {
			return ErrItemNotOwned
		}
		if requesterItem.Status != models.ItemStatusApproved || !requesterItem.IsAvailable {
			return models.ErrItemNotAvailable
		}

		swap = &models.Swap{
			RequesterID:     requesterID,
			OwnerID:         ownerItem.UploaderID,
			RequesterItemID: requesterItem.ID,
			OwnerItemID:     ownerItem.ID,
			Status:          models.SwapStatusPending,
			Message:         req.Message,
		}
		if err := tx.Create(swap).Error; err != nil {
			return fmt.Errorf("failed to create swap: %w", err)
		}

		return s.notificationService.notify(tx, ownerItem.UploaderID,
			models.NotificationSwapRequest,
			"New swap request",
			fmt.Sprintf("Someone wants to swap for your item %q", ownerItem.Title),
			&ownerItem.ID, &swap.ID)
	})
	if err != nil {
		return nil, err
	}

	s.publishSwapEvent("swap.created", swap)

	s.db.Preload("RequesterItem").Preload("OwnerItem").First(swap, swap.ID)
	return swap, nil
}

// RespondToSwap lets the owner accept or reject a pending request. On
// accept, both items are pulled out of circulation in the same
// transaction; a concurrent respond loses on the pending guard under
// the row lock.
func (s *SwapService) RespondToSwap(callerID, swapID uuid.UUID, req *RespondSwapRequest) (*models.Swap, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var swap models.Swap
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&swap, swapID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSwapNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if swap.OwnerID != callerID {
			return ErrNotSwapOwner
		}

		if req.Accept {
			if err := swap.Accept(); err != nil {
				return err
			}

			for _, itemID := range []uuid.UUID{swap.RequesterItemID, swap.OwnerItemID} {
				var item models.Item
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					First(&item, itemID).Error; err != nil {
					return fmt.Errorf("database error: %w", err)
				}
				if err := item.MarkUnavailable(); err != nil {
					return err
				}
				if err := tx.Model(&item).UpdateColumn("is_available", false).Error; err != nil {
					return fmt.Errorf("failed to update item: %w", err)
				}
			}
		} else {
			if err := swap.Reject(req.Reason); err != nil {
				return err
			}
		}

		if err := tx.Model(&swap).Updates(map[string]interface{}{
			"status":           swap.Status,
			"rejection_reason": swap.RejectionReason,
		}).Error; err != nil {
			return fmt.Errorf("failed to update swap: %w", err)
		}

		nType := models.NotificationSwapAccepted
		title := "Swap accepted"
		message := "Your swap request was accepted"
		if !req.Accept {
			nType = models.NotificationSwapRejected
			title = "Swap rejected"
			message = "Your swap request was rejected"
			if req.Reason != "" {
				message = fmt.Sprintf("Your swap request was rejected: %s", req.Reason)
			}
		}
		return s.notificationService.notify(tx, swap.RequesterID, nType, title, message, nil, &swap.ID)
	})
	if err != nil {
		return nil, err
	}

	s.publishSwapEvent("swap.responded", &swap)

	s.db.Preload("RequesterItem").Preload("OwnerItem").First(&swap, swap.ID)
	return &swap, nil
}

// CompleteSwap finalizes an accepted swap: either party can call it.
// Status, both completion rewards and both counters commit together.
func (s *SwapService) CompleteSwap(callerID, swapID uuid.UUID) (*models.Swap, error) {
	var swap models.Swap
	reward := s.cfg.Points.SwapReward
	balances := make(map[uuid.UUID]int, 2)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&swap, swapID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSwapNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if !swap.IsParty(callerID) {
			return ErrNotSwapParticipant
		}

		if err := swap.Complete(); err != nil {
			return err
		}

		if err := tx.Model(&swap).UpdateColumn("status", swap.Status).Error; err != nil {
			return fmt.Errorf("failed to update swap: %w", err)
		}

		for _, partyID := range []uuid.UUID{swap.RequesterID, swap.OwnerID} {
			_, balance, err := s.pointsService.award(tx, partyID, reward,
				models.PointTransactionSwapCompleted, "Swap completed", nil, &swap.ID)
			if err != nil {
				return err
			}
			balances[partyID] = balance

			if err := tx.Model(&models.Profile{}).
				Where("user_id = ?", partyID).
				UpdateColumn("total_swaps_completed", gorm.Expr("total_swaps_completed + 1")).Error; err != nil {
				return fmt.Errorf("failed to update swap counter: %w", err)
			}
		}

		counterparty := swap.RequesterID
		if callerID == swap.RequesterID {
			counterparty = swap.OwnerID
		}
		return s.notificationService.notify(tx, counterparty,
			models.NotificationSwapCompleted,
			"Swap completed",
			fmt.Sprintf("Your swap is complete. You both earned %d points.", reward),
			nil, &swap.ID)
	})
	if err != nil {
		return nil, err
	}

	for partyID, balance := range balances {
		s.pointsService.afterBalanceChange(partyID, reward, models.PointTransactionSwapCompleted, balance)
	}
	s.publishSwapEvent("swap.completed", &swap)

	s.db.Preload("RequesterItem").Preload("OwnerItem").First(&swap, swap.ID)
	return &swap, nil
}

// GetSentSwaps returns swaps the user initiated, newest first.
func (s *SwapService) GetSentSwaps(userID uuid.UUID) ([]SwapView, error) {
	return s.listSwaps("requester_id = ?", userID)
}

// GetReceivedSwaps returns swaps targeting the user's items, newest
// first.
func (s *SwapService) GetReceivedSwaps(userID uuid.UUID) ([]SwapView, error) {
	return s.listSwaps("owner_id = ?", userID)
}

func (s *SwapService) listSwaps(condition string, userID uuid.UUID) ([]SwapView, error) {
	var swaps []models.Swap
	if err := s.db.Where(condition, userID).
		Order("created_at DESC").
		Preload("Requester").Preload("Requester.Profile").
		Preload("Owner").Preload("Owner.Profile").
		Preload("RequesterItem").Preload("OwnerItem").
		Find(&swaps).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch swaps: %w", err)
	}

	views := make([]SwapView, 0, len(swaps))
	for _, swap := range swaps {
		views = append(views, SwapView{
			Swap:          swap,
			RequesterName: swap.Requester.DisplayName(),
			OwnerName:     swap.Owner.DisplayName(),
		})
	}
	return views, nil
}

func (s *SwapService) publishSwapEvent(subject string, swap *models.Swap) {
	s.events.Publish(subject, messaging.SwapEvent{
		SwapID:      swap.ID.String(),
		RequesterID: swap.RequesterID.String(),
		OwnerID:     swap.OwnerID.String(),
		Status:      string(swap.Status),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}
