// internal/services/points_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rewear/rewear-backend/internal/cache"
	"github.com/rewear/rewear-backend/internal/config"
	"github.com/rewear/rewear-backend/internal/messaging"
	"github.com/rewear/rewear-backend/internal/models"
)

const (
	leaderboardCacheKey = "points:leaderboard"
	leaderboardCacheTTL = 60 * time.Second
	leaderboardSize     = 10
	transactionPageSize = 50
)

// categoryBasePoints and conditionMultipliers drive the redemption
// price of an item. Unknown values fall back to 15 points and the
// "good" multiplier.
var categoryBasePoints = map[models.ItemCategory]int{
	models.ItemCategoryTops:        15,
	models.ItemCategoryBottoms:     20,
	models.ItemCategoryDresses:     25,
	models.ItemCategoryOuterwear:   30,
	models.ItemCategoryShoes:       20,
	models.ItemCategoryAccessories: 10,
	models.ItemCategoryActivewear:  18,
}

var conditionMultipliers = map[models.ItemCondition]float64{
	models.ItemConditionLikeNew:   1.0,
	models.ItemConditionExcellent: 0.9,
	models.ItemConditionGood:      0.8,
	models.ItemConditionFair:      0.7,
}

// CalculateRedemptionPoints prices an item in points from its category
// and condition. Pure; used both when storing point_value at listing
// time and when recomputing the redemption figure on reads.
func CalculateRedemptionPoints(category models.ItemCategory, condition models.ItemCondition) int {
	base, ok := categoryBasePoints[category]
	if !ok {
		base = 15
	}
	multiplier, ok := conditionMultipliers[condition]
	if !ok {
		multiplier = 0.8
	}
	return int(math.Round(float64(base) * multiplier))
}

// PointsService owns the append-only ledger and the denormalized
// profile balance. It is the only writer of profile.points.
type PointsService struct {
	db     *gorm.DB
	cfg    *config.Config
	cache  *cache.Client
	events *messaging.Publisher
}

func NewPointsService(db *gorm.DB, cfg *config.Config, cacheClient *cache.Client, events *messaging.Publisher) *PointsService {
	return &PointsService{
		db:     db,
		cfg:    cfg,
		cache:  cacheClient,
		events: events,
	}
}

type LeaderboardEntry struct {
	Rank                int       `json:"rank"`
	UserID              uuid.UUID `json:"user_id"`
	DisplayName         string    `json:"display_name"`
	Avatar              string    `json:"avatar,omitempty"`
	Points              int       `json:"points"`
	TotalSwapsCompleted int       `json:"total_swaps_completed"`
}

// AwardPoints credits amount to the user in its own transaction:
// ledger row inserted and balance incremented atomically. A missing
// profile is a hard failure, never a silent no-op.
func (s *PointsService) AwardPoints(userID uuid.UUID, amount int, txType models.PointTransactionType, description string, relatedItemID, relatedSwapID *uuid.UUID) (*models.PointTransaction, error) {
	var transaction *models.PointTransaction
	var balance int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		transaction, balance, err = s.award(tx, userID, amount, txType, description, relatedItemID, relatedSwapID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterBalanceChange(userID, amount, txType, balance)
	return transaction, nil
}

// DeductPoints debits amount from the user. Fails with
// ErrInsufficientPoints when the balance cannot cover it; nothing is
// written in that case.
func (s *PointsService) DeductPoints(userID uuid.UUID, amount int, txType models.PointTransactionType, description string, relatedItemID *uuid.UUID) (*models.PointTransaction, error) {
	var transaction *models.PointTransaction
	var balance int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		transaction, balance, err = s.deduct(tx, userID, amount, txType, description, relatedItemID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterBalanceChange(userID, -amount, txType, balance)
	return transaction, nil
}

// award is the in-transaction credit primitive. Swap completion and
// moderation approval call it inside their own transactions so the
// ledger write commits or rolls back with the rest of the operation.
func (s *PointsService) award(tx *gorm.DB, userID uuid.UUID, amount int, txType models.PointTransactionType, description string, relatedItemID, relatedSwapID *uuid.UUID) (*models.PointTransaction, int, error) {
	if amount < 0 {
		return nil, 0, fmt.Errorf("award amount must not be negative: %d", amount)
	}

	var profile models.Profile
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrProfileNotFound
		}
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	transaction := &models.PointTransaction{
		UserID:        userID,
		Amount:        amount,
		Type:          txType,
		Description:   description,
		RelatedItemID: relatedItemID,
		RelatedSwapID: relatedSwapID,
	}
	if err := tx.Create(transaction).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to record point transaction: %w", err)
	}

	newBalance := profile.Points + amount
	if err := tx.Model(&profile).UpdateColumn("points", newBalance).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to update balance: %w", err)
	}

	return transaction, newBalance, nil
}

// deduct is the in-transaction debit primitive. The balance guard runs
// under the profile row lock so concurrent deductions cannot overdraw.
func (s *PointsService) deduct(tx *gorm.DB, userID uuid.UUID, amount int, txType models.PointTransactionType, description string, relatedItemID *uuid.UUID) (*models.PointTransaction, int, error) {
	if amount < 0 {
		return nil, 0, fmt.Errorf("deduction amount must not be negative: %d", amount)
	}

	var profile models.Profile
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrProfileNotFound
		}
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	if profile.Points < amount {
		return nil, 0, ErrInsufficientPoints
	}

	transaction := &models.PointTransaction{
		UserID:        userID,
		Amount:        -amount,
		Type:          txType,
		Description:   description,
		RelatedItemID: relatedItemID,
	}
	if err := tx.Create(transaction).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to record point transaction: %w", err)
	}

	newBalance := profile.Points - amount
	if err := tx.Model(&profile).UpdateColumn("points", newBalance).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to update balance: %w", err)
	}

	return transaction, newBalance, nil
}

// afterBalanceChange runs the best-effort side effects of a committed
// ledger write: leaderboard cache invalidation and the event mirror.
func (s *PointsService) afterBalanceChange(userID uuid.UUID, amount int, txType models.PointTransactionType, balance int) {
	ctx := context.Background()
	if err := s.cache.Delete(ctx, leaderboardCacheKey); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate leaderboard cache")
	}

	s.events.Publish("points.changed", messaging.PointsEvent{
		UserID:    userID.String(),
		Amount:    amount,
		Type:      string(txType),
		Balance:   balance,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// GetBalance returns the user's denormalized balance.
func (s *PointsService) GetBalance(userID uuid.UUID) (int, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrProfileNotFound
		}
		return 0, fmt.Errorf("database error: %w", err)
	}
	return profile.Points, nil
}

// GetTransactions returns the user's latest ledger rows, newest first.
func (s *PointsService) GetTransactions(userID uuid.UUID) ([]models.PointTransaction, error) {
	var transactions []models.PointTransaction
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(transactionPageSize).
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return transactions, nil
}

// GetLeaderboard returns the top non-admin profiles by balance,
// cache-aside through Redis when configured.
func (s *PointsService) GetLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	if cached, err := s.cache.Get(ctx, leaderboardCacheKey); err == nil {
		var entries []LeaderboardEntry
		if err := json.Unmarshal([]byte(cached), &entries); err == nil {
			return entries, nil
		}
	} else if !cache.IsMiss(err) {
		logrus.WithError(err).Warn("Leaderboard cache read failed")
	}

	var profiles []models.Profile
	if err := s.db.Where("is_admin = ? AND points > 0", false).
		Order("points DESC").
		Limit(leaderboardSize).
		Preload("User").
		Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(profiles))
	for i, profile := range profiles {
		user := profile.User
		user.Profile = &profiles[i]
		entries = append(entries, LeaderboardEntry{
			Rank:                i + 1,
			UserID:              profile.UserID,
			DisplayName:         user.DisplayName(),
			Avatar:              profile.Avatar,
			Points:              profile.Points,
			TotalSwapsCompleted: profile.TotalSwapsCompleted,
		})
	}

	if data, err := json.Marshal(entries); err == nil {
		if err := s.cache.Set(ctx, leaderboardCacheKey, data, leaderboardCacheTTL); err != nil {
			logrus.WithError(err).Warn("Failed to cache leaderboard")
		}
	}

	return entries, nil
}
