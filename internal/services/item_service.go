// internal/services/item_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rewear/rewear-backend/internal/messaging"
	"github.com/rewear/rewear-backend/internal/models"
	"github.com/rewear/rewear-backend/internal/utils"
)

const searchResultCap = 20

type ItemService struct {
	db                  *gorm.DB
	pointsService       *PointsService
	notificationService *NotificationService
	storageService      *StorageService
	events              *messaging.Publisher
}

type CreateItemRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=255"`
	Description string   `json:"description" validate:"required,min=10"`
	Category    string   `json:"category" validate:"required"`
	Type        string   `json:"type,omitempty" validate:"omitempty,max=100"`
	Size        string   `json:"size" validate:"required"`
	Condition   string   `json:"condition" validate:"required"`
	Brand       string   `json:"brand,omitempty" validate:"omitempty,max=100"`
	Color       string   `json:"color,omitempty" validate:"omitempty,max=50"`
	Tags        []string `json:"tags,omitempty"`
	Images      []string `json:"images,omitempty"`
}

type ItemFilterParams struct {
	utils.PaginationParams
	Size      string `json:"size,omitempty"`
	Condition string `json:"condition,omitempty"`
}

// ItemView is the read projection of an item: uploader display info
// resolved, image keys turned into URLs, and the redemption price
// recomputed fresh. The fresh figure can drift from the stored
// point_value when the pricing table changes.
type ItemView struct {
	models.Item
	UploaderName     string   `json:"uploader_name"`
	UploaderAvatar   string   `json:"uploader_avatar,omitempty"`
	ImageURLs        []string `json:"image_urls"`
	RedemptionPoints int      `json:"redemption_points"`
	LikeCount        int      `json:"like_count"`
}

func NewItemService(db *gorm.DB, pointsService *PointsService, notificationService *NotificationService, storageService *StorageService, events *messaging.Publisher) *ItemService {
	return &ItemService{
		db:                  db,
		pointsService:       pointsService,
		notificationService: notificationService,
		storageService:      storageService,
		events:              events,
	}
}

// CreateItem lists an item for moderation. It enters the catalog
// pending and unavailable; no points are awarded until approval.
func (s *ItemService) CreateItem(uploaderID uuid.UUID, req *CreateItemRequest) (*models.Item, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	category := models.ItemCategory(req.Category)
	if !models.ValidItemCategory(category) {
		return nil, fmt.Errorf("invalid category: %s", req.Category)
	}
	size := models.ItemSize(req.Size)
	if !models.ValidItemSize(size) {
		return nil, fmt.Errorf("invalid size: %s", req.Size)
	}
	condition := models.ItemCondition(req.Condition)
	if !models.ValidItemCondition(condition) {
		return nil, fmt.Errorf("invalid condition: %s", req.Condition)
	}

	item := &models.Item{
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		Type:        req.Type,
		Size:        size,
		Condition:   condition,
		Brand:       req.Brand,
		Color:       req.Color,
		Tags:        pq.StringArray(req.Tags),
		Images:      pq.StringArray(req.Images),
		UploaderID:  uploaderID,
		Status:      models.ItemStatusPending,
		PointValue:  CalculateRedemptionPoints(category, condition),
		Likes:       pq.StringArray{},
		IsAvailable: false,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("failed to create item: %w", err)
		}
		if err := tx.Model(&models.Profile{}).
			Where("user_id = ?", uploaderID).
			UpdateColumn("total_items_listed", gorm.Expr("total_items_listed + 1")).Error; err != nil {
			return fmt.Errorf("failed to update listing counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish("item.created", messaging.ItemEvent{
		ItemID:    item.ID.String(),
		OwnerID:   uploaderID.String(),
		Title:     item.Title,
		Status:    string(item.Status),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})

	return item, nil
}

// GetApprovedItems returns the browsable catalog: approved and still
// available, newest first, optionally filtered.
func (s *ItemService) GetApprovedItems(params ItemFilterParams) ([]ItemView, int64, error) {
	query := s.db.Model(&models.Item{}).
		Where("status = ? AND is_available = ?", models.ItemStatusApproved, true).
		Preload("Uploader").Preload("Uploader.Profile")

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Size != "" {
		query = query.Where("size = ?", params.Size)
	}
	if params.Condition != "" {
		query = query.Where("condition = ?", params.Condition)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "title", "point_value", "views"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var items []models.Item
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch items: %w", err)
	}

	return s.toViews(items), total, nil
}

// SearchItems matches approved items by title, capped at 20 results.
// Availability is not required: redeemed and mid-swap items still show
// up in search, matching browse-versus-search behavior elsewhere.
func (s *ItemService) SearchItems(term string) ([]ItemView, error) {
	if strings.TrimSpace(term) == "" {
		return []ItemView{}, nil
	}

	var items []models.Item
	searchTerm := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	if err := s.db.Where("status = ?", models.ItemStatusApproved).
		Where("LOWER(title) LIKE ?", searchTerm).
		Order("created_at DESC").
		Limit(searchResultCap).
		Preload("Uploader").Preload("Uploader.Profile").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	return s.toViews(items), nil
}

// GetItem returns the detail view and bumps the view counter in the
// background unless the uploader is looking at their own listing.
func (s *ItemService) GetItem(id uuid.UUID, viewerID *uuid.UUID) (*ItemView, error) {
	var item models.Item
	if err := s.db.Preload("Uploader").Preload("Uploader.Profile").
		First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if viewerID == nil || *viewerID != item.UploaderID {
		go s.incrementViewCount(id)
	}

	view := s.toView(item)
	return &view, nil
}

// GetUserItems returns everything the user has listed, regardless of
// moderation state.
func (s *ItemService) GetUserItems(userID uuid.UUID) ([]ItemView, error) {
	var items []models.Item
	if err := s.db.Where("uploader_id = ?", userID).
		Order("created_at DESC").
		Preload("Uploader").Preload("Uploader.Profile").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch user items: %w", err)
	}
	return s.toViews(items), nil
}

// GetUserFavorites returns the user's favorited items, newest favorite
// first.
func (s *ItemService) GetUserFavorites(userID uuid.UUID) ([]ItemView, error) {
	var favorites []models.Favorite
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Item").Preload("Item.Uploader").Preload("Item.Uploader.Profile").
		Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch favorites: %w", err)
	}

	items := make([]models.Item, 0, len(favorites))
	for _, fav := range favorites {
		items = append(items, fav.Item)
	}
	return s.toViews(items), nil
}

// ToggleFavorite flips the (user, item) favorite pair and reports the
// resulting state.
func (s *ItemService) ToggleFavorite(userID, itemID uuid.UUID) (bool, error) {
	var item models.Item
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrItemNotFound
		}
		return false, fmt.Errorf("database error: %w", err)
	}

	var favorite models.Favorite
	err := s.db.Where("user_id = ? AND item_id = ?", userID, itemID).First(&favorite).Error
	if err == nil {
		if err := s.db.Unscoped().Delete(&favorite).Error; err != nil {
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("database error: %w", err)
	}

	favorite = models.Favorite{UserID: userID, ItemID: itemID}
	if err := s.db.Create(&favorite).Error; err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return true, nil
}

// RedeemItem spends the caller's points on an item: the fresh
// redemption price is deducted and the item leaves circulation, all in
// one transaction.
func (s *ItemService) RedeemItem(userID, itemID uuid.UUID) (*ItemView, error) {
	var redeemed models.Item
	var cost, balance int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if item.UploaderID == userID {
			return ErrOwnItem
		}

		if err := item.MarkUnavailable(); err != nil {
			return err
		}

		cost = CalculateRedemptionPoints(item.Category, item.Condition)
		_, newBalance, err := s.pointsService.deduct(tx, userID, cost,
			models.PointTransactionItemRedeemed,
			fmt.Sprintf("Redeemed item: %s", item.Title), &item.ID)
		if err != nil {
			return err
		}
		balance = newBalance

		if err := tx.Model(&item).Updates(map[string]interface{}{
			"is_available": item.IsAvailable,
		}).Error; err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}

		if err := s.notificationService.notify(tx, item.UploaderID,
			models.NotificationPointsAwarded,
			"Item redeemed",
			fmt.Sprintf("Your item %q was redeemed with points", item.Title),
			&item.ID, nil); err != nil {
			return err
		}

		redeemed = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.pointsService.afterBalanceChange(userID, -cost, models.PointTransactionItemRedeemed, balance)

	s.db.Preload("Uploader").Preload("Uploader.Profile").First(&redeemed, redeemed.ID)
	view := s.toView(redeemed)
	return &view, nil
}

func (s *ItemService) incrementViewCount(itemID uuid.UUID) {
	s.db.Model(&models.Item{}).Where("id = ?", itemID).
		UpdateColumn("views", gorm.Expr("views + 1"))
}

func (s *ItemService) toView(item models.Item) ItemView {
	return ItemView{
		Item:             item,
		UploaderName:     item.Uploader.DisplayName(),
		UploaderAvatar:   s.uploaderAvatar(item),
		ImageURLs:        s.storageService.ResolveURLs(item.Images),
		RedemptionPoints: CalculateRedemptionPoints(item.Category, item.Condition),
		LikeCount:        len(item.Likes),
	}
}

func (s *ItemService) toViews(items []models.Item) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, s.toView(item))
	}
	return views
}

func (s *ItemService) uploaderAvatar(item models.Item) string {
	if item.Uploader.Profile == nil {
		return ""
	}
	return s.storageService.ResolveURL(item.Uploader.Profile.Avatar)
}
