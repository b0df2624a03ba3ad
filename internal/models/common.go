// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

type ItemCategory string

const (
	ItemCategoryTops        ItemCategory = "tops"
	ItemCategoryBottoms     ItemCategory = "bottoms"
	ItemCategoryDresses     ItemCategory = "dresses"
	ItemCategoryOuterwear   ItemCategory = "outerwear"
	ItemCategoryShoes       ItemCategory = "shoes"
	ItemCategoryAccessories ItemCategory = "accessories"
	ItemCategoryActivewear  ItemCategory = "activewear"
)

type ItemSize string

const (
	ItemSizeXS   ItemSize = "XS"
	ItemSizeS    ItemSize = "S"
	ItemSizeM    ItemSize = "M"
	ItemSizeL    ItemSize = "L"
	ItemSizeXL   ItemSize = "XL"
	ItemSizeXXL  ItemSize = "XXL"
	ItemSizeXXXL ItemSize = "XXXL"
)

type ItemCondition string

const (
	ItemConditionLikeNew   ItemCondition = "like-new"
	ItemConditionExcellent ItemCondition = "excellent"
	ItemConditionGood      ItemCondition = "good"
	ItemConditionFair      ItemCondition = "fair"
)

type ItemStatus string

const (
	ItemStatusPending  ItemStatus = "pending"
	ItemStatusApproved ItemStatus = "approved"
	ItemStatusRejected ItemStatus = "rejected"
)

type SwapStatus string

const (
	SwapStatusPending   SwapStatus = "pending"
	SwapStatusAccepted  SwapStatus = "accepted"
	SwapStatusRejected  SwapStatus = "rejected"
	SwapStatusCompleted SwapStatus = "completed"
)

type PointTransactionType string

const (
	PointTransactionItemListed    PointTransactionType = "item_listed"
	PointTransactionSwapCompleted PointTransactionType = "swap_completed"
	PointTransactionItemRedeemed  PointTransactionType = "item_redeemed"
	PointTransactionBonus         PointTransactionType = "bonus"
	PointTransactionReferral      PointTransactionType = "referral"
)

type NotificationType string

const (
	NotificationSwapRequest   NotificationType = "swap_request"
	NotificationSwapAccepted  NotificationType = "swap_accepted"
	NotificationSwapRejected  NotificationType = "swap_rejected"
	NotificationSwapCompleted NotificationType = "swap_completed"
	NotificationItemApproved  NotificationType = "item_approved"
	NotificationItemRejected  NotificationType = "item_rejected"
	NotificationPointsAwarded NotificationType = "points_awarded"
)

func ValidItemCategory(c ItemCategory) bool {
	switch c {
	case ItemCategoryTops, ItemCategoryBottoms, ItemCategoryDresses,
		ItemCategoryOuterwear, ItemCategoryShoes, ItemCategoryAccessories,
		ItemCategoryActivewear:
		return true
	}
	return false
}

func ValidItemSize(s ItemSize) bool {
	switch s {
	case ItemSizeXS, ItemSizeS, ItemSizeM, ItemSizeL, ItemSizeXL, ItemSizeXXL, ItemSizeXXXL:
		return true
	}
	return false
}

func ValidItemCondition(c ItemCondition) bool {
	switch c {
	case ItemConditionLikeNew, ItemConditionExcellent, ItemConditionGood, ItemConditionFair:
		return true
	}
	return false
}

func ValidPointTransactionType(t PointTransactionType) bool {
	switch t {
	case PointTransactionItemListed, PointTransactionSwapCompleted,
		PointTransactionItemRedeemed, PointTransactionBonus, PointTransactionReferral:
		return true
	}
	return false
}
