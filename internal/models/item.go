// internal/models/item.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Item struct {
	BaseModel
	Title           string         `json:"title" gorm:"size:255;not null"`
	Description     string         `json:"description" gorm:"type:text"`
	Category        ItemCategory   `json:"category" gorm:"type:varchar(20);not null;index"`
	Type            string         `json:"type" gorm:"size:100"`
	Size            ItemSize       `json:"size" gorm:"type:varchar(10);not null"`
	Condition       ItemCondition  `json:"condition" gorm:"type:varchar(20);not null"`
	Brand           string         `json:"brand,omitempty" gorm:"size:100"`
	Color           string         `json:"color" gorm:"size:50"`
	Tags            pq.StringArray `json:"tags" gorm:"type:text[]"`
	Images          pq.StringArray `json:"images" gorm:"type:text[]"`
	UploaderID      uuid.UUID      `json:"uploader_id" gorm:"type:uuid;not null;index"`
	Status          ItemStatus     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	RejectionReason string         `json:"rejection_reason,omitempty" gorm:"size:500"`
	// PointValue is fixed when the item is listed; read projections carry a
	// freshly computed redemption figure alongside it and the two may
	// diverge if the formula changes.
	PointValue  int            `json:"point_value" gorm:"default:0"`
	Views       int64          `json:"views" gorm:"default:0"`
	Likes       pq.StringArray `json:"likes" gorm:"type:text[]"`
	IsAvailable bool           `json:"is_available" gorm:"default:false;index"`

	Uploader User `json:"uploader,omitempty" gorm:"foreignKey:UploaderID"`
}

// Approve transitions pending -> approved and makes the item swappable.
func (i *Item) Approve() error {
	if i.Status != ItemStatusPending {
		return ErrItemNotPending
	}
	i.Status = ItemStatusApproved
	i.IsAvailable = true
	return nil
}

// Reject transitions pending -> rejected, recording the reason.
func (i *Item) Reject(reason string) error {
	if i.Status != ItemStatusPending {
		return ErrItemNotPending
	}
	i.Status = ItemStatusRejected
	i.RejectionReason = reason
	return nil
}

// MarkUnavailable pulls the item out of circulation (accepted swap or
// redemption). Only approved, currently available items qualify.
func (i *Item) MarkUnavailable() error {
	if i.Status != ItemStatusApproved || !i.IsAvailable {
		return ErrItemNotAvailable
	}
	i.IsAvailable = false
	return nil
}

type Favorite struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_item"`
	ItemID uuid.UUID `json:"item_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_item"`

	Item Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
}
