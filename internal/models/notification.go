// internal/models/notification.go
package models

import (
	"github.com/google/uuid"
)

type Notification struct {
	BaseModel
	UserID        uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index"`
	Type          NotificationType `json:"type" gorm:"type:varchar(30);not null"`
	Title         string           `json:"title" gorm:"size:255;not null"`
	Message       string           `json:"message" gorm:"type:text"`
	IsRead        bool             `json:"is_read" gorm:"default:false"`
	RelatedItemID *uuid.UUID       `json:"related_item_id,omitempty" gorm:"type:uuid"`
	RelatedSwapID *uuid.UUID       `json:"related_swap_id,omitempty" gorm:"type:uuid"`
}
