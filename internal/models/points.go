// internal/models/points.go
package models

import (
	"github.com/google/uuid"
)

// PointTransaction is the append-only ledger. Rows are never mutated or
// deleted; the profile balance is a denormalized sum over them.
type PointTransaction struct {
	BaseModel
	UserID        uuid.UUID            `json:"user_id" gorm:"type:uuid;not null;index"`
	Amount        int                  `json:"amount" gorm:"not null"`
	Type          PointTransactionType `json:"type" gorm:"type:varchar(20);not null"`
	Description   string               `json:"description" gorm:"size:500"`
	RelatedItemID *uuid.UUID           `json:"related_item_id,omitempty" gorm:"type:uuid"`
	RelatedSwapID *uuid.UUID           `json:"related_swap_id,omitempty" gorm:"type:uuid"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
