// internal/models/profile.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile carries the per-user marketplace state: the denormalized
// points balance plus listing/swap counters. The balance must always
// equal the sum of the user's point transactions; PointsService is the
// only writer.
type Profile struct {
	BaseModel
	UserID              uuid.UUID  `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	DisplayName         string     `json:"display_name" gorm:"size:100"`
	Bio                 string     `json:"bio" gorm:"type:text"`
	Location            string     `json:"location" gorm:"size:255"`
	Avatar              string     `json:"avatar" gorm:"size:512"`
	Points              int        `json:"points" gorm:"default:0;index"`
	TotalItemsListed    int        `json:"total_items_listed" gorm:"default:0"`
	TotalSwapsCompleted int        `json:"total_swaps_completed" gorm:"default:0"`
	IsAdmin             bool       `json:"is_admin" gorm:"default:false"`
	JoinedAt            *time.Time `json:"joined_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
