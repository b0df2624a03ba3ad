// internal/models/swap.go
package models

import (
	"github.com/google/uuid"
)

// Swap ties one item from each of two users to a negotiation.
// Transitions are one-directional: pending -> accepted|rejected,
// accepted -> completed. Services go through the transition methods
// below; status is never patched directly.
type Swap struct {
	BaseModel
	RequesterID     uuid.UUID  `json:"requester_id" gorm:"type:uuid;not null;index"`
	OwnerID         uuid.UUID  `json:"owner_id" gorm:"type:uuid;not null;index"`
	RequesterItemID uuid.UUID  `json:"requester_item_id" gorm:"type:uuid;not null"`
	OwnerItemID     uuid.UUID  `json:"owner_item_id" gorm:"type:uuid;not null"`
	Status          SwapStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Message         string     `json:"message,omitempty" gorm:"size:1000"`
	RejectionReason string     `json:"rejection_reason,omitempty" gorm:"size:500"`

	Requester     User `json:"requester,omitempty" gorm:"foreignKey:RequesterID"`
	Owner         User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	RequesterItem Item `json:"requester_item,omitempty" gorm:"foreignKey:RequesterItemID"`
	OwnerItem     Item `json:"owner_item,omitempty" gorm:"foreignKey:OwnerItemID"`
}

func (s *Swap) Accept() error {
	if s.Status != SwapStatusPending {
		return ErrSwapNotPending
	}
	s.Status = SwapStatusAccepted
	return nil
}

func (s *Swap) Reject(reason string) error {
	if s.Status != SwapStatusPending {
		return ErrSwapNotPending
	}
	s.Status = SwapStatusRejected
	s.RejectionReason = reason
	return nil
}

func (s *Swap) Complete() error {
	if s.Status != SwapStatusAccepted {
		return ErrSwapNotAccepted
	}
	s.Status = SwapStatusCompleted
	return nil
}

// IsParty reports whether the user is one of the two sides of the swap.
func (s *Swap) IsParty(userID uuid.UUID) bool {
	return s.RequesterID == userID || s.OwnerID == userID
}
