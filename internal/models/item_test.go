// internal/models/item_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemApprove(t *testing.T) {
	item := &Item{Status: ItemStatusPending}

	err := item.Approve()
	assert.NoError(t, err)
	assert.Equal(t, ItemStatusApproved, item.Status)
	assert.True(t, item.IsAvailable)
}

func TestItemApproveOnlyFromPending(t *testing.T) {
	for _, status := range []ItemStatus{ItemStatusApproved, ItemStatusRejected} {
		item := &Item{Status: status}

		err := item.Approve()
		assert.ErrorIs(t, err, ErrItemNotPending)
		assert.Equal(t, status, item.Status, "status must not change on a failed transition")
		assert.False(t, item.IsAvailable)
	}
}

func TestItemReject(t *testing.T) {
	item := &Item{Status: ItemStatusPending}

	err := item.Reject("blurry photos")
	assert.NoError(t, err)
	assert.Equal(t, ItemStatusRejected, item.Status)
	assert.Equal(t, "blurry photos", item.RejectionReason)
	assert.False(t, item.IsAvailable)
}

func TestItemRejectOnlyFromPending(t *testing.T) {
	item := &Item{Status: ItemStatusApproved, IsAvailable: true}

	err := item.Reject("too late")
	assert.ErrorIs(t, err, ErrItemNotPending)
	assert.Equal(t, ItemStatusApproved, item.Status)
	assert.Empty(t, item.RejectionReason)
}

func TestItemMarkUnavailable(t *testing.T) {
	item := &Item{Status: ItemStatusApproved, IsAvailable: true}

	err := item.MarkUnavailable()
	assert.NoError(t, err)
	assert.False(t, item.IsAvailable)

	// Second call fails: already out of circulation
	err = item.MarkUnavailable()
	assert.ErrorIs(t, err, ErrItemNotAvailable)
}

func TestItemMarkUnavailableRequiresApproval(t *testing.T) {
	item := &Item{Status: ItemStatusPending, IsAvailable: false}

	err := item.MarkUnavailable()
	assert.ErrorIs(t, err, ErrItemNotAvailable)
}

func TestValidItemEnums(t *testing.T) {
	assert.True(t, ValidItemCategory(ItemCategoryTops))
	assert.True(t, ValidItemCategory(ItemCategoryActivewear))
	assert.False(t, ValidItemCategory(ItemCategory("hats")))

	assert.True(t, ValidItemSize(ItemSizeXS))
	assert.True(t, ValidItemSize(ItemSizeXXXL))
	assert.False(t, ValidItemSize(ItemSize("XXXXL")))

	assert.True(t, ValidItemCondition(ItemConditionLikeNew))
	assert.False(t, ValidItemCondition(ItemCondition("worn-out")))
}
