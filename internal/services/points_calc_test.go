// internal/services/points_calc_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rewear/rewear-backend/internal/models"
)

func TestCalculateRedemptionPoints(t *testing.T) {
	tests := []struct {
		category  models.ItemCategory
		condition models.ItemCondition
		expected  int
	}{
		{models.ItemCategoryTops, models.ItemConditionLikeNew, 15},
		{models.ItemCategoryTops, models.ItemConditionExcellent, 14},
		{models.ItemCategoryTops, models.ItemConditionGood, 12},
		{models.ItemCategoryTops, models.ItemConditionFair, 11},

		{models.ItemCategoryBottoms, models.ItemConditionLikeNew, 20},
		{models.ItemCategoryBottoms, models.ItemConditionExcellent, 18},
		{models.ItemCategoryBottoms, models.ItemConditionGood, 16},
		{models.ItemCategoryBottoms, models.ItemConditionFair, 14},

		{models.ItemCategoryDresses, models.ItemConditionLikeNew, 25},
		{models.ItemCategoryDresses, models.ItemConditionExcellent, 23},
		{models.ItemCategoryDresses, models.ItemConditionGood, 20},
		{models.ItemCategoryDresses, models.ItemConditionFair, 18},

		{models.ItemCategoryOuterwear, models.ItemConditionLikeNew, 30},
		{models.ItemCategoryOuterwear, models.ItemConditionExcellent, 27},
		{models.ItemCategoryOuterwear, models.ItemConditionGood, 24},
		{models.ItemCategoryOuterwear, models.ItemConditionFair, 21},

		{models.ItemCategoryShoes, models.ItemConditionLikeNew, 20},
		{models.ItemCategoryShoes, models.ItemConditionGood, 16},

		{models.ItemCategoryAccessories, models.ItemConditionLikeNew, 10},
		{models.ItemCategoryAccessories, models.ItemConditionExcellent, 9},
		{models.ItemCategoryAccessories, models.ItemConditionGood, 8},
		{models.ItemCategoryAccessories, models.ItemConditionFair, 7},

		{models.ItemCategoryActivewear, models.ItemConditionLikeNew, 18},
		{models.ItemCategoryActivewear, models.ItemConditionExcellent, 16},
		{models.ItemCategoryActivewear, models.ItemConditionGood, 14},
		{models.ItemCategoryActivewear, models.ItemConditionFair, 13},
	}

	for _, tt := range tests {
		got := CalculateRedemptionPoints(tt.category, tt.condition)
		assert.Equal(t, tt.expected, got, "%s/%s", tt.category, tt.condition)
	}
}

func TestCalculateRedemptionPointsFallbacks(t *testing.T) {
	// Unknown category falls back to base 15, unknown condition to the
	// 0.8 multiplier.
	assert.Equal(t, 12, CalculateRedemptionPoints("hats", models.ItemConditionGood))
	assert.Equal(t, 12, CalculateRedemptionPoints(models.ItemCategoryTops, "worn"))
	assert.Equal(t, 12, CalculateRedemptionPoints("hats", "worn"))
}

func TestCalculateRedemptionPointsDeterministic(t *testing.T) {
	categories := []models.ItemCategory{
		models.ItemCategoryTops, models.ItemCategoryBottoms, models.ItemCategoryDresses,
		models.ItemCategoryOuterwear, models.ItemCategoryShoes, models.ItemCategoryAccessories,
		models.ItemCategoryActivewear,
	}
	conditions := []models.ItemCondition{
		models.ItemConditionLikeNew, models.ItemConditionExcellent,
		models.ItemConditionGood, models.ItemConditionFair,
	}

	for _, cat := range categories {
		for _, cond := range conditions {
			first := CalculateRedemptionPoints(cat, cond)
			assert.Positive(t, first)
			assert.Equal(t, first, CalculateRedemptionPoints(cat, cond))
		}
	}
}

// TestSwapLifecyclePointTotals walks a full marketplace exchange at
// the transition level and checks the point arithmetic both users end
// up with: +5 per approved listing, +10 each on swap completion.
func TestSwapLifecyclePointTotals(t *testing.T) {
	const listingReward = 5
	const swapReward = 10

	balances := map[string]int{"uploader": 0, "requester": 0}

	uploaderItem := &models.Item{Status: models.ItemStatusPending, Category: models.ItemCategoryDresses, Condition: models.ItemConditionExcellent}
	requesterItem := &models.Item{Status: models.ItemStatusPending, Category: models.ItemCategoryTops, Condition: models.ItemConditionGood}

	// Both listings pass moderation and earn the listing reward
	assert.NoError(t, uploaderItem.Approve())
	balances["uploader"] += listingReward
	assert.NoError(t, requesterItem.Approve())
	balances["requester"] += listingReward

	// Requester proposes a trade for the uploader's item
	swap := &models.Swap{Status: models.SwapStatusPending}

	// Acceptance pulls both items out of circulation
	assert.NoError(t, swap.Accept())
	assert.NoError(t, uploaderItem.MarkUnavailable())
	assert.NoError(t, requesterItem.MarkUnavailable())
	assert.False(t, uploaderItem.IsAvailable)
	assert.False(t, requesterItem.IsAvailable)

	// Completion rewards both parties
	assert.NoError(t, swap.Complete())
	balances["uploader"] += swapReward
	balances["requester"] += swapReward

	assert.Equal(t, 15, balances["uploader"])
	assert.Equal(t, 15, balances["requester"])

	// The exchange is final: no further transitions are legal
	assert.ErrorIs(t, swap.Complete(), models.ErrSwapNotAccepted)
	assert.ErrorIs(t, swap.Accept(), models.ErrSwapNotPending)
	assert.ErrorIs(t, uploaderItem.MarkUnavailable(), models.ErrItemNotAvailable)
}
