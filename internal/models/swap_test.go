// internal/models/swap_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSwapAccept(t *testing.T) {
	swap := &Swap{Status: SwapStatusPending}

	err := swap.Accept()
	assert.NoError(t, err)
	assert.Equal(t, SwapStatusAccepted, swap.Status)
}

func TestSwapReject(t *testing.T) {
	swap := &Swap{Status: SwapStatusPending}

	err := swap.Reject("changed my mind")
	assert.NoError(t, err)
	assert.Equal(t, SwapStatusRejected, swap.Status)
	assert.Equal(t, "changed my mind", swap.RejectionReason)
}

func TestSwapRespondOnlyFromPending(t *testing.T) {
	for _, status := range []SwapStatus{SwapStatusAccepted, SwapStatusRejected, SwapStatusCompleted} {
		swap := &Swap{Status: status}

		assert.ErrorIs(t, swap.Accept(), ErrSwapNotPending)
		assert.ErrorIs(t, swap.Reject("no"), ErrSwapNotPending)
		assert.Equal(t, status, swap.Status, "status must not change on a failed transition")
	}
}

func TestSwapComplete(t *testing.T) {
	swap := &Swap{Status: SwapStatusAccepted}

	err := swap.Complete()
	assert.NoError(t, err)
	assert.Equal(t, SwapStatusCompleted, swap.Status)
}

func TestSwapCompleteOnlyFromAccepted(t *testing.T) {
	for _, status := range []SwapStatus{SwapStatusPending, SwapStatusRejected, SwapStatusCompleted} {
		swap := &Swap{Status: status}

		assert.ErrorIs(t, swap.Complete(), ErrSwapNotAccepted)
		assert.Equal(t, status, swap.Status)
	}
}

func TestSwapIsParty(t *testing.T) {
	requester := uuid.New()
	owner := uuid.New()
	swap := &Swap{RequesterID: requester, OwnerID: owner}

	assert.True(t, swap.IsParty(requester))
	assert.True(t, swap.IsParty(owner))
	assert.False(t, swap.IsParty(uuid.New()))
}

func TestUserDisplayNameResolution(t *testing.T) {
	user := &User{}
	assert.Equal(t, "Anonymous", user.DisplayName())

	user.Email = "kai@example.com"
	assert.Equal(t, "kai@example.com", user.DisplayName())

	user.Username = "kai"
	assert.Equal(t, "kai", user.DisplayName())

	user.Profile = &Profile{DisplayName: "Kai R."}
	assert.Equal(t, "Kai R.", user.DisplayName())
}
