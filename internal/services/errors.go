// internal/services/errors.go
package services

import "errors"

// Sentinel errors matched with errors.Is in handlers and mapped onto
// HTTP statuses there. Together with the transition errors in the
// models package these cover every failure the API distinguishes.
var (
	ErrItemNotFound         = errors.New("item not found")
	ErrSwapNotFound         = errors.New("swap not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrInsufficientPoints = errors.New("insufficient points")

	ErrOwnItem            = errors.New("cannot use your own item")
	ErrItemNotOwned       = errors.New("item does not belong to you")
	ErrNotSwapParticipant = errors.New("not a party to this swap")
	ErrNotSwapOwner       = errors.New("only the item owner can respond")
	ErrOwnAdminStatus     = errors.New("cannot modify your own admin status")

	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is not active")
)
