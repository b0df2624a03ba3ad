// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Profiles
	KeyProfileUpdated  = "profile.updated"
	KeyProfileNotFound = "profile.not_found"
	KeyProfileEnsured  = "profile.ensured"

	// Items
	KeyItemCreated      = "item.created"
	KeyItemNotFound     = "item.not_found"
	KeyItemApproved     = "item.approved"
	KeyItemRejected     = "item.rejected"
	KeyItemNotAvailable = "item.not_available"
	KeyItemReviewed     = "item.already_reviewed"
	KeyItemRedeemed     = "item.redeemed"
	KeyItemOwnItem      = "item.own_item"

	// Swaps
	KeySwapCreated      = "swap.created"
	KeySwapNotFound     = "swap.not_found"
	KeySwapAccepted     = "swap.accepted"
	KeySwapRejected     = "swap.rejected"
	KeySwapCompleted    = "swap.completed"
	KeySwapProcessed    = "swap.already_processed"
	KeySwapNotAccepted  = "swap.not_accepted"
	KeySwapNotYourTurn  = "swap.not_authorized"
	KeySwapOwnItem      = "swap.own_item"
	KeySwapItemRequired = "swap.item_required"

	// Points
	KeyPointsAwarded      = "points.awarded"
	KeyPointsDeducted     = "points.deducted"
	KeyPointsInsufficient = "points.insufficient"

	// Admin
	KeyAdminActionSuccess = "admin.action_success"
	KeyAdminAccessDenied  = "admin.access_denied"
	KeyAdminOwnStatus     = "admin.own_status"

	// Notifications
	KeyNotificationNotFound = "notification.not_found"
	KeyNotificationRead     = "notification.read"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
)
