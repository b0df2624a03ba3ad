// internal/handlers/common.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rewear/rewear-backend/internal/i18n"
	"github.com/rewear/rewear-backend/internal/models"
	"github.com/rewear/rewear-backend/internal/services"
	"github.com/rewear/rewear-backend/internal/utils"
)

// currentUserID pulls the authenticated user's id out of the Gin
// context. Writes the 401 response itself when absent or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a uuid path parameter, answering 400 on garbage.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, name), nil)
		return uuid.Nil, false
	}
	return id, true
}

// handleServiceError maps service failures onto HTTP statuses: typed
// sentinels get their specific status and localized message, anything
// else is logged and becomes a 500.
func handleServiceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrItemNotFound):
		utils.NotFoundResponse(c, "item")
	case errors.Is(err, services.ErrSwapNotFound):
		utils.NotFoundResponse(c, "swap")
	case errors.Is(err, services.ErrProfileNotFound):
		utils.NotFoundResponse(c, "profile")
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, "profile")
	case errors.Is(err, services.ErrNotificationNotFound):
		utils.NotFoundResponse(c, "notification")

	case errors.Is(err, models.ErrItemNotPending):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyItemReviewed))
	case errors.Is(err, models.ErrSwapNotPending):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeySwapProcessed))
	case errors.Is(err, models.ErrSwapNotAccepted):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeySwapNotAccepted))

	case errors.Is(err, models.ErrItemNotAvailable):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyItemNotAvailable), nil)
	case errors.Is(err, services.ErrInsufficientPoints):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPointsInsufficient), nil)
	case errors.Is(err, services.ErrOwnItem):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyItemOwnItem), nil)
	case errors.Is(err, services.ErrItemNotOwned):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeySwapItemRequired), nil)
	case errors.Is(err, services.ErrUserExists):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyAuthUserExists))

	case errors.Is(err, services.ErrNotSwapParticipant),
		errors.Is(err, services.ErrNotSwapOwner):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeySwapNotYourTurn))
	case errors.Is(err, services.ErrOwnAdminStatus):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAdminOwnStatus))

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountInactive):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))

	default:
		logrus.WithError(err).Error("Unhandled service error")
		utils.InternalErrorResponse(c, "")
	}
}
