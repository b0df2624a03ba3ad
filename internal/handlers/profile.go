// internal/handlers/profile.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rewear/rewear-backend/internal/i18n"
	"github.com/rewear/rewear-backend/internal/services"
	"github.com/rewear/rewear-backend/internal/utils"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	profile, err := h.profileService.UpdateProfile(userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "validation failed") {
			utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
			return
		}
		handleServiceError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponseWithMeta(c, profile, gin.H{"message": i18n.T(lang, i18n.KeyProfileUpdated)})
}

// EnsureProfile is idempotent: first call creates the profile, later
// calls return it unchanged.
func (h *ProfileHandler) EnsureProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.EnsureProfile(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, profile)
}

func (h *ProfileHandler) GetProfileByID(c *gin.Context) {
	targetID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(targetID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, profile)
}

// AdminCheck reports whether the caller's profile carries the admin
// flag. Frontends use it to decide whether to show moderation UI.
func (h *ProfileHandler) AdminCheck(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	isAdmin, err := h.profileService.IsAdmin(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"is_admin": isAdmin})
}
