// internal/handlers/admin.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rewear/rewear-backend/internal/i18n"
	"github.com/rewear/rewear-backend/internal/services"
	"github.com/rewear/rewear-backend/internal/utils"
)

// AdminHandler serves the moderation endpoints. Routes are mounted
// behind AdminRequired, so every caller here already holds the admin
// claim.
type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) GetPendingItems(c *gin.Context) {
	items, err := h.adminService.GetPendingItems()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, items)
}

func (h *AdminHandler) ReviewItem(c *gin.Context) {
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.ReviewItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	item, err := h.adminService.ReviewItem(itemID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "validation failed") {
			utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
			return
		}
		handleServiceError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	key := i18n.KeyItemApproved
	if !req.Approve {
		key = i18n.KeyItemRejected
	}
	utils.SuccessResponseWithMeta(c, item, gin.H{"message": i18n.T(lang, key)})
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetStats()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, stats)
}

func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.adminService.GetUsers()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, users)
}

func (h *AdminHandler) ToggleAdmin(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	profile, err := h.adminService.ToggleAdmin(callerID, targetID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponseWithMeta(c, profile, gin.H{"message": i18n.T(lang, i18n.KeyAdminActionSuccess)})
}
