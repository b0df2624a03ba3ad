// internal/handlers/item.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rewear/rewear-backend/internal/i18n"
	"github.com/rewear/rewear-backend/internal/services"
	"github.com/rewear/rewear-backend/internal/utils"
)

type ItemHandler struct {
	itemService    *services.ItemService
	storageService *services.StorageService
}

func NewItemHandler(itemService *services.ItemService, storageService *services.StorageService) *ItemHandler {
	return &ItemHandler{
		itemService:    itemService,
		storageService: storageService,
	}
}

// ListItems serves the browsable catalog with filters and pagination.
func (h *ItemHandler) ListItems(c *gin.Context) {
	params := services.ItemFilterParams{
		PaginationParams: utils.GetPaginationParams(c),
		Size:             c.Query("size"),
		Condition:        c.Query("condition"),
	}

	items, total, err := h.itemService.GetApprovedItems(params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(items, total, params.PaginationParams))
}

func (h *ItemHandler) SearchItems(c *gin.Context) {
	items, err := h.itemService.SearchItems(c.Query("q"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, items)
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var viewerID *uuid.UUID
	if userIDStr, exists := utils.GetUserIDFromContext(c); exists {
		if parsed, err := uuid.Parse(userIDStr); err == nil {
			viewerID = &parsed
		}
	}

	item, err := h.itemService.GetItem(itemID, viewerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, item)
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	item, err := h.itemService.CreateItem(userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "validation failed") {
			utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
			return
		}
		if strings.Contains(err.Error(), "invalid") {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, item)
}

func (h *ItemHandler) GetMyItems(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.itemService.GetUserItems(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, items)
}

func (h *ItemHandler) GetFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.itemService.GetUserFavorites(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, items)
}

func (h *ItemHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	favorited, err := h.itemService.ToggleFavorite(userID, itemID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"favorited": favorited})
}

func (h *ItemHandler) RedeemItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	item, err := h.itemService.RedeemItem(userID, itemID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponseWithMeta(c, item, gin.H{"message": i18n.T(lang, i18n.KeyItemRedeemed)})
}

// UploadImages accepts multipart item photos and returns the stored
// keys and URLs.
func (h *ItemHandler) UploadImages(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "images"), nil)
		return
	}

	options := h.storageService.GetDefaultUploadOptions("items")
	results := make([]*services.UploadResult, 0, len(files))

	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.BadRequestResponse(c, "", err.Error())
			return
		}

		if err := h.storageService.ValidateImage(file); err != nil {
			file.Close()
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}

		result, err := h.storageService.UploadFile(file, header, options)
		file.Close()
		if err != nil {
			lang := utils.GetLangFromContext(c)
			utils.ErrorResponse(c, http.StatusInternalServerError, "UPLOAD_FAILED", i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
			return
		}
		results = append(results, result)
	}

	utils.CreatedResponse(c, results)
}
