// internal/handlers/swap.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rewear/rewear-backend/internal/services"
	"github.com/rewear/rewear-backend/internal/utils"
)

type SwapHandler struct {
	swapService *services.SwapService
}

func NewSwapHandler(swapService *services.SwapService) *SwapHandler {
	return &SwapHandler{swapService: swapService}
}

func (h *SwapHandler) CreateSwap(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	swap, err := h.swapService.CreateSwap(userID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "validation failed") {
			utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
			return
		}
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, swap)
}

func (h *SwapHandler) GetSentSwaps(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	swaps, err := h.swapService.GetSentSwaps(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, swaps)
}

func (h *SwapHandler) GetReceivedSwaps(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	swaps, err := h.swapService.GetReceivedSwaps(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, swaps)
}

func (h *SwapHandler) RespondToSwap(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	swapID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req services.RespondSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	swap, err := h.swapService.RespondToSwap(userID, swapID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, swap)
}

func (h *SwapHandler) CompleteSwap(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	swapID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	swap, err := h.swapService.CompleteSwap(userID, swapID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, swap)
}
