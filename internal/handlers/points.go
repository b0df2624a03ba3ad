// internal/handlers/points.go
package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rewear/rewear-backend/internal/models"
	"github.com/rewear/rewear-backend/internal/services"
	"github.com/rewear/rewear-backend/internal/utils"
)

type PointsHandler struct {
	pointsService       *services.PointsService
	notificationService *services.NotificationService
}

type AwardPointsRequest struct {
	UserID      uuid.UUID `json:"user_id" binding:"required"`
	Amount      int       `json:"amount" binding:"required,min=1"`
	Type        string    `json:"type" binding:"required"`
	Description string    `json:"description"`
}

func NewPointsHandler(pointsService *services.PointsService, notificationService *services.NotificationService) *PointsHandler {
	return &PointsHandler{
		pointsService:       pointsService,
		notificationService: notificationService,
	}
}

func (h *PointsHandler) GetLeaderboard(c *gin.Context) {
	entries, err := h.pointsService.GetLeaderboard(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, entries)
}

func (h *PointsHandler) GetTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	transactions, err := h.pointsService.GetTransactions(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	balance, err := h.pointsService.GetBalance(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, transactions, gin.H{"balance": balance})
}

// AwardPoints is the admin credit endpoint for bonus and referral
// grants.
func (h *PointsHandler) AwardPoints(c *gin.Context) {
	var req AwardPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	txType := models.PointTransactionType(req.Type)
	if txType != models.PointTransactionBonus && txType != models.PointTransactionReferral {
		utils.BadRequestResponse(c, "type must be bonus or referral", nil)
		return
	}

	transaction, err := h.pointsService.AwardPoints(req.UserID, req.Amount, txType, req.Description, nil, nil)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.notificationService.Notify(req.UserID, models.NotificationPointsAwarded,
		"Points awarded", fmt.Sprintf("You received %d points", req.Amount), nil, nil)

	utils.CreatedResponse(c, transaction)
}
