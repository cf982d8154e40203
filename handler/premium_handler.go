package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhive/video-service/dto"
	"github.com/streamhive/video-service/service"
)

type PremiumHandler struct {
	premiums service.PremiumService
}

func NewPremiumHandler(premiums service.PremiumService) *PremiumHandler {
	return &PremiumHandler{premiums: premiums}
}

// POST /premium
func (h *PremiumHandler) Purchase(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.PurchasePremiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount_paid is required"})
		return
	}

	premium, err := h.premiums.Purchase(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, premium)
}

// DELETE /premium/:premiumId
func (h *PremiumHandler) Cancel(c *gin.Context) {
	actorID := c.GetString("user_id")

	if err := h.premiums.Cancel(c.Request.Context(), actorID, c.Param("premiumId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "premium membership cancelled"})
}

// GET /premium/status
func (h *PremiumHandler) Status(c *gin.Context) {
	userID := c.GetString("user_id")

	status, err := h.premiums.Status(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
