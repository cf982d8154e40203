package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhive/video-service/service"
)

type SubscriptionHandler struct {
	subscriptions service.SubscriptionService
}

func NewSubscriptionHandler(subscriptions service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

// POST /channels/:channelId/subscribe
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	subscriberID := c.GetString("user_id")

	sub, err := h.subscriptions.Subscribe(c.Request.Context(), subscriberID, c.Param("channelId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// DELETE /channels/:channelId/subscribe
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	subscriberID := c.GetString("user_id")

	if err := h.subscriptions.Unsubscribe(c.Request.Context(), subscriberID, c.Param("channelId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed successfully"})
}

// GET /channels/:channelId/subscribe/me
func (h *SubscriptionHandler) IsSubscribed(c *gin.Context) {
	subscriberID := c.GetString("user_id")

	subscribed, err := h.subscriptions.IsSubscribed(c.Request.Context(), subscriberID, c.Param("channelId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscribed": subscribed})
}

// GET /channels/:channelId/subscribers
func (h *SubscriptionHandler) ListSubscribers(c *gin.Context) {
	subs, err := h.subscriptions.ListSubscribers(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": subs, "count": len(subs)})
}

// GET /users/me/subscriptions
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	subscriberID := c.GetString("user_id")

	subs, err := h.subscriptions.ListSubscriptions(c.Request.Context(), subscriberID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": subs, "count": len(subs)})
}
