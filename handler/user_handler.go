package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhive/video-service/dto"
	"github.com/streamhive/video-service/logger"
	"github.com/streamhive/video-service/service"
)

type UserHandler struct {
	users   service.UserService
	profile service.ProfileService
}

func NewUserHandler(users service.UserService, profile service.ProfileService) *UserHandler {
	return &UserHandler{users: users, profile: profile}
}

// POST /users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(logger.EventValidationFailure, "Invalid register request", logger.Fields("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration payload"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// POST /users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login payload"})
		return
	}

	resp, err := h.users.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	user, err := h.users.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /users/:userId
func (h *UserHandler) Delete(c *gin.Context) {
	actorID := c.GetString("user_id")
	userID := c.Param("userId")

	result, err := h.users.Delete(c.Request.Context(), actorID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "user deleted successfully",
		"removed":          result.Removed,
		"cleanup_failures": result.Failed,
	})
}

// GET /users/:userId/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	viewerID := c.GetString("user_id")
	userID := c.Param("userId")

	// watch history is private: only the owner sees their own
	includeHistory := viewerID == userID

	profile, err := h.profile.GetProfile(c.Request.Context(), userID, viewerID, includeHistory)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GET /users (admin)
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "count": len(users)})
}
