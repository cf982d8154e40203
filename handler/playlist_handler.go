package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhive/video-service/dto"
	"github.com/streamhive/video-service/service"
)

type PlaylistHandler struct {
	playlists service.PlaylistService
}

func NewPlaylistHandler(playlists service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists}
}

// POST /playlists
func (h *PlaylistHandler) Create(c *gin.Context) {
	ownerID := c.GetString("user_id")

	var req dto.CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid playlist payload"})
		return
	}

	playlist, err := h.playlists.Create(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, playlist)
}

// GET /playlists/:playlistId
func (h *PlaylistHandler) Get(c *gin.Context) {
	view, err := h.playlists.Get(c.Request.Context(), c.Param("playlistId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DELETE /playlists/:playlistId
func (h *PlaylistHandler) Delete(c *gin.Context) {
	actorID := c.GetString("user_id")

	if err := h.playlists.Delete(c.Request.Context(), actorID, c.Param("playlistId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "playlist deleted successfully"})
}

// POST /playlists/:playlistId/videos
func (h *PlaylistHandler) AddVideos(c *gin.Context) {
	actorID := c.GetString("user_id")

	var req dto.PlaylistVideosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video ids are required"})
		return
	}

	playlist, err := h.playlists.AddVideos(c.Request.Context(), actorID, c.Param("playlistId"), req.Videos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}

// DELETE /playlists/:playlistId/videos
func (h *PlaylistHandler) RemoveVideos(c *gin.Context) {
	actorID := c.GetString("user_id")

	var req dto.PlaylistVideosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video ids are required"})
		return
	}

	playlist, err := h.playlists.RemoveVideos(c.Request.Context(), actorID, c.Param("playlistId"), req.Videos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}
