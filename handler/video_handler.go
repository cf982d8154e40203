package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/streamhive/video-service/dto"
	"github.com/streamhive/video-service/logger"
	"github.com/streamhive/video-service/service"
)

type VideoHandler struct {
	videos service.VideoService
}

func NewVideoHandler(videos service.VideoService) *VideoHandler {
	return &VideoHandler{videos: videos}
}

// POST /videos
func (h *VideoHandler) Publish(c *gin.Context) {
	ownerID := c.GetString("user_id")

	var req dto.PublishVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(logger.EventValidationFailure, "Invalid publish request", logger.Fields("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid video payload"})
		return
	}

	video, err := h.videos.Publish(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, video)
}

// PATCH /videos/:videoId
func (h *VideoHandler) Update(c *gin.Context) {
	actorID := c.GetString("user_id")
	videoID := c.Param("videoId")

	var req dto.UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid video payload"})
		return
	}

	video, err := h.videos.Update(c.Request.Context(), actorID, videoID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// POST /videos/:videoId/toggle-publish
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	actorID := c.GetString("user_id")
	videoID := c.Param("videoId")

	video, err := h.videos.TogglePublish(c.Request.Context(), actorID, videoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// DELETE /videos/:videoId
func (h *VideoHandler) Delete(c *gin.Context) {
	actorID := c.GetString("user_id")
	videoID := c.Param("videoId")

	result, err := h.videos.Delete(c.Request.Context(), actorID, videoID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "video deleted successfully",
		"removed":          result.Removed,
		"cleanup_failures": result.Failed,
	})
}

// GET /videos/:videoId
func (h *VideoHandler) GetDetail(c *gin.Context) {
	videoID := c.Param("videoId")
	includeRelated := c.Query("include_related") == "true"

	detail, err := h.videos.GetVideoDetail(c.Request.Context(), videoID, includeRelated)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GET /videos
func (h *VideoHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	params := dto.ListVideosParams{
		Page:     page,
		Limit:    limit,
		Query:    c.Query("query"),
		SortBy:   c.Query("sort_by"),
		SortDesc: c.DefaultQuery("sort_dir", "desc") == "desc",
	}

	videos, err := h.videos.ListVideos(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VideoListResponse{
		Data:  videos,
		Count: len(videos),
		Page:  params.Page,
		Limit: params.Limit,
	})
}
