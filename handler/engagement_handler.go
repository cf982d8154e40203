package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhive/video-service/dto"
	"github.com/streamhive/video-service/service"
)

// EngagementHandler groups the thin comment/like/tweet/view endpoints.
type EngagementHandler struct {
	comments service.CommentService
	likes    service.LikeService
	tweets   service.TweetService
	views    service.ViewService
}

func NewEngagementHandler(
	comments service.CommentService,
	likes service.LikeService,
	tweets service.TweetService,
	views service.ViewService,
) *EngagementHandler {
	return &EngagementHandler{comments: comments, likes: likes, tweets: tweets, views: views}
}

// POST /comments
func (h *EngagementHandler) CreateComment(c *gin.Context) {
	ownerID := c.GetString("user_id")

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video_id and content are required"})
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), ownerID, req.VideoID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// PATCH /comments/:commentId
func (h *EngagementHandler) UpdateComment(c *gin.Context) {
	actorID := c.GetString("user_id")

	var req dto.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), actorID, c.Param("commentId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DELETE /comments/:commentId
func (h *EngagementHandler) DeleteComment(c *gin.Context) {
	actorID := c.GetString("user_id")

	if err := h.comments.Delete(c.Request.Context(), actorID, c.Param("commentId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted successfully"})
}

// GET /videos/:videoId/comments
func (h *EngagementHandler) ListVideoComments(c *gin.Context) {
	comments, err := h.comments.ListByVideo(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": comments, "count": len(comments)})
}

// POST /videos/:videoId/likes
func (h *EngagementHandler) Like(c *gin.Context) {
	userID := c.GetString("user_id")

	like, err := h.likes.Like(c.Request.Context(), userID, c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, like)
}

// DELETE /videos/:videoId/likes
func (h *EngagementHandler) Unlike(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.likes.Unlike(c.Request.Context(), userID, c.Param("videoId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "like removed successfully"})
}

// GET /videos/:videoId/likes/me
func (h *EngagementHandler) IsLiked(c *gin.Context) {
	userID := c.GetString("user_id")

	liked, err := h.likes.IsLiked(c.Request.Context(), userID, c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// POST /tweets
func (h *EngagementHandler) CreateTweet(c *gin.Context) {
	ownerID := c.GetString("user_id")

	var req dto.CreateTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video_id and content are required"})
		return
	}

	tweet, err := h.tweets.Create(c.Request.Context(), ownerID, req.VideoID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tweet)
}

// PATCH /tweets/:tweetId
func (h *EngagementHandler) UpdateTweet(c *gin.Context) {
	actorID := c.GetString("user_id")

	var req dto.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	tweet, err := h.tweets.Update(c.Request.Context(), actorID, c.Param("tweetId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tweet)
}

// DELETE /tweets/:tweetId
func (h *EngagementHandler) DeleteTweet(c *gin.Context) {
	actorID := c.GetString("user_id")

	if err := h.tweets.Delete(c.Request.Context(), actorID, c.Param("tweetId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tweet deleted successfully"})
}

// GET /videos/:videoId/tweets
func (h *EngagementHandler) ListVideoTweets(c *gin.Context) {
	tweets, err := h.tweets.ListByVideo(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tweets, "count": len(tweets)})
}

// PUT /views
func (h *EngagementHandler) RecordView(c *gin.Context) {
	viewerID := c.GetString("user_id")

	var req dto.UpdateViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video_id and watch_duration are required"})
		return
	}

	view, err := h.views.RecordView(c.Request.Context(), viewerID, req.VideoID, req.WatchDuration)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /videos/:videoId/views/me
func (h *EngagementHandler) HasViewed(c *gin.Context) {
	viewerID := c.GetString("user_id")

	viewed, err := h.views.HasViewed(c.Request.Context(), viewerID, c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"viewed": viewed})
}

// GET /videos/:videoId/views
func (h *EngagementHandler) ListVideoViews(c *gin.Context) {
	views, err := h.views.ListByVideo(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": views, "count": len(views)})
}
