package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/streamhive/video-service/config"
	"github.com/streamhive/video-service/handler"
	"github.com/streamhive/video-service/logger"
	"github.com/streamhive/video-service/metrics"
	"github.com/streamhive/video-service/middleware"
	"github.com/streamhive/video-service/repository"
	"github.com/streamhive/video-service/service"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(logger.Config{
		ServiceName: "video-service",
		Environment: cfg.Environment,
		LogFilePath: cfg.LogFilePath,
		MaxSizeMB:   cfg.LogMaxSizeMB,
		MaxBackups:  cfg.LogMaxBackups,
		MaxAgeDays:  cfg.LogMaxAgeDays,
	})

	logger.Info(logger.EventServiceStartup, "Video service starting", logger.Fields(
		"port", cfg.ServerPort,
		"environment", cfg.Environment,
	))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal(logger.EventDBError, "Failed to connect to MongoDB", logger.Fields("error", err.Error()))
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal(logger.EventDBError, "Failed to ping MongoDB", logger.Fields("error", err.Error()))
	}
	logger.Info(logger.EventDBConnection, "Connected to MongoDB successfully", nil)

	db := client.Database(cfg.MongoDatabase)
	collector := metrics.NewCollector()

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	viewRepo := repository.NewViewRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	premiumRepo := repository.NewPremiumRepository(db)

	cascadeService := service.NewCascadeService(
		videoRepo, commentRepo, likeRepo, tweetRepo, viewRepo,
		subscriptionRepo, playlistRepo, premiumRepo, collector,
	)
	userService := service.NewUserService(userRepo, cascadeService, cfg.JWTSecret, time.Duration(cfg.AccessTokenHours)*time.Hour)
	profileService := service.NewProfileService(userRepo, videoRepo, subscriptionRepo, premiumRepo, collector)
	videoService := service.NewVideoService(videoRepo, userRepo, likeRepo, commentRepo, tweetRepo, viewRepo, cascadeService, collector)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo, userRepo, collector)
	commentService := service.NewCommentService(commentRepo, videoRepo, userRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo)
	tweetService := service.NewTweetService(tweetRepo, videoRepo, userRepo)
	viewService := service.NewViewService(viewRepo, videoRepo, userRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo)
	premiumService := service.NewPremiumService(premiumRepo, userRepo)

	userHandler := handler.NewUserHandler(userService, profileService)
	videoHandler := handler.NewVideoHandler(videoService)
	playlistHandler := handler.NewPlaylistHandler(playlistService)
	engagementHandler := handler.NewEngagementHandler(commentService, likeService, tweetService, viewService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	premiumHandler := handler.NewPremiumHandler(premiumService)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Next()
	})

	generalRateLimiter := middleware.NewRateLimiter(100, 1*time.Minute)
	router.Use(generalRateLimiter.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRateLimiter := middleware.NewRateLimiter(5, 1*time.Minute)
	auth := middleware.AuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api/v1")
	{
		users := api.Group("/users")
		{
			users.POST("/register", authRateLimiter.Middleware(), userHandler.Register)
			users.POST("/login", authRateLimiter.Middleware(), userHandler.Login)

			users.GET("/me", auth, userHandler.Me)
			users.PUT("/me", auth, userHandler.UpdateProfile)
			users.GET("/me/subscriptions", auth, subscriptionHandler.ListSubscriptions)
			users.GET("/:userId/profile", auth, userHandler.GetProfile)
			users.DELETE("/:userId", auth, userHandler.Delete)
			users.GET("", auth, middleware.AdminOnly(), userHandler.List)
		}

		videos := api.Group("/videos")
		{
			videos.GET("", videoHandler.List)
			videos.GET("/:videoId", videoHandler.GetDetail)

			videos.POST("", auth, videoHandler.Publish)
			videos.PATCH("/:videoId", auth, videoHandler.Update)
			videos.POST("/:videoId/toggle-publish", auth, videoHandler.TogglePublish)
			videos.DELETE("/:videoId", auth, videoHandler.Delete)

			videos.GET("/:videoId/comments", engagementHandler.ListVideoComments)
			videos.GET("/:videoId/tweets", engagementHandler.ListVideoTweets)
			videos.GET("/:videoId/views", engagementHandler.ListVideoViews)
			videos.GET("/:videoId/views/me", auth, engagementHandler.HasViewed)
			videos.POST("/:videoId/likes", auth, engagementHandler.Like)
			videos.DELETE("/:videoId/likes", auth, engagementHandler.Unlike)
			videos.GET("/:videoId/likes/me", auth, engagementHandler.IsLiked)
		}

		comments := api.Group("/comments", auth)
		{
			comments.POST("", engagementHandler.CreateComment)
			comments.PATCH("/:commentId", engagementHandler.UpdateComment)
			comments.DELETE("/:commentId", engagementHandler.DeleteComment)
		}

		tweets := api.Group("/tweets", auth)
		{
			tweets.POST("", engagementHandler.CreateTweet)
			tweets.PATCH("/:tweetId", engagementHandler.UpdateTweet)
			tweets.DELETE("/:tweetId", engagementHandler.DeleteTweet)
		}

		api.PUT("/views", auth, engagementHandler.RecordView)

		channels := api.Group("/channels", auth)
		{
			channels.POST("/:channelId/subscribe", subscriptionHandler.Subscribe)
			channels.DELETE("/:channelId/subscribe", subscriptionHandler.Unsubscribe)
			channels.GET("/:channelId/subscribe/me", subscriptionHandler.IsSubscribed)
			channels.GET("/:channelId/subscribers", subscriptionHandler.ListSubscribers)
		}

		playlists := api.Group("/playlists", auth)
		{
			playlists.POST("", playlistHandler.Create)
			playlists.GET("/:playlistId", playlistHandler.Get)
			playlists.DELETE("/:playlistId", playlistHandler.Delete)
			playlists.POST("/:playlistId/videos", playlistHandler.AddVideos)
			playlists.DELETE("/:playlistId/videos", playlistHandler.RemoveVideos)
		}

		premium := api.Group("/premium", auth)
		{
			premium.POST("", premiumHandler.Purchase)
			premium.GET("/status", premiumHandler.Status)
			premium.DELETE("/:premiumId", premiumHandler.Cancel)
		}
	}

	logger.Info(logger.EventServiceStartup, "Server starting", logger.Fields("port", cfg.ServerPort))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal(logger.EventGeneral, "Failed to start server", logger.Fields("error", err.Error()))
	}
}
