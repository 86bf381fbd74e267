package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pronet/config"
	"pronet/controllers"
	"pronet/middleware"
	"pronet/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Static("/uploads", "./"+cfg.UploadDir)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)
	businessController := controllers.NewBusinessController(db)
	communityController := controllers.NewCommunityController(db)
	postController := controllers.NewPostController(db)
	commentController := controllers.NewCommentController(db)
	likeController := controllers.NewLikeController(db)
	followerController := controllers.NewFollowerController(db)
	jobController := controllers.NewJobController(db)
	shareController := controllers.NewShareController(db)
	badgeController := controllers.NewBadgeController(db)
	statsController := controllers.NewStatsController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.GET("/google/login", authController.GoogleLogin)
	authGroup.GET("/google/callback", authController.GoogleCallback)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	users := api.Group("/user")
	users.POST("/create", middleware.RateLimitMiddleware(), userController.CreateUser)
	users.POST("/login", middleware.RateLimitMiddleware(), userController.Login)
	users.GET("", userController.ListUsers)
	users.GET("/:id", userController.GetUser)
	users.GET("/by-username/:username", userController.GetUserByUsername)
	users.GET("/lookup", userController.LookupUser)
	users.PUT("/update/:id", middleware.AuthRequired(), userController.UpdateUser)
	users.DELETE("/delete/:id", middleware.AuthRequired(), userController.DeleteUser)

	business := api.Group("/business")
	business.POST("/register", middleware.RateLimitMiddleware(), businessController.Register)
	business.POST("/login", middleware.RateLimitMiddleware(), businessController.Login)
	business.GET("", businessController.ListBusinesses)
	business.GET("/:id", businessController.GetBusiness)
	business.PUT("/update/:id", middleware.AuthRequired(), businessController.UpdateBusiness)

	community := api.Group("/community")
	community.POST("/create", communityController.CreateCommunity)
	community.GET("", communityController.ListCommunities)
	community.GET("/:id", communityController.GetCommunity)
	community.PUT("/update/:id", communityController.UpdateCommunity)
	community.DELETE("/delete/:id", communityController.DeleteCommunity)
	community.POST("/:id/join", middleware.AuthRequired(), communityController.JoinCommunity)
	community.POST("/:id/leave", middleware.AuthRequired(), communityController.LeaveCommunity)
	community.GET("/:id/members", communityController.ListMembers)
	community.PUT("/:id/members/role", communityController.UpdateMemberRole)

	post := api.Group("/post")
	post.POST("/create", postController.CreatePost)
	post.GET("", postController.ListPosts)
	post.GET("/tags", postController.ListTags)
	post.GET("/:id", postController.GetPost)
	post.PUT("/update/:id", postController.UpdatePost)
	post.DELETE("/delete/:id", postController.DeletePost)
	post.GET("/by_interest/:user_id", postController.InterestFeed)
	post.GET("/author/:author_id", postController.ListByAuthor)
	post.POST("/upload", middleware.AuthRequired(), postController.UploadMedia)

	comment := api.Group("/comment")
	comment.POST("/create", commentController.CreateComment)
	comment.GET("/post/:post_id", commentController.ListByPost)
	comment.PUT("/update/:id", commentController.UpdateComment)
	comment.DELETE("/delete/:id", commentController.DeleteComment)
	comment.POST("/like", commentController.ToggleLike)

	like := api.Group("/post_like")
	like.POST("/toggle", likeController.ToggleLike)
	like.GET("/list/:post_id", likeController.ListLikers)
	like.GET("/count/:post_id", likeController.LikeCount)
	like.GET("/liked-posts", likeController.LikedPosts)

	follower := api.Group("/follower")
	follower.POST("/toggle", followerController.ToggleFollow)
	follower.GET("/status/:follower_id/:followed_id", followerController.FollowStatus)
	follower.GET("/count/:id", followerController.FollowerCount)
	follower.GET("/following/count/:id", followerController.FollowingCount)
	follower.GET("/followers/list/:id", followerController.ListFollowers)
	follower.GET("/following/list/:id", followerController.ListFollowing)

	job := api.Group("/job")
	job.POST("/create", jobController.CreateListing)
	job.GET("", jobController.ListJobs)
	job.GET("/:id", jobController.GetJob)
	job.PUT("/update/:id", jobController.UpdateListing)
	job.POST("/:id/apply", jobController.Apply)
	job.GET("/:id/applications", jobController.ListApplications)
	job.PUT("/application/:application_id/status", jobController.UpdateApplicationStatus)
	job.GET("/applications/user/:user_id", jobController.MyApplications)

	share := api.Group("/share_post")
	share.POST("/create", shareController.SharePost)
	share.GET("/received/:user_id", shareController.ReceivedShares)

	badge := api.Group("/badge")
	badge.POST("/create", badgeController.CreateBadge)
	badge.GET("", badgeController.ListBadges)
	badge.POST("/award", badgeController.AwardBadge)
	badge.GET("/user/:user_id", badgeController.UserBadges)

	api.GET("/stats", statsController.GetStats)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
