package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"twitter-backend/config"
	"twitter-backend/internal/api/bookmark"
	"twitter-backend/internal/api/conversation"
	"twitter-backend/internal/api/like"
	"twitter-backend/internal/api/search"
	"twitter-backend/internal/api/tweet"
	"twitter-backend/internal/api/user"
	"twitter-backend/internal/middleware"
	mongorepo "twitter-backend/internal/repository/mongo"
	"twitter-backend/internal/service"
	"twitter-backend/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 连接数据库
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(config.AppConfig.MongoURI).
		SetMaxPoolSize(25).
		SetMinPoolSize(5)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		util.Logger.Fatal("连接数据库失败", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	// 测试数据库连接
	if err := client.Ping(ctx, nil); err != nil {
		util.Logger.Fatal("数据库连接测试失败", zap.Error(err))
	}
	util.Logger.Info("数据库连接成功")

	db := client.Database(config.AppConfig.DBName)

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("objectid", util.ValidateObjectID)
	}

	// 初始化存储库、服务和处理器
	tweetRepo := mongorepo.NewTweetRepository(db)
	userRepo := mongorepo.NewUserRepository(db)
	likeRepo := mongorepo.NewLikeRepository(db)
	bookmarkRepo := mongorepo.NewBookmarkRepository(db)
	followRepo := mongorepo.NewFollowRepository(db)
	hashtagRepo := mongorepo.NewHashtagRepository(db)
	conversationRepo := mongorepo.NewConversationRepository(db)

	// 初始化错误监控（后台浏览计数更新的失败也记入这里）
	errorMonitor := middleware.NewErrorMonitor()

	visibilityService := service.NewVisibilityService(userRepo)
	tweetService := service.NewTweetService(tweetRepo, hashtagRepo, followRepo, visibilityService, errorMonitor)
	searchService := service.NewSearchService(tweetRepo, followRepo, errorMonitor)
	engagementService := service.NewEngagementService(likeRepo, bookmarkRepo, followRepo, tweetRepo, userRepo)
	conversationService := service.NewConversationService(conversationRepo, userRepo)

	tweetHandler := tweet.NewTweetHandler(tweetService)
	searchHandler := search.NewSearchHandler(searchService)
	likeHandler := like.NewLikeHandler(engagementService)
	bookmarkHandler := bookmark.NewBookmarkHandler(engagementService)
	followHandler := user.NewFollowHandler(engagementService)
	conversationHandler := conversation.NewConversationHandler(conversationService)

	// 设置 Gin 路由
	r := gin.New()

	// 添加中间件
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// 定义 API 路由
	api := r.Group("/api")
	{
		// 推文相关路由
		api.POST("/tweets", middleware.AuthMiddleware(), middleware.VerifiedUserMiddleware(), tweetHandler.CreateTweet)
		api.GET("/tweets", middleware.AuthMiddleware(), middleware.VerifiedUserMiddleware(), tweetHandler.GetNewsFeeds)
		api.GET("/tweets/:tweet_id", middleware.OptionalAuthMiddleware(), tweetHandler.GetTweet)
		api.GET("/tweets/:tweet_id/children", middleware.OptionalAuthMiddleware(), tweetHandler.GetTweetChildren)

		// 搜索
		api.GET("/search", middleware.OptionalAuthMiddleware(), searchHandler.Search)

		// 点赞和收藏
		api.POST("/likes", middleware.AuthMiddleware(), middleware.VerifiedUserMiddleware(), likeHandler.Like)
		api.DELETE("/likes/tweets/:tweet_id", middleware.AuthMiddleware(), middleware.VerifiedUserMiddleware(), likeHandler.Unlike)
		api.POST("/bookmarks", middleware.AuthMiddleware(), middleware.VerifiedUserMiddleware(), bookmarkHandler.Bookmark)
		api.DELETE("/bookmarks/tweets/:tweet_id", middleware.AuthMiddleware(), middleware.VerifiedUserMiddleware(), bookmarkHandler.Unbookmark)

		// 关注
		api.POST("/users/follow", middleware.AuthMiddleware(), middleware.VerifiedUserMiddleware(), followHandler.Follow)
		api.DELETE("/users/follow/:followed_user_id", middleware.AuthMiddleware(), middleware.VerifiedUserMiddleware(), followHandler.Unfollow)

		// 私信历史
		api.GET("/conversations/receivers/:receiver_id", middleware.AuthMiddleware(), middleware.VerifiedUserMiddleware(), conversationHandler.GetConversations)
	}

	// 创建一个带有超时的 http.Server
	srv := &http.Server{
		Addr:         ":" + config.AppConfig.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动", zap.String("port", config.AppConfig.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}
