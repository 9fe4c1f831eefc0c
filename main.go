package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"forum-service/internal/auth"
	"forum-service/internal/db"
	"forum-service/internal/feed"
	"forum-service/internal/handlers"
	"forum-service/internal/middleware"
	"forum-service/internal/observability"
	"forum-service/internal/rabbitmq"
	"forum-service/internal/repositories"
	"forum-service/internal/storage"
	"forum-service/internal/telemetry"
	"forum-service/internal/ws"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := db.Connect(ctx)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	shutdownTracing, err := telemetry.SetupTracing(ctx, "forum-service", getEnv("OTLP_ENDPOINT", ""))
	if err != nil {
		log.Fatalf("failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	publisher := rabbitmq.NewPublisher(getEnv("AMQP_URL", ""), getEnv("AMQP_EXCHANGE", "forum_events"))
	defer publisher.Close()
	emitter := telemetry.NewAuditEmitter(publisher, "audit_log.forum", "forum-service", getEnv("ENVIRONMENT", "dev"))

	uploads, err := storage.NewDiskStore(getEnv("UPLOAD_DIR", "uploads"), getEnv("UPLOAD_BASE_URL", "/uploads"))
	if err != nil {
		log.Fatalf("failed to set up upload storage: %v", err)
	}

	userRepo := repositories.NewUserRepo(database)
	sessionRepo := repositories.NewSessionRepo(database)
	postRepo := repositories.NewPostRepo(database)
	commentRepo := repositories.NewCommentRepo(database)
	chatRoomRepo := repositories.NewChatRoomRepo(database)

	authService := auth.NewService(userRepo, sessionRepo)

	broker := feed.NewBroker()
	go func() {
		if err := broker.Watch(ctx, database.Collection("post")); err != nil {
			log.Printf("post change stream ended: %v", err)
		}
	}()

	hub := ws.NewHub()

	authHandler := handlers.NewAuthHandler(authService, emitter)
	postHandler := handlers.NewPostHandler(postRepo, commentRepo, uploads, emitter)
	commentHandler := handlers.NewCommentHandler(commentRepo)
	chatHandler := handlers.NewChatHandler(chatRoomRepo, postRepo)
	shopHandler := handlers.NewShopHandler(postRepo)
	streamHandler := handlers.NewStreamHandler(broker)
	roomWS := ws.NewRoomWebSocketHandler(hub, chatRoomRepo)

	router := gin.Default()

	// middlewares
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("forum-service"))
	router.Use(observability.HTTPMetricsMiddleware())
	router.Use(middleware.SessionMiddleware(authService))

	requireAuth := middleware.RequireAuth()

	router.GET("/", postHandler.Home)
	router.GET("/list", postHandler.List)
	router.GET("/list/:page", postHandler.ListPage)
	router.GET("/detail/:id", postHandler.Detail)
	router.GET("/update/:id", requireAuth, postHandler.UpdateForm)
	router.GET("/write", requireAuth, postHandler.WriteForm)
	router.POST("/add", requireAuth, postHandler.Add)
	router.PUT("/edit/:id", requireAuth, postHandler.Edit)
	router.POST("/delete/:id", requireAuth, postHandler.Delete)
	router.POST("/search", postHandler.Search)

	router.GET("/register", authHandler.RegisterForm)
	router.POST("/register", authHandler.Register)
	router.GET("/login", authHandler.LoginForm)
	router.POST("/login", authHandler.Login)
	router.POST("/logout", requireAuth, authHandler.Logout)
	router.GET("/mypage", requireAuth, authHandler.MyPage)

	router.POST("/comment/:id", requireAuth, commentHandler.Add)

	router.GET("/chat/:id", requireAuth, chatHandler.OpenRoom)
	router.GET("/chatroom", requireAuth, chatHandler.ListRooms)
	router.GET("/ws/chat", requireAuth, roomWS.Handle)

	router.GET("/stream/list", streamHandler.ListStream)

	router.GET("/shop/shirts", shopHandler.Shirts)
	router.GET("/shop/pants", shopHandler.Pants)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	handlers.RegisterDebugRoutes(router, emitter, getEnv("DEBUG_ROUTES", "") == "true")

	port := getEnv("PORT", "8080")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
