package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/avoronova/taskflow/internal/database"
	"github.com/avoronova/taskflow/internal/handlers"
	"github.com/avoronova/taskflow/internal/mailer"
	"github.com/avoronova/taskflow/internal/services"
	ws "github.com/avoronova/taskflow/internal/websocket"
	"github.com/avoronova/taskflow/internal/worker"
	"github.com/avoronova/taskflow/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *ws.Hub
	Digest     *worker.DailyDigest
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	hub := ws.NewHub()

	pipeline := services.NewMessagePipeline(dbConn, hub)
	notifier := services.NewNotificationService(dbConn, hub)

	digestAt := os.Getenv("DIGEST_AT")
	if digestAt == "" {
		digestAt = "18:30"
	}
	digest := worker.NewDailyDigest(dbConn, mailer.NewSMTPMailerFromEnv(), digestAt)

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb)
	userH := handlers.NewUserHandler(dbConn)
	projectH := handlers.NewProjectHandler(dbConn)
	taskH := handlers.NewTaskHandler(dbConn, notifier)
	messageH := handlers.NewMessageHandler(pipeline)
	notificationH := handlers.NewNotificationHandler(notifier)
	wsH := handlers.NewWebSocketHandler(hub, handlers.NewEventHandler(pipeline))

	router := gin.Default()
	APIEndpoints(router, &Handlers{
		Auth:         authH,
		User:         userH,
		Project:      projectH,
		Task:         taskH,
		Message:      messageH,
		Notification: notificationH,
		WebSocket:    wsH,
	}, jwtMgr, rdb)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
		Digest:     digest,
	}
}

func (s *Server) Run() {
	go s.Hub.Run()
	defer s.Hub.Stop()

	// Дневная сводка живёт как отдельная горутина с собственной отменой
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Digest.Start(ctx)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
