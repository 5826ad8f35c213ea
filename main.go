package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/driftroom/backend/config"
	"github.com/driftroom/backend/controllers"
	"github.com/driftroom/backend/database"
	"github.com/driftroom/backend/docs"
	"github.com/driftroom/backend/jobs"
	"github.com/driftroom/backend/storage"
	"github.com/driftroom/backend/websocket"
)

// @title           Driftroom API
// @version         1.0
// @description     API Server for ephemeral file-sharing rooms
// @host            localhost:8080
// @BasePath        /
// @schemes         http
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	database.Connect(cfg.Postgres)
	database.Migrate()

	// Initialize object storage
	store, err := storage.NewDiskStore(cfg.Storage.BaseDir, cfg.Storage.URLSecret)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	controllers.InitStorage(store)

	// Start the background expiry sweep
	sweeper := jobs.NewSweeper(cfg.SweepInterval)
	sweeper.Start()

	// Set up Swagger info
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	// Set up router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		// Room routes
		api.POST("/rooms", controllers.CreateRoom)
		api.GET("/rooms/:id", controllers.GetRoom)
		api.POST("/rooms/:id/validate-password", controllers.ValidateRoomPassword)
		api.GET("/rooms/:id/files", controllers.GetFilesByRoom)
		api.GET("/rooms/:id/messages", controllers.GetMessagesByRoom)

		// File routes
		api.POST("/files", controllers.CreateFile)
		api.POST("/files/upload", controllers.UploadFile)
		api.GET("/files/:id", controllers.GetFile)
		api.POST("/files/:id/url", controllers.GetFileURL)
		api.GET("/download/:path", controllers.DownloadFile)

		// Message routes
		api.POST("/messages", controllers.CreateMessage)

		// Cleanup route, for external schedulers
		api.POST("/cleanup", controllers.TriggerCleanup)
	}

	// WebSocket route
	router.GET("/ws", websocket.HandleConnection)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	sweeper.Stop()
}
