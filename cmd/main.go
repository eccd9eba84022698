package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"robolibrary/config"
	"robolibrary/jobs"
	"robolibrary/routes"
	"robolibrary/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	utils.InitLogger()

	if err := godotenv.Load(); err != nil {
		utils.LogWarning("No .env file found, using system environment variables")
	}

	config.LoadConfig()
	cfg := config.AppConfig

	ctx, cancel := config.CreateContext(10 * time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		disconnectCtx, disconnectCancel := config.CreateContext(5 * time.Second)
		defer disconnectCancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			utils.LogError("Failed to disconnect MongoDB", err)
		}
	}()

	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	utils.LogInfo("Connected to MongoDB successfully")

	container, err := routes.NewServiceContainer(
		mongoClient.Database(cfg.DatabaseName),
		cfg.JWTSecret,
		cfg.MaxFileSize,
		routes.B2Config{
			KeyID:          cfg.B2ApplicationKeyID,
			ApplicationKey: cfg.B2ApplicationKey,
			BucketName:     cfg.B2BucketName,
		},
	)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	router := gin.Default()
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	api := router.Group("/api")
	routes.SetupRoutes(api, container)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})

	if cfg.OrphanSweepInterval > 0 {
		sweeper := jobs.NewOrphanSweeper(container.FolderStore, container.ContentStore)
		go sweeper.Start(context.Background(), cfg.OrphanSweepInterval)
	}

	utils.LogInfo("Starting library server on port " + cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestOrigin := c.Request.Header.Get("Origin")

		allowOrigin := ""
		if len(allowedOrigins) == 0 {
			allowOrigin = "*"
		} else {
			for _, allowed := range allowedOrigins {
				if allowed == "*" || allowed == requestOrigin {
					allowOrigin = allowed
					break
				}
			}
			if allowOrigin == "" && requestOrigin == "" {
				allowOrigin = allowedOrigins[0]
			}
		}

		if allowOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
