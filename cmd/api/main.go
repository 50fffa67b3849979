package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"TikTokBioVerifier/internal/handler"
	"TikTokBioVerifier/internal/middleware"
	"TikTokBioVerifier/internal/tiktok"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

func newRouter() *gin.Engine {
	router := gin.Default()
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = append(config.AllowHeaders, "X-API-Key")
	router.Use(cors.New(config))

	verifyHandler := handler.NewVerifyHandler(tiktok.NewFetcher(nil))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// One verification costs up to three upstream fetches, so keep each
	// client IP well below that rate.
	limiter := limit.NewRateLimiter(func(c *gin.Context) string {
		return c.ClientIP()
	}, func(c *gin.Context) (*rate.Limiter, time.Duration) {
		return rate.NewLimiter(rate.Every(2*time.Second), 5), time.Hour
	}, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
	})

	apiKey := middleware.APIKeyMiddleware()

	api := router.Group("/api").Use(apiKey, limiter)
	{
		api.POST("/verify", verifyHandler.Verify)
		api.POST("/receipt/check", verifyHandler.CheckReceipt)
	}

	// The stream performs the same upstream fetches, so it sits behind
	// the same gate and limiter as the POST endpoint.
	router.GET("/ws/verify", apiKey, limiter, verifyHandler.VerifyStream)

	return router
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	router := newRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(router.Run(":" + port))
}
