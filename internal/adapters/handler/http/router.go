package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/comitanigiacomo/kyool-companion/docs"
	"github.com/comitanigiacomo/kyool-companion/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kyool-companion/internal/adapters/identity"
)

type RouterDependencies struct {
	StreakHandler       *StreakHandler
	WaterHandler        *WaterHandler
	GoalHandler         *GoalHandler
	NotificationHandler *NotificationHandler
	BodyFatHandler      *BodyFatHandler
	SocialHandler       *SocialHandler
	WaitlistHandler     *WaitlistHandler
	EventsHandler       *EventsHandler

	Identity     *identity.Reader
	DefaultToken string

	Redis           *redis.Client
	RateLimit       int
	RateLimitWindow time.Duration

	StartTime time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"POST", "GET", "OPTIONS", "PUT", "PATCH", "DELETE"},
		AllowHeaders:    []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	if deps.RateLimit > 0 {
		window := deps.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		if deps.Redis != nil {
			router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, window))
		} else {
			router.Use(middleware.InMemoryRateLimiter(deps.RateLimit, window))
		}
	}

	router.GET("/health", func(c *gin.Context) {
		redisStatus := "disabled"
		statusCode := http.StatusOK
		if deps.Redis != nil {
			redisStatus = "connected"
			if deps.Redis.Ping(c.Request.Context()).Err() != nil {
				redisStatus = "unreachable"
				statusCode = http.StatusServiceUnavailable
			}
		}

		c.JSON(statusCode, gin.H{
			"status": "ok",
			"redis":  redisStatus,
			"uptime": time.Since(deps.StartTime).String(),
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	reader := deps.Identity
	if reader == nil {
		reader = identity.NewReader()
	}

	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.SessionMiddleware(reader, deps.DefaultToken))

	// Answer signed-out callers with zero values or device-local data.
	deps.StreakHandler.RegisterRoutes(apiV1)
	deps.WaterHandler.RegisterRoutes(apiV1)
	deps.GoalHandler.RegisterRoutes(apiV1)
	deps.NotificationHandler.RegisterRoutes(apiV1)
	deps.WaitlistHandler.RegisterRoutes(apiV1)
	deps.EventsHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("")
	protected.Use(middleware.RequireUser())
	{
		deps.BodyFatHandler.RegisterRoutes(protected)
		deps.SocialHandler.RegisterRoutes(protected)
	}

	return router
}
