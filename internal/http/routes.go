package http

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"echochamber/internal/store"
	"echochamber/internal/ws"
)

// SetupRoutes configures all application routes and middleware.
func SetupRoutes(router *gin.Engine, st store.Store, hub *ws.Hub) {

	// --- Dependencies ---
	env := &Env{Store: st, Hub: hub, Sessions: NewSessionManager()}

	// --- Middleware ---

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	// CORS Middleware
	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "*" // Default to allow all for local dev
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Token", "X-Session-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// --- Rate Limiter Setup ---
	limiter := NewIPRateLimiter(rate.Limit(rateLimitRPS), rateLimitBurst)
	go func() {
		for {
			time.Sleep(10 * time.Minute)
			limiter.mu.Lock()
			for ip, v := range limiter.visitors {
				if v.Allow() {
					// Bucket has refilled, so the visitor is idle; drop it.
					delete(limiter.visitors, ip)
				}
			}
			limiter.mu.Unlock()
		}
	}()

	// --- API Routes ---

	api := router.Group("/api")
	{
		api.GET("/game-state", env.GetGameState)
		api.POST("/game-state", AdminAuthMiddleware(), env.PostGameState)
		api.GET("/posts", env.GetPosts)
		api.POST("/action", RateLimitMiddleware(limiter), env.PostAction)
		api.POST("/reset", env.PostReset)
		api.GET("/leaderboard", env.GetLeaderboard)

		api.POST("/posts/create", AdminAuthMiddleware(), env.CreatePost)
		api.POST("/posts/update", AdminAuthMiddleware(), env.UpdatePost)
		api.POST("/posts/delete", AdminAuthMiddleware(), env.DeletePost)

		api.POST("/auth/register", RateLimitMiddleware(limiter), env.Register)
		api.POST("/auth/login", RateLimitMiddleware(limiter), env.Login)
		api.GET("/auth/check", env.AuthCheck)
	}

	// --- WebSocket Route ---

	router.GET("/ws", func(c *gin.Context) {
		ws.ServeWs(hub, c.Writer, c.Request)
	})
}
