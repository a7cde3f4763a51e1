// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mawad/internal/http/handlers"
	"mawad/internal/http/middleware"
	"mawad/internal/modules/agent"
	"mawad/internal/modules/chat"
	"mawad/internal/modules/location"
)

type RouterDeps struct {
	Agents    *agent.Service
	Locations *location.Service
	Chat      *chat.Service
	JWTSecret []byte
	// ChatLimiter may be nil to disable rate limiting.
	ChatLimiter middleware.Limiter
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging(), middleware.CORS(), middleware.SecurityHeaders())

	authHandler := handlers.NewAuthHandler(deps.Agents)
	chatHandler := handlers.NewChatHandler(deps.Chat, deps.Agents, deps.Locations)
	agentHandler := handlers.NewAgentHandler(deps.Agents)
	locationHandler := handlers.NewLocationHandler(deps.Locations)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.POST("/login", authHandler.Login)
	r.GET("/locations", locationHandler.ListAll)

	auth := r.Group("/", middleware.Auth(deps.JWTSecret))
	auth.POST("/chat", middleware.RateLimit(deps.ChatLimiter), chatHandler.Turn)
	auth.GET("/user-locations", locationHandler.ListMine)

	admin := auth.Group("/admin", middleware.RequireAdmin())
	admin.GET("/users", agentHandler.List)
	admin.POST("/users", agentHandler.Create)
	admin.PUT("/users/:id", agentHandler.Update)
	admin.DELETE("/users/:id", agentHandler.Delete)

	admin.POST("/locations", locationHandler.Create)
	admin.DELETE("/locations/:id", locationHandler.Delete)

	admin.GET("/users/:id/locations", locationHandler.ListForAgent)
	admin.PUT("/users/:id/locations", locationHandler.SetForAgent)
	admin.POST("/users/:id/locations/:locationID", locationHandler.AddToAgent)
	admin.DELETE("/users/:id/locations/:locationID", locationHandler.RemoveFromAgent)

	return r
}
