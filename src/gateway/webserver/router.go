package webserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/formgate/formgate/src/gateway/config"
	"github.com/formgate/formgate/src/gateway/intake"
	"github.com/formgate/formgate/src/shared/form"
)

func attachRoutes(r *gin.Engine, cfg config.Config, client *intake.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{"POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
	}))
	r.Use(RequestID())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	submitH := NewSubmit(client, form.Contact())
	limiter := NewRateLimiter(cfg.RateLimit, cfg.RateWindow)

	api := r.Group("/api")
	api.Use(RateLimitMiddleware(limiter))
	{
		api.POST("/submit-form", submitH.Create)
	}
}

// RequestID tags every request so gateway and intake log lines can be
// correlated. An inbound X-Request-ID is kept if the client set one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
