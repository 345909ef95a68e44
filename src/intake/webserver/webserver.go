package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/formgate/formgate/src/intake/store"
	"github.com/formgate/formgate/src/shared/form"
)

func New(st store.Store, rdb *redis.Client) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())

	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	subH := NewSubmissions(st, rdb, form.Contact())

	v1 := g.Group("/v1")
	{
		v1.POST("/submissions", subH.Create)
		v1.GET("/submissions/:id", subH.Get)
		v1.GET("/submissions", subH.List)
	}

	return g
}
