package webserver

import (
	"github.com/gin-gonic/gin"

	"github.com/formgate/formgate/src/gateway/config"
	"github.com/formgate/formgate/src/gateway/intake"
)

func New(cfg config.Config, client *intake.Client) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, client)
	return g
}
