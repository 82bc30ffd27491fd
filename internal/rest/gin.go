package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solana-withdraw-alerts/internal/config"
)

// NewServer builds the gin engine and its http.Server. Routes beyond
// the health check are registered by controllers.
func NewServer(cfg config.Config) (*gin.Engine, *http.Server) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "withdraw-alerts"})
	})
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}
	return r, srv
}
