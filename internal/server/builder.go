package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mitrajit-55/password-manager/internal/config"
	mw "github.com/mitrajit-55/password-manager/internal/middleware"
	"github.com/mitrajit-55/password-manager/internal/vault"
)

// Build constructs the Gin engine serving the record CRUD surface.
func Build(cfg *config.Config, store vault.Store) *gin.Engine {
	if cfg != nil && !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(mw.Recovery())
	engine.Use(mw.RequestID())
	engine.Use(mw.RequestLogger())
	engine.Use(mw.CORS())
	if cfg != nil {
		engine.Use(mw.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	h := NewHandler(store)
	engine.GET("/", h.ListPasswords)
	engine.POST("/", h.CreatePassword)
	engine.PUT("/", h.UpdatePassword)
	engine.DELETE("/", h.DeletePassword)

	engine.GET("/healthz", func(c *gin.Context) {
		if err := store.Health(c.Request.Context()); err != nil {
			c.String(http.StatusServiceUnavailable, "storage unavailable")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	return engine
}
