package api

import (
	"github.com/gin-gonic/gin"

	"cityglow-backend/internal/call/delivery"
	"cityglow-backend/internal/call/usecase"
	"cityglow-backend/pkg/config"
	"cityglow-backend/pkg/elevenlabs"
)

type Handler struct {
	callHandler *delivery.CallHandler
	config      *config.Config
}

func NewHandler(callUsecase usecase.CallUsecase, audioClient *elevenlabs.Client, cfg *config.Config) *Handler {
	return &Handler{
		callHandler: delivery.NewCallHandler(callUsecase, audioClient),
		config:      cfg,
	}
}

func (h *Handler) Start(addr string) error {
	if h.config.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestID(), AccessLog(), Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.callHandler)

	return r.Run(addr)
}
