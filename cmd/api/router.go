package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cityglow-backend/internal/call/delivery"
)

func SetupRoutes(r *gin.Engine, callHandler *delivery.CallHandler) {
	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	calls := r.Group("/calls")
	{
		// Webhooks (no auth; the platforms sign nothing we verify here)
		calls.POST("/vapi-webhook", callHandler.VapiWebhook)
		calls.POST("/elevenlabs-webhook", callHandler.ElevenLabsWebhook)

		// Query/edit
		calls.GET("/list", callHandler.ListCalls)
		calls.POST("/edit/:id", callHandler.EditCall)

		// Recording proxy
		calls.GET("/stream/:conversation_id", callHandler.StreamAudio)

		// Demo endpoint
		calls.GET("/hello", callHandler.Hello)
		calls.POST("/hello", callHandler.HelloPost)
	}
}
