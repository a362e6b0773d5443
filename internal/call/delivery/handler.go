package delivery

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cityglow-backend/internal/call/dto"
	"cityglow-backend/internal/call/repository"
	"cityglow-backend/internal/call/usecase"
	"cityglow-backend/pkg/elevenlabs"
	"cityglow-backend/pkg/logger"
)

type CallHandler struct {
	callUsecase usecase.CallUsecase
	audioClient *elevenlabs.Client
}

// NewCallHandler builds the HTTP handler set. audioClient may be nil when
// no ElevenLabs API key is configured (degraded mode).
func NewCallHandler(callUsecase usecase.CallUsecase, audioClient *elevenlabs.Client) *CallHandler {
	return &CallHandler{
		callUsecase: callUsecase,
		audioClient: audioClient,
	}
}

// VapiWebhook receives Vapi events. Ignored event types still get a 200 so
// the platform stops redelivering them.
func (h *CallHandler) VapiWebhook(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON", "details": err.Error()})
		return
	}

	if _, err := h.callUsecase.IngestVapi(c.Request.Context(), payload); err != nil {
		logger.Error("Vapi webhook processing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ElevenLabsWebhook receives ElevenLabs conversation events. Unparseable or
// debug-number events are acknowledged with 200 and no record.
func (h *CallHandler) ElevenLabsWebhook(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON", "details": err.Error()})
		return
	}

	if _, err := h.callUsecase.IngestElevenLabs(c.Request.Context(), payload); err != nil {
		logger.Error("ElevenLabs webhook processing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListCalls returns every stored call with its document id.
func (h *CallHandler) ListCalls(c *gin.Context) {
	calls, err := h.callUsecase.ListCalls(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, calls)
}

// EditCall updates the did_respond flag for one call. An absent flag in the
// body is a no-op, not an error.
func (h *CallHandler) EditCall(c *gin.Context) {
	id := c.Param("id")

	var req dto.CallEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON", "details": err.Error()})
		return
	}

	if req.DidRespond == nil {
		c.JSON(http.StatusOK, gin.H{"message": "No updates provided"})
		return
	}

	if err := h.callUsecase.SetDidRespond(c.Request.Context(), id, *req.DidRespond); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Call not found", "details": fmt.Sprintf("no call with id %s", id)})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "did_respond": *req.DidRespond})
}

// StreamAudio proxies a conversation recording from ElevenLabs to the caller
// without buffering it and without exposing the upstream credential.
func (h *CallHandler) StreamAudio(c *gin.Context) {
	conversationID := c.Param("conversation_id")

	if h.audioClient == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio streaming not configured"})
		return
	}

	stream, err := h.audioClient.StreamConversationAudio(c.Request.Context(), conversationID)
	if err != nil {
		logger.Error("Audio stream unavailable",
			zap.String("conversation_id", conversationID),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Audio not available for conversation %s", conversationID)})
		return
	}
	defer stream.Body.Close()

	contentType := stream.ContentType
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	c.Header("Content-Type", contentType)
	if stream.ContentLength != "" {
		c.Header("Content-Length", stream.ContentLength)
	}
	c.Header("Accept-Ranges", "bytes")
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, stream.Body); err != nil {
		// Headers are gone by now; nothing left to do but log.
		logger.Warn("Audio stream interrupted",
			zap.String("conversation_id", conversationID),
			zap.Error(err))
	}
}

// Hello is the demo endpoint.
func (h *CallHandler) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, helloResponse(c.Query("name")))
}

// HelloPost is the demo endpoint with the name taken from the JSON body.
func (h *CallHandler) HelloPost(c *gin.Context) {
	var req dto.HelloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, helloResponse(req.Name))
}

func helloResponse(name string) dto.HelloResponse {
	greeting := "Hello World!"
	if name != "" {
		greeting = fmt.Sprintf("Hello %s!", name)
	}
	return dto.HelloResponse{
		Message: fmt.Sprintf("%s Welcome to CityGlow Calls API", greeting),
		Service: "calls",
		Version: "1.0.0",
		Status:  "active",
	}
}
