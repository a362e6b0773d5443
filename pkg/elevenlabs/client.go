package elevenlabs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// ErrAudioUnavailable is returned when the upstream API does not serve audio
// for the requested conversation. The upstream status is never surfaced to
// API callers.
var ErrAudioUnavailable = errors.New("conversation audio unavailable")

// Client wraps the ElevenLabs conversational API. The API key is attached
// server-side and must never reach frontend clients.
type Client struct {
	http *resty.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("xi-api-key", apiKey),
	}
}

// AudioStream is an open upstream audio response. The caller must close Body.
type AudioStream struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength string
}

// StreamConversationAudio opens the recording of a conversation as an
// unbuffered byte stream for proxying.
func (c *Client) StreamConversationAudio(ctx context.Context, conversationID string) (*AudioStream, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(fmt.Sprintf("/v1/convai/conversations/%s/audio", conversationID))
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		resp.RawBody().Close()
		return nil, fmt.Errorf("%w: upstream status %d", ErrAudioUnavailable, resp.StatusCode())
	}

	return &AudioStream{
		Body:          resp.RawBody(),
		ContentType:   resp.Header().Get("Content-Type"),
		ContentLength: resp.Header().Get("Content-Length"),
	}, nil
}
