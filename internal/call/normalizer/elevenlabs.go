package normalizer

import (
	"fmt"
	"strings"
	"time"

	"cityglow-backend/internal/call/domain"
)

// ElevenLabsNormalizer handles ElevenLabs conversation webhooks. The
// recording URL is synthesized as an internal relay path so the upstream
// API key never has to be shared with the frontend, and calls from
// configured debug numbers are dropped before persistence.
type ElevenLabsNormalizer struct {
	debugNumbers map[string]struct{}
}

func NewElevenLabsNormalizer(debugNumbers []string) *ElevenLabsNormalizer {
	set := make(map[string]struct{}, len(debugNumbers))
	for _, n := range debugNumbers {
		set[n] = struct{}{}
	}
	return &ElevenLabsNormalizer{debugNumbers: set}
}

func (n *ElevenLabsNormalizer) Platform() string {
	return "elevenlabs"
}

func (n *ElevenLabsNormalizer) Normalize(payload map[string]any) Result {
	data, ok := requireMap(payload, "data")
	if !ok {
		return skip("incomplete payload: missing data")
	}

	conversationID, ok := requireString(data, "conversation_id")
	if !ok || conversationID == "" {
		return skip("incomplete payload: missing data.conversation_id")
	}

	rawTranscript, ok := data["transcript"].([]any)
	if !ok {
		return skip("incomplete payload: missing data.transcript")
	}

	analysis, ok := requireMap(data, "analysis")
	if !ok {
		return skip("incomplete payload: missing data.analysis")
	}
	metadata, ok := requireMap(data, "metadata")
	if !ok {
		return skip("incomplete payload: missing data.metadata")
	}

	summary, ok := requireString(analysis, "transcript_summary")
	if !ok {
		return skip("incomplete payload: missing data.analysis.transcript_summary")
	}
	callSuccessful, ok := requireString(analysis, "call_successful")
	if !ok {
		return skip("incomplete payload: missing data.analysis.call_successful")
	}

	collectionResults := childMap(analysis, "data_collection_results")
	nameResult, ok := requireMap(collectionResults, "name")
	if !ok {
		return skip("incomplete payload: missing data.analysis.data_collection_results.name")
	}
	callerName := nameResult["value"]

	startSecs, ok := requireNumber(metadata, "start_time_unix_secs")
	if !ok {
		return skip("incomplete payload: missing data.metadata.start_time_unix_secs")
	}
	durationSecs, ok := requireNumber(metadata, "call_duration_secs")
	if !ok {
		return skip("incomplete payload: missing data.metadata.call_duration_secs")
	}
	terminationReason, ok := requireString(metadata, "termination_reason")
	if !ok {
		return skip("incomplete payload: missing data.metadata.termination_reason")
	}
	cost, ok := requireNumber(metadata, "cost")
	if !ok {
		return skip("incomplete payload: missing data.metadata.cost")
	}

	phoneCall, ok := requireMap(metadata, "phone_call")
	if !ok {
		return skip("incomplete payload: missing data.metadata.phone_call")
	}
	externalNumber, ok := requireString(phoneCall, "external_number")
	if !ok {
		return skip("incomplete payload: missing data.metadata.phone_call.external_number")
	}

	if _, isDebug := n.debugNumbers[externalNumber]; isDebug {
		return skip(fmt.Sprintf("debug number %s, not persisting", externalNumber))
	}

	// Unix timestamps are stored UTC-aware, always.
	startedAt := time.Unix(int64(startSecs), 0).UTC()
	endedAt := startedAt.Add(time.Duration(durationSecs) * time.Second)

	rec, err := domain.NewCallRecord(domain.CallInput{
		Summary:           summary,
		Transcript:        joinTranscript(rawTranscript),
		RecordingURL:      fmt.Sprintf("/calls/stream/%s", conversationID),
		StartedAt:         startedAt,
		EndedAt:           endedAt,
		EndedReason:       terminationReason,
		CallerName:        callerName,
		SuccessEvaluation: callSuccessful,
		Cost:              cost,
		PhoneNumber:       externalNumber,
	})
	if err != nil {
		return skip("invalid report data: " + err.Error())
	}

	return Result{Record: rec}
}

// joinTranscript renders transcript entries as newline-joined "role: message"
// lines, preserving source order.
func joinTranscript(entries []any) string {
	var b strings.Builder
	for _, entry := range entries {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		role, _ := item["role"].(string)
		message, _ := item["message"].(string)
		fmt.Fprintf(&b, "%s: %s\n", role, message)
	}
	return b.String()
}
