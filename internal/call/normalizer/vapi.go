package normalizer

import (
	"fmt"

	"cityglow-backend/internal/call/domain"
)

const vapiEndOfCallReport = "end-of-call-report"

// VapiNormalizer handles Vapi webhook events. Only end-of-call reports
// produce a record; every other event type is acknowledged and ignored.
type VapiNormalizer struct{}

func NewVapiNormalizer() *VapiNormalizer {
	return &VapiNormalizer{}
}

func (n *VapiNormalizer) Platform() string {
	return "vapi"
}

func (n *VapiNormalizer) Normalize(payload map[string]any) Result {
	message := childMap(payload, "message")

	eventType, _ := message["type"].(string)
	if eventType != vapiEndOfCallReport {
		return skip(fmt.Sprintf("ignored webhook type %q", eventType))
	}

	analysis := childMap(message, "analysis")
	structuredData := childMap(analysis, "structuredData")

	rec, err := domain.NewCallRecord(domain.CallInput{
		Summary:           message["summary"],
		Transcript:        message["transcript"],
		RecordingURL:      message["recordingUrl"],
		StartedAt:         message["startedAt"],
		EndedAt:           message["endedAt"],
		EndedReason:       message["endedReason"],
		CallerName:        structuredData["name"],
		SuccessEvaluation: analysis["successEvaluation"],
		Cost:              message["cost"],
	})
	if err != nil {
		return skip("invalid report data: " + err.Error())
	}

	return Result{Record: rec}
}
