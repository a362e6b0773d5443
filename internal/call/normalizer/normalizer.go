package normalizer

import "cityglow-backend/internal/call/domain"

// Result is the outcome of normalizing one webhook event. Record is nil when
// the event is deliberately skipped (ignored type, debug traffic, incomplete
// payload); SkipReason then says why. Skipped events are still acknowledged
// as success to the sender.
type Result struct {
	Record     *domain.CallRecord
	SkipReason string
}

func skip(reason string) Result {
	return Result{SkipReason: reason}
}

// Normalizer maps a platform-specific webhook payload onto the canonical
// call record.
type Normalizer interface {
	Platform() string
	Normalize(payload map[string]any) Result
}

// childMap descends one level into a decoded JSON object. A missing or
// non-object value yields an empty map so optional nested lookups stay safe.
func childMap(m map[string]any, key string) map[string]any {
	if child, ok := m[key].(map[string]any); ok {
		return child
	}
	return map[string]any{}
}

// requireMap is childMap for required envelopes: ok reports presence.
func requireMap(m map[string]any, key string) (map[string]any, bool) {
	child, ok := m[key].(map[string]any)
	return child, ok
}

func requireString(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

func requireNumber(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
