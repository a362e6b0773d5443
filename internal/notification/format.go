package notification

import (
	"fmt"
	"strings"
	"time"
)

// FormatPhone renders a US number as (XXX) XXX-XXXX. Ten digits qualify, as
// do eleven digits with a leading 1 (stripped before formatting); anything
// else is returned verbatim.
func FormatPhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	if len(d) == 11 && d[0] == '1' {
		d = d[1:]
	}
	if len(d) != 10 {
		return raw
	}
	return fmt.Sprintf("(%s) %s-%s", d[:3], d[3:6], d[6:])
}

// FormatDuration renders ended-started as "{m}m {s}s", or "{s}s" when under
// a minute, or "Unknown" when either timestamp is absent. Inverted
// timestamps clamp to 0s rather than rendering negative components.
func FormatDuration(started, ended *time.Time) string {
	if started == nil || ended == nil {
		return "Unknown"
	}

	d := ended.Sub(*started)
	if d < 0 {
		d = 0
	}

	total := int(d.Seconds())
	minutes := total / 60
	seconds := total % 60
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
