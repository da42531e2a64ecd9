package domain

import (
	"strconv"
	"strings"
	"time"
)

// PermanentExpiry is the far-future sentinel stored for transfer keys created
// with the "permanent" descriptor.
var PermanentExpiry = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// DefaultKeyLifetime is the fallback lifetime applied when an expiry
// descriptor cannot be parsed.
const DefaultKeyLifetime = 24 * time.Hour

// ParseExpiry translates a relative expiry descriptor into an absolute expiry
// anchored at now. Supported forms are "<n><unit>" with unit one of
// m (minutes), h (hours), d (days), w (weeks), mo (months), plus the literal
// "permanent". Anything unrecognized falls back to one day.
func ParseExpiry(descriptor string, now time.Time) time.Time {
	trimmed := strings.ToLower(strings.TrimSpace(descriptor))
	if trimmed == "permanent" {
		return PermanentExpiry
	}

	split := len(trimmed)
	for i, r := range trimmed {
		if r < '0' || r > '9' {
			split = i
			break
		}
	}

	magnitude, err := strconv.Atoi(trimmed[:split])
	if err != nil || magnitude <= 0 {
		return now.Add(DefaultKeyLifetime)
	}

	switch trimmed[split:] {
	case "m", "min":
		return now.Add(time.Duration(magnitude) * time.Minute)
	case "h":
		return now.Add(time.Duration(magnitude) * time.Hour)
	case "d":
		return now.AddDate(0, 0, magnitude)
	case "w":
		return now.AddDate(0, 0, 7*magnitude)
	case "mo":
		return now.AddDate(0, magnitude, 0)
	default:
		return now.Add(DefaultKeyLifetime)
	}
}
