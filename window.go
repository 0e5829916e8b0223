package nsapi

import (
	"fmt"
	"time"

	"github.com/ryhazerus/nsapi/store"
)

// Window is the bucket size used by the usage ledger.
type Window int

const (
	// PerMinute counts transmissions in one-minute buckets.
	PerMinute Window = iota
	// PerHour counts transmissions in one-hour buckets.
	PerHour
	// PerDay counts transmissions in calendar-day (UTC) buckets.
	PerDay
)

// Duration returns the length of one bucket.
func (w Window) Duration() time.Duration {
	switch w {
	case PerMinute:
		return time.Minute
	case PerHour:
		return time.Hour
	case PerDay:
		return 24 * time.Hour
	default:
		return time.Minute
	}
}

// Bucket returns the ledger bucket containing t.
func (w Window) Bucket(t time.Time) store.Bucket {
	t = t.UTC()
	b := store.Bucket{Span: w.Duration()}
	switch w {
	case PerHour:
		b.Start = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
		b.Key = b.Start.Format("2006-01-02T15")
	case PerDay:
		b.Start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		b.Key = b.Start.Format("2006-01-02")
	default:
		b.Start = t.Truncate(time.Minute)
		b.Key = b.Start.Format("2006-01-02T15:04")
	}
	return b
}

// ParseWindow maps "minute", "hour" or "day" to a Window.
func ParseWindow(s string) (Window, error) {
	switch s {
	case "minute", "":
		return PerMinute, nil
	case "hour":
		return PerHour, nil
	case "day":
		return PerDay, nil
	default:
		return PerMinute, fmt.Errorf("nsapi: unknown usage window %q", s)
	}
}

func (w Window) String() string {
	switch w {
	case PerMinute:
		return "PerMinute"
	case PerHour:
		return "PerHour"
	case PerDay:
		return "PerDay"
	default:
		return fmt.Sprintf("Window(%d)", int(w))
	}
}
