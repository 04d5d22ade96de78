package court

import (
	"fmt"
	"time"
)

// Status represents the published availability of a single listing cell
type Status string

const (
	StatusFree    Status = "free"
	StatusTaken   Status = "taken"
	StatusUnknown Status = "unknown"
)

// Slot is one court/time row as scraped from a listing page. Dates are
// YYYY-MM-DD, times are minutes from midnight. Slots are produced fresh each
// fetch cycle and discarded after reconciliation.
type Slot struct {
	Court  int    `json:"court"`
	Date   string `json:"date"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Status Status `json:"status"`
}

// FreeInterval is a contiguous time range on one court proven free by one or
// more merged slots. Bounds are minutes from midnight.
type FreeInterval struct {
	Court int `json:"court"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// Covers reports whether the interval fully contains the requested window.
// Partial overlap does not count: a booking shorter than the requested
// duration is not useful to the requester.
func (iv FreeInterval) Covers(startHour, endHour int) bool {
	return iv.Start <= startHour*60 && iv.End >= endHour*60
}

// Overlaps reports whether the interval intersects the requested window at all.
func (iv FreeInterval) Overlaps(startHour, endHour int) bool {
	return iv.Start < endHour*60 && iv.End > startHour*60
}

func (iv FreeInterval) String() string {
	return fmt.Sprintf("Court %d: %s - %s", iv.Court, Clock(iv.Start), Clock(iv.End))
}

// Request is the validated, immutable booking request the crawler works on.
// Validation happens at the CLI boundary before the polling loop starts.
type Request struct {
	Date          string // YYYY-MM-DD
	StartHour     int    // inclusive, 8..20
	EndHour       int    // inclusive, 8..20, > StartHour
	ReceiverEmail string
	BookCourt     bool
	Interval      time.Duration
}

// WindowStart returns the start of the requested window in minutes from midnight.
func (r Request) WindowStart() int { return r.StartHour * 60 }

// WindowEnd returns the end of the requested window in minutes from midnight.
func (r Request) WindowEnd() int { return r.EndHour * 60 }

// ParseClock parses a "HH:MM" listing time into minutes from midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parsing clock time %q: %w", s, err)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return h*60 + m, nil
}

// Clock formats minutes from midnight as "HH:MM".
func Clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
