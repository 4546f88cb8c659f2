package timing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultLead applies when the configured lead time is absent or
// unparseable.
const DefaultLead = 12 * time.Hour

// prefillSlack is added on top of the minimum when suggesting a
// default receipt time, so the prefill is never already on the
// rejection boundary.
const prefillSlack = 30 * time.Minute

// LeadTimeViolationError rejects a receipt date-time that is not
// strictly after now + lead time. It carries the configured hour count
// so callers can render a precise message.
type LeadTimeViolationError struct {
	LeadHours  int
	ReceivedAt time.Time
}

func (e *LeadTimeViolationError) Error() string {
	return fmt.Sprintf("Thời gian nhập hàng phải cách thời điểm hiện tại ít nhất %d giờ", e.LeadHours)
}

// Gate validates receipt date-times against the configured minimum
// lead time. The same Gate value feeds both the prefill and the
// validation so they cannot disagree.
type Gate struct {
	Lead time.Duration
}

// ParseLeadTime parses a HH:MM:SS lead time.
func ParseLeadTime(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid lead time %q: want HH:MM:SS", s)
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid lead time %q: want HH:MM:SS", s)
		}
		vals[i] = v
	}
	return time.Duration(vals[0])*time.Hour +
		time.Duration(vals[1])*time.Minute +
		time.Duration(vals[2])*time.Second, nil
}

// NewGate builds a Gate from the configured HH:MM:SS value, falling
// back to the 12 hour default when the value is missing or malformed.
func NewGate(configured string) Gate {
	if configured != "" {
		if d, err := ParseLeadTime(configured); err == nil {
			return Gate{Lead: d}
		}
	}
	return Gate{Lead: DefaultLead}
}

// LeadHours is the whole-hour rendering used in user-facing messages.
func (g Gate) LeadHours() int {
	return int(g.Lead.Hours())
}

// EarliestAllowed is the first instant a receipt may be scheduled
// after. Candidates equal to it are rejected.
func (g Gate) EarliestAllowed(now time.Time) time.Time {
	return now.Add(g.Lead)
}

// DefaultReceivedAt suggests the prefill date and time for a fresh
// draft: the earliest allowed instant plus a small slack.
func (g Gate) DefaultReceivedAt(now time.Time) (date, tm string) {
	at := g.EarliestAllowed(now).Add(prefillSlack)
	return at.Format("2006-01-02"), at.Format("15:04")
}

// ParseReceivedAt combines the draft's date and time fields.
func ParseReceivedAt(date, tm string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+tm, time.Local)
}

// Check accepts a candidate receipt date-time only when it is strictly
// after now + lead. Equality is a violation; the time is never
// silently adjusted.
func (g Gate) Check(now time.Time, date, tm string) error {
	at, err := ParseReceivedAt(date, tm)
	if err != nil {
		return fmt.Errorf("invalid receipt date/time %q %q: %w", date, tm, err)
	}
	if !at.After(g.EarliestAllowed(now)) {
		return &LeadTimeViolationError{LeadHours: g.LeadHours(), ReceivedAt: at}
	}
	return nil
}
