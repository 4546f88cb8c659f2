package timing

import (
	"errors"
	"testing"
	"time"
)

func TestParseLeadTime(t *testing.T) {
	t.Parallel()

	d, err := ParseLeadTime("12:00:00")
	if err != nil || d != 12*time.Hour {
		t.Fatalf("ParseLeadTime(12:00:00) = %v, %v", d, err)
	}
	d, err = ParseLeadTime("01:30:00")
	if err != nil || d != 90*time.Minute {
		t.Fatalf("ParseLeadTime(01:30:00) = %v, %v", d, err)
	}
	for _, bad := range []string{"", "12:00", "aa:bb:cc", "-1:00:00"} {
		if _, err := ParseLeadTime(bad); err == nil {
			t.Fatalf("ParseLeadTime(%q) should fail", bad)
		}
	}
}

func TestNewGateFallback(t *testing.T) {
	t.Parallel()

	if g := NewGate(""); g.Lead != DefaultLead {
		t.Fatalf("empty config should fall back to default, got %v", g.Lead)
	}
	if g := NewGate("garbage"); g.Lead != DefaultLead {
		t.Fatalf("malformed config should fall back to default, got %v", g.Lead)
	}
	if g := NewGate("06:00:00"); g.Lead != 6*time.Hour {
		t.Fatalf("configured lead not applied, got %v", g.Lead)
	}
}

func TestCheckBoundary(t *testing.T) {
	t.Parallel()

	gate := Gate{Lead: 12 * time.Hour}
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)

	// Exactly now + lead is a violation, not an acceptance.
	err := gate.Check(now, "2026-09-01", "20:00")
	var violation *LeadTimeViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("boundary instant must be rejected, got %v", err)
	}
	if violation.LeadHours != 12 {
		t.Fatalf("violation carries wrong lead hours: %d", violation.LeadHours)
	}

	// One minute past the boundary is accepted.
	if err := gate.Check(now, "2026-09-01", "20:01"); err != nil {
		t.Fatalf("one minute past boundary should pass: %v", err)
	}

	// Earlier is rejected.
	if err := gate.Check(now, "2026-09-01", "09:00"); err == nil {
		t.Fatalf("time inside the lead window should be rejected")
	}
}

func TestCheckMalformed(t *testing.T) {
	t.Parallel()

	gate := Gate{Lead: time.Hour}
	now := time.Now()
	err := gate.Check(now, "not-a-date", "99:99")
	if err == nil {
		t.Fatalf("malformed date/time should be rejected")
	}
	var violation *LeadTimeViolationError
	if errors.As(err, &violation) {
		t.Fatalf("parse failure must not masquerade as a lead time violation")
	}
}

func TestDefaultReceivedAt(t *testing.T) {
	t.Parallel()

	gate := Gate{Lead: 12 * time.Hour}
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)

	date, tm := gate.DefaultReceivedAt(now)
	if date != "2026-09-01" || tm != "20:30" {
		t.Fatalf("prefill = %s %s, want 2026-09-01 20:30", date, tm)
	}

	// The prefill must satisfy the gate it came from.
	if err := gate.Check(now, date, tm); err != nil {
		t.Fatalf("prefill rejected by its own gate: %v", err)
	}
}
