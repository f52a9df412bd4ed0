package round

import (
	"errors"
	"testing"
	"time"
)

func ist(day, hour, min, sec int) time.Time {
	return time.Date(2026, 10, day, hour, min, sec, 0, IST)
}

func TestComputePeriod_AtReset(t *testing.T) {
	pd := ComputePeriod(ist(19, 5, 30, 0))
	if pd.RoundIndex != 1 {
		t.Errorf("RoundIndex %d, want 1", pd.RoundIndex)
	}
	if pd.Period != "20261019100010000001" {
		t.Errorf("Period %q, want 20261019100010000001", pd.Period)
	}
	if pd.SecondsLeft != 60 {
		t.Errorf("SecondsLeft %d, want 60", pd.SecondsLeft)
	}
}

func TestComputePeriod_OneSecondBeforeReset(t *testing.T) {
	pd := ComputePeriod(ist(20, 5, 29, 59))
	if pd.RoundIndex != 1440 {
		t.Errorf("RoundIndex %d, want 1440", pd.RoundIndex)
	}
	// gaming day started on the 19th
	if pd.Period != "202610191000100001440" {
		t.Errorf("Period %q, want 202610191000100001440", pd.Period)
	}
	if pd.SecondsLeft != 1 {
		t.Errorf("SecondsLeft %d, want 1", pd.SecondsLeft)
	}
}

func TestComputePeriod_AcrossMidnight(t *testing.T) {
	before := ComputePeriod(ist(19, 23, 59, 30))
	after := ComputePeriod(ist(20, 0, 0, 0))

	if before.RoundIndex != 1110 {
		t.Errorf("23:59 RoundIndex %d, want 1110", before.RoundIndex)
	}
	if after.RoundIndex != 1111 {
		t.Errorf("00:00 RoundIndex %d, want 1111", after.RoundIndex)
	}
	if got := before.GameDate.Format("20060102"); got != "20261019" {
		t.Errorf("23:59 GameDate %s, want 20261019", got)
	}
	if got := after.GameDate.Format("20060102"); got != "20261019" {
		t.Errorf("00:00 GameDate %s, want 20261019", got)
	}
	if after.Period != "202610191000100001111" {
		t.Errorf("00:00 Period %q", after.Period)
	}
}

func TestRoundIndex_IncrementsOncePerMinute(t *testing.T) {
	start := ist(19, 5, 30, 0)
	seen := make(map[string]bool)
	for i := 0; i < 24*60; i++ {
		at := start.Add(time.Duration(i) * time.Minute)
		pd := ComputePeriod(at)
		if pd.RoundIndex != i+1 {
			t.Fatalf("minute %d: RoundIndex %d, want %d", i, pd.RoundIndex, i+1)
		}
		if seen[pd.Period] {
			t.Fatalf("minute %d: duplicate period %s", i, pd.Period)
		}
		seen[pd.Period] = true
	}
	if got := RoundIndex(start.Add(24 * time.Hour)); got != 1 {
		t.Errorf("RoundIndex after a full day %d, want 1", got)
	}
}

func TestRoundIndex_ConstantWithinMinute(t *testing.T) {
	for sec := 0; sec < 60; sec++ {
		if got := RoundIndex(ist(19, 12, 0, sec)); got != 391 {
			t.Fatalf("sec %d: RoundIndex %d, want 391", sec, got)
		}
	}
}

func TestComputePeriod_ConvertsFromUTC(t *testing.T) {
	// 00:00 UTC is 05:30 IST
	pd := ComputePeriod(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))
	if pd.RoundIndex != 1 {
		t.Errorf("RoundIndex %d, want 1", pd.RoundIndex)
	}
	if pd.Period != "20261019100010000001" {
		t.Errorf("Period %q", pd.Period)
	}
}

func TestParsePeriod_RoundTrip(t *testing.T) {
	for _, at := range []time.Time{ist(19, 5, 30, 0), ist(19, 17, 45, 0), ist(20, 4, 0, 0)} {
		pd := ComputePeriod(at)
		day, idx, err := ParsePeriod(pd.Period)
		if err != nil {
			t.Fatalf("ParsePeriod(%s): %v", pd.Period, err)
		}
		if idx != pd.RoundIndex {
			t.Errorf("%s: idx %d, want %d", pd.Period, idx, pd.RoundIndex)
		}
		if !day.Equal(pd.GameDate) {
			t.Errorf("%s: day %v, want %v", pd.Period, day, pd.GameDate)
		}
	}
}

func TestParsePeriod_Malformed(t *testing.T) {
	for _, p := range []string{"", "2026101910001000001", "20261019999999999001", "2026AB19100010000001", "20261019100010000000", "202610191000100001441"} {
		if _, _, err := ParsePeriod(p); !errors.Is(err, ErrMalformedPeriod) {
			t.Errorf("ParsePeriod(%q) err %v, want ErrMalformedPeriod", p, err)
		}
	}
}
