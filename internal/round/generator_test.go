package round

import (
	"testing"
	"time"
)

func TestGenerator_KnownDigits(t *testing.T) {
	cases := []struct {
		period string
		idx    int
		width  int
		want   int
	}{
		{"20261019100010000001", 1, DefaultPrefixWidth, 1},
		{"20261019100010000001", 1, LegacyPrefixWidth, 8},
		{"202610181000100001440", 1440, DefaultPrefixWidth, 3},
		{"20261019100010000002", 2, LegacyPrefixWidth, 7},
	}
	for _, tc := range cases {
		g := &Generator{Secret: "test", PrefixWidth: tc.width}
		if got := g.Digit(tc.period, tc.idx); got != tc.want {
			t.Errorf("Digit(%s, %d) width %d = %d, want %d", tc.period, tc.idx, tc.width, got, tc.want)
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	g := NewGenerator("test")
	at := ist(19, 5, 30, 0)
	first := g.Generate("20261019100010000001", 1, at)
	for i := 0; i < 50; i++ {
		again := g.Generate("20261019100010000001", 1, at.Add(time.Duration(i)*time.Second))
		if again.Number != first.Number {
			t.Fatalf("call %d: number %d, want %d", i, again.Number, first.Number)
		}
	}
}

func TestGenerator_NumberInRange(t *testing.T) {
	g := NewGenerator("range-secret")
	start := ist(19, 5, 30, 0)
	counts := make([]int, 10)
	for i := 0; i < 1440; i++ {
		pd := ComputePeriod(start.Add(time.Duration(i) * time.Minute))
		n := g.Digit(pd.Period, pd.RoundIndex)
		if n < 0 || n > 9 {
			t.Fatalf("number %d out of range", n)
		}
		counts[n]++
	}
	for d, c := range counts {
		if c == 0 {
			t.Errorf("digit %d never drawn in a day", d)
		}
	}
}

func TestGenerator_SecretChangesOutput(t *testing.T) {
	a := NewGenerator("alpha")
	b := NewGenerator("beta")
	differs := false
	for i := 1; i <= 20; i++ {
		p := FormatPeriod(ist(19, 0, 0, 0), i)
		if a.Digit(p, i) != b.Digit(p, i) {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("different secrets produced identical sequences")
	}
}

func TestGenerator_TimeStamp(t *testing.T) {
	g := NewGenerator("test")
	r := g.Generate("20261019100010000001", 1, time.Date(2026, 10, 19, 12, 0, 5, 0, time.UTC))
	if r.Time != "5:30:05 pm" {
		t.Errorf("Time %q, want 5:30:05 pm", r.Time)
	}
	if r.Period != "20261019100010000001" {
		t.Errorf("Period %q", r.Period)
	}
}

func TestGenerator_InvalidWidthFallsBack(t *testing.T) {
	g := &Generator{Secret: "test", PrefixWidth: 99}
	if got := g.Digit("20261019100010000001", 1); got != 1 {
		t.Errorf("Digit %d, want default-width result 1", got)
	}
}
