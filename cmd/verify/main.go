// Command verify recomputes the digit drawn for a period, for audits and
// for cross-checking a deployment's published history.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"digitdraw/internal/config"
	"digitdraw/internal/round"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, time.Now()))
}

func run(args []string, stdout, stderr io.Writer, now time.Time) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	period := fs.String("period", "", "period id to verify (e.g. 20261019100010000001)")
	at := fs.String("at", "", "RFC 3339 instant; derives the period instead of -period")
	width := fs.Int("width", 0, "hex prefix width, 8 or 12 (default from HASH_PREFIX_WIDTH or 12)")
	expect := fs.Int("expect", -1, "published number to check against; exit 1 on mismatch")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "verify:", err)
		return 2
	}
	if *width != 0 {
		if *width != round.DefaultPrefixWidth && *width != round.LegacyPrefixWidth {
			fmt.Fprintln(stderr, "verify: -width must be 8 or 12")
			return 2
		}
		cfg.PrefixWidth = *width
	}

	var idx int
	switch {
	case *period != "" && *at != "":
		fmt.Fprintln(stderr, "verify: use either -period or -at")
		return 2
	case *at != "":
		t, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			fmt.Fprintln(stderr, "verify: -at:", err)
			return 2
		}
		pd := round.ComputePeriod(t)
		*period, idx = pd.Period, pd.RoundIndex
	case *period != "":
		_, idx, err = round.ParsePeriod(*period)
		if err != nil {
			fmt.Fprintln(stderr, "verify:", err)
			return 2
		}
	default:
		fmt.Fprintln(stderr, "verify: -period or -at is required")
		return 2
	}

	// Only rounds already drawn may be recomputed.
	if current := round.ComputePeriod(now); periodAfter(*period, idx, current) {
		fmt.Fprintf(stderr, "verify: period %s has not been drawn yet\n", *period)
		return 2
	}

	gen := &round.Generator{Secret: cfg.Secret, PrefixWidth: cfg.PrefixWidth}
	n := gen.Digit(*period, idx)
	fmt.Fprintf(stdout, "period=%s index=%d width=%d number=%d\n", *period, idx, gen.PrefixWidth, n)

	if *expect >= 0 && *expect != n {
		fmt.Fprintf(stdout, "mismatch: published %d\n", *expect)
		return 1
	}
	return 0
}

func periodAfter(period string, idx int, current round.PeriodData) bool {
	day, _, err := round.ParsePeriod(period)
	if err != nil {
		return false
	}
	if !day.Equal(current.GameDate) {
		return day.After(current.GameDate)
	}
	return idx > current.RoundIndex
}

