package round

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// Supported hex prefix widths taken from the digest before reduction.
const (
	DefaultPrefixWidth = 12
	LegacyPrefixWidth  = 8
)

// TimeLayout is the display format for round and query timestamps.
const TimeLayout = "3:04:05 pm"

// Round is one minute's outcome. Values are copied, never mutated.
type Round struct {
	Period string `json:"period"`
	Number int    `json:"number"`
	Time   string `json:"time"`
}

// Generator derives digits from a server secret.
type Generator struct {
	Secret      string
	PrefixWidth int
}

// NewGenerator returns a generator using the default prefix width.
func NewGenerator(secret string) *Generator {
	return &Generator{Secret: secret, PrefixWidth: DefaultPrefixWidth}
}

// Digit hashes secret+period+index with SHA-256 and reduces a hex prefix mod 10.
func (g *Generator) Digit(period string, roundIndex int) int {
	sum := sha256.Sum256([]byte(g.Secret + period + strconv.Itoa(roundIndex)))
	digest := hex.EncodeToString(sum[:])
	width := g.PrefixWidth
	if width <= 0 || width > 16 {
		width = DefaultPrefixWidth
	}
	// at most 16 hex chars, always fits in uint64
	v, _ := strconv.ParseUint(digest[:width], 16, 64)
	return int(v % 10)
}

// Generate builds the round for a period, stamped with now.
func (g *Generator) Generate(period string, roundIndex int, now time.Time) Round {
	return Round{
		Period: period,
		Number: g.Digit(period, roundIndex),
		Time:   Local(now).Format(TimeLayout),
	}
}
