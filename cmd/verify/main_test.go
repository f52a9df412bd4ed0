package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func runVerify(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("SECRET_KEY", "test")
	t.Setenv("HASH_PREFIX_WIDTH", "")
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr, now)
	return code, stdout.String(), stderr.String()
}

func TestVerify_Period(t *testing.T) {
	code, out, _ := runVerify(t, "-period", "20261019100010000001")
	assert.Equal(t, 0, code)
	assert.Equal(t, "period=20261019100010000001 index=1 width=12 number=1\n", out)
}

func TestVerify_LegacyWidth(t *testing.T) {
	code, out, _ := runVerify(t, "-period", "20261019100010000001", "-width", "8")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "number=8")
}

func TestVerify_At(t *testing.T) {
	code, out, _ := runVerify(t, "-at", "2026-10-19T05:30:20+05:30", "-expect", "1")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "period=20261019100010000001 index=1")
}

func TestVerify_Mismatch(t *testing.T) {
	code, out, _ := runVerify(t, "-period", "20261019100010000001", "-expect", "4")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "mismatch: published 4")
}

func TestVerify_FuturePeriodRefused(t *testing.T) {
	code, _, errOut := runVerify(t, "-period", "20261019100010001000")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "has not been drawn yet")

	code, _, _ = runVerify(t, "-period", "20261020100010000001")
	assert.Equal(t, 2, code)
}

func TestVerify_UsageErrors(t *testing.T) {
	code, _, _ := runVerify(t)
	assert.Equal(t, 2, code)

	code, _, _ = runVerify(t, "-period", "bogus")
	assert.Equal(t, 2, code)

	code, _, _ = runVerify(t, "-period", "20261019100010000001", "-width", "10")
	assert.Equal(t, 2, code)
}

func TestVerify_MissingSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	var stdout, stderr bytes.Buffer
	code := run([]string{"-period", "20261019100010000001"}, &stdout, &stderr, now)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "SECRET_KEY")
}
