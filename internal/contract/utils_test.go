package contract

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{95, ExcellentValue},
		{80, ExcellentValue},
		{79.9, GoodValue},
		{60, GoodValue},
		{45, FairValue},
		{10, PoorValue},
		{-5, PoorValue},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, GetPlainLabel(tt.score))
	}
}

func TestGetColorLabelContainsText(t *testing.T) {
	assert.Contains(t, GetColorLabel(90), ExcellentValue)
	assert.Contains(t, GetColorLabel(10), PoorValue)
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short", TruncateName("short", 10))
	assert.Equal(t, "a very...", TruncateName("a very long name", 9))
	assert.Equal(t, "abcdef", TruncateName("abcdef", 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn, "json")
	logger.Info("hidden")
	logger.Warn("shown", "file", "a.csv")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"file":"a.csv"`)

	buf.Reset()
	NewLogger(&buf, slog.LevelInfo, "text").Info("plain", "k", "v")
	assert.Contains(t, buf.String(), "k=v")
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("DEBUG")
	assert.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
	level, err = ParseLogLevel("")
	assert.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
	_, err = ParseLogLevel("verbose")
	assert.Error(t, err)
}
