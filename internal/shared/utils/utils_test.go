package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 100))
	assert.Equal(t, "exact", TruncateText("exact", 5))
	assert.Equal(t, "ab...", TruncateText("abcdefgh", 5))
}

func TestFormatLargeNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{999, "999"},
		{1_000, "1.0K"},
		{152_472, "152.5K"},
		{1_200_000, "1.2M"},
		{3_000_000, "3.0M"},
		{1_000_000_000, "1.0B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLargeNumber(tt.in))
	}
}

func TestParseFollowerRange(t *testing.T) {
	min, max, ok := ParseFollowerRange("1k-10k")
	require.True(t, ok)
	assert.Equal(t, int64(1_000), min)
	assert.Equal(t, int64(10_000), max)

	min, max, ok = ParseFollowerRange("1m-5m")
	require.True(t, ok)
	assert.Equal(t, int64(1_000_000), min)
	assert.Equal(t, int64(5_000_000), max)

	_, _, ok = ParseFollowerRange("5m-1m")
	assert.False(t, ok, "inverted bounds are invalid")

	_, _, ok = ParseFollowerRange("nonsense")
	assert.False(t, ok)

	_, _, ok = ParseFollowerRange("")
	assert.False(t, ok)
}
