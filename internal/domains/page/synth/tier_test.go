package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"page-insights-backend/internal/domains/page"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		name      string
		followers int64
		want      Tier
	}{
		{"zero followers", 0, TierSmall},
		{"small page", 500_000, TierSmall},
		{"just below medium", 999_999, TierSmall},
		{"medium boundary", 1_000_000, TierMedium},
		{"medium page", 5_000_000, TierMedium},
		{"just below large", 9_999_999, TierMedium},
		{"large boundary", 10_000_000, TierLarge},
		{"very large page", 250_000_000, TierLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TierFor(tt.followers)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTierForNegative(t *testing.T) {
	_, err := TierFor(-1)
	require.Error(t, err)
	assert.ErrorIs(t, err, page.ErrInvalidArgument)
}

func TestRangesCoverAllTiers(t *testing.T) {
	for _, tier := range []Tier{TierSmall, TierMedium, TierLarge} {
		r, ok := rangesByTier[tier]
		require.True(t, ok, "missing ranges for tier %s", tier)
		assert.Less(t, r.likesMin, r.likesMax)
		assert.LessOrEqual(t, r.commentRatioMax, 1.0, "comment ratio must keep comments <= likes")
		assert.LessOrEqual(t, r.shareRatioMax, 1.0, "share ratio must keep shares <= likes")
		assert.GreaterOrEqual(t, r.viewMultMin, 1.0, "view multiplier must keep views >= likes")
	}
}
