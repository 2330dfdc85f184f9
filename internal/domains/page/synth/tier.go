package synth

import (
	"fmt"

	"page-insights-backend/internal/domains/page"
)

// Tier classifies a page by audience size. Each tier maps to its own
// engagement ranges so that synthesized numbers stay plausible relative to
// the follower count.
type Tier string

const (
	TierSmall  Tier = "small"  // under 1M followers
	TierMedium Tier = "medium" // 1M to under 10M followers
	TierLarge  Tier = "large"  // 10M and up
)

const (
	mediumThreshold = 1_000_000
	largeThreshold  = 10_000_000
)

// TierFor maps a follower count to its engagement tier. Negative counts
// are a caller bug and are rejected.
func TierFor(followers int64) (Tier, error) {
	switch {
	case followers < 0:
		return "", fmt.Errorf("%w: follower count must be non-negative, got %d",
			page.ErrInvalidArgument, followers)
	case followers < mediumThreshold:
		return TierSmall, nil
	case followers < largeThreshold:
		return TierMedium, nil
	default:
		return TierLarge, nil
	}
}

// tierRanges holds the sampling bounds for one tier. Ratios are fractions
// of the like count, which keeps comments and shares below likes by
// construction. The view multiplier is applied to likes as well.
type tierRanges struct {
	likesMin, likesMax int64
	commentRatioMin    float64
	commentRatioMax    float64
	shareRatioMin      float64
	shareRatioMax      float64
	viewMultMin        float64
	viewMultMax        float64
}

var rangesByTier = map[Tier]tierRanges{
	TierSmall: {
		likesMin: 50, likesMax: 1000,
		commentRatioMin: 0.010, commentRatioMax: 0.080,
		shareRatioMin: 0.005, shareRatioMax: 0.050,
		viewMultMin: 2, viewMultMax: 8,
	},
	TierMedium: {
		likesMin: 100, likesMax: 2000,
		commentRatioMin: 0.010, commentRatioMax: 0.060,
		shareRatioMin: 0.005, shareRatioMax: 0.040,
		viewMultMin: 3, viewMultMax: 10,
	},
	TierLarge: {
		likesMin: 150, likesMax: 5000,
		commentRatioMin: 0.005, commentRatioMax: 0.050,
		shareRatioMin: 0.002, shareRatioMax: 0.030,
		viewMultMin: 5, viewMultMax: 15,
	},
}
