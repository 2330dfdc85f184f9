package synth

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"page-insights-backend/internal/domains/page"
)

// Metrics is one set of synthesized engagement counters for a post.
type Metrics struct {
	Likes    int64
	Comments int64
	Shares   int64
	Views    int64
}

// EngagementRate is the single source of truth for the engagement formula:
//
//	(likes + comments + shares) / followers * 100
//
// rounded half-up to two decimal places. A page with zero followers has a
// rate of zero rather than a division error.
func EngagementRate(likes, comments, shares, followers int64) float64 {
	if followers <= 0 {
		return 0
	}
	interactions := decimal.NewFromInt(likes + comments + shares)
	rate := interactions.
		Div(decimal.NewFromInt(followers)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	f, _ := rate.Float64()
	return f
}

// Synthesizer draws engagement metrics and timestamps. The rand source is
// injected so tests can pin the sequence.
type Synthesizer struct {
	rng *rand.Rand
}

func NewSynthesizer(rng *rand.Rand) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Synthesizer{rng: rng}
}

// Metrics samples one metric set for a page with the given follower count.
func (s *Synthesizer) Metrics(followers int64) (Metrics, error) {
	tier, err := TierFor(followers)
	if err != nil {
		return Metrics{}, err
	}
	r := rangesByTier[tier]

	likes := r.likesMin + s.rng.Int63n(r.likesMax-r.likesMin+1)
	commentRatio := s.floatBetween(r.commentRatioMin, r.commentRatioMax)
	shareRatio := s.floatBetween(r.shareRatioMin, r.shareRatioMax)
	viewMult := s.floatBetween(r.viewMultMin, r.viewMultMax)
	if viewMult < 1 {
		viewMult = 1
	}

	m := Metrics{
		Likes:    likes,
		Comments: int64(math.Round(float64(likes) * commentRatio)),
		Shares:   int64(math.Round(float64(likes) * shareRatio)),
		Views:    int64(math.Round(float64(likes) * viewMult)),
	}

	if err := m.validate(); err != nil {
		return Metrics{}, err
	}
	return m, nil
}

// validate checks the cross-field invariants once, after generation.
func (m Metrics) validate() error {
	if m.Likes < 0 || m.Comments < 0 || m.Shares < 0 || m.Views < 0 {
		return fmt.Errorf("%w: negative engagement counter", page.ErrInvalidArgument)
	}
	if m.Comments > m.Likes {
		return fmt.Errorf("%w: comments (%d) exceed likes (%d)",
			page.ErrInvalidArgument, m.Comments, m.Likes)
	}
	if m.Shares > m.Likes {
		return fmt.Errorf("%w: shares (%d) exceed likes (%d)",
			page.ErrInvalidArgument, m.Shares, m.Likes)
	}
	if m.Views < m.Likes {
		return fmt.Errorf("%w: views (%d) below likes (%d)",
			page.ErrInvalidArgument, m.Views, m.Likes)
	}
	return nil
}

// PostTimes returns n timestamps uniformly spread over the last 1 to 30
// days, newest first.
func (s *Synthesizer) PostTimes(n int, now time.Time) []time.Time {
	times := make([]time.Time, n)
	for i := range times {
		daysBack := 1 + s.rng.Intn(30)
		jitter := time.Duration(s.rng.Int63n(int64(24 * time.Hour)))
		times[i] = now.AddDate(0, 0, -daysBack).Add(-jitter)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].After(times[j]) })
	return times
}

func (s *Synthesizer) floatBetween(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}
