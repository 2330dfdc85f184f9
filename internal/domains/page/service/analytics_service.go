package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"page-insights-backend/internal/domains/page"
	"page-insights-backend/pkg/cache"
	"page-insights-backend/pkg/logger"
)

type analyticsService struct {
	repo       page.Repository
	cache      cache.Cache
	summarizer page.Summarizer
	enqueuer   page.TaskEnqueuer
	clock      page.Clock
	ttl        time.Duration
}

// NewAnalyticsService computes aggregate insights and coordinates the
// asynchronous summary pipeline.
func NewAnalyticsService(
	repo page.Repository,
	c cache.Cache,
	summarizer page.Summarizer,
	enqueuer page.TaskEnqueuer,
	clock page.Clock,
	ttl time.Duration,
) page.AnalyticsService {
	if clock == nil {
		clock = page.SystemClock{}
	}
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &analyticsService{
		repo:       repo,
		cache:      c,
		summarizer: summarizer,
		enqueuer:   enqueuer,
		clock:      clock,
		ttl:        ttl,
	}
}

func (s *analyticsService) GetAnalytics(ctx context.Context, pageID string) (*page.AnalyticsSnapshot, error) {
	cacheKey := fmt.Sprintf("analytics:%s", pageID)
	if s.cache != nil {
		var cached page.AnalyticsSnapshot
		if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	snapshot, err := s.compute(ctx, pageID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, snapshot, s.ttl); err != nil {
			logger.Warn("analytics cache write failed", map[string]interface{}{
				"page_id": pageID,
				"error":   err.Error(),
			})
		}
	}
	return snapshot, nil
}

func (s *analyticsService) compute(ctx context.Context, pageID string) (*page.AnalyticsSnapshot, error) {
	if _, err := s.repo.GetPage(ctx, pageID); err != nil {
		return nil, err
	}

	posts, total, err := s.allPosts(ctx, pageID)
	if err != nil {
		return nil, err
	}

	trend, err := s.repo.GetFollowerHistory(ctx, pageID)
	if err != nil {
		return nil, err
	}

	summary, summaryAt, err := s.repo.GetSummary(ctx, pageID)
	if err != nil {
		return nil, err
	}

	snapshot := &page.AnalyticsSnapshot{
		PageID:             pageID,
		TotalPosts:         int(total),
		AverageEngagement:  averageEngagement(posts),
		MostEngagedPost:    mostEngagedPost(posts),
		FollowerTrend:      trend,
		Summary:            summary,
		SummaryGeneratedAt: summaryAt,
		ComputedAt:         s.clock.Now().UTC(),
	}
	return snapshot, nil
}

// allPosts pages through the repository until the whole post set is in
// memory. The aggregates below are defined over every post, so a single
// capped page would skew them against the reported total.
func (s *analyticsService) allPosts(ctx context.Context, pageID string) ([]page.Post, int64, error) {
	q := page.ListPostsQuery{SortBy: page.SortRecent, Page: 1, PerPage: 100}

	var posts []page.Post
	var total int64
	for {
		batch, t, err := s.repo.GetPosts(ctx, pageID, q)
		if err != nil {
			return nil, 0, err
		}
		total = t
		posts = append(posts, batch...)
		if len(batch) < q.PerPage || int64(len(posts)) >= total {
			return posts, total, nil
		}
		q.Page++
	}
}

// averageEngagement is the mean of per-post rates, rounded to two decimal
// places. An empty post set averages to zero, not an error.
func averageEngagement(posts []page.Post) float64 {
	if len(posts) == 0 {
		return 0
	}
	sum := decimal.Zero
	for i := range posts {
		sum = sum.Add(decimal.NewFromFloat(posts[i].EngagementRate))
	}
	avg, _ := sum.Div(decimal.NewFromInt(int64(len(posts)))).Round(2).Float64()
	return avg
}

// mostEngagedPost picks the highest engagement rate; ties go to the most
// recently posted.
func mostEngagedPost(posts []page.Post) *page.Post {
	if len(posts) == 0 {
		return nil
	}
	best := &posts[0]
	for i := 1; i < len(posts); i++ {
		p := &posts[i]
		if p.EngagementRate > best.EngagementRate ||
			(p.EngagementRate == best.EngagementRate && p.PostedAt.After(best.PostedAt)) {
			best = p
		}
	}
	out := *best
	return &out
}

// RequestSummary enqueues summary generation; the HTTP caller gets an
// immediate accepted response.
func (s *analyticsService) RequestSummary(ctx context.Context, pageID string) error {
	exists, err := s.repo.PageExists(ctx, pageID)
	if err != nil {
		return err
	}
	if !exists {
		return page.ErrPageNotFound
	}
	if s.enqueuer == nil {
		return fmt.Errorf("%w: summary queue not configured", page.ErrStorage)
	}
	return s.enqueuer.EnqueueSummary(ctx, pageID)
}

// GenerateSummary runs inside the worker: compute fresh analytics, ask the
// summarizer, persist the text, drop the cached snapshot.
func (s *analyticsService) GenerateSummary(ctx context.Context, pageID string) error {
	if s.summarizer == nil || !s.summarizer.Enabled() {
		logger.Warn("summary generation skipped, summarizer disabled", map[string]interface{}{
			"page_id": pageID,
		})
		return nil
	}

	p, err := s.repo.GetPage(ctx, pageID)
	if err != nil {
		return err
	}
	snapshot, err := s.compute(ctx, pageID)
	if err != nil {
		return err
	}

	text, err := s.summarizer.Summarize(ctx, p, snapshot)
	if err != nil {
		return fmt.Errorf("summary generation failed for %s: %w", pageID, err)
	}

	now := s.clock.Now().UTC()
	if err := s.repo.SaveSummary(ctx, pageID, text, now); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, fmt.Sprintf("analytics:%s", pageID)); err != nil {
			logger.Warn("analytics cache invalidation failed", map[string]interface{}{
				"page_id": pageID,
				"error":   err.Error(),
			})
		}
	}

	logger.Info("analytics summary generated", map[string]interface{}{
		"page_id": pageID,
		"length":  len(text),
	})
	return nil
}
