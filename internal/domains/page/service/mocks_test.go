package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"page-insights-backend/internal/domains/page"
)

// fakeRepo is an in-memory page.Repository for service tests.
type fakeRepo struct {
	mu       sync.Mutex
	pages    map[string]*page.Page
	posts    map[string][]page.Post
	comments map[string][]page.Comment
	people   map[string][]page.PersonProfile
	history  map[string][]page.FollowerSample
	summary  map[string]string
	upserts  int
	failUpsert bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		pages:    make(map[string]*page.Page),
		posts:    make(map[string][]page.Post),
		comments: make(map[string][]page.Comment),
		people:   make(map[string][]page.PersonProfile),
		history:  make(map[string][]page.FollowerSample),
		summary:  make(map[string]string),
	}
}

func (f *fakeRepo) UpsertPage(ctx context.Context, p *page.Page, posts []page.Post, comments []page.Comment, people []page.PersonProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpsert {
		return page.ErrStorage
	}
	f.upserts++
	cp := *p
	f.pages[p.PageID] = &cp
	f.posts[p.PageID] = posts
	f.comments[p.PageID] = comments
	f.people[p.PageID] = people
	f.history[p.PageID] = append(f.history[p.PageID], page.FollowerSample{
		RecordedAt: p.UpdatedAt,
		Followers:  p.FollowersCount,
	})
	return nil
}

func (f *fakeRepo) GetPage(ctx context.Context, pageID string) (*page.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pages[pageID]
	if !ok {
		return nil, page.ErrPageNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) PageExists(ctx context.Context, pageID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.pages[pageID]
	return ok, nil
}

func (f *fakeRepo) ListPages(ctx context.Context, q page.ListPagesQuery) ([]page.Page, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []page.Page
	for _, p := range f.pages {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) GetPosts(ctx context.Context, pageID string, q page.ListPostsQuery) ([]page.Post, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	posts := f.posts[pageID]
	total := int64(len(posts))
	if q.PerPage > 0 {
		start := (q.Page - 1) * q.PerPage
		if start < 0 {
			start = 0
		}
		if start >= len(posts) {
			return nil, total, nil
		}
		end := start + q.PerPage
		if end > len(posts) {
			end = len(posts)
		}
		posts = posts[start:end]
	}
	return posts, total, nil
}

func (f *fakeRepo) GetPostComments(ctx context.Context, pageID, postID string, q page.ListQuery) ([]page.Comment, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []page.Comment
	found := false
	for _, p := range f.posts[pageID] {
		if p.PostID == postID {
			found = true
		}
	}
	if !found {
		return nil, 0, page.ErrPostNotFound
	}
	for _, c := range f.comments[pageID] {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) GetPeople(ctx context.Context, pageID string, role page.Role, q page.ListQuery) ([]page.PersonProfile, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []page.PersonProfile
	for _, p := range f.people[pageID] {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) GetFollowerHistory(ctx context.Context, pageID string) ([]page.FollowerSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.history[pageID], nil
}

func (f *fakeRepo) SaveSummary(ctx context.Context, pageID, summary string, generatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pages[pageID]; !ok {
		return page.ErrPageNotFound
	}
	f.summary[pageID] = summary
	return nil
}

func (f *fakeRepo) GetSummary(ctx context.Context, pageID string) (*string, *time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pages[pageID]; !ok {
		return nil, nil, page.ErrPageNotFound
	}
	if s, ok := f.summary[pageID]; ok {
		at := time.Now()
		return &s, &at, nil
	}
	return nil, nil, nil
}

func (f *fakeRepo) ListStalePages(ctx context.Context, maxAge time.Duration, limit int) ([]string, error) {
	return nil, nil
}

// fakeProvider is a scripted page.LiveProvider.
type fakeProvider struct {
	snapshot *page.LiveSnapshot
	err      error
	calls    int
}

func (f *fakeProvider) FetchPage(ctx context.Context, identifier string, depth page.Depth) (*page.LiveSnapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

// fakeCache records Set/Delete calls; Get always misses unless primed.
type fakeCache struct {
	mu      sync.Mutex
	store   map[string][]byte
	deleted []string
	sets    []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets = append(f.sets, key)
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, keys...)
	return nil
}

func (f *fakeCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (f *fakeCache) Ping(ctx context.Context) error                          { return nil }

// fixedClock pins time for deterministic assertions.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// fakeSummarizer returns a canned summary.
type fakeSummarizer struct {
	text    string
	err     error
	enabled bool
	calls   int
}

func (f *fakeSummarizer) Summarize(ctx context.Context, p *page.Page, snapshot *page.AnalyticsSnapshot) (string, error) {
	f.calls++
	return f.text, f.err
}

func (f *fakeSummarizer) Enabled() bool { return f.enabled }

// fakeEnqueuer records enqueued page ids.
type fakeEnqueuer struct {
	mu        sync.Mutex
	summaries []string
	refreshes []string
}

func (f *fakeEnqueuer) EnqueueSummary(ctx context.Context, pageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaries = append(f.summaries, pageID)
	return nil
}

func (f *fakeEnqueuer) EnqueueRefresh(ctx context.Context, pageID string, depth int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes = append(f.refreshes, pageID)
	return nil
}

// slowProvider fails after a fixed delay and records how many fetches
// were in flight at once.
type slowProvider struct {
	delay time.Duration

	mu          sync.Mutex
	inFlight    int
	maxInFlight int
}

func (p *slowProvider) FetchPage(ctx context.Context, identifier string, depth page.Depth) (*page.LiveSnapshot, error) {
	p.mu.Lock()
	p.inFlight++
	if p.inFlight > p.maxInFlight {
		p.maxInFlight = p.inFlight
	}
	p.mu.Unlock()

	time.Sleep(p.delay)

	p.mu.Lock()
	p.inFlight--
	p.mu.Unlock()
	return nil, errProviderDown
}

var errProviderDown = errors.New("upstream unavailable")
