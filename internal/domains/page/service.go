package page

import (
	"context"
	"time"
)

// AcquisitionService runs the acquire-or-synthesize pipeline.
type AcquisitionService interface {
	// Acquire fetches or synthesizes data for the identifier and persists
	// it. A live failure falls back to synthesis transparently; only a
	// failure of both paths surfaces as an error.
	Acquire(ctx context.Context, req AcquireRequest) (*AcquireResp, error)
}

// QueryService serves all read operations over previously acquired pages.
type QueryService interface {
	GetPage(ctx context.Context, pageID string, includePosts, includePeople bool) (*PageDetailResp, error)
	ListPages(ctx context.Context, q ListPagesQuery) ([]PageSummaryResp, PaginationMeta, error)
	GetPosts(ctx context.Context, pageID string, q ListPostsQuery) ([]Post, PaginationMeta, error)
	GetPostComments(ctx context.Context, pageID, postID string, q ListQuery) ([]Comment, PaginationMeta, error)
	GetPeople(ctx context.Context, pageID string, role Role, q ListQuery) ([]PersonProfile, PaginationMeta, error)
}

// AnalyticsService computes aggregate insights for one page.
type AnalyticsService interface {
	GetAnalytics(ctx context.Context, pageID string) (*AnalyticsSnapshot, error)
	// RequestSummary enqueues asynchronous generation of an AI summary.
	RequestSummary(ctx context.Context, pageID string) error
	// GenerateSummary runs the actual summary generation; called by the
	// worker, not by HTTP handlers.
	GenerateSummary(ctx context.Context, pageID string) error
}

// ==========================================
// Collaborator ports
// ==========================================

// LiveSnapshot is the raw result of a live page fetch, before persistence.
type LiveSnapshot struct {
	Page   Page
	Posts  []Post
	People []PersonProfile
}

// LiveProvider fetches real page data from the upstream network source.
// Implementations must honor ctx cancellation; the acquisition service
// treats any error (timeouts included) as a signal to fall back.
type LiveProvider interface {
	FetchPage(ctx context.Context, identifier string, depth Depth) (*LiveSnapshot, error)
}

// Summarizer produces a natural-language summary for a page's analytics.
type Summarizer interface {
	Summarize(ctx context.Context, p *Page, snapshot *AnalyticsSnapshot) (string, error)
	Enabled() bool
}

// MediaStore mirrors remote media into our own object storage and returns
// the mirrored URL.
type MediaStore interface {
	MirrorFromURL(ctx context.Context, sourceURL, objectName string) (string, error)
}

// TaskEnqueuer hides the queue client behind the domain boundary.
type TaskEnqueuer interface {
	EnqueueSummary(ctx context.Context, pageID string) error
	EnqueueRefresh(ctx context.Context, pageID string, depth int) error
}

// Clock makes time-dependent logic testable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
