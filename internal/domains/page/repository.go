package page

import (
	"context"
	"time"
)

// Repository is the persistence boundary for the page domain.
type Repository interface {
	// UpsertPage stores one acquisition result atomically: the page row is
	// inserted or updated, its posts, comments and people are replaced
	// wholesale, and one follower history sample is appended. Partial
	// visibility is never allowed.
	UpsertPage(ctx context.Context, p *Page, posts []Post, comments []Comment, people []PersonProfile) error

	GetPage(ctx context.Context, pageID string) (*Page, error)
	PageExists(ctx context.Context, pageID string) (bool, error)
	ListPages(ctx context.Context, q ListPagesQuery) ([]Page, int64, error)

	GetPosts(ctx context.Context, pageID string, q ListPostsQuery) ([]Post, int64, error)
	GetPostComments(ctx context.Context, pageID, postID string, q ListQuery) ([]Comment, int64, error)
	GetPeople(ctx context.Context, pageID string, role Role, q ListQuery) ([]PersonProfile, int64, error)

	GetFollowerHistory(ctx context.Context, pageID string) ([]FollowerSample, error)

	// SaveSummary persists the AI-generated analytics summary for a page.
	SaveSummary(ctx context.Context, pageID, summary string, generatedAt time.Time) error
	GetSummary(ctx context.Context, pageID string) (summary *string, generatedAt *time.Time, err error)

	// ListStalePages returns page identifiers whose last acquisition is
	// older than maxAge, for the background refresh scan.
	ListStalePages(ctx context.Context, maxAge time.Duration, limit int) ([]string, error)
}
