package service

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"page-insights-backend/internal/domains/page"
)

var acqNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestAcquisition(repo page.Repository, provider page.LiveProvider, c *fakeCache) page.AcquisitionService {
	return NewAcquisitionService(
		repo, provider, nil, c,
		fixedClock{t: acqNow},
		rand.New(rand.NewSource(42)),
		AcquisitionOptions{
			FetchTimeout:     time.Second,
			PostsPerPage:     15,
			FollowersPerPage: 25,
			EmployeesPerPage: 20,
			CommentsPerPost:  3,
		},
	)
}

func TestAcquireSyntheticFallbackOnProviderError(t *testing.T) {
	repo := newFakeRepo()
	provider := &fakeProvider{err: errProviderDown}
	svc := newTestAcquisition(repo, provider, newFakeCache())

	resp, err := svc.Acquire(context.Background(), page.AcquireRequest{
		Identifier: "acme-corp",
		Depth:      3,
	})
	require.NoError(t, err, "provider failure must not surface to the caller")

	assert.Equal(t, page.SourceSynthetic, resp.Source)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, 15, resp.PostsCount)
	assert.Equal(t, 45, resp.PeopleCount, "25 followers + 20 employees")
	assert.Zero(t, resp.CommentCount, "comments only when requested")

	stored, err := repo.GetPage(context.Background(), "acme-corp")
	require.NoError(t, err)
	assert.Equal(t, page.SourceSynthetic, stored.Source)
	require.NotNil(t, stored.LastAcquiredAt)
	assert.Equal(t, acqNow, *stored.LastAcquiredAt)
}

func TestAcquireUsesLiveDataWhenAvailable(t *testing.T) {
	repo := newFakeRepo()
	live := &page.LiveSnapshot{
		Page: page.Page{
			PageID:         "acme-corp",
			Name:           "Acme Corporation",
			URL:            "https://www.linkedin.com/company/acme-corp",
			FollowersCount: 152_472,
		},
		Posts: []page.Post{{PostID: "p1", PageID: "acme-corp", Content: "hello", PostedAt: acqNow}},
	}
	provider := &fakeProvider{snapshot: live}
	svc := newTestAcquisition(repo, provider, newFakeCache())

	resp, err := svc.Acquire(context.Background(), page.AcquireRequest{Identifier: "acme-corp", Depth: 2})
	require.NoError(t, err)

	assert.Equal(t, page.SourceLive, resp.Source)
	assert.Equal(t, 1, resp.PostsCount)

	stored, err := repo.GetPage(context.Background(), "acme-corp")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corporation", stored.Name)
	assert.Equal(t, int64(152_472), stored.FollowersCount)
}

func TestAcquireDepthControlsVolume(t *testing.T) {
	tests := []struct {
		name       string
		depth      int
		wantPosts  bool
		wantPeople bool
	}{
		{"depth 1 page only", 1, false, false},
		{"depth 2 adds posts", 2, true, false},
		{"depth 3 adds people", 3, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc := newTestAcquisition(repo, &fakeProvider{err: errProviderDown}, newFakeCache())

			resp, err := svc.Acquire(context.Background(), page.AcquireRequest{
				Identifier: "acme-corp",
				Depth:      tt.depth,
			})
			require.NoError(t, err)

			if tt.wantPosts {
				assert.Positive(t, resp.PostsCount)
			} else {
				assert.Zero(t, resp.PostsCount)
			}
			if tt.wantPeople {
				assert.Positive(t, resp.PeopleCount)
			} else {
				assert.Zero(t, resp.PeopleCount)
			}
		})
	}
}

func TestAcquireWithComments(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestAcquisition(repo, nil, newFakeCache())

	resp, err := svc.Acquire(context.Background(), page.AcquireRequest{
		Identifier:   "acme-corp",
		Depth:        2,
		WithComments: true,
	})
	require.NoError(t, err)
	assert.Positive(t, resp.CommentCount)
}

func TestAcquireInvalidInput(t *testing.T) {
	svc := newTestAcquisition(newFakeRepo(), nil, newFakeCache())

	_, err := svc.Acquire(context.Background(), page.AcquireRequest{Identifier: "", Depth: 2})
	assert.ErrorIs(t, err, page.ErrInvalidArgument)

	_, err = svc.Acquire(context.Background(), page.AcquireRequest{Identifier: "acme", Depth: 4})
	assert.ErrorIs(t, err, page.ErrInvalidDepth)

	_, err = svc.Acquire(context.Background(), page.AcquireRequest{Identifier: "acme", Depth: -1})
	assert.ErrorIs(t, err, page.ErrInvalidDepth)
}

func TestAcquireReplacesNotAppends(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestAcquisition(repo, nil, newFakeCache())

	for i := 0; i < 3; i++ {
		_, err := svc.Acquire(context.Background(), page.AcquireRequest{Identifier: "acme-corp", Depth: 3})
		require.NoError(t, err)
	}

	posts, total, err := repo.GetPosts(context.Background(), "acme-corp", page.ListPostsQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(15), total, "re-acquisition must replace posts, not accumulate")
	assert.Len(t, posts, 15)

	// The follower trend is the one append-only series.
	history, err := repo.GetFollowerHistory(context.Background(), "acme-corp")
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestAcquireInvalidatesCaches(t *testing.T) {
	c := newFakeCache()
	svc := newTestAcquisition(newFakeRepo(), nil, c)

	_, err := svc.Acquire(context.Background(), page.AcquireRequest{Identifier: "acme-corp", Depth: 1})
	require.NoError(t, err)

	assert.Contains(t, c.deleted, "page_detail:acme-corp")
	assert.Contains(t, c.deleted, "analytics:acme-corp")
}

func TestAcquireNormalizesIdentifier(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestAcquisition(repo, nil, newFakeCache())

	resp, err := svc.Acquire(context.Background(), page.AcquireRequest{Identifier: "  Acme-Corp  ", Depth: 1})
	require.NoError(t, err)
	assert.Equal(t, "acme-corp", resp.PageID)
}

func TestAcquireConcurrentSameIdentifier(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestAcquisition(repo, nil, newFakeCache())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Acquire(context.Background(), page.AcquireRequest{Identifier: "acme-corp", Depth: 3})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// All eight complete, each replacing the previous set wholesale.
	_, total, err := repo.GetPosts(context.Background(), "acme-corp", page.ListPostsQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
}

func TestAcquireFetchRunsOutsideIdentifierLock(t *testing.T) {
	repo := newFakeRepo()
	provider := &slowProvider{delay: 200 * time.Millisecond}
	svc := newTestAcquisition(repo, provider, newFakeCache())

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := svc.Acquire(context.Background(), page.AcquireRequest{Identifier: "acme-corp", Depth: 2})
			assert.NoError(t, err)
			assert.Equal(t, page.SourceSynthetic, resp.Source)
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, provider.maxInFlight,
		"slow fetches for the same identifier must overlap; only generate+persist serialize")

	_, total, err := repo.GetPosts(context.Background(), "acme-corp", page.ListPostsQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
}

func TestAcquireSurfacesStorageFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.failUpsert = true
	svc := newTestAcquisition(repo, nil, newFakeCache())

	_, err := svc.Acquire(context.Background(), page.AcquireRequest{Identifier: "acme-corp", Depth: 1})
	assert.ErrorIs(t, err, page.ErrAcquisitionFailed)
}
