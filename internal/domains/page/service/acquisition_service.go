package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"page-insights-backend/internal/domains/page"
	"page-insights-backend/internal/domains/page/synth"
	"page-insights-backend/pkg/cache"
	"page-insights-backend/pkg/logger"
)

// AcquisitionOptions tunes the synthetic fallback volume and the live
// fetch deadline.
type AcquisitionOptions struct {
	FetchTimeout     time.Duration
	PostsPerPage     int
	FollowersPerPage int
	EmployeesPerPage int
	CommentsPerPost  int
}

func (o *AcquisitionOptions) applyDefaults() {
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = 30 * time.Second
	}
	if o.PostsPerPage <= 0 {
		o.PostsPerPage = 15
	}
	if o.FollowersPerPage <= 0 {
		o.FollowersPerPage = 25
	}
	if o.EmployeesPerPage <= 0 {
		o.EmployeesPerPage = 20
	}
	if o.CommentsPerPost <= 0 {
		o.CommentsPerPost = 3
	}
}

type acquisitionService struct {
	repo     page.Repository
	provider page.LiveProvider // nil = synthetic only
	media    page.MediaStore   // nil = no mirroring
	cache    cache.Cache
	clock    page.Clock
	opts     AcquisitionOptions

	// One mutex per identifier so concurrent acquisitions of the same
	// page serialize instead of racing, while distinct pages proceed in
	// parallel.
	mu    sync.Mutex
	locks map[string]*sync.Mutex

	// The shared rand source is not goroutine safe.
	genMu sync.Mutex
	gen   *synth.Generator
}

// NewAcquisitionService wires the acquire-or-synthesize pipeline. rng may
// be nil in production; tests inject a seeded source.
func NewAcquisitionService(
	repo page.Repository,
	provider page.LiveProvider,
	media page.MediaStore,
	c cache.Cache,
	clock page.Clock,
	rng *rand.Rand,
	opts AcquisitionOptions,
) page.AcquisitionService {
	opts.applyDefaults()
	if clock == nil {
		clock = page.SystemClock{}
	}
	return &acquisitionService{
		repo:     repo,
		provider: provider,
		media:    media,
		cache:    c,
		clock:    clock,
		opts:     opts,
		locks:    make(map[string]*sync.Mutex),
		gen:      synth.NewGenerator(rng),
	}
}

// Acquire runs the full pipeline for one identifier: live fetch, synthetic
// fallback on any live failure, atomic persistence, cache invalidation.
func (s *acquisitionService) Acquire(ctx context.Context, req page.AcquireRequest) (*page.AcquireResp, error) {
	identifier := strings.TrimSpace(strings.ToLower(req.Identifier))
	if identifier == "" {
		return nil, fmt.Errorf("%w: identifier must not be empty", page.ErrInvalidArgument)
	}
	if req.Depth == 0 {
		req.Depth = int(page.DepthPeople)
	}
	if req.Depth < 1 || req.Depth > 3 {
		return nil, page.ErrInvalidDepth
	}
	depth := page.Depth(req.Depth)

	// The live fetch runs outside the identifier lock: a slow upstream
	// must not stall a competing acquisition of the same page. The fetch
	// carries its own deadline and degrades to nil on any failure.
	live := s.fetchLive(ctx, identifier, depth)

	// Serialize concurrent acquisitions of the same identifier. The lock
	// covers generation and persistence only.
	lock := s.lockFor(identifier)
	lock.Lock()
	defer lock.Unlock()

	now := s.clock.Now().UTC()

	var snapshot page.LiveSnapshot
	source := page.SourceLive
	if live != nil {
		snapshot = *live
	} else {
		snapshot = s.synthesize(identifier, depth, now)
		source = page.SourceSynthetic
	}

	p := snapshot.Page
	p.Source = source
	p.UpdatedAt = now
	p.LastAcquiredAt = &now

	var posts []page.Post
	var people []page.PersonProfile
	var comments []page.Comment

	if depth >= page.DepthPosts {
		posts = snapshot.Posts
		if len(posts) == 0 {
			// Live fetches often yield the page profile but no readable
			// posts. Synthesize the post set against the real follower
			// count so the tiering stays truthful.
			s.genMu.Lock()
			posts, _ = s.gen.Posts(&p, s.opts.PostsPerPage, now)
			s.genMu.Unlock()
		}
		if req.WithComments {
			s.genMu.Lock()
			comments = s.gen.Comments(posts, s.opts.CommentsPerPost, now)
			s.genMu.Unlock()
		}
	}
	if depth >= page.DepthPeople {
		people = snapshot.People
		if len(people) == 0 {
			s.genMu.Lock()
			people = append(
				s.gen.Followers(&p, s.opts.FollowersPerPage, now),
				s.gen.Employees(&p, s.opts.EmployeesPerPage, now)...)
			s.genMu.Unlock()
		}
	}

	s.mirrorProfilePicture(ctx, &p)

	if err := s.repo.UpsertPage(ctx, &p, posts, comments, people); err != nil {
		logger.Error("acquisition persistence failed", err)
		return nil, fmt.Errorf("%w: %v", page.ErrAcquisitionFailed, err)
	}

	s.invalidate(ctx, identifier)

	logger.Info("page acquired", map[string]interface{}{
		"page_id": identifier,
		"source":  string(source),
		"depth":   req.Depth,
		"posts":   len(posts),
		"people":  len(people),
	})

	return &page.AcquireResp{
		PageID:       identifier,
		Source:       source,
		Depth:        req.Depth,
		PostsCount:   len(posts),
		PeopleCount:  len(people),
		CommentCount: len(comments),
		AcquiredAt:   now,
	}, nil
}

// fetchLive tries the live provider under its own deadline. Any failure,
// timeouts included, returns nil and the caller falls back to synthesis;
// callers only learn which source won through the Source field.
func (s *acquisitionService) fetchLive(ctx context.Context, identifier string, depth page.Depth) *page.LiveSnapshot {
	if s.provider == nil {
		return nil
	}
	fetchCtx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	snapshot, err := s.provider.FetchPage(fetchCtx, identifier, depth)
	cancel()

	if err != nil {
		logger.Warn("live fetch failed, falling back to synthesis", map[string]interface{}{
			"page_id": identifier,
			"error":   err.Error(),
		})
		return nil
	}
	if snapshot == nil || snapshot.Page.Name == "" {
		return nil
	}
	return snapshot
}

func (s *acquisitionService) synthesize(identifier string, depth page.Depth, now time.Time) page.LiveSnapshot {
	s.genMu.Lock()
	defer s.genMu.Unlock()

	p := s.gen.Page(identifier, now)

	var snapshot page.LiveSnapshot
	snapshot.Page = p

	if depth >= page.DepthPosts {
		posts, err := s.gen.Posts(&p, s.opts.PostsPerPage, now)
		if err != nil {
			// Synthetic metrics can only fail on a negative follower
			// count, which the generator never produces.
			logger.Error("post synthesis failed", err)
		}
		snapshot.Posts = posts
	}
	if depth >= page.DepthPeople {
		snapshot.People = append(
			s.gen.Followers(&p, s.opts.FollowersPerPage, now),
			s.gen.Employees(&p, s.opts.EmployeesPerPage, now)...)
	}
	return snapshot
}

// mirrorProfilePicture copies the remote picture into our object storage.
// Best effort: a mirror failure never fails the acquisition.
func (s *acquisitionService) mirrorProfilePicture(ctx context.Context, p *page.Page) {
	if s.media == nil || p.ProfilePictureURL == nil || *p.ProfilePictureURL == "" {
		return
	}
	objectName := fmt.Sprintf("pages/%s/profile.jpg", p.PageID)
	url, err := s.media.MirrorFromURL(ctx, *p.ProfilePictureURL, objectName)
	if err != nil {
		logger.Warn("profile picture mirror failed", map[string]interface{}{
			"page_id": p.PageID,
			"error":   err.Error(),
		})
		return
	}
	p.MirroredPictureURL = &url
}

func (s *acquisitionService) invalidate(ctx context.Context, pageID string) {
	if s.cache == nil {
		return
	}
	keys := []string{
		fmt.Sprintf("page_detail:%s", pageID),
		fmt.Sprintf("analytics:%s", pageID),
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("cache invalidation failed", map[string]interface{}{
			"page_id": pageID,
			"error":   err.Error(),
		})
	}
}

func (s *acquisitionService) lockFor(identifier string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.locks[identifier]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[identifier] = l
	return l
}
