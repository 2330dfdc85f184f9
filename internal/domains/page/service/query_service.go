package service

import (
	"context"
	"fmt"
	"time"

	"page-insights-backend/internal/domains/page"
	"page-insights-backend/pkg/cache"
	"page-insights-backend/pkg/logger"
)

type queryService struct {
	repo          page.Repository
	cache         cache.Cache
	pageDetailTTL time.Duration
}

// NewQueryService serves all reads over previously acquired pages.
func NewQueryService(repo page.Repository, c cache.Cache, pageDetailTTL time.Duration) page.QueryService {
	if pageDetailTTL <= 0 {
		pageDetailTTL = 5 * time.Minute
	}
	return &queryService{repo: repo, cache: c, pageDetailTTL: pageDetailTTL}
}

func (s *queryService) GetPage(ctx context.Context, pageID string, includePosts, includePeople bool) (*page.PageDetailResp, error) {
	// Only the bare detail is cached; include variants go to the database
	// so the cache key space stays small.
	cacheKey := fmt.Sprintf("page_detail:%s", pageID)
	if s.cache != nil && !includePosts && !includePeople {
		var cached page.PageDetailResp
		if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			return &cached, nil
		}
	}

	p, err := s.repo.GetPage(ctx, pageID)
	if err != nil {
		return nil, err
	}

	resp := &page.PageDetailResp{Page: *p}

	if includePosts {
		q := page.ListPostsQuery{}
		q.Normalize()
		q.PerPage = 100
		posts, _, err := s.repo.GetPosts(ctx, pageID, q)
		if err != nil {
			return nil, err
		}
		resp.Posts = posts
	}

	if includePeople {
		q := page.ListQuery{}
		q.Normalize()
		q.PerPage = 100
		followers, _, err := s.repo.GetPeople(ctx, pageID, page.RoleFollower, q)
		if err != nil {
			return nil, err
		}
		employees, _, err := s.repo.GetPeople(ctx, pageID, page.RoleEmployee, q)
		if err != nil {
			return nil, err
		}
		resp.Followers = followers
		resp.Employees = employees
	}

	if s.cache != nil && !includePosts && !includePeople {
		if err := s.cache.Set(ctx, cacheKey, resp, s.pageDetailTTL); err != nil {
			logger.Warn("page detail cache write failed", map[string]interface{}{
				"page_id": pageID,
				"error":   err.Error(),
			})
		}
	}

	return resp, nil
}

func (s *queryService) ListPages(ctx context.Context, q page.ListPagesQuery) ([]page.PageSummaryResp, page.PaginationMeta, error) {
	q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, page.PaginationMeta{}, fmt.Errorf("%w: %v", page.ErrInvalidArgument, err)
	}

	pages, total, err := s.repo.ListPages(ctx, q)
	if err != nil {
		return nil, page.PaginationMeta{}, err
	}
	return page.ToPageSummaryRespList(pages), page.NewPaginationMeta(total, q.Page, q.PerPage), nil
}

func (s *queryService) GetPosts(ctx context.Context, pageID string, q page.ListPostsQuery) ([]page.Post, page.PaginationMeta, error) {
	q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, page.PaginationMeta{}, fmt.Errorf("%w: %v", page.ErrInvalidArgument, err)
	}

	if err := s.requirePage(ctx, pageID); err != nil {
		return nil, page.PaginationMeta{}, err
	}

	posts, total, err := s.repo.GetPosts(ctx, pageID, q)
	if err != nil {
		return nil, page.PaginationMeta{}, err
	}
	return posts, page.NewPaginationMeta(total, q.Page, q.PerPage), nil
}

func (s *queryService) GetPostComments(ctx context.Context, pageID, postID string, q page.ListQuery) ([]page.Comment, page.PaginationMeta, error) {
	q.Normalize()

	if err := s.requirePage(ctx, pageID); err != nil {
		return nil, page.PaginationMeta{}, err
	}

	comments, total, err := s.repo.GetPostComments(ctx, pageID, postID, q)
	if err != nil {
		return nil, page.PaginationMeta{}, err
	}
	return comments, page.NewPaginationMeta(total, q.Page, q.PerPage), nil
}

func (s *queryService) GetPeople(ctx context.Context, pageID string, role page.Role, q page.ListQuery) ([]page.PersonProfile, page.PaginationMeta, error) {
	q.Normalize()

	if err := s.requirePage(ctx, pageID); err != nil {
		return nil, page.PaginationMeta{}, err
	}

	people, total, err := s.repo.GetPeople(ctx, pageID, role, q)
	if err != nil {
		return nil, page.PaginationMeta{}, err
	}
	return people, page.NewPaginationMeta(total, q.Page, q.PerPage), nil
}

func (s *queryService) requirePage(ctx context.Context, pageID string) error {
	exists, err := s.repo.PageExists(ctx, pageID)
	if err != nil {
		return err
	}
	if !exists {
		return page.ErrPageNotFound
	}
	return nil
}
