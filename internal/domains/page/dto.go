package page

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"page-insights-backend/internal/shared/utils"
)

// ==========================================
// Request DTOs
// ==========================================

// AcquireRequest triggers data acquisition for one page identifier.
type AcquireRequest struct {
	Identifier   string `json:"identifier"`
	Depth        int    `json:"depth"`
	WithComments bool   `json:"with_comments"`
}

func (r AcquireRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier,
			validation.Required.Error("identifier is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Depth,
			validation.Min(1).Error("depth must be between 1 and 3"),
			validation.Max(3).Error("depth must be between 1 and 3"),
		),
	)
}

// ListPagesQuery carries the optional filters for the page listing.
// Followers is the compact range form ("1k-10k"); it expands into the
// absolute bounds during Normalize.
type ListPagesQuery struct {
	Name         string `form:"name"`
	Industry     string `form:"industry"`
	Followers    string `form:"followers"`
	MinFollowers *int64 `form:"min_followers"`
	MaxFollowers *int64 `form:"max_followers"`
	Page         int    `form:"page"`
	PerPage      int    `form:"per_page"`
}

func (q *ListPagesQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 || q.PerPage > 100 {
		q.PerPage = 20
	}
	// Explicit bounds win over the compact form.
	if q.Followers != "" && q.MinFollowers == nil && q.MaxFollowers == nil {
		if min, max, ok := utils.ParseFollowerRange(q.Followers); ok {
			q.MinFollowers, q.MaxFollowers = &min, &max
		}
	}
}

func (q ListPagesQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.MinFollowers, validation.By(nonNegativeInt64)),
		validation.Field(&q.MaxFollowers, validation.By(nonNegativeInt64)),
	)
}

func nonNegativeInt64(value interface{}) error {
	v, _ := value.(*int64)
	if v != nil && *v < 0 {
		return validation.NewError("validation_min", "must be non-negative")
	}
	return nil
}

// Valid sort orders for the post listing.
const (
	SortRecent     = "recent"
	SortPopular    = "popular"
	SortEngagement = "engagement"
)

// ListPostsQuery carries pagination and ordering for a page's posts.
type ListPostsQuery struct {
	SortBy  string `form:"sort_by"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

func (q *ListPostsQuery) Normalize() {
	if q.SortBy == "" {
		q.SortBy = SortRecent
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 || q.PerPage > 100 {
		q.PerPage = 20
	}
}

func (q ListPostsQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.SortBy,
			validation.In(SortRecent, SortPopular, SortEngagement).
				Error("sort_by must be one of: recent, popular, engagement"),
		),
	)
}

// ListQuery is plain pagination for people and comment listings.
type ListQuery struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 || q.PerPage > 100 {
		q.PerPage = 20
	}
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// ==========================================
// Response DTOs
// ==========================================

// PageSummaryResp is the compact page representation used in listings.
type PageSummaryResp struct {
	PageID         string  `json:"page_id"`
	Name           string  `json:"name"`
	URL            string  `json:"url"`
	Industry       *string `json:"industry,omitempty"`
	FollowersCount int64   `json:"followers_count"`
	EmployeesCount int64   `json:"employees_count"`
	Source         Source  `json:"source"`
}

// PageDetailResp is the full page representation, with posts and people
// attached according to the requested include flags.
type PageDetailResp struct {
	Page
	Posts     []Post          `json:"posts,omitempty"`
	Followers []PersonProfile `json:"followers,omitempty"`
	Employees []PersonProfile `json:"employees,omitempty"`
}

// AcquireResp reports the result of an acquisition.
type AcquireResp struct {
	PageID       string    `json:"page_id"`
	Source       Source    `json:"source"`
	Depth        int       `json:"depth"`
	PostsCount   int       `json:"posts_count"`
	PeopleCount  int       `json:"people_count"`
	CommentCount int       `json:"comments_count"`
	AcquiredAt   time.Time `json:"acquired_at"`
}

// PaginationMeta is attached to every list response.
type PaginationMeta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Pages   int   `json:"pages"`
}

func NewPaginationMeta(total int64, page, perPage int) PaginationMeta {
	pages := int(total) / perPage
	if int(total)%perPage != 0 {
		pages++
	}
	return PaginationMeta{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pages,
	}
}

func ToPageSummaryResp(p *Page) PageSummaryResp {
	return PageSummaryResp{
		PageID:         p.PageID,
		Name:           p.Name,
		URL:            p.URL,
		Industry:       p.Industry,
		FollowersCount: p.FollowersCount,
		EmployeesCount: p.EmployeesCount,
		Source:         p.Source,
	}
}

func ToPageSummaryRespList(pages []Page) []PageSummaryResp {
	out := make([]PageSummaryResp, 0, len(pages))
	for i := range pages {
		out = append(out, ToPageSummaryResp(&pages[i]))
	}
	return out
}
