package page

import "time"

// Source records which acquisition path produced the stored page data.
type Source string

const (
	SourceLive      Source = "live"
	SourceSynthetic Source = "synthetic"
)

// Role distinguishes the two relationship types a PersonProfile can have
// with a page.
type Role string

const (
	RoleFollower Role = "follower"
	RoleEmployee Role = "employee"
)

// Depth is the caller-requested acquisition thoroughness.
//
//	1 = page only
//	2 = page + posts
//	3 = page + posts + people + extended analytics
type Depth int

const (
	DepthPage   Depth = 1
	DepthPosts  Depth = 2
	DepthPeople Depth = 3
)

// Page is an organization profile page. PageID is the external identifier
// and the idempotency key: re-acquiring the same identifier updates this row
// in place and replaces its posts/people wholesale.
type Page struct {
	ID                int64      `json:"-"`
	PageID            string     `json:"page_id"`
	Name              string     `json:"name"`
	URL               string     `json:"url"`
	Description       *string    `json:"description,omitempty"`
	Website           *string    `json:"website,omitempty"`
	Industry          *string    `json:"industry,omitempty"`
	CompanySize       *string    `json:"company_size,omitempty"`
	Headquarters      *string    `json:"headquarters,omitempty"`
	FoundedYear       *int       `json:"founded_year,omitempty"`
	Specialties       []string   `json:"specialties,omitempty"`
	ProfilePictureURL *string    `json:"profile_picture_url,omitempty"`
	// MirroredPictureURL points at our own object storage copy of the
	// profile picture, when the media mirror managed to fetch it.
	MirroredPictureURL *string `json:"mirrored_picture_url,omitempty"`

	FollowersCount int64 `json:"followers_count"`
	EmployeesCount int64 `json:"employees_count"`

	Source         Source     `json:"source"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	LastAcquiredAt *time.Time `json:"last_acquired_at,omitempty"`
}

// Post belongs to exactly one Page; PostID is unique within the page.
// EngagementRate is derived once at generation time by the synthesizer's
// canonical formula and never recomputed downstream.
type Post struct {
	ID       int64  `json:"-"`
	PostID   string `json:"post_id"`
	PageID   string `json:"page_id"`
	Content  string `json:"content"`
	ImageURL *string `json:"image_url,omitempty"`

	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
	SharesCount   int64 `json:"shares_count"`
	ViewsCount    int64 `json:"views_count"`

	EngagementRate float64 `json:"engagement_rate"`

	PostedAt  time.Time `json:"posted_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment belongs to exactly one Post. Comments are only present when an
// acquisition explicitly requested them.
type Comment struct {
	ID         int64     `json:"-"`
	CommentID  string    `json:"comment_id"`
	PostID     string    `json:"post_id"`
	PageID     string    `json:"page_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// PersonProfile represents a follower or an employee of a page, keyed by
// (page, role, profile id).
type PersonProfile struct {
	ID        int64  `json:"-"`
	ProfileID string `json:"profile_id"`
	PageID    string `json:"page_id"`
	Role      Role   `json:"role"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Headline  string `json:"headline"`
	Location  string `json:"location"`

	CurrentPosition *string `json:"current_position,omitempty"`
	CurrentCompany  *string `json:"current_company,omitempty"`

	ConnectionsCount int64 `json:"connections_count"`
	FollowersCount   int64 `json:"followers_count"`

	CreatedAt time.Time `json:"created_at"`
}

// FollowerSample is one point of the follower-count trend. A sample is
// appended on every acquisition event.
type FollowerSample struct {
	RecordedAt time.Time `json:"date"`
	Followers  int64     `json:"followers"`
}

// AnalyticsSnapshot is a recomputation over the page's current post set and
// follower history, not an independently mutated entity. The optional
// Summary is filled asynchronously by the summary worker job.
type AnalyticsSnapshot struct {
	PageID             string           `json:"page_id"`
	TotalPosts         int              `json:"total_posts"`
	AverageEngagement  float64          `json:"average_engagement"`
	MostEngagedPost    *Post            `json:"most_engaged_post,omitempty"`
	FollowerTrend      []FollowerSample `json:"follower_trend"`
	Summary            *string          `json:"summary,omitempty"`
	SummaryGeneratedAt *time.Time       `json:"summary_generated_at,omitempty"`
	ComputedAt         time.Time        `json:"computed_at"`
}
