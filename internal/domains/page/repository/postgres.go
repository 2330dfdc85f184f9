package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"page-insights-backend/internal/domains/page"
	"page-insights-backend/pkg/database"
)

const pageColumns = `id, page_id, name, url, description, website, industry,
	company_size, headquarters, founded_year, specialties,
	profile_picture_url, mirrored_picture_url,
	followers_count, employees_count, source,
	created_at, updated_at, last_acquired_at`

const postColumns = `id, post_id, page_id, content, image_url,
	likes_count, comments_count, shares_count, views_count,
	engagement_rate, posted_at, created_at`

const personColumns = `id, profile_id, page_id, role, first_name, last_name,
	headline, location, current_position, current_company,
	connections_count, followers_count, created_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns the pgx-backed page.Repository.
func NewPostgresRepository(pool *pgxpool.Pool) page.Repository {
	return &postgresRepository{pool: pool}
}

// ==========================================
// Write path
// ==========================================

func (r *postgresRepository) UpsertPage(ctx context.Context, p *page.Page, posts []page.Post, comments []page.Comment, people []page.PersonProfile) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := upsertPageRow(ctx, tx, p); err != nil {
			return err
		}

		// Replace wholesale: stale posts from a previous acquisition must
		// not survive alongside the new set.
		for _, table := range []string{"posts", "post_comments", "page_people"} {
			if _, err := tx.Exec(ctx,
				fmt.Sprintf("DELETE FROM %s WHERE page_id = $1", table), p.PageID); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		if err := insertPosts(ctx, tx, posts); err != nil {
			return err
		}
		if err := insertComments(ctx, tx, comments); err != nil {
			return err
		}
		if err := insertPeople(ctx, tx, people); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO page_follower_history (page_id, followers, recorded_at)
			VALUES ($1, $2, $3)`,
			p.PageID, p.FollowersCount, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to append follower sample: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	return nil
}

func upsertPageRow(ctx context.Context, tx pgx.Tx, p *page.Page) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO pages (
			page_id, name, url, description, website, industry,
			company_size, headquarters, founded_year, specialties,
			profile_picture_url, mirrored_picture_url,
			followers_count, employees_count, source,
			created_at, updated_at, last_acquired_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $16, $16
		)
		ON CONFLICT (page_id) DO UPDATE SET
			name                 = EXCLUDED.name,
			url                  = EXCLUDED.url,
			description          = EXCLUDED.description,
			website              = EXCLUDED.website,
			industry             = EXCLUDED.industry,
			company_size         = EXCLUDED.company_size,
			headquarters         = EXCLUDED.headquarters,
			founded_year         = EXCLUDED.founded_year,
			specialties          = EXCLUDED.specialties,
			profile_picture_url  = EXCLUDED.profile_picture_url,
			mirrored_picture_url = EXCLUDED.mirrored_picture_url,
			followers_count      = EXCLUDED.followers_count,
			employees_count      = EXCLUDED.employees_count,
			source               = EXCLUDED.source,
			updated_at           = EXCLUDED.updated_at,
			last_acquired_at     = EXCLUDED.last_acquired_at
		RETURNING id, created_at`,
		p.PageID, p.Name, p.URL, p.Description, p.Website, p.Industry,
		p.CompanySize, p.Headquarters, p.FoundedYear, p.Specialties,
		p.ProfilePictureURL, p.MirroredPictureURL,
		p.FollowersCount, p.EmployeesCount, p.Source,
		p.UpdatedAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert page: %w", err)
	}
	return nil
}

func insertPosts(ctx context.Context, tx pgx.Tx, posts []page.Post) error {
	for i := range posts {
		p := &posts[i]
		_, err := tx.Exec(ctx, `
			INSERT INTO posts (
				post_id, page_id, content, image_url,
				likes_count, comments_count, shares_count, views_count,
				engagement_rate, posted_at, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			p.PostID, p.PageID, p.Content, p.ImageURL,
			p.LikesCount, p.CommentsCount, p.SharesCount, p.ViewsCount,
			p.EngagementRate, p.PostedAt, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert post %s: %w", p.PostID, err)
		}
	}
	return nil
}

func insertComments(ctx context.Context, tx pgx.Tx, comments []page.Comment) error {
	for i := range comments {
		c := &comments[i]
		_, err := tx.Exec(ctx, `
			INSERT INTO post_comments (comment_id, post_id, page_id, author_name, content, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			c.CommentID, c.PostID, c.PageID, c.AuthorName, c.Content, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert comment %s: %w", c.CommentID, err)
		}
	}
	return nil
}

func insertPeople(ctx context.Context, tx pgx.Tx, people []page.PersonProfile) error {
	for i := range people {
		p := &people[i]
		_, err := tx.Exec(ctx, `
			INSERT INTO page_people (
				profile_id, page_id, role, first_name, last_name,
				headline, location, current_position, current_company,
				connections_count, followers_count, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			p.ProfileID, p.PageID, p.Role, p.FirstName, p.LastName,
			p.Headline, p.Location, p.CurrentPosition, p.CurrentCompany,
			p.ConnectionsCount, p.FollowersCount, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert profile %s: %w", p.ProfileID, err)
		}
	}
	return nil
}

// ==========================================
// Read path
// ==========================================

func (r *postgresRepository) GetPage(ctx context.Context, pageID string) (*page.Page, error) {
	row := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM pages WHERE page_id = $1", pageColumns), pageID)

	p, err := scanPage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, page.ErrPageNotFound
		}
		return nil, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	return p, nil
}

func (r *postgresRepository) PageExists(ctx context.Context, pageID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM pages WHERE page_id = $1)", pageID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	return exists, nil
}

func (r *postgresRepository) ListPages(ctx context.Context, q page.ListPagesQuery) ([]page.Page, int64, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	arg := 0

	next := func(v interface{}) string {
		arg++
		args = append(args, v)
		return fmt.Sprintf("$%d", arg)
	}

	if q.Name != "" {
		where += " AND name ILIKE " + next("%"+q.Name+"%")
	}
	if q.Industry != "" {
		where += " AND industry ILIKE " + next(q.Industry)
	}
	if q.MinFollowers != nil {
		where += " AND followers_count >= " + next(*q.MinFollowers)
	}
	if q.MaxFollowers != nil {
		where += " AND followers_count <= " + next(*q.MaxFollowers)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM pages"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}

	query := fmt.Sprintf("SELECT %s FROM pages%s ORDER BY followers_count DESC LIMIT %s OFFSET %s",
		pageColumns, where, next(q.PerPage), next((q.Page-1)*q.PerPage))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	defer rows.Close()

	var pages []page.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", page.ErrStorage, err)
		}
		pages = append(pages, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	return pages, total, nil
}

func (r *postgresRepository) GetPosts(ctx context.Context, pageID string, q page.ListPostsQuery) ([]page.Post, int64, error) {
	var order string
	switch q.SortBy {
	case page.SortPopular:
		order = "likes_count DESC, posted_at DESC"
	case page.SortEngagement:
		order = "engagement_rate DESC, posted_at DESC"
	default:
		order = "posted_at DESC"
	}

	var total int64
	if err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM posts WHERE page_id = $1", pageID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		"SELECT %s FROM posts WHERE page_id = $1 ORDER BY %s LIMIT $2 OFFSET $3",
		postColumns, order),
		pageID, q.PerPage, (q.Page-1)*q.PerPage)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	defer rows.Close()

	var posts []page.Post
	for rows.Next() {
		var p page.Post
		if err := rows.Scan(
			&p.ID, &p.PostID, &p.PageID, &p.Content, &p.ImageURL,
			&p.LikesCount, &p.CommentsCount, &p.SharesCount, &p.ViewsCount,
			&p.EngagementRate, &p.PostedAt, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", page.ErrStorage, err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	return posts, total, nil
}

func (r *postgresRepository) GetPostComments(ctx context.Context, pageID, postID string, q page.ListQuery) ([]page.Comment, int64, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM posts WHERE page_id = $1 AND post_id = $2)",
		pageID, postID).Scan(&exists)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	if !exists {
		return nil, 0, page.ErrPostNotFound
	}

	var total int64
	if err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM post_comments WHERE page_id = $1 AND post_id = $2",
		pageID, postID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, comment_id, post_id, page_id, author_name, content, created_at
		FROM post_comments
		WHERE page_id = $1 AND post_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		pageID, postID, q.PerPage, q.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	defer rows.Close()

	var comments []page.Comment
	for rows.Next() {
		var c page.Comment
		if err := rows.Scan(&c.ID, &c.CommentID, &c.PostID, &c.PageID,
			&c.AuthorName, &c.Content, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", page.ErrStorage, err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	return comments, total, nil
}

func (r *postgresRepository) GetPeople(ctx context.Context, pageID string, role page.Role, q page.ListQuery) ([]page.PersonProfile, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM page_people WHERE page_id = $1 AND role = $2",
		pageID, role).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(
		"SELECT %s FROM page_people WHERE page_id = $1 AND role = $2 ORDER BY id LIMIT $3 OFFSET $4",
		personColumns),
		pageID, role, q.PerPage, q.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	defer rows.Close()

	var people []page.PersonProfile
	for rows.Next() {
		var p page.PersonProfile
		if err := rows.Scan(
			&p.ID, &p.ProfileID, &p.PageID, &p.Role, &p.FirstName, &p.LastName,
			&p.Headline, &p.Location, &p.CurrentPosition, &p.CurrentCompany,
			&p.ConnectionsCount, &p.FollowersCount, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", page.ErrStorage, err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	return people, total, nil
}

func (r *postgresRepository) GetFollowerHistory(ctx context.Context, pageID string) ([]page.FollowerSample, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT recorded_at, followers
		FROM page_follower_history
		WHERE page_id = $1
		ORDER BY recorded_at ASC`, pageID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	defer rows.Close()

	var samples []page.FollowerSample
	for rows.Next() {
		var s page.FollowerSample
		if err := rows.Scan(&s.RecordedAt, &s.Followers); err != nil {
			return nil, fmt.Errorf("%w: %v", page.ErrStorage, err)
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	return samples, nil
}

// ==========================================
// Summary and maintenance
// ==========================================

func (r *postgresRepository) SaveSummary(ctx context.Context, pageID, summary string, generatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE pages SET summary = $2, summary_generated_at = $3, updated_at = now()
		WHERE page_id = $1`,
		pageID, summary, generatedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	if tag.RowsAffected() == 0 {
		return page.ErrPageNotFound
	}
	return nil
}

func (r *postgresRepository) GetSummary(ctx context.Context, pageID string) (*string, *time.Time, error) {
	var summary *string
	var generatedAt *time.Time
	err := r.pool.QueryRow(ctx,
		"SELECT summary, summary_generated_at FROM pages WHERE page_id = $1",
		pageID).Scan(&summary, &generatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, page.ErrPageNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	return summary, generatedAt, nil
}

func (r *postgresRepository) ListStalePages(ctx context.Context, maxAge time.Duration, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT page_id FROM pages
		WHERE last_acquired_at IS NULL OR last_acquired_at < now() - make_interval(secs => $1)
		ORDER BY last_acquired_at ASC NULLS FIRST
		LIMIT $2`,
		maxAge.Seconds(), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %v", page.ErrStorage, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", page.ErrStorage, err)
	}
	return ids, nil
}

func scanPage(row pgx.Row) (*page.Page, error) {
	var p page.Page
	err := row.Scan(
		&p.ID, &p.PageID, &p.Name, &p.URL, &p.Description, &p.Website, &p.Industry,
		&p.CompanySize, &p.Headquarters, &p.FoundedYear, &p.Specialties,
		&p.ProfilePictureURL, &p.MirroredPictureURL,
		&p.FollowersCount, &p.EmployeesCount, &p.Source,
		&p.CreatedAt, &p.UpdatedAt, &p.LastAcquiredAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
