package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied at startup. Statements are idempotent so repeated
// boots are safe without a migration tool.
const schema = `
CREATE TABLE IF NOT EXISTS pages (
    id                    BIGSERIAL PRIMARY KEY,
    page_id               VARCHAR(255) NOT NULL UNIQUE,
    name                  VARCHAR(255) NOT NULL,
    url                   TEXT NOT NULL,
    description           TEXT,
    website               TEXT,
    industry              VARCHAR(255),
    company_size          VARCHAR(64),
    headquarters          VARCHAR(255),
    founded_year          INT,
    specialties           TEXT[],
    profile_picture_url   TEXT,
    mirrored_picture_url  TEXT,
    followers_count       BIGINT NOT NULL DEFAULT 0,
    employees_count       BIGINT NOT NULL DEFAULT 0,
    source                VARCHAR(16) NOT NULL,
    summary               TEXT,
    summary_generated_at  TIMESTAMPTZ,
    created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
    last_acquired_at      TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_pages_industry  ON pages (industry);
CREATE INDEX IF NOT EXISTS idx_pages_followers ON pages (followers_count);
CREATE INDEX IF NOT EXISTS idx_pages_acquired  ON pages (last_acquired_at);

CREATE TABLE IF NOT EXISTS posts (
    id              BIGSERIAL PRIMARY KEY,
    post_id         VARCHAR(255) NOT NULL,
    page_id         VARCHAR(255) NOT NULL REFERENCES pages (page_id) ON DELETE CASCADE,
    content         TEXT NOT NULL,
    image_url       TEXT,
    likes_count     BIGINT NOT NULL DEFAULT 0,
    comments_count  BIGINT NOT NULL DEFAULT 0,
    shares_count    BIGINT NOT NULL DEFAULT 0,
    views_count     BIGINT NOT NULL DEFAULT 0,
    engagement_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
    posted_at       TIMESTAMPTZ NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (page_id, post_id)
);

CREATE INDEX IF NOT EXISTS idx_posts_page_posted     ON posts (page_id, posted_at DESC);
CREATE INDEX IF NOT EXISTS idx_posts_page_engagement ON posts (page_id, engagement_rate DESC);

CREATE TABLE IF NOT EXISTS post_comments (
    id          BIGSERIAL PRIMARY KEY,
    comment_id  VARCHAR(255) NOT NULL,
    post_id     VARCHAR(255) NOT NULL,
    page_id     VARCHAR(255) NOT NULL REFERENCES pages (page_id) ON DELETE CASCADE,
    author_name VARCHAR(255) NOT NULL,
    content     TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (page_id, comment_id)
);

CREATE INDEX IF NOT EXISTS idx_comments_post ON post_comments (page_id, post_id);

CREATE TABLE IF NOT EXISTS page_people (
    id                BIGSERIAL PRIMARY KEY,
    profile_id        VARCHAR(255) NOT NULL,
    page_id           VARCHAR(255) NOT NULL REFERENCES pages (page_id) ON DELETE CASCADE,
    role              VARCHAR(16) NOT NULL,
    first_name        VARCHAR(255) NOT NULL,
    last_name         VARCHAR(255) NOT NULL DEFAULT '',
    headline          TEXT NOT NULL DEFAULT '',
    location          VARCHAR(255) NOT NULL DEFAULT '',
    current_position  VARCHAR(255),
    current_company   VARCHAR(255),
    connections_count BIGINT NOT NULL DEFAULT 0,
    followers_count   BIGINT NOT NULL DEFAULT 0,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (page_id, role, profile_id)
);

CREATE INDEX IF NOT EXISTS idx_people_page_role ON page_people (page_id, role);

CREATE TABLE IF NOT EXISTS page_follower_history (
    id          BIGSERIAL PRIMARY KEY,
    page_id     VARCHAR(255) NOT NULL REFERENCES pages (page_id) ON DELETE CASCADE,
    followers   BIGINT NOT NULL,
    recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_follower_history_page ON page_follower_history (page_id, recorded_at);
`

// EnsureSchema creates the tables and indexes if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
