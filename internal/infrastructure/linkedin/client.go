package linkedin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"page-insights-backend/internal/config"
	"page-insights-backend/internal/domains/page"
	"page-insights-backend/pkg/logger"
)

const maxResponseBytes = 4 << 20

// Client fetches public company pages, optionally routing through
// ScraperAPI when a key is configured. It implements page.LiveProvider.
type Client struct {
	cfg        config.LinkedInConfig
	httpClient *http.Client
}

func NewClient(cfg config.LinkedInConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.FetchTimeout,
		},
	}
}

var _ page.LiveProvider = (*Client)(nil)

// FetchPage downloads and parses one company page. Posts and people are
// not fetched live; the public pages do not expose them reliably, so the
// acquisition layer fills those in.
func (c *Client) FetchPage(ctx context.Context, identifier string, depth page.Depth) (*page.LiveSnapshot, error) {
	pageURL := fmt.Sprintf("%s/company/%s", c.cfg.BaseURL, url.PathEscape(identifier))

	htmlText, err := c.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	details := ParsePage(htmlText)
	if details.Name == "" || details.FollowersCount == 0 {
		return nil, fmt.Errorf("page %s: no usable data in response", identifier)
	}

	logger.Debug(fmt.Sprintf("live fetch succeeded for %s: %d followers",
		identifier, details.FollowersCount))

	p := page.Page{
		PageID:         identifier,
		Name:           details.Name,
		URL:            pageURL,
		FollowersCount: details.FollowersCount,
		EmployeesCount: details.EmployeesCount,
		Source:         page.SourceLive,
	}
	if details.Description != "" {
		p.Description = &details.Description
	}
	if details.ProfilePictureURL != "" {
		p.ProfilePictureURL = &details.ProfilePictureURL
	}
	if details.Industry != "" {
		p.Industry = &details.Industry
	}
	if details.Headquarters != "" {
		p.Headquarters = &details.Headquarters
	}
	if details.Website != "" {
		p.Website = &details.Website
	}
	if details.FoundedYear != 0 {
		p.FoundedYear = &details.FoundedYear
	}

	return &page.LiveSnapshot{Page: p}, nil
}

func (c *Client) fetch(ctx context.Context, pageURL string) (string, error) {
	target := pageURL
	if c.cfg.ScraperAPIKey != "" {
		// Route through the rendering proxy to avoid auth walls.
		q := url.Values{}
		q.Set("api_key", c.cfg.ScraperAPIKey)
		q.Set("url", pageURL)
		target = c.cfg.ScraperAPIURL + "/?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	htmlText := string(body)
	if looksLikeAuthWall(htmlText) {
		return "", fmt.Errorf("fetch %s: blocked by auth wall", pageURL)
	}
	return htmlText, nil
}

func looksLikeAuthWall(htmlText string) bool {
	lower := strings.ToLower(htmlText)
	return strings.Contains(lower, "authwall") ||
		strings.Contains(lower, "join linkedin") && !strings.Contains(lower, "followers")
}

// WithTimeout returns a copy using a different fetch deadline; used by the
// worker which tolerates slower fetches than the API path.
func (c *Client) WithTimeout(d time.Duration) *Client {
	cp := *c
	cp.httpClient = &http.Client{Timeout: d}
	return &cp
}
