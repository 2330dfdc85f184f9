package insight

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"page-insights-backend/internal/config"
	"page-insights-backend/internal/domains/page"
	"page-insights-backend/internal/shared/utils"
)

// GeminiSummarizer turns a page's analytics into a short natural-language
// summary. Without an API key it stays disabled and the rest of the system
// works normally.
type GeminiSummarizer struct {
	client *genai.Client
	model  string
}

func NewGeminiSummarizer(ctx context.Context, cfg config.GeminiConfig) (*GeminiSummarizer, error) {
	if cfg.APIKey == "" {
		return &GeminiSummarizer{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiSummarizer{client: client, model: cfg.Model}, nil
}

var _ page.Summarizer = (*GeminiSummarizer)(nil)

func (s *GeminiSummarizer) Enabled() bool {
	return s.client != nil
}

func (s *GeminiSummarizer) Summarize(ctx context.Context, p *page.Page, snapshot *page.AnalyticsSnapshot) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("summarizer is disabled")
	}

	prompt := buildPrompt(p, snapshot)

	result, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if result == nil || len(result.Candidates) == 0 ||
		result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty model response")
	}

	text := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}

func buildPrompt(p *page.Page, snapshot *page.AnalyticsSnapshot) string {
	var b strings.Builder

	b.WriteString("You are a social media analyst. Write a concise summary ")
	b.WriteString("(3-5 sentences) of this company page's performance for a ")
	b.WriteString("marketing team. Plain prose, no bullet points.\n\n")

	fmt.Fprintf(&b, "Company: %s\n", p.Name)
	if p.Industry != nil {
		fmt.Fprintf(&b, "Industry: %s\n", *p.Industry)
	}
	fmt.Fprintf(&b, "Followers: %s\n", utils.FormatLargeNumber(p.FollowersCount))
	fmt.Fprintf(&b, "Posts analyzed: %d\n", snapshot.TotalPosts)
	fmt.Fprintf(&b, "Average engagement rate: %.2f%%\n", snapshot.AverageEngagement)

	if best := snapshot.MostEngagedPost; best != nil {
		fmt.Fprintf(&b, "Top post (%.2f%% engagement): %s\n",
			best.EngagementRate, utils.TruncateText(best.Content, 200))
	}

	if n := len(snapshot.FollowerTrend); n >= 2 {
		first := snapshot.FollowerTrend[0]
		last := snapshot.FollowerTrend[n-1]
		fmt.Fprintf(&b, "Follower trend: %d -> %d over %d samples\n",
			first.Followers, last.Followers, n)
	}

	return b.String()
}
