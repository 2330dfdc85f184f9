package synth

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"page-insights-backend/internal/domains/page"
)

// ==========================================
// Content pools
// ==========================================

var postTemplates = []string{
	"Excited to announce our latest innovation in %s! With AI and cloud technology, we're transforming how businesses operate.",
	"Thank you to our amazing team for their dedication and hard work! Together we're building the future of %s.",
	"Strategic partnership announcement: we're joining forces with industry leaders to deliver enterprise solutions at scale. #innovation",
	"New whitepaper: Top 5 trends shaping %s in 2025. Download our insights on AI, automation, and digital transformation.",
	"Milestone moment for our community of innovators, leaders, and changemakers. Grateful for everyone who made it possible.",
	"Introducing a new platform capability designed to help enterprises scale faster. Early customers seeing 40%% efficiency gains.",
	"We're hiring across %s and beyond! Join our team to shape the future of the industry.",
	"Proud to support responsible AI. Our commitment to ethical innovation is core to everything we do.",
	"Breaking: new investment to accelerate cloud and AI infrastructure across multiple regions over the coming years.",
	"Real-time intelligence: how leading companies use modern data platforms to serve millions of users.",
}

var followerNames = []string{
	"John Smith", "Sarah Johnson", "Mike Chen", "Emma Wilson",
	"Alex Kumar", "Lisa Anderson", "James Brown", "Rachel Lee",
	"David Martinez", "Sophie Taylor", "Robert Wilson", "Maria Garcia",
	"Christopher Lee", "Jennifer Davis", "Daniel Rodriguez", "Amanda Jones",
	"Matthew Miller", "Nicole Anderson", "Andrew Thompson", "Katherine White",
}

var employeeNames = []string{
	"Alice Johnson", "Bob Smith", "Carol White", "David Brown",
	"Emma Wilson", "Frank Miller", "Grace Lee", "Henry Davis",
	"Ivy Martinez", "Jack Taylor", "Karen Anderson", "Leo Garcia",
	"Megan Johnson", "Nathan Williams", "Olivia Thomas", "Paul Jackson",
	"Quinn Roberts", "Rachel Edwards", "Samuel Collins", "Tina Stewart",
}

var positions = []string{
	"Software Engineer", "Product Manager", "Data Scientist",
	"UX/UI Designer", "Sales Manager", "Marketing Manager",
	"DevOps Engineer", "Business Analyst", "QA Engineer",
	"Team Lead", "VP Engineering", "Chief Product Officer",
}

var locations = []string{
	"San Francisco, CA", "New York, NY", "Seattle, WA",
	"Austin, TX", "Boston, MA", "Los Angeles, CA", "Chicago, IL",
}

var employerNames = []string{
	"TechCorp", "DataSystems", "CloudInnovate", "AILabs",
}

var commentTexts = []string{
	"Great insights, thanks for sharing!",
	"Congratulations to the whole team!",
	"This is exactly the direction the industry needs.",
	"Impressive work. Looking forward to trying it out.",
	"Well deserved milestone!",
	"Love seeing this kind of innovation.",
	"Very informative, saved for later.",
	"Exciting times ahead for the team!",
}

const maxPostContentLen = 500

// ==========================================
// Generator
// ==========================================

// Generator produces a full synthetic dataset for a page identifier. Page
// metadata is deterministic per identifier so repeated fallbacks for the
// same page agree with each other; posts and people are randomized through
// the injected source.
type Generator struct {
	rng   *rand.Rand
	synth *Synthesizer
}

func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng, synth: NewSynthesizer(rng)}
}

// Page builds the deterministic synthetic page profile for an identifier.
func (g *Generator) Page(identifier string, now time.Time) page.Page {
	h := fnvHash(identifier)

	name := titleCaseIdentifier(identifier)
	industry := "Technology"
	hq := "USA"
	founded := 2010
	desc := fmt.Sprintf("%s is a leading company in the technology industry, "+
		"delivering products and services to customers worldwide.", name)
	website := fmt.Sprintf("https://www.%s.com", sanitizeIdentifier(identifier))

	return page.Page{
		PageID:         identifier,
		Name:           name,
		URL:            fmt.Sprintf("https://www.linkedin.com/company/%s", identifier),
		Description:    &desc,
		Website:        &website,
		Industry:       &industry,
		Headquarters:   &hq,
		FoundedYear:    &founded,
		Specialties:    []string{"Software Development", "Cloud Computing", "Artificial Intelligence"},
		FollowersCount: 10_000 + int64(h%100_000),
		EmployeesCount: 100 + int64(h%1_000),
		Source:         page.SourceSynthetic,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Posts synthesizes n posts for the page, newest first.
func (g *Generator) Posts(p *page.Page, n int, now time.Time) ([]page.Post, error) {
	industry := "technology"
	if p.Industry != nil {
		industry = strings.ToLower(*p.Industry)
	}
	location := "multiple locations"
	if p.Headquarters != nil {
		location = *p.Headquarters
	}

	times := g.synth.PostTimes(n, now)
	posts := make([]page.Post, 0, n)
	for i := 0; i < n; i++ {
		m, err := g.synth.Metrics(p.FollowersCount)
		if err != nil {
			return nil, err
		}

		content := renderTemplate(postTemplates[g.rng.Intn(len(postTemplates))], industry, location)
		if len(content) > maxPostContentLen {
			content = content[:maxPostContentLen]
		}

		posts = append(posts, page.Post{
			PostID:         fmt.Sprintf("post_%s_%d", p.PageID, i),
			PageID:         p.PageID,
			Content:        content,
			LikesCount:     m.Likes,
			CommentsCount:  m.Comments,
			SharesCount:    m.Shares,
			ViewsCount:     m.Views,
			EngagementRate: EngagementRate(m.Likes, m.Comments, m.Shares, p.FollowersCount),
			PostedAt:       times[i],
			CreatedAt:      now,
		})
	}
	return posts, nil
}

// Comments synthesizes roughly perPost comments for each post.
func (g *Generator) Comments(posts []page.Post, perPost int, now time.Time) []page.Comment {
	var comments []page.Comment
	for _, post := range posts {
		n := 1 + g.rng.Intn(perPost*2) // average around perPost
		for i := 0; i < n; i++ {
			comments = append(comments, page.Comment{
				CommentID:  fmt.Sprintf("comment_%s_%s", post.PostID, uuid.NewString()[:8]),
				PostID:     post.PostID,
				PageID:     post.PageID,
				AuthorName: followerNames[g.rng.Intn(len(followerNames))],
				Content:    commentTexts[g.rng.Intn(len(commentTexts))],
				CreatedAt:  now,
			})
		}
	}
	return comments
}

// Followers synthesizes n follower profiles.
func (g *Generator) Followers(p *page.Page, n int, now time.Time) []page.PersonProfile {
	people := make([]page.PersonProfile, 0, n)
	for i := 0; i < n; i++ {
		first, last := splitName(followerNames[g.rng.Intn(len(followerNames))])
		headline := fmt.Sprintf("%s at %s",
			positions[g.rng.Intn(len(positions))],
			employerNames[g.rng.Intn(len(employerNames))])

		people = append(people, page.PersonProfile{
			ProfileID:        fmt.Sprintf("follower_%s_%d", p.PageID, i),
			PageID:           p.PageID,
			Role:             page.RoleFollower,
			FirstName:        first,
			LastName:         last,
			Headline:         headline,
			Location:         locations[g.rng.Intn(len(locations))],
			ConnectionsCount: 100 + g.rng.Int63n(1901), // 100..2000
			FollowersCount:   g.rng.Int63n(5001),       // 0..5000
			CreatedAt:        now,
		})
	}
	return people
}

// Employees synthesizes n employee profiles tied to the page's company.
func (g *Generator) Employees(p *page.Page, n int, now time.Time) []page.PersonProfile {
	people := make([]page.PersonProfile, 0, n)
	for i := 0; i < n; i++ {
		first, last := splitName(employeeNames[g.rng.Intn(len(employeeNames))])
		position := positions[g.rng.Intn(len(positions))]
		company := p.Name

		location := locations[g.rng.Intn(len(locations))]
		if p.Headquarters != nil {
			location = *p.Headquarters
		}

		people = append(people, page.PersonProfile{
			ProfileID:        fmt.Sprintf("employee_%s_%d", p.PageID, i),
			PageID:           p.PageID,
			Role:             page.RoleEmployee,
			FirstName:        first,
			LastName:         last,
			Headline:         position,
			Location:         location,
			CurrentPosition:  &position,
			CurrentCompany:   &company,
			ConnectionsCount: 200 + g.rng.Int63n(801), // 200..1000
			FollowersCount:   10 + g.rng.Int63n(991),  // 10..1000
			CreatedAt:        now,
		})
	}
	return people
}

// ==========================================
// Helpers
// ==========================================

func fnvHash(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// titleCaseIdentifier turns "acme-corp" into "Acme Corp".
func titleCaseIdentifier(identifier string) string {
	parts := strings.FieldsFunc(identifier, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

func sanitizeIdentifier(identifier string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, identifier)
}

func splitName(full string) (first, last string) {
	parts := strings.SplitN(full, " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return full, ""
}

// renderTemplate fills the %s slots a template declares, in order. Templates
// use at most two slots (industry, then location).
func renderTemplate(tmpl, industry, location string) string {
	n := strings.Count(tmpl, "%s")
	switch n {
	case 0:
		return strings.ReplaceAll(tmpl, "%%", "%")
	case 1:
		if strings.Contains(tmpl, "hiring") {
			return fmt.Sprintf(tmpl, location)
		}
		return fmt.Sprintf(tmpl, industry)
	default:
		return fmt.Sprintf(tmpl, industry, location)
	}
}
