package linkedin

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// The public company pages render the interesting numbers either in meta
// tags, visible text ("152,472 followers", "1.2M followers") or embedded
// JSON. Comma-separated full numbers are matched before K/M/B notation so
// "152,472 followers" is not read as 152.
var (
	metaTagRe = regexp.MustCompile(`<meta\s+(?:property|name)="([^"]+)"\s+content="([^"]*)"`)
	titleRe   = regexp.MustCompile(`<title>([^<]+)</title>`)

	followerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+(?:,\d{3})+)\s*followers`),
		regexp.MustCompile(`(?i)(\d+[.,]\d+[KMB])\s*followers`),
		regexp.MustCompile(`(?i)(\d+[KMB])\s*followers`),
		regexp.MustCompile(`(?i)(\d+)\s+followers`),
		regexp.MustCompile(`"followers":\s*(\d+)`),
		regexp.MustCompile(`"followerCount":\s*(\d+)`),
	}

	employeeRangeRe  = regexp.MustCompile(`(?i)(\d+(?:,\d{3})*)\s*-\s*(\d+(?:,\d{3})*)\s*employees`)
	employeePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+(?:,\d{3})+)\s*employees`),
		regexp.MustCompile(`(?i)(\d+[.,]\d+[KMB])\s*employees`),
		regexp.MustCompile(`(?i)(\d+[KMB])\s*employees`),
		regexp.MustCompile(`(?i)(\d+)\s+employees`),
		regexp.MustCompile(`"numberOfEmployees":\s*(\d+)`),
	}

	foundedRe = regexp.MustCompile(`(?i)founded[^0-9]{0,20}(\d{4})`)

	// "1,2K" uses the comma as a decimal separator; thousands groups are
	// always three digits.
	commaDecimalRe = regexp.MustCompile(`^(\d+),(\d{1,2})([KMB])$`)
)

// PageDetails is what the parser manages to pull out of one company page.
type PageDetails struct {
	Name              string
	Description       string
	ProfilePictureURL string
	Industry          string
	Headquarters      string
	Website           string
	FoundedYear       int
	FollowersCount    int64
	EmployeesCount    int64
}

// ParsePage extracts company details from raw page HTML. Missing fields
// stay zero; the caller decides whether the result is usable.
func ParsePage(htmlText string) PageDetails {
	meta := extractMeta(htmlText)

	d := PageDetails{
		Name:              cleanTitle(firstNonEmpty(meta["og:title"], extractTitle(htmlText))),
		Description:       meta["og:description"],
		ProfilePictureURL: meta["og:image"],
		FollowersCount:    extractFollowers(htmlText),
		EmployeesCount:    extractEmployees(htmlText),
	}

	if m := foundedRe.FindStringSubmatch(htmlText); m != nil {
		if year, err := strconv.Atoi(m[1]); err == nil && year >= 1600 && year <= 2100 {
			d.FoundedYear = year
		}
	}
	return d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func extractMeta(htmlText string) map[string]string {
	meta := make(map[string]string)
	for _, m := range metaTagRe.FindAllStringSubmatch(htmlText, -1) {
		if _, seen := meta[m[1]]; !seen {
			meta[m[1]] = html.UnescapeString(m[2])
		}
	}
	return meta
}

func extractTitle(htmlText string) string {
	if m := titleRe.FindStringSubmatch(htmlText); m != nil {
		return html.UnescapeString(strings.TrimSpace(m[1]))
	}
	return ""
}

// cleanTitle strips the "| LinkedIn" suffix the page titles carry.
func cleanTitle(title string) string {
	title = strings.TrimSpace(title)
	for _, sep := range []string{" | LinkedIn", " - LinkedIn", "| LinkedIn"} {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
		}
	}
	return strings.TrimSpace(title)
}

func extractFollowers(htmlText string) int64 {
	for _, re := range followerPatterns {
		if m := re.FindStringSubmatch(htmlText); m != nil {
			if n := ParseCompactNumber(m[1]); n > 0 {
				return n
			}
		}
	}
	return 0
}

func extractEmployees(htmlText string) int64 {
	// Ranges like "501-1,000 employees" resolve to the upper bound.
	if m := employeeRangeRe.FindStringSubmatch(htmlText); m != nil {
		if n := ParseCompactNumber(m[2]); n > 0 {
			return n
		}
	}
	for _, re := range employeePatterns {
		if m := re.FindStringSubmatch(htmlText); m != nil {
			if n := ParseCompactNumber(m[1]); n > 0 {
				return n
			}
		}
	}
	return 0
}

// ParseCompactNumber converts strings like "152,472", "1.2K", "3M" or "1B"
// to an absolute count. Unparseable input yields 0.
func ParseCompactNumber(s string) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if m := commaDecimalRe.FindStringSubmatch(s); m != nil {
		s = m[1] + "." + m[2] + m[3]
	}
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}

	mult := int64(1)
	switch s[len(s)-1] {
	case 'K':
		mult, s = 1_000, s[:len(s)-1]
	case 'M':
		mult, s = 1_000_000, s[:len(s)-1]
	case 'B':
		mult, s = 1_000_000_000, s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return int64(v * float64(mult))
}
