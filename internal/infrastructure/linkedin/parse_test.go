package linkedin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCompactNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"152,472", 152_472},
		{"1.2K", 1_200},
		{"3M", 3_000_000},
		{"1B", 1_000_000_000},
		{"8.5M", 8_500_000},
		{"1,2K", 1_200},
		{"2,5M", 2_500_000},
		{"42", 42},
		{"1,000", 1_000},
		{"", 0},
		{"garbage", 0},
		{"-5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCompactNumber(tt.in))
		})
	}
}

func TestParsePageMetaTags(t *testing.T) {
	html := `<html><head>
		<title>Acme Corp | LinkedIn</title>
		<meta property="og:title" content="Acme Corp | LinkedIn" />
		<meta property="og:description" content="Acme Corp builds widgets." />
		<meta property="og:image" content="https://media.example.com/acme.jpg" />
	</head><body>
		<div>Acme Corp 152,472 followers</div>
		<div>10,001+ employees</div>
	</body></html>`

	d := ParsePage(html)

	assert.Equal(t, "Acme Corp", d.Name)
	assert.Equal(t, "Acme Corp builds widgets.", d.Description)
	assert.Equal(t, "https://media.example.com/acme.jpg", d.ProfilePictureURL)
	assert.Equal(t, int64(152_472), d.FollowersCount)
}

func TestParsePageCompactFollowers(t *testing.T) {
	d := ParsePage(`<html><body><span>8.5M followers</span></body></html>`)
	assert.Equal(t, int64(8_500_000), d.FollowersCount)
}

func TestParsePageJSONFollowerCount(t *testing.T) {
	d := ParsePage(`<html><body><script>{"followerCount": 250000}</script></body></html>`)
	assert.Equal(t, int64(250_000), d.FollowersCount)
}

func TestParsePageEmployeeRangeUsesUpperBound(t *testing.T) {
	d := ParsePage(`<html><body><span>501-1,000 employees</span></body></html>`)
	assert.Equal(t, int64(1_000), d.EmployeesCount)
}

func TestParsePageCommaNumbersBeatSuffixNotation(t *testing.T) {
	// "152,472 followers" must parse as 152472, never as 152.
	d := ParsePage(`<div>152,472 followers</div>`)
	assert.Equal(t, int64(152_472), d.FollowersCount)
}

func TestParsePageFoundedYear(t *testing.T) {
	d := ParsePage(`<html><body>Founded: 1998</body></html>`)
	assert.Equal(t, 1998, d.FoundedYear)
}

func TestParsePageEmpty(t *testing.T) {
	d := ParsePage("")
	assert.Empty(t, d.Name)
	assert.Zero(t, d.FollowersCount)
	assert.Zero(t, d.EmployeesCount)
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "Acme Corp", cleanTitle("Acme Corp | LinkedIn"))
	assert.Equal(t, "Acme Corp", cleanTitle("Acme Corp - LinkedIn"))
	assert.Equal(t, "Plain Title", cleanTitle("Plain Title"))
}
