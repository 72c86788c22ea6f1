package apod

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferencePageURL(t *testing.T) {
	assert.Equal(t, "https://apod.nasa.gov/apod/ap260121.html", referencePageURL("2026-01-21"))
	assert.Equal(t, "https://apod.nasa.gov/apod/ap991231.html", referencePageURL("1999-12-31"))
}

func TestCreditsText(t *testing.T) {
	ref := "https://apod.nasa.gov/apod/ap260121.html"

	withCopyright := creditsText(ref, &Attribution{Copyright: "Jane Stargazer"})
	parts := strings.Split(withCopyright, " | ")
	require.Len(t, parts, 3)
	assert.Contains(t, parts[0], ref)
	assert.Equal(t, "Image credit: Jane Stargazer", parts[1])
	assert.Contains(t, parts[2], "api.nasa.gov")

	withoutCopyright := creditsText(ref, nil)
	assert.Len(t, strings.Split(withoutCopyright, " | "), 2)
	assert.NotContains(t, withoutCopyright, "Image credit")
}

func TestTruncateExplanation(t *testing.T) {
	short := strings.Repeat("a", 420)
	assert.Equal(t, short, truncateExplanation(short))

	long := strings.Repeat("a", 419) + " tail"
	got := truncateExplanation(long)
	assert.True(t, strings.HasSuffix(got, "…"))
	// trailing whitespace at the cut point is trimmed before the ellipsis
	assert.Equal(t, strings.Repeat("a", 419)+"…", got)

	// multi-byte runes must not be split
	wide := strings.Repeat("星", 500)
	got = truncateExplanation(wide)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 421, utf8.RuneCountInString(got))
}

func TestPlainBlockLayout(t *testing.T) {
	p := buildPicture("2026-01-22", &apiResponse{
		Date:        "2026-01-21",
		Title:       "Comet Over Iceland",
		Explanation: "A comet swept past.",
		URL:         "https://apod.nasa.gov/image/comet.jpg",
		HDURL:       "https://apod.nasa.gov/image/comet_hd.jpg",
		MediaType:   "image",
		Copyright:   "Jane Stargazer",
	})

	lines := strings.Split(p.SpaceEditionBlock, "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, Banner, lines[0])
	assert.Equal(t, "Comet Over Iceland (2026-01-21)", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "A comet swept past.", lines[3])
	assert.Equal(t, "", lines[4])
	assert.Equal(t, "Image: https://apod.nasa.gov/image/comet.jpg", lines[5])
	assert.Equal(t, "HD: https://apod.nasa.gov/image/comet_hd.jpg", lines[6])
	assert.Equal(t, "More: https://apod.nasa.gov/apod/ap260121.html", lines[7])
	assert.Equal(t, p.CreditsText, lines[8])
}

func TestPlainBlockOmitsMissingHD(t *testing.T) {
	p := buildPicture("2026-01-21", &apiResponse{
		Date:        "2026-01-21",
		Title:       "t",
		Explanation: "e",
		URL:         "https://example.com/i.jpg",
		MediaType:   "image",
	})
	assert.NotContains(t, p.SpaceEditionBlock, "HD:")
	assert.Nil(t, p.Attribution)
}

func TestHTMLBlock(t *testing.T) {
	p := buildPicture("2026-01-21", &apiResponse{
		Date:        "2026-01-21",
		Title:       "Comet <script>alert(1)</script>",
		Explanation: "e",
		URL:         "https://example.com/i.jpg",
		MediaType:   "image",
	})

	assert.Contains(t, p.SpaceEditionBlockHTML, "<h3>"+Banner+"</h3>")
	assert.Contains(t, p.SpaceEditionBlockHTML, `<img src="https://example.com/i.jpg"`)
	assert.NotContains(t, p.SpaceEditionBlockHTML, "<script>")

	video := buildPicture("2026-01-21", &apiResponse{
		Date:        "2026-01-21",
		Title:       "t",
		Explanation: "e",
		URL:         "https://example.com/v",
		MediaType:   "video",
	})
	assert.NotContains(t, video.SpaceEditionBlockHTML, "<img")
	assert.Contains(t, video.SpaceEditionBlockHTML, "Watch:")
}
