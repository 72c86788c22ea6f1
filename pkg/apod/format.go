package apod

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

// Banner opens every Space Edition block. The reply guardrail keys on this
// exact string.
const Banner = "Did you know? Space Edition!"

const explanationLimit = 420

// strict drops every tag; APOD strings occasionally carry stray markup.
var strict = bluemonday.StrictPolicy()

func buildPicture(requestedDate string, r *apiResponse) *Picture {
	p := &Picture{
		RequestedDate: requestedDate,
		DateUsed:      r.Date,
		Title:         r.Title,
		Explanation:   r.Explanation,
		MediaType:     r.MediaType,
		MediaURL:      r.URL,
		HDURL:         r.HDURL,
	}
	if c := strings.TrimSpace(r.Copyright); c != "" {
		p.Attribution = &Attribution{Copyright: c}
	}

	refURL := referencePageURL(p.DateUsed)
	p.CreditsText = creditsText(refURL, p.Attribution)
	p.SpaceEditionBlock = plainBlock(p, refURL)
	p.SpaceEditionBlockHTML = htmlBlock(p, refURL)
	return p
}

// referencePageURL maps a YYYY-MM-DD date to the human-facing page, e.g.
// 2026-01-21 -> https://apod.nasa.gov/apod/ap260121.html.
func referencePageURL(dateUsed string) string {
	d, err := time.ParseInLocation(dateLayout, dateUsed, time.UTC)
	if err != nil {
		return "https://apod.nasa.gov/apod/"
	}
	return "https://apod.nasa.gov/apod/ap" + d.Format("060102") + ".html"
}

func creditsText(refURL string, attribution *Attribution) string {
	parts := []string{
		"Source: NASA Astronomy Picture of the Day (" + refURL + ")",
	}
	if attribution != nil {
		parts = append(parts, "Image credit: "+attribution.Copyright)
	}
	parts = append(parts, "API: https://api.nasa.gov/planetary/apod")
	return strings.Join(parts, " | ")
}

// truncateExplanation cuts at 420 characters (runes, so multi-byte sequences
// stay intact), trims trailing whitespace, and appends a single ellipsis.
func truncateExplanation(s string) string {
	runes := []rune(s)
	if len(runes) <= explanationLimit {
		return s
	}
	cut := strings.TrimRightFunc(string(runes[:explanationLimit]), unicode.IsSpace)
	return cut + "…"
}

func plainBlock(p *Picture, refURL string) string {
	lines := []string{
		Banner,
		fmt.Sprintf("%s (%s)", p.Title, p.DateUsed),
		"",
		truncateExplanation(p.Explanation),
		"",
		"Image: " + p.MediaURL,
	}
	if p.HDURL != "" {
		lines = append(lines, "HD: "+p.HDURL)
	}
	lines = append(lines, "More: "+refURL, p.CreditsText)
	return strings.Join(lines, "\n")
}

func htmlBlock(p *Picture, refURL string) string {
	title := strict.Sanitize(p.Title)
	explanation := strict.Sanitize(truncateExplanation(p.Explanation))

	var b strings.Builder
	fmt.Fprintf(&b, "<h3>%s</h3>\n", Banner)
	fmt.Fprintf(&b, "<p><strong>%s</strong> (%s)</p>\n", title, p.DateUsed)
	if p.MediaType == "video" {
		fmt.Fprintf(&b, "<p><a href=%q>Watch: %s</a></p>\n", p.MediaURL, title)
	} else {
		fmt.Fprintf(&b, "<p><a href=%q><img src=%q alt=%q style=\"max-width:100%%\"/></a></p>\n",
			refURL, p.MediaURL, title)
	}
	fmt.Fprintf(&b, "<p>%s</p>\n", explanation)

	credit := fmt.Sprintf("Source: <a href=%q>NASA Astronomy Picture of the Day</a>", refURL)
	if p.Attribution != nil {
		credit += " | Image credit: " + strict.Sanitize(p.Attribution.Copyright)
	}
	fmt.Fprintf(&b, "<p><small>%s</small></p>", credit)
	return b.String()
}
