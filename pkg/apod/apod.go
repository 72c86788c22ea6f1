// Package apod fetches NASA's Astronomy Picture of the Day with a bounded
// backward date-walk: when the requested date has no entry yet (APOD publishes
// on US time) or the API misbehaves, earlier days are tried one at a time.
package apod

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

const (
	dateLayout = "2006-01-02"

	// DefaultMaxDaysBack is the look-back window used when the caller does
	// not supply one.
	DefaultMaxDaysBack = 10

	// maxLookback caps the window regardless of caller input.
	maxLookback = 30
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Doer is the HTTP capability the fetcher needs; *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher queries the APOD API.
type Fetcher struct {
	client  Doer
	baseURL string
	apiKey  string
	now     func() time.Time
}

// New creates a Fetcher using the given HTTP client and API endpoint.
func New(client Doer, baseURL, apiKey string) *Fetcher {
	return &Fetcher{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		now:     time.Now,
	}
}

// Picture is the full result of a successful fetch, including the paste-ready
// Space Edition blocks.
type Picture struct {
	RequestedDate         string       `json:"requestedDate"`
	DateUsed              string       `json:"dateUsed"`
	Title                 string       `json:"title"`
	Explanation           string       `json:"explanation"`
	MediaType             string       `json:"mediaType"`
	MediaURL              string       `json:"mediaUrl"`
	HDURL                 string       `json:"hdUrl,omitempty"`
	Attribution           *Attribution `json:"attribution,omitempty"`
	CreditsText           string       `json:"creditsText"`
	SpaceEditionBlock     string       `json:"spaceEditionBlock"`
	SpaceEditionBlockHTML string       `json:"spaceEditionBlockHtml"`
}

// Attribution carries the optional copyright holder reported by the API.
type Attribution struct {
	Copyright string `json:"copyright"`
}

// InvalidDateFormatError reports a date that is not a real YYYY-MM-DD value.
// It is returned before any network call is made.
type InvalidDateFormatError struct {
	Input string
}

func (e *InvalidDateFormatError) Error() string {
	return fmt.Sprintf("invalid date %q: expected YYYY-MM-DD", e.Input)
}

// ExhaustedFallbackError reports that every date in the look-back window
// failed. Only the most recent failure is detailed; earlier ones are counted.
type ExhaustedFallbackError struct {
	Attempts   int
	LastDate   string
	LastReason string
}

func (e *ExhaustedFallbackError) Error() string {
	return fmt.Sprintf("no picture found after %d attempts; last failure on %s: %s",
		e.Attempts, e.LastDate, e.LastReason)
}

// apiResponse is the subset of the APOD payload this package consumes.
type apiResponse struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
	URL         string `json:"url"`
	HDURL       string `json:"hdurl"`
	MediaType   string `json:"media_type"`
	Copyright   string `json:"copyright"`
}

// PictureOfDay fetches the picture for date (YYYY-MM-DD; empty means the
// current UTC day), walking backward one calendar day per failed attempt.
// maxDaysBack is clamped into [0, 30]; the requested date counts as attempt
// zero, so at most maxDaysBack+1 fetches happen. The walk stops at the first
// success.
func (f *Fetcher) PictureOfDay(ctx context.Context, date string, maxDaysBack int) (*Picture, error) {
	if date == "" {
		date = f.now().UTC().Format(dateLayout)
	}
	if !datePattern.MatchString(date) {
		return nil, &InvalidDateFormatError{Input: date}
	}
	day, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return nil, &InvalidDateFormatError{Input: date}
	}

	if maxDaysBack < 0 {
		maxDaysBack = 0
	}
	if maxDaysBack > maxLookback {
		maxDaysBack = maxLookback
	}

	attempts := maxDaysBack + 1
	var lastDate, lastReason string
	for i := 0; i < attempts; i++ {
		tried := day.Format(dateLayout)
		resp, reason := f.fetch(ctx, tried)
		if reason == "" {
			return buildPicture(date, resp), nil
		}
		lastDate, lastReason = tried, reason
		day = day.AddDate(0, 0, -1)
	}

	return nil, &ExhaustedFallbackError{
		Attempts:   attempts,
		LastDate:   lastDate,
		LastReason: lastReason,
	}
}

// fetch performs one attempt. An empty reason means success; any non-empty
// reason (transport error, non-2xx status, incomplete payload) makes the walk
// step back a day.
func (f *Fetcher) fetch(ctx context.Context, date string) (*apiResponse, string) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return nil, fmt.Sprintf("invalid endpoint: %v", err)
	}
	q := u.Query()
	q.Set("api_key", f.apiKey)
	q.Set("date", date)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Sprintf("failed to build request: %v", err)
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Sprintf("request failed: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Sprintf("HTTP %d", res.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Sprintf("invalid JSON: %v", err)
	}
	for _, required := range []struct{ name, value string }{
		{"date", body.Date},
		{"title", body.Title},
		{"explanation", body.Explanation},
		{"url", body.URL},
	} {
		if required.value == "" {
			return nil, "response missing " + required.name
		}
	}
	return &body, ""
}
