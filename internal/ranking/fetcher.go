package ranking

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"campusforum/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

const (
	maxRedirections = 10
	maxBodyBytes    = 5 << 20
	userAgent       = "campusforum-ranking/1.0"
)

// Status classifies the outcome of a ranking lookup.
type Status string

const (
	StatusOK         Status = "ok"
	StatusNotFound   Status = "not_found"
	StatusFetchError Status = "fetch_error"
	StatusParseError Status = "parse_error"
)

// Result is the outcome of one ranking lookup. Universities is only set when
// Status is StatusOK.
type Result struct {
	Status       Status   `json:"status"`
	Course       string   `json:"course"`
	Label        string   `json:"label,omitempty"`
	Universities []string `json:"universities,omitempty"`
	Error        string   `json:"error,omitempty"`
	Err          error    `json:"-"`
}

// OK reports whether the lookup produced a ranking.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

func failed(status Status, course, label string, err error) Result {
	return Result{Status: status, Course: course, Label: label, Error: err.Error(), Err: err}
}

// Fetcher retrieves league tables over HTTP.
type Fetcher struct {
	baseURL string
	client  *http.Client
}

// NewFetcher returns a Fetcher requesting baseURL/<sector key> with the given timeout.
func NewFetcher(baseURL string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirections {
					return errors.New("stopped after too many redirects")
				}
				return nil
			},
		},
	}
}

// Client exposes the underlying HTTP client.
func (f *Fetcher) Client() *http.Client {
	return f.client
}

// URL returns the league-table address for course.
func (f *Fetcher) URL(course string) string {
	return f.baseURL + "/" + url.PathEscape(course)
}

// Fetch looks up the ranking for the sector key course. It never panics and
// never returns a partial list: every failure is reported through Status.
func (f *Fetcher) Fetch(ctx context.Context, course string) Result {
	sector, ok := Lookup(course)
	if !ok {
		return failed(StatusNotFound, course, "", fmt.Errorf("unknown course sector %q", course))
	}

	ctx, span := observability.StartClientSpan(ctx, "ranking.fetch",
		attribute.String("ranking.course", course),
	)
	start := time.Now()

	names, status, err := f.fetch(ctx, course)

	observability.RankingFetchLatency.Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.String("ranking.status", string(status)))
	observability.EndSpan(span, err)

	if err != nil {
		return failed(status, course, sector.Label, err)
	}
	return Result{Status: StatusOK, Course: course, Label: sector.Label, Universities: names}
}

func (f *Fetcher) fetch(ctx context.Context, course string) ([]string, Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(course), nil)
	if err != nil {
		return nil, StatusFetchError, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, StatusFetchError, fmt.Errorf("fetch %s: %w", course, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, StatusFetchError, fmt.Errorf("non-2xx HTTP response status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, StatusFetchError, fmt.Errorf("read %s: %w", course, err)
	}

	names, err := ExtractUniversities(bytes.NewReader(body))
	if err != nil {
		return nil, StatusParseError, err
	}
	return names, StatusOK, nil
}
