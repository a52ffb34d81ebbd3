package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/26nm/careerpath/internal/config"
	"github.com/26nm/careerpath/internal/pkg/metrics"

	"github.com/gocolly/colly/v2"
)

var (
	ErrInvalidURL   = errors.New("posting url must be an absolute http(s) url")
	ErrEmptyPosting = errors.New("posting page has no readable text")
)

const maxPostingBody = 5 << 20

const (
	modeStatic   = "static"
	modeHeadless = "headless"
)

// Posting is the readable part of a job posting page.
type Posting struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Rendered    bool   `json:"rendered"`
}

type renderFunc func(ctx context.Context, pageURL string, timeout time.Duration) (string, error)

// PostingScraper fetches one posting with a static colly request and, when
// that yields less than MinTextLength characters of description, re-renders
// the page in headless Chrome.
type PostingScraper struct {
	cfg     config.ScraperConfig
	logger  *log.Logger
	metrics *metrics.Manager
	render  renderFunc
}

func NewPostingScraper(cfg config.ScraperConfig, logger *log.Logger, m *metrics.Manager) *PostingScraper {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 25 * time.Second
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &PostingScraper{cfg: cfg, logger: logger, metrics: m, render: renderHeadless}
}

func (s *PostingScraper) Fetch(ctx context.Context, rawURL string) (Posting, error) {
	if s == nil {
		return Posting{}, fmt.Errorf("nil scraper")
	}
	pageURL, err := validateURL(rawURL)
	if err != nil {
		return Posting{}, err
	}

	html, staticErr := s.fetchStatic(ctx, pageURL)
	s.metrics.ObservePostingFetch(modeStatic, staticErr == nil)

	var p Posting
	if staticErr == nil {
		p = parsePosting(pageURL, html)
	} else {
		s.logf("[Scraper] static fetch failed url=%s err=%v", pageURL, staticErr)
	}

	if len(p.Description) < s.cfg.MinTextLength && s.cfg.HeadlessFallback && s.render != nil && ctx.Err() == nil {
		rendered, err := s.render(ctx, pageURL, s.cfg.Timeout)
		s.metrics.ObservePostingFetch(modeHeadless, err == nil)
		if err != nil {
			s.logf("[Scraper] headless render failed url=%s err=%v", pageURL, err)
		} else if rp := parsePosting(pageURL, rendered); len(rp.Description) > len(p.Description) {
			rp.Rendered = true
			p = rp
		}
	}

	if p.Description == "" {
		if staticErr != nil {
			return Posting{}, staticErr
		}
		return Posting{}, ErrEmptyPosting
	}
	return p, nil
}

func (s *PostingScraper) fetchStatic(ctx context.Context, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	opts := []colly.CollectorOption{colly.MaxBodySize(maxPostingBody)}
	if host := hostFromURL(pageURL); host != "" {
		opts = append(opts, colly.AllowedDomains(host))
	}
	c := colly.NewCollector(opts...)
	c.SetRequestTimeout(s.cfg.Timeout)

	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			reqErr = fmt.Errorf("status %d: %w", r.StatusCode, err)
			return
		}
		reqErr = err
	})

	if err := c.Visit(pageURL); err != nil && reqErr == nil {
		reqErr = err
	}
	c.Wait()
	if reqErr != nil {
		return "", reqErr
	}
	return string(body), nil
}

// FetchResult pairs a url with its posting or error.
type FetchResult struct {
	URL     string
	Posting Posting
	Err     error
}

// FetchMany fetches urls on a rate-limited worker pool. Results keep the
// order of urls.
func (s *PostingScraper) FetchMany(ctx context.Context, urls []string, workers int) []FetchResult {
	out := make([]FetchResult, len(urls))
	if len(urls) == 0 {
		return out
	}
	if workers <= 0 {
		workers = s.cfg.Workers
	}

	pool := NewWorkerPool(workers, len(urls))
	pool.SetRateLimit(s.cfg.RateLimit)
	results := pool.Run(ctx)

	for i, u := range urls {
		out[i] = FetchResult{URL: u, Err: context.Canceled}
		pool.Submit(func(ctx context.Context) error {
			p, err := s.Fetch(ctx, u)
			out[i] = FetchResult{URL: u, Posting: p, Err: err}
			return err
		})
	}
	pool.Close()

	failed := 0
	for res := range results {
		if res.Err != nil {
			failed++
		}
	}
	s.logf("[Scraper] fetch batch done urls=%d failed=%d", len(urls), failed)
	return out
}

func (s *PostingScraper) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func validateURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", ErrInvalidURL
	}
	return u.String(), nil
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}

func httpHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "CareerpathFetcher/0.1",
		"Accept":          "text/html,application/xhtml+xml",
		"Accept-Language": "en-US,en;q=0.9",
	}
}

func pickNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
