package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/26nm/careerpath/internal/config"
	"github.com/26nm/careerpath/internal/scraper"

	"github.com/spf13/cobra"
)

type fetchOptions struct {
	workers   int
	rateLimit int
	minText   int
	headless  bool
	timeout   time.Duration
}

type fetchLine struct {
	URL     string           `json:"url"`
	Posting *scraper.Posting `json:"posting,omitempty"`
	Error   string           `json:"error,omitempty"`
}

func newFetchCmd() *cobra.Command {
	opts := &fetchOptions{}
	cmd := &cobra.Command{
		Use:   "fetch URL...",
		Short: "Fetch job postings",
		Long:  "Fetch one or more job posting pages and print one JSON object per line, in argument order.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, opts, args)
		},
	}
	cmd.Flags().IntVar(&opts.workers, "workers", 4, "Concurrent fetches")
	cmd.Flags().IntVar(&opts.rateLimit, "rate-limit", 2, "Requests per second, 0 for unlimited")
	cmd.Flags().IntVar(&opts.minText, "min-text", 200, "Description length below which the page is rendered headless")
	cmd.Flags().BoolVar(&opts.headless, "headless", true, "Allow headless Chrome fallback")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 25*time.Second, "Per-page timeout")
	return cmd
}

func runFetch(cmd *cobra.Command, opts *fetchOptions, urls []string) error {
	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	s := scraper.NewPostingScraper(config.ScraperConfig{
		Workers:          opts.workers,
		RateLimit:        opts.rateLimit,
		MinTextLength:    opts.minText,
		HeadlessFallback: opts.headless,
		Timeout:          opts.timeout,
	}, logger, nil)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	failed := 0
	for _, res := range s.FetchMany(ctx, urls, opts.workers) {
		line := fetchLine{URL: res.URL}
		if res.Err != nil {
			failed++
			line.Error = res.Err.Error()
		} else {
			p := res.Posting
			line.Posting = &p
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d postings failed", failed, len(urls))
	}
	return nil
}
