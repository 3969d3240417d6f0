// Package scanner drives one run: fetch every site through a bounded
// worker pool and evaluate each fetched page.
package scanner

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/cs278/uk-online-banking-audit/internal/checker"
	"github.com/cs278/uk-online-banking-audit/internal/fetch"
	"github.com/cs278/uk-online-banking-audit/internal/sites"
)

// Row is one site's outcome. An unreachable site has a nil Checks and
// the transport error recorded; that is a different thing from a row
// whose checks all failed.
type Row struct {
	Site   sites.Site      `json:"site"`
	Checks *checker.Result `json:"checks,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Unreachable reports whether the site could not be fetched at all.
func (r Row) Unreachable() bool {
	return r.Checks == nil
}

// ResultFunc is called once per finished site, from worker goroutines.
type ResultFunc func(Row)

// Runner executes a scan with bounded concurrency and a global rate
// limit. Each site gets its own timeout; one site failing never aborts
// the rest.
type Runner struct {
	Concurrency int
	RateLimit   int
	Timeout     time.Duration
	Fetcher     *fetch.Client
	Logger      *zap.SugaredLogger
	OnResult    ResultFunc
}

// Run fetches and evaluates every site. Rows come back in site-list
// order regardless of which worker finished first.
func (r *Runner) Run(ctx context.Context, list []sites.Site) []Row {
	limiter := rate.NewLimiter(rate.Limit(r.RateLimit), r.RateLimit)

	sem := make(chan struct{}, r.Concurrency)
	var wg sync.WaitGroup
	rows := make([]Row, len(list))

	for i, site := range list {
		wg.Add(1)
		go func(i int, site sites.Site) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			_ = limiter.Wait(ctx)

			siteCtx, cancel := context.WithTimeout(ctx, r.Timeout)
			defer cancel()

			rows[i] = r.scanOne(siteCtx, site)
			if r.OnResult != nil {
				r.OnResult(rows[i])
			}
		}(i, site)
	}

	wg.Wait()
	return rows
}

func (r *Runner) scanOne(ctx context.Context, site sites.Site) Row {
	page, err := r.Fetcher.Fetch(ctx, site.URL)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Warnw("site unreachable", "site", site.Name, "url", site.URL, "error", err)
		}
		return Row{Site: site, Error: err.Error()}
	}

	if r.Logger != nil {
		r.Logger.Debugw("site fetched", "site", site.Name, "status", page.StatusCode)
	}
	return Row{Site: site, Checks: checker.Evaluate(page.Header, page.Document)}
}
