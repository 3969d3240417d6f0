package scanner

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cs278/uk-online-banking-audit/internal/fetch"
	"github.com/cs278/uk-online-banking-audit/internal/sites"
	"github.com/cs278/uk-online-banking-audit/internal/verdict"
)

func newRunner() *Runner {
	return &Runner{
		Concurrency: 4,
		RateLimit:   100,
		Timeout:     5 * time.Second,
		Fetcher:     fetch.NewClient(5*time.Second, 0),
	}
}

func TestRun_EvaluatesReachableSites(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		_, _ = w.Write([]byte(`<html><body></body></html>`))
	}))
	defer srv.Close()

	rows := newRunner().Run(context.Background(), []sites.Site{{Name: "One", URL: srv.URL}})

	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0].Unreachable() {
		t.Fatalf("Expected reachable site, got error %q", rows[0].Error)
	}
	v, ok := rows[0].Checks.Get("Content-Type Options")
	if !ok || v.Class != verdict.ClassPass {
		t.Errorf("Expected Content-Type Options PASS, got %+v", v)
	}
}

func TestRun_UnreachableSiteIsSentinelNotFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	rows := newRunner().Run(context.Background(), []sites.Site{{Name: "Gone", URL: srv.URL}})

	if !rows[0].Unreachable() {
		t.Fatal("Expected unreachable sentinel")
	}
	if rows[0].Error == "" {
		t.Error("Expected transport error to be recorded")
	}
	if rows[0].Checks != nil {
		t.Error("Unreachable row must not carry verdicts")
	}
}

func TestRun_OneFailureDoesNotAbortOthers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html></html>`))
	}))
	defer srv.Close()
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	rows := newRunner().Run(context.Background(), []sites.Site{
		{Name: "Dead", URL: dead.URL},
		{Name: "Alive", URL: srv.URL},
	})

	if !rows[0].Unreachable() {
		t.Error("Expected first site unreachable")
	}
	if rows[1].Unreachable() {
		t.Errorf("Expected second site evaluated, got error %q", rows[1].Error)
	}
}

func TestRun_PreservesSiteListOrder(t *testing.T) {
	// The slow site comes first; a pool that appended completion-order
	// results would put it last.
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`<html></html>`))
	}))
	defer slow.Close()
	fast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html></html>`))
	}))
	defer fast.Close()

	list := []sites.Site{{Name: "Slow", URL: slow.URL}}
	for i := 0; i < 4; i++ {
		list = append(list, sites.Site{Name: fmt.Sprintf("Fast-%d", i), URL: fast.URL})
	}

	rows := newRunner().Run(context.Background(), list)

	for i, row := range rows {
		if row.Site.Name != list[i].Name {
			t.Errorf("Row %d = %q, want %q", i, row.Site.Name, list[i].Name)
		}
	}
}

func TestRun_PerSiteTimeoutBecomesUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	runner := newRunner()
	runner.Timeout = 100 * time.Millisecond

	rows := runner.Run(context.Background(), []sites.Site{{Name: "Slow", URL: srv.URL}})

	if !rows[0].Unreachable() {
		t.Error("Expected timeout to produce the unreachable sentinel")
	}
}

func TestRun_OnResultCalledPerSite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html></html>`))
	}))
	defer srv.Close()

	got := make(chan Row, 3)
	runner := newRunner()
	runner.OnResult = func(row Row) { got <- row }

	list := []sites.Site{
		{Name: "A", URL: srv.URL},
		{Name: "B", URL: srv.URL},
		{Name: "C", URL: srv.URL},
	}
	runner.Run(context.Background(), list)

	if len(got) != 3 {
		t.Errorf("Expected 3 result callbacks, got %d", len(got))
	}
}
