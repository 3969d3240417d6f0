package checker

import (
	"encoding/json"
	"net/http"

	"github.com/cs278/uk-online-banking-audit/internal/dom"
	"github.com/cs278/uk-online-banking-audit/internal/verdict"
)

// HeaderFunc evaluates one check against the response headers of a
// fetched page. Lookups through http.Header are case-insensitive and
// yield "" for absent names, which is the convention every check
// assumes.
type HeaderFunc func(http.Header) verdict.Verdict

// DocumentFunc evaluates one check against the parsed document tree.
type DocumentFunc func(*dom.Document) verdict.Verdict

// Check is one named rule. Exactly one of Headers or Document is set;
// which one declares the input the check consumes, and Evaluate
// dispatches on it.
type Check struct {
	Name     string
	Headers  HeaderFunc
	Document DocumentFunc
}

// checks is the fixed evaluation and reporting order. Report columns
// depend on this order staying stable.
var checks = []Check{
	{Name: "STS", Headers: strictTransportSecurity},
	{Name: "Frame Options", Headers: frameOptions},
	{Name: "XSS Protection", Headers: xssProtection},
	{Name: "Content-Type Options", Headers: contentTypeOptions},
	{Name: "CSP", Headers: contentSecurityPolicy},
	{Name: "Mixed Content", Document: mixedContent},
}

// Names returns the check names in evaluation order.
func Names() []string {
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.Name
	}
	return names
}

// Entry is one named verdict within a Result.
type Entry struct {
	Name    string          `json:"name"`
	Verdict verdict.Verdict `json:"verdict"`
}

// Result holds one verdict per check, in the fixed check order. A site
// that could not be fetched at all has no Result; callers represent
// that as a nil *Result, which is distinct from a Result full of FAIL
// verdicts.
type Result struct {
	entries []Entry
}

// Entries returns the verdicts in check order.
func (r *Result) Entries() []Entry {
	return r.entries
}

// Get returns the verdict for the named check.
func (r *Result) Get(name string) (verdict.Verdict, bool) {
	for _, e := range r.entries {
		if e.Name == name {
			return e.Verdict, true
		}
	}
	return verdict.Verdict{}, false
}

// MarshalJSON emits the verdicts as an ordered array, keeping column
// order intact in persisted results.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.entries)
}

// Evaluate runs every check against one fetched page and returns the
// ordered result. It is a pure function of its inputs.
func Evaluate(headers http.Header, doc *dom.Document) *Result {
	result := &Result{entries: make([]Entry, 0, len(checks))}
	for _, c := range checks {
		var v verdict.Verdict
		switch {
		case c.Headers != nil:
			v = c.Headers(headers)
		case c.Document != nil:
			v = c.Document(doc)
		}
		result.entries = append(result.entries, Entry{Name: c.Name, Verdict: v})
	}
	return result
}
