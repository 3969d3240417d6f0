package checker

import (
	"net/url"
	"strings"

	"github.com/cs278/uk-online-banking-audit/internal/dom"
	"github.com/cs278/uk-online-banking-audit/internal/verdict"
)

// mixedContentTargets pairs each URL-bearing attribute with the tags
// that carry it.
var mixedContentTargets = []struct {
	attr string
	tags []string
}{
	{"src", []string{"img", "object", "embed", "frame", "iframe", "script", "source", "track"}},
	{"href", []string{"link"}},
	{"action", []string{"form"}},
	{"formaction", []string{"button", "input"}},
}

// mixedContent scans the document for subresource references with an
// explicit http scheme. Scheme-relative, https, data: and relative URLs
// are all fine; only plain http is flagged. Each attribute group is
// reduced on its own, then the groups are reduced to one verdict.
func mixedContent(doc *dom.Document) verdict.Verdict {
	groups := make([]verdict.Verdict, 0, len(mixedContentTargets))
	for _, target := range mixedContentTargets {
		var failures []verdict.Verdict
		for _, el := range doc.Elements(target.tags...) {
			raw := strings.TrimSpace(el.Attr(target.attr))
			if raw == "" {
				continue
			}
			ref, err := url.Parse(raw)
			if err != nil {
				continue
			}
			if strings.EqualFold(ref.Scheme, "http") {
				failures = append(failures, verdict.Failf("insecure %s %s=%q", el.Tag(), target.attr, raw))
			}
		}
		groups = append(groups, verdict.Combine(failures...))
	}

	combined := verdict.Combine(groups...)
	if combined.Class == verdict.ClassPass && combined.Message == "" {
		combined.Message = "no insecure subresource references"
	}
	return combined
}
