package checker

import (
	"net/http"
	"strings"

	"github.com/cs278/uk-online-banking-audit/internal/verdict"
)

// cspHeaderNames is the priority order for locating a policy. The
// enforcing header wins over report-only, which wins over the legacy
// vendor-prefixed names.
var cspHeaderNames = []string{
	"Content-Security-Policy",
	"Content-Security-Policy-Report-Only",
	"X-Content-Security-Policy",
	"X-WebKit-CSP",
}

const cspReportOnlyHeader = "Content-Security-Policy-Report-Only"

// contentSecurityPolicy locates the first CSP-family header and grades
// its directives. A report-only policy enforces nothing, so whatever
// the directives say the result is demoted to FAIL.
func contentSecurityPolicy(headers http.Header) verdict.Verdict {
	var name, value string
	for _, candidate := range cspHeaderNames {
		if v := strings.TrimSpace(headers.Get(candidate)); v != "" {
			name, value = candidate, v
			break
		}
	}

	if value == "" {
		return verdict.Fail("No Content Security Policy headers")
	}

	if name == cspReportOnlyHeader {
		return verdict.Fail("Content-Security-Policy-Report-Only is not enforced")
	}

	if issues := cspIssues(value); len(issues) > 0 {
		return verdict.Warn(strings.Join(issues, "; "))
	}
	return verdict.Pass("Content Security Policy set")
}

// cspIssues flags the weakening patterns worth reporting without
// attempting full directive-grammar validation.
func cspIssues(value string) []string {
	directives := parseCSPDirectives(value)
	var issues []string

	if _, ok := directives["default-src"]; !ok {
		issues = append(issues, "missing default-src directive")
	}

	for _, directive := range []string{"default-src", "script-src", "style-src"} {
		for _, source := range directives[directive] {
			switch source {
			case "'unsafe-inline'":
				issues = append(issues, directive+" allows 'unsafe-inline'")
			case "'unsafe-eval'":
				issues = append(issues, directive+" allows 'unsafe-eval'")
			case "*":
				issues = append(issues, directive+" allows any source (*)")
			}
		}
	}

	return issues
}

// parseCSPDirectives splits a policy on semicolons into directive name
// to source-list tokens.
func parseCSPDirectives(value string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(strings.ToLower(value), ";") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) == 0 {
			continue
		}
		result[fields[0]] = fields[1:]
	}
	return result
}
