package checker

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/cs278/uk-online-banking-audit/internal/verdict"
)

const (
	hstsOneYear   = 31536000
	hstsSixMonths = 15768000
)

// maxAgePattern matches a max-age directive at a proper boundary: the
// start of the header value or right after a semicolon. A substring
// inside another token name must not match.
var maxAgePattern = regexp.MustCompile(`(?i)(?:^|;\s*)max-age=(\d+)`)

// strictTransportSecurity grades the HSTS policy by its max-age: a year
// or more passes, six months to a year warns, anything shorter fails.
func strictTransportSecurity(headers http.Header) verdict.Verdict {
	value := strings.TrimSpace(headers.Get("Strict-Transport-Security"))
	if value == "" {
		return verdict.Fail("No Strict-Transport-Security header set")
	}

	m := maxAgePattern.FindStringSubmatch(value)
	if m == nil {
		return verdict.Failf("Strict-Transport-Security header is invalid: %q", value)
	}

	maxAge, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		// Digit run too long for an int64; same bucket as no token.
		return verdict.Failf("Strict-Transport-Security header is invalid: %q", value)
	}

	switch {
	case maxAge >= hstsOneYear:
		return verdict.Passf("max-age is %d seconds", maxAge)
	case maxAge >= hstsSixMonths:
		return verdict.Warnf("max-age is %d seconds, less than one year", maxAge)
	default:
		return verdict.Failf("max-age is %d seconds, less than six months", maxAge)
	}
}

// frameOptions accepts deny or sameorigin, reading Frame-Options first
// and falling back to the X- prefixed name.
func frameOptions(headers http.Header) verdict.Verdict {
	value := strings.TrimSpace(headers.Get("Frame-Options"))
	if value == "" {
		value = strings.TrimSpace(headers.Get("X-Frame-Options"))
	}

	switch strings.ToLower(value) {
	case "deny", "sameorigin":
		return verdict.Passf("frame embedding restricted (%s)", strings.ToLower(value))
	default:
		return verdict.Failf("unsafe Frame-Options value %q", value)
	}
}

// xssProtection requires the exact blocking form of the legacy filter
// header. A bare "1", an explicit "0" and an unset header all fail.
func xssProtection(headers http.Header) verdict.Verdict {
	value := strings.TrimSpace(headers.Get("X-XSS-Protection"))
	if strings.ToLower(value) == "1; mode=block" {
		return verdict.Pass("XSS filter enabled in blocking mode")
	}
	return verdict.Failf("unsafe X-XSS-Protection value %q", value)
}

// contentTypeOptions requires nosniff, nothing else.
func contentTypeOptions(headers http.Header) verdict.Verdict {
	value := strings.TrimSpace(headers.Get("X-Content-Type-Options"))
	if strings.ToLower(value) == "nosniff" {
		return verdict.Pass("MIME sniffing disabled")
	}
	return verdict.Failf("unsafe X-Content-Type-Options value %q", value)
}
