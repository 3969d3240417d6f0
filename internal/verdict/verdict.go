// Package verdict holds the three-level classification shared by all
// security checks and the reduction used to collapse many per-element
// results into one.
package verdict

import (
	"fmt"
	"strings"
)

// Class orders classifications by severity: the lower the value, the
// worse the outcome. Combine relies on this ordering.
type Class int

const (
	ClassFail Class = iota
	ClassWarn
	ClassPass
)

func (c Class) String() string {
	switch c {
	case ClassFail:
		return "FAIL"
	case ClassWarn:
		return "WARN"
	case ClassPass:
		return "PASS"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// MarshalText makes classifications stable in JSON artifacts.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Verdict is the outcome of a single check: a classification plus a
// human-readable explanation. Verdicts are never mutated once built.
type Verdict struct {
	Class   Class  `json:"classification"`
	Message string `json:"message"`
}

// Fail returns a FAIL verdict with the given message.
func Fail(message string) Verdict {
	return Verdict{Class: ClassFail, Message: message}
}

// Failf is Fail with fmt-style formatting.
func Failf(format string, args ...any) Verdict {
	return Fail(fmt.Sprintf(format, args...))
}

// Warn returns a WARN verdict with the given message.
func Warn(message string) Verdict {
	return Verdict{Class: ClassWarn, Message: message}
}

// Warnf is Warn with fmt-style formatting.
func Warnf(format string, args ...any) Verdict {
	return Warn(fmt.Sprintf(format, args...))
}

// Pass returns a PASS verdict with the given message.
func Pass(message string) Verdict {
	return Verdict{Class: ClassPass, Message: message}
}

// Passf is Pass with fmt-style formatting.
func Passf(format string, args ...any) Verdict {
	return Pass(fmt.Sprintf(format, args...))
}

// Combine reduces a list of verdicts to the single most severe one.
// The messages of every verdict sharing the worst classification are
// joined, so no failure detail is lost in the reduction. An empty list
// is a vacuous PASS: a scan that matched nothing found nothing wrong.
func Combine(verdicts ...Verdict) Verdict {
	if len(verdicts) == 0 {
		return Verdict{Class: ClassPass}
	}

	worst := verdicts[0].Class
	for _, v := range verdicts[1:] {
		if v.Class < worst {
			worst = v.Class
		}
	}

	messages := make([]string, 0, len(verdicts))
	for _, v := range verdicts {
		if v.Class == worst && v.Message != "" {
			messages = append(messages, v.Message)
		}
	}

	return Verdict{Class: worst, Message: strings.Join(messages, "; ")}
}
