// Package checker defines the security-check evaluation engine.
//
// Architecture overview:
//
//   - Each rule is a Check with a fixed name and exactly one evaluation
//     func: a HeaderFunc over the HTTP response headers, or a
//     DocumentFunc over the parsed document tree. Which func is set
//     declares the input the check consumes.
//   - Evaluate runs the full check set in a fixed declared order and
//     returns an ordered Result, one verdict per check. Report columns
//     rely on that order.
//   - Checks are stateless and every evaluation is a pure function of
//     the fetched page, so sites can be evaluated concurrently without
//     coordination.
//
// The package knows nothing about networking or HTML parsing: callers
// hand it headers and a dom.Document and receive verdicts back.
package checker
