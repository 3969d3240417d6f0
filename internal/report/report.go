// Package report renders scan rows as a fixed-column text table, one
// glyph per check.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/cs278/uk-online-banking-audit/internal/checker"
	"github.com/cs278/uk-online-banking-audit/internal/scanner"
	"github.com/cs278/uk-online-banking-audit/internal/verdict"
)

const (
	glyphPass        = "✔"
	glyphWarn        = "!"
	glyphFail        = "✘"
	glyphUnreachable = "E"
)

var (
	colorPass = color.New(color.FgGreen).SprintFunc()
	colorWarn = color.New(color.FgYellow).SprintFunc()
	colorFail = color.New(color.FgRed).SprintFunc()
)

// Glyph maps a verdict to its report symbol, colored unless colored
// output is globally disabled.
func Glyph(v verdict.Verdict) string {
	switch v.Class {
	case verdict.ClassPass:
		return colorPass(glyphPass)
	case verdict.ClassWarn:
		return colorWarn(glyphWarn)
	default:
		return colorFail(glyphFail)
	}
}

// WriteTable renders one row per site with the check columns in their
// fixed order. Unreachable sites get an E in every check column.
func WriteTable(w io.Writer, rows []scanner.Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	names := checker.Names()
	fmt.Fprintf(tw, "Site\t%s\n", strings.Join(names, "\t"))

	for _, row := range rows {
		cells := make([]string, 0, len(names))
		if row.Unreachable() {
			for range names {
				cells = append(cells, colorFail(glyphUnreachable))
			}
		} else {
			for _, entry := range row.Checks.Entries() {
				cells = append(cells, Glyph(entry.Verdict))
			}
		}
		fmt.Fprintf(tw, "%s\t%s\n", row.Site.Name, strings.Join(cells, "\t"))
	}

	return tw.Flush()
}

// WriteFindings lists every non-passing verdict with its explanation,
// the detail behind the table's glyphs.
func WriteFindings(w io.Writer, rows []scanner.Row) {
	for _, row := range rows {
		if row.Unreachable() {
			fmt.Fprintf(w, "%s: %s\n", row.Site.Name, colorFail("unreachable: "+row.Error))
			continue
		}
		for _, entry := range row.Checks.Entries() {
			switch entry.Verdict.Class {
			case verdict.ClassFail:
				fmt.Fprintf(w, "%s: %s: %s\n", row.Site.Name, entry.Name, colorFail(entry.Verdict.Message))
			case verdict.ClassWarn:
				fmt.Fprintf(w, "%s: %s: %s\n", row.Site.Name, entry.Name, colorWarn(entry.Verdict.Message))
			}
		}
	}
}
