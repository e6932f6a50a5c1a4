// Package tablewriter renders rows as a bordered ASCII table. Column widths
// are measured in display columns, so colored cells and double-width runes
// stay aligned.
package tablewriter

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth measures the printed width of a cell, ignoring ANSI color
// codes.
func displayWidth(s string) int {
	return runewidth.StringWidth(ansiRegex.ReplaceAllString(s, ""))
}

// Writer accumulates rows and renders them as an ASCII table.
type Writer struct {
	out     io.Writer
	headers []string
	rows    [][]string
	widths  []int
}

// NewWriter creates a table writer that renders to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w}
}

// SetHeader sets the column headers.
func (t *Writer) SetHeader(headers []string) {
	t.headers = headers
	t.updateWidths(headers)
}

// Append adds a row to the table.
func (t *Writer) Append(row []string) {
	t.rows = append(t.rows, row)
	t.updateWidths(row)
}

func (t *Writer) updateWidths(row []string) {
	for i, cell := range row {
		if i >= len(t.widths) {
			t.widths = append(t.widths, 0)
		}
		if w := displayWidth(cell); w > t.widths[i] {
			t.widths[i] = w
		}
	}
}

// Render writes the table. An empty table writes nothing.
func (t *Writer) Render() {
	if len(t.headers) == 0 && len(t.rows) == 0 {
		return
	}
	t.printBorder()
	if len(t.headers) > 0 {
		t.printRow(t.headers)
		t.printBorder()
	}
	for _, row := range t.rows {
		t.printRow(row)
	}
	t.printBorder()
}

func (t *Writer) printBorder() {
	fmt.Fprint(t.out, "+")
	for _, width := range t.widths {
		fmt.Fprint(t.out, strings.Repeat("-", width+2), "+")
	}
	fmt.Fprintln(t.out)
}

func (t *Writer) printRow(row []string) {
	fmt.Fprint(t.out, "|")
	for i, width := range t.widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		padding := width - displayWidth(cell)
		fmt.Fprintf(t.out, " %s%s |", cell, strings.Repeat(" ", padding))
	}
	fmt.Fprintln(t.out)
}
