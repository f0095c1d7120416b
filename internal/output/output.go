// Package output renders command results as text tables or JSON.
package output

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Formatter handles output formatting (table or JSON).
type Formatter struct {
	Writer   io.Writer
	JSONMode bool
}

// New creates a new Formatter with the specified writer and JSON mode.
func New(w io.Writer, jsonMode bool) *Formatter {
	return &Formatter{
		Writer:   w,
		JSONMode: jsonMode,
	}
}

// Table outputs data as a formatted table or JSON array depending on mode.
// Headers define column names, rows contain the data.
func (f *Formatter) Table(headers []string, rows [][]string) error {
	if f.JSONMode {
		return f.tableAsJSON(headers, rows)
	}
	return f.tableAsText(headers, rows)
}

// tableAsText renders a borderless table with aligned columns.
func (f *Formatter) tableAsText(headers []string, rows [][]string) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(f.Writer)
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateColumns = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Format.Header = text.FormatDefault

	hdr := make(table.Row, len(headers))
	for i, h := range headers {
		hdr[i] = h
	}
	tw.AppendHeader(hdr)

	for _, r := range rows {
		row := make(table.Row, len(headers))
		for i := range headers {
			if i < len(r) {
				row[i] = r[i]
			}
		}
		tw.AppendRow(row)
	}

	tw.Render()
	return nil
}

// tableAsJSON renders a table as a JSON array of objects.
func (f *Formatter) tableAsJSON(headers []string, rows [][]string) error {
	result := make([]map[string]string, 0, len(rows))

	for _, row := range rows {
		obj := make(map[string]string)
		for i, header := range headers {
			if i < len(row) {
				obj[header] = row[i]
			} else {
				obj[header] = ""
			}
		}
		result = append(result, obj)
	}

	return f.Print(result)
}

// Print outputs data as formatted JSON (pretty-printed) or as a simple string representation.
func (f *Formatter) Print(data any) error {
	if f.JSONMode {
		out, err := sonic.ConfigStd.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		_, err = fmt.Fprintln(f.Writer, string(out))
		return err
	}

	// In non-JSON mode, use a simple representation
	_, err := fmt.Fprintf(f.Writer, "%v\n", data)
	return err
}

// Colorize wraps s in green for a non-negative change and red otherwise.
func Colorize(s string, change float64) string {
	if change >= 0 {
		return text.Colors{text.FgGreen}.Sprint(s)
	}
	return text.Colors{text.FgRed}.Sprint(s)
}
