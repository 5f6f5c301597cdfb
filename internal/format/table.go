package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/molmark/internal/colors"
	"github.com/cristianoliveira/molmark/internal/scenario"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers.
	HeaderColor string

	// ColumnWidths defines the width for each column.
	ColumnWidths map[string]int

	// ColumnAlignments defines the alignment for each column (left, right, center).
	ColumnAlignments map[string]string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		ColumnWidths: map[string]int{
			"Step":     4,
			"Op":       18,
			"Action":   16,
			"Region":   40,
			"Selected": 8,
		},
		ColumnAlignments: map[string]string{
			"Step":     "right",
			"Selected": "right",
		},
	}
}

// row is one line of the broadcast table.
type row struct {
	step      scenario.StepResult
	broadcast scenario.Broadcast
}

// TableColumn represents a column in a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in characters.
	Width int

	// Extractor extracts the value from a row.
	Extractor func(row) string
}

// TableFormatter writes one row per broadcast. Steps without broadcasts
// still get a row so the selection size is visible.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewTableFormatter creates a new TableFormatter with default columns.
func NewTableFormatter() *TableFormatter {
	config := DefaultTableConfig()
	column := func(name string, value func(row) string) TableColumn {
		width := config.ColumnWidths[name]
		align := config.ColumnAlignments[name]
		return TableColumn{
			Name:  name,
			Width: width,
			Extractor: func(r row) string {
				return formatString(value(r), width, align)
			},
		}
	}
	columns := []TableColumn{
		column("Step", func(r row) string { return fmt.Sprintf("%d", r.step.Index) }),
		column("Op", func(r row) string { return r.step.Op }),
		column("Action", func(r row) string { return r.broadcast.Name }),
		{
			Name:  "Region",
			Width: config.ColumnWidths["Region"],
			Extractor: func(r row) string {
				return truncateString(r.broadcast.Region, config.ColumnWidths["Region"])
			},
		},
		column("Selected", func(r row) string { return fmt.Sprintf("%d", r.step.Selected) }),
	}
	return &TableFormatter{config: config, columns: columns}
}

// FormatReplay implements Formatter.
func (f *TableFormatter) FormatReplay(res *scenario.Result, writer io.Writer) error {
	ew := &errWriter{w: writer}
	if f.config.ShowHeaders {
		f.writeHeader(ew)
	}
	f.writeSeparator(ew)
	for _, s := range res.Steps {
		if len(s.Broadcasts) == 0 {
			f.writeRow(ew, row{step: s, broadcast: scenario.Broadcast{Name: "-"}})
			continue
		}
		for _, b := range s.Broadcasts {
			f.writeRow(ew, row{step: s, broadcast: b})
		}
	}
	writePanels(ew, res.Panels)
	return ew.err
}

func (f *TableFormatter) writeHeader(ew *errWriter) {
	for i, col := range f.columns {
		header := formatString(col.Name, col.Width, "left")
		if i == 0 {
			ew.printf("%s%s%s", f.config.HeaderColor, header, colors.Reset)
		} else {
			ew.printf("  %s", header)
		}
	}
	ew.printf("\n")
}

func (f *TableFormatter) writeSeparator(ew *errWriter) {
	for i, col := range f.columns {
		separator := strings.Repeat("-", col.Width)
		if i == 0 {
			ew.printf("%s%s%s", f.config.HeaderColor, separator, colors.Reset)
		} else {
			ew.printf("  %s", separator)
		}
	}
	ew.printf("\n")
}

func (f *TableFormatter) writeRow(ew *errWriter, r row) {
	for i, col := range f.columns {
		if i > 0 {
			ew.printf("  ")
		}
		ew.printf("%s", col.Extractor(r))
	}
	ew.printf("\n")
}

// formatString pads s to width with the given alignment, cutting it if longer.
func formatString(s string, width int, alignment string) string {
	if len(s) >= width {
		return s[:width]
	}

	switch alignment {
	case "right":
		return strings.Repeat(" ", width-len(s)) + s
	case "center":
		left := (width - len(s)) / 2
		right := width - len(s) - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default: // left
		return s + strings.Repeat(" ", width-len(s))
	}
}

// truncateString truncates a string to the specified width, adding "..." if truncated.
func truncateString(s string, width int) string {
	if len(s) <= width {
		return s + strings.Repeat(" ", width-len(s))
	}
	if width < 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
