// Package format renders replay results for the CLI.
package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cristianoliveira/molmark/internal/scenario"
)

// Formatter defines the interface for replay output formatters.
type Formatter interface {
	// FormatReplay writes res to writer.
	FormatReplay(res *scenario.Result, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeText prints every step with its broadcasts, then the panels.
	FormatterTypeText FormatterType = "text"

	// FormatterTypeTable prints one row per broadcast under a header.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeJSON prints the result as indented JSON.
	FormatterTypeJSON FormatterType = "json"
)

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeTable:
		return NewTableFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		// Default to text for unknown types
		return NewTextFormatter()
	}
}

// TextFormatter writes the human readable replay report.
type TextFormatter struct{}

// NewTextFormatter creates a new TextFormatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// FormatReplay implements Formatter.
func (f *TextFormatter) FormatReplay(res *scenario.Result, writer io.Writer) error {
	ew := &errWriter{w: writer}
	ew.printf("scenario %s (granularity %s)\n", res.Name, res.Granularity)
	granularity := res.Granularity
	for _, s := range res.Steps {
		target := ""
		if s.Target != "" {
			target = " " + s.Target
		}
		ew.printf("%d. %s%s\n", s.Index, s.Op, target)
		for _, b := range s.Broadcasts {
			ew.printf("   %s %s\n", b.Name, b.Region)
		}
		if s.Granularity != "" && s.Granularity != granularity {
			granularity = s.Granularity
			ew.printf("   granularity: %s\n", granularity)
		}
		ew.printf("   selected: %d\n", s.Selected)
	}
	writePanels(ew, res.Panels)
	return ew.err
}

func writePanels(ew *errWriter, panels []scenario.PanelState) {
	if len(panels) == 0 {
		return
	}
	ew.printf("panels:\n")
	for _, p := range panels {
		removed := ""
		if p.Removed {
			removed = " (removed)"
		}
		ew.printf("  %s%s\n", p.Label, removed)
		for _, c := range p.Chains {
			ew.printf("    %s %s\n", c.ID, c.Marks)
		}
	}
}

// JSONFormatter writes the result as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatReplay implements Formatter.
func (f *JSONFormatter) FormatReplay(res *scenario.Result, writer io.Writer) error {
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// errWriter keeps the first write error so callers check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
