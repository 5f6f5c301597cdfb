// Package sequenceview renders the residues of a structure as one-letter
// sequences and mirrors highlight and selection state received as mark
// broadcasts.
package sequenceview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cristianoliveira/molmark/internal/interactivity"
	"github.com/cristianoliveira/molmark/internal/loci"
	"github.com/cristianoliveira/molmark/internal/marker"
	"github.com/cristianoliveira/molmark/internal/structure"
)

// Styles used by Render.
type Styles struct {
	Label       lipgloss.Style
	Plain       lipgloss.Style
	Highlighted lipgloss.Style
	Selected    lipgloss.Style
	Both        lipgloss.Style
}

// DefaultStyles returns the default panel styles.
func DefaultStyles() Styles {
	return Styles{
		Label:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
		Plain:       lipgloss.NewStyle(),
		Highlighted: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42")),
		Both:        lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Bold(true),
	}
}

// Panel is a sequence representation of a structure.
type Panel struct {
	label     string
	structure *structure.Structure
	flags     map[structure.ElementIndex]marker.Flags
	styles    Styles
	marks     int
}

// New creates a panel showing s.
func New(label string, s *structure.Structure) *Panel {
	return &Panel{
		label:     label,
		structure: s,
		flags:     make(map[structure.ElementIndex]marker.Flags),
		styles:    DefaultStyles(),
	}
}

// Label returns the panel label.
func (p *Panel) Label() string { return p.label }

// Structure returns the displayed structure.
func (p *Panel) Structure() *structure.Structure { return p.structure }

// SetStyles replaces the render styles.
func (p *Panel) SetStyles(s Styles) { p.styles = s }

// MarkCount returns the number of broadcasts that changed the panel.
func (p *Panel) MarkCount() int { return p.marks }

// Mark applies a broadcast. It has the interactivity.MarkProvider signature.
// Regions scoped to another representation are ignored.
func (p *Panel) Mark(current interactivity.Loci, action marker.Action) {
	if current.Repr != nil && current.Repr != interactivity.Representation(p) {
		return
	}
	changed := false
	for _, e := range p.elements(current.Loci) {
		next, ok := p.flags[e].Apply(action)
		if !ok {
			continue
		}
		changed = true
		if next == 0 {
			delete(p.flags, e)
		} else {
			p.flags[e] = next
		}
	}
	if changed {
		p.marks++
	}
}

// elements lists the displayed elements covered by l.
func (p *Panel) elements(l loci.Loci) []structure.ElementIndex {
	switch v := l.(type) {
	case loci.EveryLoci:
		return p.structure.Elements()
	case loci.Element:
		return p.filter(v.Structure, v.Indices)
	case loci.Link:
		el := v.ToElement()
		return p.filter(el.Structure, el.Indices)
	case loci.StructureWide:
		return p.filter(v.Structure, v.Structure.Elements())
	default:
		return nil
	}
}

func (p *Panel) filter(s *structure.Structure, indices []structure.ElementIndex) []structure.ElementIndex {
	if s.Root() != p.structure.Root() {
		return nil
	}
	out := make([]structure.ElementIndex, 0, len(indices))
	for _, e := range indices {
		if p.structure.Contains(e) {
			out = append(out, e)
		}
	}
	return out
}

// Flags returns the marker state of element e.
func (p *Panel) Flags(e structure.ElementIndex) marker.Flags {
	return p.flags[e]
}

// ResidueFlags merges the state of every atom of residue r.
func (p *Panel) ResidueFlags(r int) marker.Flags {
	var f marker.Flags
	start, end := p.structure.Model().ResidueAtoms(r)
	for e := start; e < end; e++ {
		f |= p.flags[e]
	}
	return f
}

// Counts returns the number of highlighted and selected elements.
func (p *Panel) Counts() (highlighted, selected int) {
	for _, f := range p.flags {
		if f.Has(marker.Highlighted) {
			highlighted++
		}
		if f.Has(marker.Selected) {
			selected++
		}
	}
	return highlighted, selected
}

// Clear drops every mark.
func (p *Panel) Clear() {
	clear(p.flags)
}

// Chains returns the indices of the chains the panel displays.
func (p *Panel) Chains() []int {
	m := p.structure.Model()
	var out []int
	for c := range m.Chains {
		start, _ := m.ChainAtoms(c)
		if p.structure.Contains(start) {
			out = append(out, c)
		}
	}
	return out
}

// Marks returns one character per residue of chain c: '.' unmarked,
// 'h' highlighted, 's' selected, '*' both.
func (p *Panel) Marks(c int) string {
	ch := p.structure.Model().Chains[c]
	var b strings.Builder
	for r := ch.ResidueStart; r < ch.ResidueEnd; r++ {
		b.WriteByte(flagCode(p.ResidueFlags(r)))
	}
	return b.String()
}

func flagCode(f marker.Flags) byte {
	switch {
	case f.Has(marker.Highlighted | marker.Selected):
		return '*'
	case f.Has(marker.Highlighted):
		return 'h'
	case f.Has(marker.Selected):
		return 's'
	default:
		return '.'
	}
}

// Render draws one line per chain. cursor is the residue index to underline,
// or -1 for none.
func (p *Panel) Render(cursor int) string {
	m := p.structure.Model()
	lines := []string{p.styles.Label.Render(p.label)}
	for _, c := range p.Chains() {
		ch := m.Chains[c]
		var b strings.Builder
		b.WriteString(p.styles.Label.Render(ch.ID + " "))
		for r := ch.ResidueStart; r < ch.ResidueEnd; r++ {
			style := p.residueStyle(p.ResidueFlags(r))
			if r == cursor {
				style = style.Underline(true)
			}
			b.WriteString(style.Render(string(m.Residues[r].Code)))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func (p *Panel) residueStyle(f marker.Flags) lipgloss.Style {
	switch flagCode(f) {
	case '*':
		return p.styles.Both
	case 'h':
		return p.styles.Highlighted
	case 's':
		return p.styles.Selected
	default:
		return p.styles.Plain
	}
}
