// Package state implements the interactive sequence explorer.
package state

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/molmark/internal/behavior"
	"github.com/cristianoliveira/molmark/internal/errors"
	"github.com/cristianoliveira/molmark/internal/interactivity"
	"github.com/cristianoliveira/molmark/internal/loci"
	"github.com/cristianoliveira/molmark/internal/scenario"
	"github.com/cristianoliveira/molmark/internal/sequenceview"
	"github.com/cristianoliveira/molmark/internal/tui/render"
)

// Model represents the explorer model for bubbletea.
type Model struct {
	session  *scenario.Session
	panel    *sequenceview.Panel
	residues []int
	cursor   int
	keys     keyMap
	help     help.Model
	width    int
	status   *errors.StatusHandler
}

// NewModel creates an explorer over the first panel of session.
func NewModel(session *scenario.Session) (*Model, error) {
	panels := session.Panels()
	if len(panels) == 0 {
		return nil, fmt.Errorf("session has no structures")
	}
	p := panels[0]
	m := p.Structure().Model()
	var residues []int
	for _, c := range p.Chains() {
		ch := m.Chains[c]
		for r := ch.ResidueStart; r < ch.ResidueEnd; r++ {
			residues = append(residues, r)
		}
	}
	return &Model{
		session:  session,
		panel:    p,
		residues: residues,
		keys:     defaultKeyMap(),
		help:     help.New(),
		status:   errors.NewStatusHandler(),
	}, nil
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status.Clear()
	ix := m.session.Interactivity()
	b := m.session.Behavior()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Prev):
		m.move(-1)
		b.Hover(behavior.HoverEvent{Current: m.current()})
	case key.Matches(msg, m.keys.Next):
		m.move(1)
		b.Hover(behavior.HoverEvent{Current: m.current()})
	case key.Matches(msg, m.keys.ExtendPrev):
		m.move(-1)
		b.Hover(behavior.HoverEvent{Current: m.current(), Modifiers: behavior.Modifiers{Shift: true}})
	case key.Matches(msg, m.keys.ExtendNext):
		m.move(1)
		b.Hover(behavior.HoverEvent{Current: m.current(), Modifiers: behavior.Modifiers{Shift: true}})
	case key.Matches(msg, m.keys.Toggle):
		b.Click(behavior.ClickEvent{Current: m.current(), Buttons: behavior.ButtonPrimary})
	case key.Matches(msg, m.keys.SelectOnly):
		b.Click(behavior.ClickEvent{Current: m.current(), Buttons: behavior.ButtonPrimary, Modifiers: behavior.Modifiers{Control: true}})
	case key.Matches(msg, m.keys.Extend):
		if ix.Selection().ElementCount() == 0 {
			m.status.Warning("nothing selected to extend from")
		}
		b.Click(behavior.ClickEvent{Current: m.current(), Buttons: behavior.ButtonPrimary, Modifiers: behavior.Modifiers{Shift: true}})
	case key.Matches(msg, m.keys.DeselectAll):
		ix.Selects().DeselectAll()
	case key.Matches(msg, m.keys.Granularity):
		next := ix.Props().Granularity.Next()
		m.session.SetPropsCommand().Dispatch(interactivity.Props{Granularity: next})
		m.status.Info("granularity " + next.String())
	}
	return m, nil
}

func (m *Model) move(delta int) {
	if len(m.residues) == 0 {
		return
	}
	m.cursor = max(0, min(len(m.residues)-1, m.cursor+delta))
}

// current is the CA atom of the residue under the cursor, so the granularity
// decides how far the pick expands.
func (m *Model) current() interactivity.Loci {
	if len(m.residues) == 0 {
		return interactivity.EmptyLoci
	}
	s := m.panel.Structure()
	r := m.residues[m.cursor]
	e, ok := s.Model().FindAtom(r, "CA")
	if !ok {
		e, _ = s.Model().ResidueAtoms(r)
	}
	return interactivity.Loci{Loci: loci.NewElement(s, e)}
}

func (m *Model) residueLabel() string {
	if len(m.residues) == 0 {
		return "-"
	}
	mdl := m.panel.Structure().Model()
	res := mdl.Residues[m.residues[m.cursor]]
	return fmt.Sprintf("%s%d %s", mdl.Chains[res.ChainIndex].ID, res.SeqID, res.Name)
}

func highlightLabel(l interactivity.Loci) string {
	switch v := l.Loci.(type) {
	case loci.EmptyLoci:
		return ""
	case loci.Element:
		return fmt.Sprintf("%d elements", v.Size())
	default:
		return string(v.Kind())
	}
}

// View renders the explorer.
func (m *Model) View() string {
	ix := m.session.Interactivity()
	cursor := -1
	if len(m.residues) > 0 {
		cursor = m.residues[m.cursor]
	}

	var b strings.Builder
	b.WriteString(render.Header(render.HeaderState{
		Title:       m.panel.Label(),
		Granularity: ix.Props().Granularity.String(),
		Width:       m.width,
	}))
	b.WriteString("\n\n")
	b.WriteString(m.panel.Render(cursor))
	b.WriteString("\n\n")
	status := render.StatusState{
		Residue:     m.residueLabel(),
		Highlighted: highlightLabel(ix.Highlights().Previous()),
		Selected:    ix.Selection().ElementCount(),
	}
	if msg, ok := m.status.Current(); ok {
		status.Message = msg.Text
		status.Warning = msg.Type != errors.MessageTypeInfo
	}
	b.WriteString(render.Status(status))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
