// Package behavior translates pointer input on a representation into
// highlight and selection operations.
package behavior

import (
	"github.com/cristianoliveira/molmark/internal/interactivity"
	"github.com/cristianoliveira/molmark/internal/loci"
)

// Buttons is the set of pointer buttons held during an event.
type Buttons uint8

const (
	ButtonPrimary Buttons = 1 << iota
	ButtonSecondary
	ButtonAuxiliary
)

// Has reports whether every button of b is held.
func (bs Buttons) Has(b Buttons) bool { return bs&b == b }

// Modifiers are the keyboard modifiers held during an event.
type Modifiers struct {
	Shift   bool
	Alt     bool
	Control bool
	Meta    bool
}

// IsNone reports whether no modifier is held.
func (m Modifiers) IsNone() bool {
	return !m.Shift && !m.Alt && !m.Control && !m.Meta
}

// HoverEvent is emitted when the pointer moves over a region.
type HoverEvent struct {
	Current   interactivity.Loci
	Buttons   Buttons
	Modifiers Modifiers
}

// ClickEvent is emitted when a region is clicked.
type ClickEvent struct {
	Current   interactivity.Loci
	Buttons   Buttons
	Modifiers Modifiers
}

// Handler routes events to the interactivity managers.
type Handler struct {
	ix *interactivity.Interactivity
}

// New creates a handler bound to ix.
func New(ix *interactivity.Interactivity) *Handler {
	return &Handler{ix: ix}
}

// Hover highlights the region under the pointer. Hovering with a button held
// is a drag and leaves the highlight alone.
func (h *Handler) Hover(e HoverEvent) {
	if e.Buttons != 0 {
		return
	}
	if e.Modifiers.Shift {
		h.ix.Highlights().HighlightOnlyExtend(e.Current, true)
		return
	}
	h.ix.Highlights().HighlightOnly(e.Current, true)
}

// Click updates the selection.
func (h *Handler) Click(e ClickEvent) {
	if loci.IsEmpty(e.Current.Loci) {
		h.ix.Selects().DeselectAllOnEmpty(e.Current)
		return
	}
	sel := h.ix.Selects()
	switch {
	case e.Buttons.Has(ButtonSecondary):
		sel.Deselect(e.Current, true)
	case !e.Buttons.Has(ButtonPrimary):
	case e.Modifiers.Shift:
		sel.SelectExtend(e.Current, true)
	case e.Modifiers.Control:
		sel.SelectOnly(e.Current, true)
	default:
		sel.SelectToggle(e.Current, true)
	}
}
