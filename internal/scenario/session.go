package scenario

import (
	"fmt"
	"slices"

	"github.com/cristianoliveira/molmark/internal/behavior"
	"github.com/cristianoliveira/molmark/internal/command"
	"github.com/cristianoliveira/molmark/internal/interactivity"
	"github.com/cristianoliveira/molmark/internal/logging"
	"github.com/cristianoliveira/molmark/internal/sequenceview"
)

// Op names.
const (
	OpHighlight          = "highlight"
	OpHighlightExtend    = "highlight-extend"
	OpSelect             = "select"
	OpSelectOnly         = "select-only"
	OpSelectToggle       = "select-toggle"
	OpSelectExtend       = "select-extend"
	OpDeselect           = "deselect"
	OpDeselectAll        = "deselect-all"
	OpDeselectAllOnEmpty = "deselect-all-on-empty"
	OpHover              = "hover"
	OpClick              = "click"
	OpSetGranularity     = "set-granularity"
	OpRemovePanel        = "remove-panel"
	OpReset              = "reset"
)

type panelEntry struct {
	panel *sequenceview.Panel
	sub   interactivity.Subscription
	// removed panels are cleared on removal and receive no further broadcasts
	removed bool
}

// Session is a live interactivity setup over the structures of a scenario,
// with one sequence panel registered per structure.
type Session struct {
	world    *World
	ix       *interactivity.Interactivity
	behavior *behavior.Handler
	setProps *command.Command[interactivity.Props]
	panels   []*panelEntry
	byName   map[string]*panelEntry
	logger   logging.Logger
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	logger    logging.Logger
	providers []interactivity.MarkProvider
}

// WithLogger sets the session logger.
func WithLogger(l logging.Logger) Option {
	return func(o *sessionOptions) { o.logger = l }
}

// WithProvider registers p before the panels, so it sees every broadcast first.
func WithProvider(p interactivity.MarkProvider) Option {
	return func(o *sessionOptions) { o.providers = append(o.providers, p) }
}

// NewSession builds the structures of f and wires the panels.
func NewSession(f *File, opts ...Option) (*Session, error) {
	o := sessionOptions{logger: logging.Noop()}
	for _, opt := range opts {
		opt(&o)
	}

	props := interactivity.DefaultProps()
	if f.Granularity != "" {
		g, err := interactivity.ParseGranularity(f.Granularity)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", f.Name, err)
		}
		props.Granularity = g
	}

	world, err := BuildWorld(f)
	if err != nil {
		return nil, err
	}

	setProps := interactivity.NewSetPropsCommand()
	ix := interactivity.New(nil,
		interactivity.WithLogger(o.logger),
		interactivity.WithProps(props),
		interactivity.WithSetPropsCommand(setProps),
	)
	for _, p := range o.providers {
		ix.AddProvider(p)
	}

	s := &Session{
		world:    world,
		ix:       ix,
		behavior: behavior.New(ix),
		setProps: setProps,
		byName:   make(map[string]*panelEntry),
		logger:   o.logger.With("component", "scenario", "scenario", f.Name),
	}
	for _, name := range world.Names() {
		st, _ := world.Structure(name)
		p := sequenceview.New(name, st)
		e := &panelEntry{panel: p, sub: ix.AddProvider(p.Mark)}
		s.panels = append(s.panels, e)
		s.byName[name] = e
	}
	return s, nil
}

// World returns the scenario structures.
func (s *Session) World() *World { return s.world }

// Interactivity returns the facade.
func (s *Session) Interactivity() *interactivity.Interactivity { return s.ix }

// Behavior returns the pointer input handler.
func (s *Session) Behavior() *behavior.Handler { return s.behavior }

// SetPropsCommand returns the command channel the facade listens on.
func (s *Session) SetPropsCommand() *command.Command[interactivity.Props] { return s.setProps }

// Panels returns every panel, removed ones included, in declaration order.
func (s *Session) Panels() []*sequenceview.Panel {
	out := make([]*sequenceview.Panel, len(s.panels))
	for i, e := range s.panels {
		out[i] = e.panel
	}
	return out
}

// Panel returns the panel showing the named structure.
func (s *Session) Panel(name string) (*sequenceview.Panel, bool) {
	e, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return e.panel, true
}

// IsRemoved reports whether the named panel was unregistered.
func (s *Session) IsRemoved(name string) bool {
	e, ok := s.byName[name]
	return ok && e.removed
}

// RemovePanel unregisters the named panel. The panel receives its clearing
// broadcast as part of the removal.
func (s *Session) RemovePanel(name string) error {
	e, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStructure, name)
	}
	if e.removed {
		return nil
	}
	s.ix.RemoveProvider(e.sub)
	e.removed = true
	s.logger.Debug("panel removed", "panel", name)
	return nil
}

// Close detaches the facade from its command channel.
func (s *Session) Close() {
	s.ix.Dispose()
}

// Ops lists every op a step may name.
func Ops() []string {
	return []string{
		OpHighlight, OpHighlightExtend, OpSelect, OpSelectOnly, OpSelectToggle,
		OpSelectExtend, OpDeselect, OpDeselectAll, OpDeselectAllOnEmpty,
		OpHover, OpClick, OpSetGranularity, OpRemovePanel, OpReset,
	}
}

// Apply performs one step.
func (s *Session) Apply(step Step) error {
	if !slices.Contains(Ops(), step.Op) {
		return fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
	}
	switch step.Op {
	case OpDeselectAll:
		s.ix.Selects().DeselectAll()
		return nil
	case OpReset:
		s.ix.Reset()
		return nil
	case OpSetGranularity:
		s.setProps.Dispatch(interactivity.Props{Granularity: interactivity.Granularity(step.Granularity)})
		return nil
	case OpRemovePanel:
		return s.RemovePanel(step.Structure)
	}

	target, err := s.target(step)
	if err != nil {
		return fmt.Errorf("step %s: %w", step.Op, err)
	}
	apply := !step.Raw
	hl, sel := s.ix.Highlights(), s.ix.Selects()

	switch step.Op {
	case OpHighlight:
		hl.HighlightOnly(target, apply)
	case OpHighlightExtend:
		hl.HighlightOnlyExtend(target, apply)
	case OpSelect:
		sel.Select(target, apply)
	case OpSelectOnly:
		sel.SelectOnly(target, apply)
	case OpSelectToggle:
		sel.SelectToggle(target, apply)
	case OpSelectExtend:
		sel.SelectExtend(target, apply)
	case OpDeselect:
		sel.Deselect(target, apply)
	case OpDeselectAllOnEmpty:
		sel.DeselectAllOnEmpty(target)
	case OpHover:
		buttons, err := parseButtons(step.Button, 0)
		if err != nil {
			return fmt.Errorf("step %s: %w", step.Op, err)
		}
		s.behavior.Hover(behavior.HoverEvent{Current: target, Buttons: buttons, Modifiers: modifiers(step)})
	case OpClick:
		buttons, err := parseButtons(step.Button, behavior.ButtonPrimary)
		if err != nil {
			return fmt.Errorf("step %s: %w", step.Op, err)
		}
		s.behavior.Click(behavior.ClickEvent{Current: target, Buttons: buttons, Modifiers: modifiers(step)})
	}
	return nil
}

func (s *Session) target(step Step) (interactivity.Loci, error) {
	var repr interactivity.Representation
	if step.Scoped {
		e, ok := s.byName[step.Structure]
		if !ok {
			return interactivity.Loci{}, fmt.Errorf("%w: %q", ErrUnknownStructure, step.Structure)
		}
		repr = e.panel
	}
	return s.world.Target(step, repr)
}

func modifiers(step Step) behavior.Modifiers {
	return behavior.Modifiers{Shift: step.Shift, Control: step.Control}
}

func parseButtons(name string, fallback behavior.Buttons) (behavior.Buttons, error) {
	switch name {
	case "":
		return fallback, nil
	case "none":
		return 0, nil
	case "primary":
		return behavior.ButtonPrimary, nil
	case "secondary":
		return behavior.ButtonSecondary, nil
	case "auxiliary":
		return behavior.ButtonAuxiliary, nil
	default:
		return 0, fmt.Errorf("%w: button %q", ErrInvalidTarget, name)
	}
}
