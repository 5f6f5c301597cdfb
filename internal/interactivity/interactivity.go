package interactivity

import (
	"github.com/cristianoliveira/molmark/internal/command"
	"github.com/cristianoliveira/molmark/internal/logging"
	"github.com/cristianoliveira/molmark/internal/selection"
)

// Interactivity owns the highlight and select managers and their shared
// configuration. The managers read props from here, so they never diverge.
type Interactivity struct {
	props      Props
	highlights *LociHighlightManager
	selects    *LociSelectManager
	sel        *selection.Manager
	logger     logging.Logger
	setProps   *command.Command[Props]
	unsub      func()

	// initial props are merged once every option has run
	initial []Props
}

// Option configures an Interactivity.
type Option func(*Interactivity)

// WithProps merges props into the defaults. Invalid values are reported
// through the logger set by WithLogger, whatever the option order.
func WithProps(props Props) Option {
	return func(i *Interactivity) {
		i.initial = append(i.initial, props)
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l logging.Logger) Option {
	return func(i *Interactivity) {
		i.logger = l
	}
}

// WithSetPropsCommand subscribes the facade to a SetProps command channel.
func WithSetPropsCommand(c *command.Command[Props]) Option {
	return func(i *Interactivity) {
		i.setProps = c
	}
}

// NewSetPropsCommand creates the command channel that delivers SetProps.
func NewSetPropsCommand() *command.Command[Props] {
	return command.New[Props]("interactivity.set-props")
}

// New creates the facade over sel. If sel is nil, a new selection manager is created.
func New(sel *selection.Manager, opts ...Option) *Interactivity {
	if sel == nil {
		sel = selection.NewManager()
	}
	i := &Interactivity{
		props:  DefaultProps(),
		sel:    sel,
		logger: logging.Noop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.logger = i.logger.With("component", "interactivity")
	for _, props := range i.initial {
		i.applyProps(props)
	}
	i.initial = nil

	i.highlights = newLociHighlightManager(newLociMarkManager(i.Props, sel, i.logger.With("manager", "highlight")))
	i.selects = newLociSelectManager(newLociMarkManager(i.Props, sel, i.logger.With("manager", "select")))

	if i.setProps != nil {
		i.unsub = i.setProps.Subscribe(i.SetProps)
	}
	return i
}

// Props returns a copy of the current configuration.
func (i *Interactivity) Props() Props {
	return i.props
}

// SetProps merges the non-zero fields of props into the configuration.
// Invalid values are logged and ignored.
func (i *Interactivity) SetProps(props Props) {
	i.applyProps(props)
	i.logger.Info("props updated", "granularity", i.props.Granularity.String())
}

func (i *Interactivity) applyProps(props Props) {
	merged, errs := i.props.merge(props)
	for _, err := range errs {
		i.logger.Warn("ignoring interactivity prop", "error", err)
	}
	i.props = merged
}

// Highlights returns the highlight manager.
func (i *Interactivity) Highlights() *LociHighlightManager {
	return i.highlights
}

// Selects returns the select manager.
func (i *Interactivity) Selects() *LociSelectManager {
	return i.selects
}

// Selection returns the selected set.
func (i *Interactivity) Selection() *selection.Manager {
	return i.sel
}

// Subscription holds the registrations made by AddProvider.
type Subscription struct {
	Highlight ProviderID
	Select    ProviderID
}

// AddProvider registers p with both managers.
func (i *Interactivity) AddProvider(p MarkProvider) Subscription {
	return Subscription{
		Highlight: i.highlights.AddProvider(p),
		Select:    i.selects.AddProvider(p),
	}
}

// RemoveProvider drops both registrations of s.
func (i *Interactivity) RemoveProvider(s Subscription) {
	i.highlights.RemoveProvider(s.Highlight)
	i.selects.RemoveProvider(s.Select)
}

// Reset clears the highlight and the selection.
func (i *Interactivity) Reset() {
	i.highlights.Clear()
	i.selects.DeselectAll()
}

// Dispose unsubscribes from the SetProps command.
func (i *Interactivity) Dispose() {
	if i.unsub != nil {
		i.unsub()
		i.unsub = nil
	}
}
