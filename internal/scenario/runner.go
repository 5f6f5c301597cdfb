package scenario

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/molmark/internal/interactivity"
	"github.com/cristianoliveira/molmark/internal/marker"
)

// Broadcast is one mark broadcast observed during a replay.
type Broadcast struct {
	Step   int           `json:"step"`
	Action marker.Action `json:"-"`
	Name   string        `json:"action"`
	Region string        `json:"region"`
}

// StepResult is the outcome of one step.
type StepResult struct {
	Index      int         `json:"index"`
	Op         string      `json:"op"`
	Target     string      `json:"target,omitempty"`
	Broadcasts []Broadcast `json:"broadcasts"`
	Selected   int         `json:"selected"`

	// Granularity is the one in effect after the step.
	Granularity string `json:"granularity"`
}

// ChainMarks is the per-residue mark string of one chain of a panel.
type ChainMarks struct {
	ID    string `json:"id"`
	Marks string `json:"marks"`
}

// PanelState is the final state of a sequence panel.
type PanelState struct {
	Label   string       `json:"label"`
	Removed bool         `json:"removed"`
	Chains  []ChainMarks `json:"chains"`
}

// Result summarizes a replay. Granularity is the starting granularity.
type Result struct {
	Name             string       `json:"name"`
	Granularity      string       `json:"granularity"`
	Steps            []StepResult `json:"steps"`
	Panels           []PanelState `json:"panels"`
	SelectedElements int          `json:"selected_elements"`
}

// Broadcasts returns every broadcast of the replay in order.
func (r *Result) Broadcasts() []Broadcast {
	var out []Broadcast
	for _, s := range r.Steps {
		out = append(out, s.Broadcasts...)
	}
	return out
}

// Run replays f. On a failing step the result covers the steps before it.
func Run(f *File, opts ...Option) (*Result, error) {
	var pending []Broadcast
	step := 0
	record := func(current interactivity.Loci, action marker.Action) {
		pending = append(pending, Broadcast{Step: step, Action: action, Name: action.String(), Region: current.String()})
	}

	session, err := NewSession(f, append(opts, WithProvider(record))...)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	res := &Result{Name: f.Name, Granularity: session.Interactivity().Props().Granularity.String()}
	for i, st := range f.Steps {
		step = i + 1
		pending = nil
		if err := session.Apply(st); err != nil {
			res.Panels = panelStates(session)
			return res, fmt.Errorf("step %d: %w", step, err)
		}
		res.Steps = append(res.Steps, StepResult{
			Index:       step,
			Op:          st.Op,
			Target:      Describe(st),
			Broadcasts:  pending,
			Selected:    session.Interactivity().Selection().ElementCount(),
			Granularity: session.Interactivity().Props().Granularity.String(),
		})
	}

	res.SelectedElements = session.Interactivity().Selection().ElementCount()
	res.Panels = panelStates(session)
	return res, nil
}

func panelStates(s *Session) []PanelState {
	var out []PanelState
	for _, p := range s.Panels() {
		ps := PanelState{Label: p.Label(), Removed: s.IsRemoved(p.Label())}
		for _, c := range p.Chains() {
			ps.Chains = append(ps.Chains, ChainMarks{ID: p.Structure().Model().Chains[c].ID, Marks: p.Marks(c)})
		}
		out = append(out, ps)
	}
	return out
}

// Describe renders the target and input fields of a step as key=value pairs.
func Describe(st Step) string {
	var parts []string
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, k+"="+v)
		}
	}
	add("structure", st.Structure)
	add("chain", st.Chain)
	if st.Residue != 0 {
		add("residue", fmt.Sprint(st.Residue))
	}
	add("atom", st.Atom)
	add("region", st.Region)
	if len(st.Bond) > 0 {
		add("bond", strings.Join(st.Bond, "-"))
	}
	add("granularity", st.Granularity)
	add("button", st.Button)
	for _, flag := range []struct {
		name string
		set  bool
	}{{"shift", st.Shift}, {"control", st.Control}, {"scoped", st.Scoped}, {"raw", st.Raw}} {
		if flag.set {
			parts = append(parts, flag.name)
		}
	}
	return strings.Join(parts, " ")
}
