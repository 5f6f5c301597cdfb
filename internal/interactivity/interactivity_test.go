package interactivity

import (
	"bytes"
	"testing"

	"github.com/cristianoliveira/molmark/internal/logging"
	"github.com/cristianoliveira/molmark/internal/loci"
	"github.com/cristianoliveira/molmark/internal/marker"
	"github.com/cristianoliveira/molmark/internal/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	current Loci
	action  marker.Action
}

type recorder struct {
	name   string
	events []event
	log    *[]string
}

func (r *recorder) provider() MarkProvider {
	return func(current Loci, action marker.Action) {
		r.events = append(r.events, event{current: current, action: action})
		if r.log != nil {
			*r.log = append(*r.log, r.name+":"+action.String())
		}
	}
}

func (r *recorder) actions() []marker.Action {
	out := make([]marker.Action, len(r.events))
	for i, e := range r.events {
		out[i] = e.action
	}
	return out
}

func (r *recorder) reset() { r.events = nil }

type fakeRepr struct{ label string }

func (f *fakeRepr) Label() string { return f.label }

// chain A "MKTAY" holds atoms 0-19, chain B "GA" holds atoms 20-27.
func testStructure(t *testing.T) *structure.Structure {
	t.Helper()
	m, err := structure.NewBuilder("demo").AddChain("A", "MKTAY").AddChain("B", "GA").Build()
	require.NoError(t, err)
	return structure.NewRoot("demo", m)
}

func at(s *structure.Structure, indices ...structure.ElementIndex) Loci {
	return Loci{Loci: loci.NewElement(s, indices...)}
}

func newTestInteractivity(t *testing.T, g Granularity) (*Interactivity, *recorder) {
	t.Helper()
	ix := New(nil, WithProps(Props{Granularity: g}))
	rec := &recorder{name: "rec"}
	ix.AddProvider(rec.provider())
	return ix, rec
}

func TestNormalizeIsIdempotent(t *testing.T) {
	s := testStructure(t)
	chainB, err := s.Derive("chain B", "B")
	require.NoError(t, err)

	regions := map[string]loci.Loci{
		"empty":             loci.Empty,
		"every":             loci.Every,
		"atom":              loci.NewElement(s, 5),
		"atoms on copy":     loci.NewElement(chainB, 21, 26),
		"bond":              loci.NewLink(s, structure.Bond{A: 2, B: 4}),
		"whole structure":   loci.NewStructure(s),
		"derived structure": loci.NewStructure(chainB),
	}

	for _, g := range Granularities() {
		for name, region := range regions {
			t.Run(g.String()+"/"+name, func(t *testing.T) {
				once := normalize(region, g, true)
				twice := normalize(once, g, true)
				assert.True(t, loci.AreEqual(once, twice), "%s != %s", once, twice)
			})
		}
	}
}

func TestNormalizeSteps(t *testing.T) {
	s := testStructure(t)
	chainB, err := s.Derive("chain B", "B")
	require.NoError(t, err)
	bond := loci.NewLink(s, structure.Bond{A: 2, B: 4})

	t.Run("element granularity keeps links", func(t *testing.T) {
		got := normalize(bond, GranularityElement, true)
		assert.True(t, loci.AreEqual(bond, got))
	})

	t.Run("links become elements before expansion", func(t *testing.T) {
		got, ok := normalize(bond, GranularityResidue, true).(loci.Element)
		require.True(t, ok)
		// residues 1 and 2 of chain A
		assert.Equal(t, 8, got.Size())
	})

	t.Run("structure-wide becomes root elements", func(t *testing.T) {
		got, ok := normalize(loci.NewStructure(chainB), GranularityElement, true).(loci.Element)
		require.True(t, ok)
		assert.Same(t, s, got.Structure)
		assert.Equal(t, 8, got.Size())
	})

	t.Run("structure granularity yields root structure", func(t *testing.T) {
		got := normalize(loci.NewElement(chainB, 21), GranularityStructure, true)
		assert.True(t, loci.AreEqual(loci.NewStructure(s), got))
	})

	t.Run("granularity skipped on request", func(t *testing.T) {
		got := normalize(loci.NewElement(chainB, 21), GranularityChain, false)
		assert.True(t, loci.AreEqual(loci.NewElement(s, 21), got))
	})

	t.Run("empty and every pass through", func(t *testing.T) {
		assert.True(t, loci.IsEmpty(normalize(loci.Empty, GranularityChain, true)))
		assert.Equal(t, loci.KindEvery, normalize(loci.Every, GranularityChain, true).Kind())
	})
}

func TestNormalizedLociKeepsRepr(t *testing.T) {
	s := testStructure(t)
	ix, _ := newTestInteractivity(t, GranularityElement)
	repr := &fakeRepr{label: "cartoon"}

	got := ix.Highlights().NormalizedLoci(Loci{Loci: loci.NewElement(s, 3), Repr: repr}, true)
	assert.Equal(t, Representation(repr), got.Repr)
}

func TestHighlightOnlyElementAlwaysRemarks(t *testing.T) {
	s := testStructure(t)
	ix, rec := newTestInteractivity(t, GranularityResidue)
	hl := ix.Highlights()

	hl.HighlightOnly(at(s, 1), true)
	hl.HighlightOnly(at(s, 2), true) // same residue
	hl.HighlightOnly(at(s, 9), true)

	require.Equal(t, []marker.Action{
		marker.RemoveHighlight, marker.Highlight,
		marker.RemoveHighlight, marker.Highlight,
		marker.RemoveHighlight, marker.Highlight,
	}, rec.actions())

	assert.True(t, loci.IsEmpty(rec.events[0].current.Loci))
	assert.True(t, rec.events[2].current.Equal(rec.events[1].current))
	assert.True(t, hl.Previous().Equal(rec.events[5].current))
	assert.Equal(t, []structure.ElementIndex{8, 9, 10, 11}, hl.Previous().Loci.(loci.Element).Indices)
}

func TestHighlightOnlyNonElementSkipsRepeats(t *testing.T) {
	s := testStructure(t)
	ix, rec := newTestInteractivity(t, GranularityResidue)
	hl := ix.Highlights()

	hl.HighlightOnly(at(s, 1), true)
	rec.reset()

	hl.HighlightOnly(EmptyLoci, true)
	hl.HighlightOnly(EmptyLoci, true)
	hl.HighlightOnly(EmptyLoci, true)

	require.Equal(t, []marker.Action{marker.RemoveHighlight, marker.Highlight}, rec.actions())
	assert.True(t, loci.IsEmpty(hl.Previous().Loci))
}

func TestHighlightOnlyExtend(t *testing.T) {
	s := testStructure(t)
	ix, rec := newTestInteractivity(t, GranularityElement)

	ix.Selects().Select(at(s, 2), true)
	rec.reset()

	ix.Highlights().HighlightOnlyExtend(at(s, 6), true)
	require.Equal(t, []marker.Action{marker.RemoveHighlight, marker.Highlight}, rec.actions())
	assert.Equal(t, []structure.ElementIndex{2, 3, 4, 5, 6}, rec.events[1].current.Loci.(loci.Element).Indices)

	// falls back to the picked region when nothing is selected in that chain
	ix.Highlights().HighlightOnlyExtend(at(s, 24), true)
	assert.Equal(t, []structure.ElementIndex{24}, ix.Highlights().Previous().Loci.(loci.Element).Indices)

	// non-element regions are ignored
	rec.reset()
	ix.Highlights().HighlightOnlyExtend(EveryLoci, true)
	assert.Empty(t, rec.events)
}

func TestSelectGranularityScenario(t *testing.T) {
	s := testStructure(t)
	ix, _ := newTestInteractivity(t, GranularityResidue)

	ix.Selects().Select(at(s, 5), true)
	assert.Equal(t, []structure.ElementIndex{4, 5, 6, 7}, ix.Selection().Get(s).Indices)

	ix.SetProps(Props{Granularity: GranularityElement})
	ix.Selects().SelectOnly(at(s, 5), true)
	assert.Equal(t, []structure.ElementIndex{5}, ix.Selection().Get(s).Indices)
}

func TestSelectBroadcastsUnconditionally(t *testing.T) {
	ix, rec := newTestInteractivity(t, GranularityResidue)

	ix.Selects().Select(EveryLoci, true)
	ix.Selects().Deselect(EmptyLoci, true)

	require.Equal(t, []marker.Action{marker.Select, marker.Deselect}, rec.actions())
	assert.Equal(t, 0, ix.Selection().ElementCount())
}

func TestSelectOnlyLeavesExactlyTheRegion(t *testing.T) {
	s := testStructure(t)
	other := structure.NewRoot("other", s.Model())

	tests := []struct {
		name        string
		granularity Granularity
		region      Loci
		want        int
	}{
		{"element region", GranularityResidue, at(s, 13), 4},
		{"other structure", GranularityResidue, Loci{Loci: loci.NewElement(other, 0)}, 4},
		{"every", GranularityResidue, EveryLoci, 0},
		{"structure granularity", GranularityStructure, at(s, 13), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix, rec := newTestInteractivity(t, GranularityElement)
			ix.Selects().Select(at(s, 0, 24), true)
			rec.reset()

			ix.SetProps(Props{Granularity: tt.granularity})
			ix.Selects().SelectOnly(tt.region, true)

			assert.Equal(t, tt.want, ix.Selection().ElementCount())
			require.Len(t, rec.events, 2)
			assert.Equal(t, marker.Deselect, rec.events[0].action)
			assert.True(t, rec.events[0].current.Equal(EveryLoci))
			assert.Equal(t, marker.Select, rec.events[1].action)
		})
	}
}

func TestSelectToggleLaw(t *testing.T) {
	s := testStructure(t)

	for _, g := range Granularities() {
		t.Run(g.String(), func(t *testing.T) {
			ix, rec := newTestInteractivity(t, g)
			// chain B, disjoint from the toggled region at every granularity but structure
			ix.Selects().Select(at(s, 24), false)
			before := ix.Selection().Get(s)

			ix.Selects().SelectToggle(at(s, 9), true)
			ix.Selects().SelectToggle(at(s, 9), true)

			assert.True(t, loci.AreEqual(before, ix.Selection().Get(s)))
			require.Len(t, rec.events, 3)
		})
	}
}

func TestSelectToggleLawWithPartialOverlap(t *testing.T) {
	s := testStructure(t)
	tests := []struct {
		name        string
		granularity Granularity
		preselect   structure.ElementIndex
		toggle      Loci
	}{
		{"element", GranularityElement, 0, at(s, 0, 1, 2, 3)},
		{"residue", GranularityResidue, 24, at(s, 25)},
		{"chain", GranularityChain, 21, at(s, 26)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix, rec := newTestInteractivity(t, tt.granularity)
			ix.Selects().Select(at(s, tt.preselect), false)

			ix.Selects().SelectToggle(tt.toggle, true)
			assert.Greater(t, ix.Selection().ElementCount(), 1)
			ix.Selects().SelectToggle(tt.toggle, true)

			assert.Equal(t, []structure.ElementIndex{tt.preselect}, ix.Selection().Get(s).Indices)
			assert.Equal(t, []marker.Action{marker.Select, marker.Select, marker.Deselect}, rec.actions())
		})
	}
}

func TestSelectToggleAfterOtherChangesRemovesWholeRegion(t *testing.T) {
	s := testStructure(t)
	ix, _ := newTestInteractivity(t, GranularityElement)
	ix.Selects().Select(at(s, 0), false)

	ix.Selects().SelectToggle(at(s, 0, 1, 2, 3), true)
	ix.Selects().Select(at(s, 10), false)
	ix.Selects().SelectToggle(at(s, 0, 1, 2, 3), true)

	assert.Equal(t, []structure.ElementIndex{10}, ix.Selection().Get(s).Indices)
}

func TestSelectToggleBroadcasts(t *testing.T) {
	s := testStructure(t)
	ix, rec := newTestInteractivity(t, GranularityResidue)

	ix.Selects().SelectToggle(at(s, 9), true)
	ix.Selects().SelectToggle(at(s, 9), true)
	ix.Selects().SelectToggle(EveryLoci, true)

	assert.Equal(t, []marker.Action{marker.Select, marker.Deselect, marker.Toggle}, rec.actions())
	assert.Equal(t, 0, ix.Selection().ElementCount())
}

func TestSelectExtend(t *testing.T) {
	s := testStructure(t)
	ix, rec := newTestInteractivity(t, GranularityResidue)

	ix.Selects().Select(at(s, 0), true) // residue 1: atoms 0-3
	ix.Selects().SelectExtend(at(s, 13), true)

	assert.Equal(t, 16, ix.Selection().Get(s).Size())
	assert.Equal(t, marker.Select, rec.events[len(rec.events)-1].action)

	// the span back to the nearest selected element is already selected, so it toggles off
	ix.Selects().SelectExtend(at(s, 13), true)
	assert.Equal(t, []structure.ElementIndex{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ix.Selection().Get(s).Indices)
	assert.Equal(t, marker.Deselect, rec.events[len(rec.events)-1].action)

	rec.reset()
	ix.Selects().SelectExtend(EmptyLoci, true)
	assert.Empty(t, rec.events)
}

func TestDeselectAll(t *testing.T) {
	s := testStructure(t)
	ix, rec := newTestInteractivity(t, GranularityResidue)
	ix.Selects().Select(at(s, 0, 13, 24), true)
	rec.reset()

	ix.Selects().DeselectAll()

	assert.Equal(t, 0, ix.Selection().ElementCount())
	require.Len(t, rec.events, 1)
	assert.Equal(t, marker.Deselect, rec.events[0].action)
	assert.True(t, rec.events[0].current.Equal(EveryLoci))
}

func TestDeselectAllOnEmpty(t *testing.T) {
	s := testStructure(t)
	ix, rec := newTestInteractivity(t, GranularityElement)
	ix.Selects().Select(at(s, 1, 2, 3), true)
	rec.reset()

	ix.Selects().DeselectAllOnEmpty(at(s, 5))
	assert.Equal(t, 3, ix.Selection().ElementCount())
	assert.Empty(t, rec.events)

	ix.Selects().DeselectAllOnEmpty(Loci{Loci: loci.NewElement(s)})
	assert.Equal(t, 3, ix.Selection().ElementCount())

	ix.Selects().DeselectAllOnEmpty(EmptyLoci)
	assert.Equal(t, 0, ix.Selection().ElementCount())
	assert.Equal(t, []marker.Action{marker.Deselect}, rec.actions())
}

func TestProvidersReceiveBroadcastsInOrder(t *testing.T) {
	s := testStructure(t)
	ix := New(nil)
	var order []string
	first := &recorder{name: "first", log: &order}
	second := &recorder{name: "second", log: &order}
	ix.AddProvider(first.provider())
	ix.AddProvider(second.provider())

	ix.Selects().Select(at(s, 5), true)

	assert.Equal(t, []string{"first:select", "second:select"}, order)
	want := ix.Selects().NormalizedLoci(at(s, 5), true)
	assert.True(t, first.events[0].current.Equal(want))
	assert.True(t, second.events[0].current.Equal(want))
}

func TestRemoveProviderClearsOnlyRemoved(t *testing.T) {
	s := testStructure(t)
	ix := New(nil)
	kept := &recorder{name: "kept"}
	removed := &recorder{name: "removed"}
	ix.AddProvider(kept.provider())
	sub := ix.AddProvider(removed.provider())

	ix.Highlights().HighlightOnly(at(s, 5), true)
	kept.reset()
	removed.reset()

	ix.RemoveProvider(sub)

	assert.Empty(t, kept.events)
	assert.Equal(t, []marker.Action{marker.RemoveHighlight, marker.Deselect}, removed.actions())
	assert.Equal(t, 1, ix.Highlights().ProviderCount())
	assert.Equal(t, 1, ix.Selects().ProviderCount())

	removed.reset()
	ix.Selects().Select(at(s, 1), true)
	assert.Empty(t, removed.events)
	assert.False(t, ix.Selects().RemoveProvider(sub.Select))
}

func TestSameProviderRegisteredTwice(t *testing.T) {
	s := testStructure(t)
	ix := New(nil)
	rec := &recorder{}
	p := rec.provider()
	first := ix.Selects().AddProvider(p)
	ix.Selects().AddProvider(p)

	ix.Selects().Select(at(s, 1), true)
	assert.Len(t, rec.events, 2)

	require.True(t, ix.Selects().RemoveProvider(first))
	rec.reset()
	ix.Selects().Select(at(s, 1), true)
	assert.Len(t, rec.events, 1)
}

func TestSetPropsSharedByManagers(t *testing.T) {
	cmd := NewSetPropsCommand()
	ix := New(nil, WithSetPropsCommand(cmd))
	assert.Equal(t, GranularityResidue, ix.Props().Granularity)

	cmd.Dispatch(Props{Granularity: GranularityChain})
	assert.Equal(t, GranularityChain, ix.Props().Granularity)
	assert.Equal(t, GranularityChain, ix.Highlights().Props().Granularity)
	assert.Equal(t, GranularityChain, ix.Selects().Props().Granularity)

	// zero and invalid values leave the configuration alone
	ix.SetProps(Props{})
	ix.SetProps(Props{Granularity: "molecule"})
	assert.Equal(t, GranularityChain, ix.Selects().Props().Granularity)

	ix.Dispose()
	cmd.Dispatch(Props{Granularity: GranularityElement})
	assert.Equal(t, GranularityChain, ix.Props().Granularity)
}

func TestInvalidInitialPropsAreLoggedWhateverTheOptionOrder(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, logging.Config{Level: "debug"})

	ix := New(nil, WithProps(Props{Granularity: "molecule"}), WithLogger(logger))

	assert.Equal(t, GranularityResidue, ix.Props().Granularity)
	assert.Contains(t, buf.String(), "ignoring interactivity prop")
}

func TestReset(t *testing.T) {
	s := testStructure(t)
	ix, rec := newTestInteractivity(t, GranularityResidue)
	ix.Highlights().HighlightOnly(at(s, 1), true)
	ix.Selects().Select(at(s, 1), true)
	rec.reset()

	ix.Reset()

	assert.Equal(t, []marker.Action{marker.RemoveHighlight, marker.Deselect}, rec.actions())
	assert.True(t, loci.IsEmpty(ix.Highlights().Previous().Loci))
	assert.Equal(t, 0, ix.Selection().ElementCount())
}

func TestProviderPanicPropagates(t *testing.T) {
	s := testStructure(t)
	ix := New(nil)
	after := &recorder{}
	ix.AddProvider(func(Loci, marker.Action) { panic("boom") })
	ix.AddProvider(after.provider())

	assert.Panics(t, func() { ix.Selects().Select(at(s, 1), true) })
	assert.Empty(t, after.events)
}

func TestGranularityHelpers(t *testing.T) {
	g, err := ParseGranularity("chain")
	require.NoError(t, err)
	assert.Equal(t, GranularityChain, g)
	assert.Equal(t, GranularityStructure, g.Next())
	assert.Equal(t, GranularityElement, GranularityStructure.Next())

	_, err = ParseGranularity("atom")
	require.Error(t, err)
}
