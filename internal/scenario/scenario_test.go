package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cristianoliveira/molmark/examples"
	"github.com/cristianoliveira/molmark/internal/marker"
	"github.com/cristianoliveira/molmark/internal/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFormatsAgree(t *testing.T) {
	fromTOML, err := Load(filepath.Join("testdata", "basic.toml"))
	require.NoError(t, err)
	fromYAML, err := Load(filepath.Join("testdata", "basic.yaml"))
	require.NoError(t, err)

	assert.Equal(t, fromTOML, fromYAML)
	assert.Equal(t, "basic", fromTOML.Name)
	require.Len(t, fromTOML.Structures, 1)
	assert.Equal(t, []string{"B"}, fromTOML.Structures[0].Derive[0].Chains)
	require.Len(t, fromTOML.Steps, 5)
	assert.Equal(t, "CA", fromTOML.Steps[0].Atom)
}

func TestLoadNameFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hover.yml")
	require.NoError(t, os.WriteFile(path, []byte("structures:\n  - name: x\n    chains:\n      - {id: A, sequence: G}\n"), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hover", f.Name)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
		msg     string
	}{
		{name: "unsupported extension", file: "s.json", content: "{}", wantErr: ErrUnsupportedFormat},
		{name: "unknown toml field", file: "s.toml", content: "colour = \"red\"\n", msg: "TOML"},
		{name: "unknown yaml field", file: "s.yaml", content: "colour: red\n", msg: "YAML"},
		{name: "no structures", file: "s.toml", content: "name = \"x\"\n", msg: "no structures"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestRunBasic(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "basic.toml"))
	require.NoError(t, err)

	res, err := Run(f)
	require.NoError(t, err)

	assert.Equal(t, "basic", res.Name)
	assert.Equal(t, "residue", res.Granularity)
	require.Len(t, res.Steps, 5)
	assert.Equal(t, 0, res.SelectedElements)

	var actions []marker.Action
	for _, b := range res.Broadcasts() {
		actions = append(actions, b.Action)
	}
	assert.Equal(t, []marker.Action{
		// hover
		marker.RemoveHighlight, marker.Highlight,
		// click toggles residue 2 on
		marker.Select,
		// select-only
		marker.Deselect, marker.Select,
		// click on empty
		marker.Deselect,
	}, actions)

	assert.Equal(t, "structure=demo chain=A residue=2 atom=CA", res.Steps[0].Target)
	assert.Equal(t, 4, res.Steps[1].Selected)
	assert.Empty(t, res.Steps[2].Broadcasts)
	assert.Equal(t, "residue", res.Steps[1].Granularity)
	assert.Equal(t, "element", res.Steps[2].Granularity)
	assert.Equal(t, "element", res.Steps[4].Granularity)
	assert.Equal(t, 4, res.Steps[3].Broadcasts[1].Step)
	assert.Equal(t, "select", res.Steps[3].Broadcasts[1].Name)

	assert.Equal(t, []PanelState{
		{Label: "demo", Chains: []ChainMarks{{ID: "A", Marks: ".h..."}, {ID: "B", Marks: ".."}}},
		{Label: "demo-B", Chains: []ChainMarks{{ID: "B", Marks: ".."}}},
	}, res.Panels)
}

func TestRunStopsAtFailingStep(t *testing.T) {
	f := Demo()
	f.Steps = []Step{
		{Op: OpSelect, Structure: "crambin", Chain: "A", Residue: 1},
		{Op: "explode"},
		{Op: OpDeselectAll},
	}

	res, err := Run(f)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownOp)
	assert.Contains(t, err.Error(), "step 2")
	require.NotNil(t, res)
	assert.Len(t, res.Steps, 1)
	assert.NotEmpty(t, res.Panels)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "", Describe(Step{Op: OpDeselectAll}))
	assert.Equal(t, "structure=x region=bond bond=A/1/C-A/2/N shift scoped",
		Describe(Step{Structure: "x", Region: "bond", Bond: []string{"A/1/C", "A/2/N"}, Shift: true, Scoped: true}))
}

func TestShippedExamplesReplay(t *testing.T) {
	for _, name := range examples.Names() {
		t.Run(name, func(t *testing.T) {
			file, ok := examples.File(name)
			require.True(t, ok)
			f, err := LoadFS(examples.FS, file)
			require.NoError(t, err)
			assert.Equal(t, name, f.Name)

			res, err := Run(f)
			require.NoError(t, err)
			assert.Len(t, res.Steps, len(f.Steps))
			assert.Equal(t, 0, res.SelectedElements)
		})
	}
}

func TestRunStepErrors(t *testing.T) {
	base := Demo()
	tests := []struct {
		name    string
		step    Step
		wantErr error
	}{
		{"unknown op", Step{Op: "explode"}, ErrUnknownOp},
		{"unknown structure", Step{Op: OpSelect, Structure: "missing", Chain: "A"}, ErrUnknownStructure},
		{"unknown chain", Step{Op: OpSelect, Structure: "crambin", Chain: "Z"}, structure.ErrUnknownChain},
		{"unknown residue", Step{Op: OpSelect, Structure: "crambin", Chain: "A", Residue: 99}, ErrUnknownResidue},
		{"unknown atom", Step{Op: OpSelect, Structure: "crambin", Chain: "A", Residue: 1, Atom: "CB"}, ErrUnknownAtom},
		{"atom without residue", Step{Op: OpSelect, Structure: "crambin", Chain: "A", Atom: "CA"}, ErrInvalidTarget},
		{"bad region", Step{Op: OpSelect, Structure: "crambin", Region: "molecule"}, ErrInvalidTarget},
		{"bad bond", Step{Op: OpSelect, Structure: "crambin", Region: "bond", Bond: []string{"A/1/C"}}, ErrInvalidTarget},
		{"bad button", Step{Op: OpClick, Region: "every", Button: "middle"}, ErrInvalidTarget},
		{"remove unknown panel", Step{Op: OpRemovePanel, Structure: "missing"}, ErrUnknownStructure},
		{"chain left out of copy", Step{Op: OpSelect, Structure: "crambin-B", Chain: "A"}, ErrInvalidTarget},
		{"residue left out of copy", Step{Op: OpSelect, Structure: "crambin-B", Chain: "A", Residue: 3}, ErrInvalidTarget},
		{"atom left out of copy", Step{Op: OpHighlight, Structure: "crambin-B", Chain: "A", Residue: 3, Atom: "CA"}, ErrInvalidTarget},
		{"bond left out of copy", Step{Op: OpHighlight, Structure: "crambin-B", Region: "bond", Bond: []string{"A/1/C", "A/2/N"}}, ErrInvalidTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := *base
			f.Steps = []Step{tt.step}
			_, err := Run(&f)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "step 1")
		})
	}
}

func TestRunRejectsChainOutsideDerivedCopy(t *testing.T) {
	f := Demo()
	f.Steps = []Step{
		{Op: OpSelect, Structure: "crambin-B", Chain: "B", Residue: 1},
		{Op: OpSelect, Structure: "crambin-B", Chain: "A"},
	}

	res, err := Run(f)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTarget)
	assert.Contains(t, err.Error(), "chain A is not part of crambin-B")
	require.Len(t, res.Steps, 1)
	assert.Equal(t, 4, res.Steps[0].Selected)
}

func TestSessionInvalidGranularity(t *testing.T) {
	f := Demo()
	f.Granularity = "molecule"
	_, err := NewSession(f)
	require.Error(t, err)
}

func TestSessionRemovePanel(t *testing.T) {
	s, err := NewSession(Demo())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Apply(Step{Op: OpSelect, Structure: "crambin", Chain: "B", Residue: 3}))
	derived, ok := s.Panel("crambin-B")
	require.True(t, ok)
	assert.Equal(t, "..s"+strings.Repeat(".", 19), derived.Marks(1))

	require.NoError(t, s.Apply(Step{Op: OpRemovePanel, Structure: "crambin-B"}))
	assert.True(t, s.IsRemoved("crambin-B"))
	_, sel := derived.Counts()
	assert.Equal(t, 0, sel)

	require.NoError(t, s.Apply(Step{Op: OpSelect, Structure: "crambin", Chain: "B", Residue: 5}))
	_, sel = derived.Counts()
	assert.Equal(t, 0, sel)

	root, _ := s.Panel("crambin")
	_, sel = root.Counts()
	assert.Equal(t, 8, sel)

	require.NoError(t, s.RemovePanel("crambin-B"))
}

func TestSessionScopedAndBondTargets(t *testing.T) {
	s, err := NewSession(Demo())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Apply(Step{Op: OpSetGranularity, Granularity: "element"}))
	require.NoError(t, s.Apply(Step{
		Op: OpHighlight, Structure: "crambin", Region: "bond", Bond: []string{"A/1/C", "A/2/N"},
	}))
	root, _ := s.Panel("crambin")
	hl, _ := root.Counts()
	assert.Equal(t, 2, hl)

	require.NoError(t, s.Apply(Step{Op: OpSelect, Structure: "crambin-B", Chain: "B", Residue: 1, Scoped: true}))
	_, sel := root.Counts()
	assert.Equal(t, 0, sel, "scoped region reaches only its own panel")
	derived, _ := s.Panel("crambin-B")
	_, sel = derived.Counts()
	assert.Equal(t, 4, sel)
	assert.Equal(t, 4, s.Interactivity().Selection().ElementCount())
}

func TestSessionSetGranularityIgnoresInvalid(t *testing.T) {
	s, err := NewSession(Demo())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Apply(Step{Op: OpSetGranularity, Granularity: "chain"}))
	require.NoError(t, s.Apply(Step{Op: OpSetGranularity, Granularity: "molecule"}))
	assert.Equal(t, "chain", s.Interactivity().Props().Granularity.String())

	require.NoError(t, s.Apply(Step{Op: OpSelect, Structure: "crambin", Chain: "A", Residue: 3, Atom: "O"}))
	assert.Equal(t, 24*4, s.Interactivity().Selection().ElementCount())

	require.NoError(t, s.Apply(Step{Op: OpReset}))
	assert.Equal(t, 0, s.Interactivity().Selection().ElementCount())
}

func TestBuildWorldErrors(t *testing.T) {
	tests := []struct {
		name string
		file *File
	}{
		{"bad residue code", &File{Structures: []Structure{{Name: "x", Chains: []Chain{{ID: "A", Sequence: "MZ"}}}}}},
		{"duplicate name", &File{Structures: []Structure{
			{Name: "x", Chains: []Chain{{ID: "A", Sequence: "M"}}},
			{Name: "x", Chains: []Chain{{ID: "A", Sequence: "M"}}},
		}}},
		{"derive unknown chain", &File{Structures: []Structure{
			{Name: "x", Chains: []Chain{{ID: "A", Sequence: "M"}}, Derive: []Derive{{Name: "y", Chains: []string{"B"}}}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildWorld(tt.file)
			require.Error(t, err)
		})
	}
}
