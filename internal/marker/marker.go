// Package marker defines mark actions and the per-element mark state they change.
package marker

import "fmt"

// Action describes what a broadcast means for the region it carries.
type Action int

const (
	Highlight Action = iota
	RemoveHighlight
	Select
	Deselect
	Toggle
)

var actionNames = map[Action]string{
	Highlight:       "highlight",
	RemoveHighlight: "remove-highlight",
	Select:          "select",
	Deselect:        "deselect",
	Toggle:          "toggle",
}

// String returns the kebab-case name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// IsValid reports whether a is a known action.
func (a Action) IsValid() bool {
	_, ok := actionNames[a]
	return ok
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown marker action: %s", name)
}

// Flags is the mark state of one element.
type Flags uint8

const (
	Highlighted Flags = 1 << iota
	Selected
)

// Has reports whether all bits of f2 are set.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// Apply returns the state after action and whether it changed.
func (f Flags) Apply(action Action) (Flags, bool) {
	next := f
	switch action {
	case Highlight:
		next |= Highlighted
	case RemoveHighlight:
		next &^= Highlighted
	case Select:
		next |= Selected
	case Deselect:
		next &^= Selected
	case Toggle:
		next ^= Selected
	}
	return next, next != f
}
