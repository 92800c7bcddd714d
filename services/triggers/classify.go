// Package triggers reacts to single-document writes on cases, tasks and
// appointments by emailing the lawyers involved.
package triggers

// Kind is the class of a write.
type Kind int

const (
	NoOp Kind = iota
	Created
	Deleted
	FieldChanged
)

func (k Kind) String() string {
	switch k {
	case Created:
		return "created"
	case Deleted:
		return "deleted"
	case FieldChanged:
		return "field_changed"
	}
	return "noop"
}

// Transition is one classified outcome. Field is set for FieldChanged.
type Transition struct {
	Kind  Kind
	Field string
}

// Field names a watched value and how to read it from a snapshot.
type Field[T any] struct {
	Name  string
	Value func(T) string
}

// Classify compares two snapshots of one document. It returns Created or
// Deleted when exactly one side is present, one FieldChanged per differing
// watched field when both are, and a single NoOp otherwise.
func Classify[T any](before, after *T, watched ...Field[T]) []Transition {
	switch {
	case before == nil && after == nil:
		return []Transition{{Kind: NoOp}}
	case before == nil:
		return []Transition{{Kind: Created}}
	case after == nil:
		return []Transition{{Kind: Deleted}}
	}

	var out []Transition
	for _, f := range watched {
		if f.Value(*before) != f.Value(*after) {
			out = append(out, Transition{Kind: FieldChanged, Field: f.Name})
		}
	}
	if len(out) == 0 {
		return []Transition{{Kind: NoOp}}
	}
	return out
}
