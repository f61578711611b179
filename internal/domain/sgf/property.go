package sgf

import "strings"

// Property is one key of a node with its bracketed values, in document order.
type Property struct {
	Key    PropertyKey
	Values []string
}

func (p Property) IsMove() bool {
	return p.Key.Is(BlackMove) || p.Key.Is(WhiteMove)
}

// IsPassMove reports a move whose first value is blank (B[] / W[]).
func (p Property) IsPassMove() bool {
	return p.IsMove() && len(p.Values) > 0 && strings.TrimSpace(p.Values[0]) == ""
}

func (p Property) IsSetup() bool {
	return p.Key.Class() == ClassSetup
}

// First returns the first value, or "" when the property has none.
func (p Property) First() string {
	if len(p.Values) == 0 {
		return ""
	}
	return p.Values[0]
}
