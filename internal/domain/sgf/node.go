package sgf

// NodeID addresses a node inside the arena of its Game.
type NodeID int

const noParent NodeID = -1

// GameNode is any node of a game tree: a move, a setup, markup...
// The parent link is a non-owning id; the tree is owned top-down by Game.
type GameNode struct {
	id         NodeID
	parent     NodeID
	children   []NodeID
	properties []Property
	game       *Game
}

func (n *GameNode) ID() NodeID   { return n.id }
func (n *GameNode) Game() *Game  { return n.game }
func (n *GameNode) IsRoot() bool { return n.parent == noParent }

// Parent returns nil for the root node.
func (n *GameNode) Parent() *GameNode {
	if n.parent == noParent {
		return nil
	}
	return n.game.nodes[n.parent]
}

// Children are returned in document order.
func (n *GameNode) Children() []*GameNode {
	children := make([]*GameNode, len(n.children))
	for i, id := range n.children {
		children[i] = n.game.nodes[id]
	}
	return children
}

func (n *GameNode) ChildCount() int { return len(n.children) }

func (n *GameNode) Properties() []Property {
	out := make([]Property, len(n.properties))
	copy(out, n.properties)
	return out
}

func (n *GameNode) Property(key StandardKey) (Property, bool) {
	for _, p := range n.properties {
		if p.Key.Is(key) {
			return p, true
		}
	}
	return Property{}, false
}

func (n *GameNode) CommonProperty(key CommonKey) (Property, bool) {
	for _, p := range n.properties {
		if k, ok := p.Key.Common(); ok && k == key {
			return p, true
		}
	}
	return Property{}, false
}

func (n *GameNode) CustomProperty(ident string) (Property, bool) {
	for _, p := range n.properties {
		if p.Key.Kind() == KindCustom && p.Key.String() == ident {
			return p, true
		}
	}
	return Property{}, false
}

// Values returns the values of a standard property, nil when absent.
func (n *GameNode) Values(key StandardKey) []string {
	p, _ := n.Property(key)
	return p.Values
}

func (n *GameNode) Has(key StandardKey) bool {
	_, ok := n.Property(key)
	return ok
}

// HasClass reports whether any standard property of the node has class c.
func (n *GameNode) HasClass(c PropertyClass) bool {
	for _, p := range n.properties {
		if p.Key.Kind() == KindStandard && p.Key.Class() == c {
			return true
		}
	}
	return false
}

// IsMoveNode reports a node carrying B or W.
func (n *GameNode) IsMoveNode() bool {
	for _, p := range n.properties {
		if p.IsMove() {
			return true
		}
	}
	return false
}

func (n *GameNode) IsSetupNode() bool {
	for _, p := range n.properties {
		if p.IsSetup() {
			return true
		}
	}
	return false
}

// PreviousMoveNode returns the nearest ancestor carrying B or W.
func (n *GameNode) PreviousMoveNode() *GameNode {
	for node := n.Parent(); node != nil; node = node.Parent() {
		if node.IsMoveNode() {
			return node
		}
	}
	return nil
}

// Depth is the number of edges between the node and the root.
func (n *GameNode) Depth() int {
	depth := 0
	for node := n.Parent(); node != nil; node = node.Parent() {
		depth++
	}
	return depth
}
