package sgf

import (
	"fmt"
	"slices"
)

// Game is one game tree. Nodes live in an arena indexed by NodeID; the root
// is always NodeID 0. A Game is immutable once built.
type Game struct {
	nodes []*GameNode
}

func (g *Game) Root() *GameNode { return g.nodes[0] }
func (g *Game) Len() int        { return len(g.nodes) }

func (g *Game) Node(id NodeID) (*GameNode, bool) {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil, false
	}
	return g.nodes[id], true
}

// Contains reports whether node belongs to this game tree.
func (g *Game) Contains(node *GameNode) bool {
	return node != nil && node.game == g
}

// NodeAt follows child indexes from the root. An empty path is the root.
func (g *Game) NodeAt(path []int) (*GameNode, error) {
	node := g.Root()
	for depth, idx := range path {
		if idx < 0 || idx >= len(node.children) {
			return nil, fmt.Errorf("no child %d at depth %d", idx, depth)
		}
		node = g.nodes[node.children[idx]]
	}
	return node, nil
}

// PathOf returns the child indexes leading from the root to node.
func (g *Game) PathOf(node *GameNode) []int {
	var path []int
	for n := node; !n.IsRoot(); n = n.Parent() {
		parent := n.Parent()
		path = append(path, slices.Index(parent.children, n.id))
	}
	slices.Reverse(path)
	return path
}

// Walk visits every node in depth-first pre-order, children in document
// order. It stops at the first error returned by fn.
func (g *Game) Walk(fn func(*GameNode) error) error {
	stack := []NodeID{0}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := g.nodes[id]
		if err := fn(node); err != nil {
			return err
		}
		for i := len(node.children) - 1; i >= 0; i-- {
			stack = append(stack, node.children[i])
		}
	}
	return nil
}

// MainLine follows the first child of every node from the root.
func (g *Game) MainLine() []*GameNode {
	line := []*GameNode{g.Root()}
	for node := g.Root(); len(node.children) > 0; {
		node = g.nodes[node.children[0]]
		line = append(line, node)
	}
	return line
}

// Builder assembles a Game node by node. The first node added becomes the
// root; later nodes must name an existing parent.
type Builder struct {
	game *Game
}

func NewBuilder() *Builder {
	return &Builder{game: &Game{}}
}

func (b *Builder) Empty() bool { return len(b.game.nodes) == 0 }

// Add appends a node under parent, or as root when parent is nil.
func (b *Builder) Add(parent *GameNode, properties []Property) (*GameNode, error) {
	node := &GameNode{
		id:         NodeID(len(b.game.nodes)),
		parent:     noParent,
		properties: properties,
		game:       b.game,
	}

	switch {
	case parent == nil && !b.Empty():
		return nil, fmt.Errorf("game already has a root node")
	case parent != nil && parent.game != b.game:
		return nil, fmt.Errorf("parent node belongs to another game")
	case parent != nil:
		node.parent = parent.id
		parent.children = append(parent.children, node.id)
	}

	b.game.nodes = append(b.game.nodes, node)
	return node, nil
}

// Build returns the game, or nil when no node was added.
func (b *Builder) Build() *Game {
	if b.Empty() {
		return nil
	}
	game := b.game
	b.game = &Game{}
	return game
}
