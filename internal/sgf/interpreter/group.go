package interpreter

import "sgf_engine/internal/domain/sgf"

// group is a maximal set of same colored stones connected through edges.
type group struct {
	color  State
	stones map[sgf.Point]struct{}
}

// expandGroup flood-fills the group holding start.
func expandGroup(b *board, start sgf.Point) *group {
	g := &group{color: b.state(start), stones: map[sgf.Point]struct{}{start: {}}}

	pending := []sgf.Point{start}
	for len(pending) > 0 {
		p := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		for _, n := range p.Neighbors() {
			if !n.Within(b.size) || b.state(n) != g.color {
				continue
			}
			if _, seen := g.stones[n]; seen {
				continue
			}
			g.stones[n] = struct{}{}
			pending = append(pending, n)
		}
	}

	return g
}

func (g *group) count() int { return len(g.stones) }

func (g *group) contains(p sgf.Point) bool {
	_, ok := g.stones[p]
	return ok
}

// isDead reports a group without liberties.
func (g *group) isDead(b *board) bool {
	for p := range g.stones {
		for _, n := range p.Neighbors() {
			if n.Within(b.size) && b.state(n) == Empty {
				return false
			}
		}
	}
	return true
}

// removeFrom empties the group's intersections and credits the prisoners.
func (g *group) removeFrom(b *board) {
	for p := range g.stones {
		b.set(p, Empty)
	}
	switch g.color {
	case Black:
		b.capturedBlack += len(g.stones)
	case White:
		b.capturedWhite += len(g.stones)
	}
}
