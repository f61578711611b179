package interpreter

import "sgf_engine/internal/domain/sgf"

// State is the content of an intersection.
type State int

const (
	Empty State = iota
	Black
	White
)

func (s State) String() string {
	switch s {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// Opponent returns the other stone color; Empty has no opponent.
func (s State) Opponent() State {
	switch s {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

// Intersection is a board point and what lies on it. Column 0 is the
// leftmost column, row 0 the topmost row: B[db] is column 3, row 1.
type Intersection struct {
	Column int
	Row    int
	State  State
}

func (i Intersection) Point() sgf.Point {
	return sgf.Point{Column: i.Column, Row: i.Row}
}

// Goban is the board position reached at one node. It is never modified
// once published by the Interpreter.
type Goban struct {
	node          *sgf.GameNode
	size          int
	moveNumber    int
	hasMoveNumber bool
	capturedBlack int
	capturedWhite int
	cells         []State
}

func (g *Goban) Node() *sgf.GameNode { return g.node }
func (g *Goban) Size() int           { return g.size }

// MoveNumber is undefined for setup and other non-move nodes.
func (g *Goban) MoveNumber() (int, bool) {
	return g.moveNumber, g.hasMoveNumber
}

// CapturedBlackStones counts black stones removed from the board since the
// root, that is White's prisoners.
func (g *Goban) CapturedBlackStones() int { return g.capturedBlack }

// CapturedWhiteStones counts white stones removed from the board since the
// root, that is Black's prisoners.
func (g *Goban) CapturedWhiteStones() int { return g.capturedWhite }

func (g *Goban) At(column, row int) (Intersection, bool) {
	p := sgf.Point{Column: column, Row: row}
	if !p.Within(g.size) {
		return Intersection{}, false
	}
	return Intersection{Column: column, Row: row, State: g.cells[column*g.size+row]}, true
}

// Intersections returns the grid indexed by [column][row].
func (g *Goban) Intersections() [][]Intersection {
	grid := make([][]Intersection, g.size)
	for c := range grid {
		grid[c] = make([]Intersection, g.size)
		for r := range grid[c] {
			grid[c][r] = Intersection{Column: c, Row: r, State: g.cells[c*g.size+r]}
		}
	}
	return grid
}

// Stones returns every occupied intersection, column by column.
func (g *Goban) Stones() []Intersection {
	var stones []Intersection
	for idx, state := range g.cells {
		if state != Empty {
			stones = append(stones, Intersection{Column: idx / g.size, Row: idx % g.size, State: state})
		}
	}
	return stones
}

// CurrentIntersection is the intersection played at this node. There is
// none for a pass or a node without move.
func (g *Goban) CurrentIntersection() (Intersection, bool) {
	p, ok := playedPoint(g.node)
	if !ok {
		return Intersection{}, false
	}
	return g.At(p.Column, p.Row)
}

// board is the private working copy a node is computed on.
type board struct {
	node          *sgf.GameNode
	size          int
	moveNumber    int
	hasMoveNumber bool
	capturedBlack int
	capturedWhite int
	cells         []State
}

func emptyBoard(node *sgf.GameNode, size int) *board {
	return &board{node: node, size: size, cells: make([]State, size*size)}
}

func (g *Goban) thaw(node *sgf.GameNode) *board {
	cells := make([]State, len(g.cells))
	copy(cells, g.cells)
	return &board{
		node:          node,
		size:          g.size,
		moveNumber:    g.moveNumber,
		hasMoveNumber: g.hasMoveNumber,
		capturedBlack: g.capturedBlack,
		capturedWhite: g.capturedWhite,
		cells:         cells,
	}
}

func (b *board) freeze() *Goban {
	return &Goban{
		node:          b.node,
		size:          b.size,
		moveNumber:    b.moveNumber,
		hasMoveNumber: b.hasMoveNumber,
		capturedBlack: b.capturedBlack,
		capturedWhite: b.capturedWhite,
		cells:         b.cells,
	}
}

func (b *board) state(p sgf.Point) State {
	return b.cells[p.Column*b.size+p.Row]
}

func (b *board) set(p sgf.Point, s State) {
	b.cells[p.Column*b.size+p.Row] = s
}

func (b *board) setMoveNumber(n int) {
	b.moveNumber, b.hasMoveNumber = n, true
}

func (b *board) clearMoveNumber() {
	b.moveNumber, b.hasMoveNumber = 0, false
}
