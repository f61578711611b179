package sgf

import "fmt"

// Point is a board coordinate. "aa" is the top-left corner; the first letter
// is the column, the second the row.
type Point struct {
	Column int
	Row    int
}

func (p Point) String() string {
	return string([]byte{byte('a' + p.Column), byte('a' + p.Row)})
}

// Neighbors returns the four orthogonal neighbours, including off-board ones.
func (p Point) Neighbors() [4]Point {
	return [4]Point{
		{p.Column - 1, p.Row},
		{p.Column + 1, p.Row},
		{p.Column, p.Row - 1},
		{p.Column, p.Row + 1},
	}
}

func (p Point) Within(size int) bool {
	return p.Column >= 0 && p.Column < size && p.Row >= 0 && p.Row < size
}

func isLowerLetter(c byte) bool { return c >= 'a' && c <= 'z' }

// IsPointValue reports whether v follows the point grammar: empty (pass),
// a two letter point or a compressed "aa:bb" rectangle.
func IsPointValue(v string) bool {
	switch len(v) {
	case 0:
		return true
	case 2:
		return isLowerLetter(v[0]) && isLowerLetter(v[1])
	case 5:
		return isLowerLetter(v[0]) && isLowerLetter(v[1]) && v[2] == ':' &&
			isLowerLetter(v[3]) && isLowerLetter(v[4])
	}
	return false
}

func ParsePoint(v string) (Point, error) {
	if len(v) != 2 || !isLowerLetter(v[0]) || !isLowerLetter(v[1]) {
		return Point{}, fmt.Errorf("malformed point %q", v)
	}
	return Point{Column: int(v[0] - 'a'), Row: int(v[1] - 'a')}, nil
}

// ExpandPoints resolves a point-valued string. An empty value yields no
// point, a rectangle yields every point between its two corners.
func ExpandPoints(v string) ([]Point, error) {
	if !IsPointValue(v) {
		return nil, fmt.Errorf("malformed point value %q", v)
	}
	switch len(v) {
	case 0:
		return nil, nil
	case 2:
		p, _ := ParsePoint(v)
		return []Point{p}, nil
	}

	from, _ := ParsePoint(v[:2])
	to, _ := ParsePoint(v[3:])
	minCol, maxCol := min(from.Column, to.Column), max(from.Column, to.Column)
	minRow, maxRow := min(from.Row, to.Row), max(from.Row, to.Row)

	points := make([]Point, 0, (maxCol-minCol+1)*(maxRow-minRow+1))
	for c := minCol; c <= maxCol; c++ {
		for r := minRow; r <= maxRow; r++ {
			points = append(points, Point{Column: c, Row: r})
		}
	}
	return points, nil
}

// ExpandAll expands every value of a point-valued property.
func ExpandAll(values []string) ([]Point, error) {
	var points []Point
	for _, v := range values {
		expanded, err := ExpandPoints(v)
		if err != nil {
			return nil, err
		}
		points = append(points, expanded...)
	}
	return points, nil
}
