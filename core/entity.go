package core

// Entity is a unique identifier for a grid occupant
// Zero is reserved for "no entity"
type Entity uint64

// Point is a grid coordinate; Row grows downward, Col grows rightward
type Point struct {
	Row int
	Col int
}

// Unit steps on the grid
var (
	Up    = Point{Row: -1}
	Down  = Point{Row: 1}
	Left  = Point{Col: -1}
	Right = Point{Col: 1}
)

// Add returns the coordinate offset by d
func (p Point) Add(d Point) Point {
	return Point{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Above returns the coordinate one row up
func (p Point) Above() Point { return p.Add(Up) }

// Below returns the coordinate one row down
func (p Point) Below() Point { return p.Add(Down) }
