package course

// Hole describes one hole of a course layout.
type Hole struct {
	Number  int `json:"hole"`
	Par     int `json:"par"`
	Yardage int `json:"yardage"`
}

// Course is an 18-hole layout.
type Course struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Holes []Hole `json:"holes"`
}

// DefaultID identifies the sample course.
const DefaultID = "pebble-beach"

var defaultPars = [18]int{4, 4, 4, 4, 3, 5, 3, 4, 4, 4, 3, 5, 4, 5, 4, 4, 3, 5}

var defaultYardage = [18]int{380, 502, 390, 331, 188, 525, 106, 431, 464, 446, 242, 202, 405, 573, 397, 403, 178, 548}

var catalog = map[string]Course{
	DefaultID: build(DefaultID, "Pebble Beach"),
}

func build(id, name string) Course {
	holes := make([]Hole, len(defaultPars))
	for i := range defaultPars {
		holes[i] = Hole{Number: i + 1, Par: defaultPars[i], Yardage: defaultYardage[i]}
	}
	return Course{ID: id, Name: name, Holes: holes}
}

// Default returns the sample course.
func Default() Course {
	return Lookup(DefaultID)
}

// Lookup returns the course with the given id. Unknown ids get the default
// layout under their own id so a round can always be started.
func Lookup(id string) Course {
	if c, ok := catalog[id]; ok {
		return clone(c)
	}
	return build(id, id)
}

// TotalPar sums par over all holes.
func (c Course) TotalPar() int {
	total := 0
	for _, h := range c.Holes {
		total += h.Par
	}
	return total
}

// Hole returns the hole with the given number.
func (c Course) Hole(number int) (Hole, bool) {
	if number < 1 || number > len(c.Holes) {
		return Hole{}, false
	}
	return c.Holes[number-1], true
}

func clone(c Course) Course {
	holes := make([]Hole, len(c.Holes))
	copy(holes, c.Holes)
	c.Holes = holes
	return c
}
