package scoring

import (
	"fmt"
	"time"

	"jacktrack.app/internal/config"
	"jacktrack.app/internal/course"
)

// HoleRecord is the par and stroke count for a single hole. Putts and the
// two hit flags are optional and omitted until the player records them.
type HoleRecord struct {
	Number            int   `json:"hole"`
	Par               int   `json:"par"`
	Strokes           int   `json:"strokes"`
	Putts             int   `json:"putts,omitempty"`
	FairwayHit        *bool `json:"fairwayHit,omitempty"`
	GreenInRegulation *bool `json:"greenInRegulation,omitempty"`
}

// ToPar returns strokes minus par.
func (h HoleRecord) ToPar() int {
	return h.Strokes - h.Par
}

// Round is one play-through of 18 holes.
type Round struct {
	ID         string       `json:"id"`
	CourseID   string       `json:"courseId"`
	CourseName string       `json:"courseName"`
	StartedAt  time.Time    `json:"startedAt"`
	Holes      []HoleRecord `json:"holes"`
	IsComplete bool         `json:"isComplete"`
}

// NewRound creates a round on c where every hole starts at par.
func NewRound(id string, c course.Course, courseName string, startedAt time.Time) *Round {
	holes := make([]HoleRecord, 0, config.HoleCount)
	for _, h := range c.Holes {
		holes = append(holes, HoleRecord{Number: h.Number, Par: h.Par, Strokes: h.Par})
	}
	return &Round{
		ID:         id,
		CourseID:   c.ID,
		CourseName: courseName,
		StartedAt:  startedAt,
		Holes:      holes,
	}
}

// Validate checks the 18-hole invariant: numbers 1..18 in order, positive par.
func (r *Round) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("round has no id")
	}
	if len(r.Holes) != config.HoleCount {
		return fmt.Errorf("round %s has %d holes, want %d", r.ID, len(r.Holes), config.HoleCount)
	}
	for i, h := range r.Holes {
		if h.Number != i+1 {
			return fmt.Errorf("round %s: hole at index %d numbered %d", r.ID, i, h.Number)
		}
		if h.Par < 1 {
			return fmt.Errorf("round %s: hole %d has par %d", r.ID, h.Number, h.Par)
		}
	}
	return nil
}

// Hole returns a pointer to the record for number, or nil.
func (r *Round) Hole(number int) *HoleRecord {
	for i := range r.Holes {
		if r.Holes[i].Number == number {
			return &r.Holes[i]
		}
	}
	return nil
}

// TotalStrokes sums strokes across all holes.
func (r *Round) TotalStrokes() int {
	return sumStrokes(r.Holes)
}

// TotalPar sums par across all holes.
func (r *Round) TotalPar() int {
	return sumPar(r.Holes)
}

// ToPar is the strokes-to-par differential.
func (r *Round) ToPar() int {
	return r.TotalStrokes() - r.TotalPar()
}

// FrontNine returns the strokes and par subtotals for holes 1-9.
func (r *Round) FrontNine() (strokes, par int) {
	return r.nine(1, 9)
}

// BackNine returns the strokes and par subtotals for holes 10-18.
func (r *Round) BackNine() (strokes, par int) {
	return r.nine(10, 18)
}

func (r *Round) nine(from, to int) (strokes, par int) {
	for _, h := range r.Holes {
		if h.Number >= from && h.Number <= to {
			strokes += h.Strokes
			par += h.Par
		}
	}
	return
}

// TotalPutts sums recorded putts.
func (r *Round) TotalPutts() int {
	total := 0
	for _, h := range r.Holes {
		total += h.Putts
	}
	return total
}

// FairwaysHit returns hit and recorded counts for fairways.
func (r *Round) FairwaysHit() (hit, recorded int) {
	for _, h := range r.Holes {
		if h.FairwayHit != nil {
			recorded++
			if *h.FairwayHit {
				hit++
			}
		}
	}
	return
}

// GreensInRegulation returns hit and recorded counts for greens.
func (r *Round) GreensInRegulation() (hit, recorded int) {
	for _, h := range r.Holes {
		if h.GreenInRegulation != nil {
			recorded++
			if *h.GreenInRegulation {
				hit++
			}
		}
	}
	return
}

// Clone returns a deep copy.
func (r *Round) Clone() *Round {
	if r == nil {
		return nil
	}
	cp := *r
	cp.Holes = make([]HoleRecord, len(r.Holes))
	for i, h := range r.Holes {
		if h.FairwayHit != nil {
			v := *h.FairwayHit
			h.FairwayHit = &v
		}
		if h.GreenInRegulation != nil {
			v := *h.GreenInRegulation
			h.GreenInRegulation = &v
		}
		cp.Holes[i] = h
	}
	return &cp
}

func sumStrokes(holes []HoleRecord) int {
	total := 0
	for _, h := range holes {
		total += h.Strokes
	}
	return total
}

func sumPar(holes []HoleRecord) int {
	total := 0
	for _, h := range holes {
		total += h.Par
	}
	return total
}
