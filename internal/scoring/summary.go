package scoring

import "time"

// Summary is the index entry kept for every saved round.
type Summary struct {
	ID           string    `json:"id"`
	CourseID     string    `json:"courseId"`
	CourseName   string    `json:"courseName"`
	StartedAt    time.Time `json:"startedAt"`
	TotalStrokes int       `json:"totalStrokes"`
	TotalPar     int       `json:"totalPar"`
	IsComplete   bool      `json:"isComplete"`
	BestHole     int       `json:"bestHole"`
	WorstHole    int       `json:"worstHole"`
}

// ToPar is the strokes-to-par differential of the summarised round.
func (s Summary) ToPar() int {
	return s.TotalStrokes - s.TotalPar
}

// Summarize builds the index entry for r. Best and worst holes are chosen by
// strokes - par; ties go to the lower hole number.
func Summarize(r *Round) Summary {
	s := Summary{
		ID:           r.ID,
		CourseID:     r.CourseID,
		CourseName:   r.CourseName,
		StartedAt:    r.StartedAt,
		TotalStrokes: r.TotalStrokes(),
		TotalPar:     r.TotalPar(),
		IsComplete:   r.IsComplete,
	}
	if len(r.Holes) == 0 {
		return s
	}

	best, worst := r.Holes[0], r.Holes[0]
	for _, h := range r.Holes[1:] {
		if h.ToPar() < best.ToPar() {
			best = h
		}
		if h.ToPar() > worst.ToPar() {
			worst = h
		}
	}
	s.BestHole = best.Number
	s.WorstHole = worst.Number
	return s
}
