package scoring

import (
	"testing"
	"time"

	"jacktrack.app/internal/course"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		strokes, par int
		want         Class
		label        string
	}{
		{1, 4, ClassEagleOrBetter, "Eagle"},
		{2, 4, ClassEagleOrBetter, "Eagle"},
		{3, 4, ClassBirdie, "Birdie"},
		{4, 4, ClassPar, "Par"},
		{5, 4, ClassBogey, "Bogey"},
		{6, 4, ClassDoubleOrWorse, "Double"},
		{8, 4, ClassDoubleOrWorse, "+4"},
	}
	for _, tt := range tests {
		if got := Classify(tt.strokes, tt.par); got != tt.want {
			t.Errorf("Classify(%d, %d) = %v, want %v", tt.strokes, tt.par, got, tt.want)
		}
		if got := Label(tt.strokes, tt.par); got != tt.label {
			t.Errorf("Label(%d, %d) = %q, want %q", tt.strokes, tt.par, got, tt.label)
		}
	}
}

func TestFormatToPar(t *testing.T) {
	cases := map[int]string{0: "E", 3: "+3", -2: "-2"}
	for in, want := range cases {
		if got := FormatToPar(in); got != want {
			t.Errorf("FormatToPar(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestNinesAddUp(t *testing.T) {
	r := NewRound("r1", course.Default(), "Pebble Beach", time.Now())
	r.Hole(3).Strokes = 7
	r.Hole(14).Strokes = 3

	fs, fp := r.FrontNine()
	bs, bp := r.BackNine()
	if fs+bs != r.TotalStrokes() || fp+bp != r.TotalPar() {
		t.Errorf("nines %d+%d / %d+%d do not add up to %d / %d",
			fs, bs, fp, bp, r.TotalStrokes(), r.TotalPar())
	}
	if fp != 35 || bp != 37 {
		t.Errorf("par nines = %d/%d, want 35/37", fp, bp)
	}
}

func TestValidateRejectsBrokenRounds(t *testing.T) {
	good := NewRound("r1", course.Default(), "Pebble Beach", time.Now())
	if err := good.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	short := good.Clone()
	short.Holes = short.Holes[:17]
	if short.Validate() == nil {
		t.Error("17 holes should not validate")
	}

	swapped := good.Clone()
	swapped.Holes[0], swapped.Holes[1] = swapped.Holes[1], swapped.Holes[0]
	if swapped.Validate() == nil {
		t.Error("out-of-order holes should not validate")
	}

	noID := good.Clone()
	noID.ID = ""
	if noID.Validate() == nil {
		t.Error("missing id should not validate")
	}
}

func TestSummarizeBestAndWorst(t *testing.T) {
	r := NewRound("r1", course.Default(), "Pebble Beach", time.Now())
	r.Hole(3).Strokes = 3  // birdie
	r.Hole(12).Strokes = 8 // +3

	s := Summarize(r)
	if s.BestHole != 3 || s.WorstHole != 12 {
		t.Errorf("best/worst = %d/%d, want 3/12", s.BestHole, s.WorstHole)
	}
	if s.ToPar() != 2 {
		t.Errorf("ToPar = %d, want 2", s.ToPar())
	}
}

func TestRoundStatsCounts(t *testing.T) {
	r := NewRound("r1", course.Default(), "Pebble Beach", time.Now())
	yes, no := true, false
	r.Hole(1).FairwayHit = &yes
	r.Hole(2).FairwayHit = &no
	r.Hole(1).GreenInRegulation = &yes
	r.Hole(1).Putts = 2
	r.Hole(2).Putts = 1

	if hit, rec := r.FairwaysHit(); hit != 1 || rec != 2 {
		t.Errorf("FairwaysHit = %d/%d", hit, rec)
	}
	if hit, rec := r.GreensInRegulation(); hit != 1 || rec != 1 {
		t.Errorf("GreensInRegulation = %d/%d", hit, rec)
	}
	if r.TotalPutts() != 3 {
		t.Errorf("TotalPutts = %d", r.TotalPutts())
	}
}
