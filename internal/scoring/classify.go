package scoring

import "fmt"

// Class is a per-hole score classification derived from strokes - par.
type Class int

const (
	ClassEagleOrBetter Class = iota
	ClassBirdie
	ClassPar
	ClassBogey
	ClassDoubleOrWorse
)

func (c Class) String() string {
	switch c {
	case ClassEagleOrBetter:
		return "Eagle"
	case ClassBirdie:
		return "Birdie"
	case ClassPar:
		return "Par"
	case ClassBogey:
		return "Bogey"
	default:
		return "Double+"
	}
}

// Classify buckets a hole score by its differential to par.
func Classify(strokes, par int) Class {
	switch diff := strokes - par; {
	case diff <= -2:
		return ClassEagleOrBetter
	case diff == -1:
		return ClassBirdie
	case diff == 0:
		return ClassPar
	case diff == 1:
		return ClassBogey
	default:
		return ClassDoubleOrWorse
	}
}

// Label is the scorecard text for a hole: Eagle, Birdie, Par, Bogey, Double,
// then +N beyond a double bogey.
func Label(strokes, par int) string {
	diff := strokes - par
	if diff > 2 {
		return fmt.Sprintf("+%d", diff)
	}
	if diff == 2 {
		return "Double"
	}
	return Classify(strokes, par).String()
}

// FormatToPar renders a differential as E, +N or -N.
func FormatToPar(diff int) string {
	switch {
	case diff == 0:
		return "E"
	case diff > 0:
		return fmt.Sprintf("+%d", diff)
	default:
		return fmt.Sprintf("%d", diff)
	}
}
