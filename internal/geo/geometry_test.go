package geo

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestDistanceIdenticalPoints(t *testing.T) {
	pts := []Point{
		{0, 0},
		{37.7749, -122.4194},
		{-33.8688, 151.2093},
		{89.9, 179.9},
	}
	for _, p := range pts {
		if d := Distance(p, p); d != 0 {
			t.Errorf("Distance(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][2]Point{
		{{0, 0}, {0, 1}},
		{{37.7749, -122.4194}, {37.7759, -122.4184}},
		{{51.5074, -0.1278}, {48.8566, 2.3522}},
		{{-45, 170}, {45, -170}},
	}
	for _, p := range pairs {
		ab := Distance(p[0], p[1])
		ba := Distance(p[1], p[0])
		if math.Abs(ab-ba) > 1e-6 {
			t.Errorf("Distance not symmetric for %v: %v vs %v", p, ab, ba)
		}
	}
}

func TestDistanceOneDegreeOfLongitudeAtEquator(t *testing.T) {
	got := Distance(Point{0, 0}, Point{0, 1})
	want := 111195.0
	if math.Abs(got-want)/want > 0.01 {
		t.Errorf("Distance = %v, want %v ±1%%", got, want)
	}
}

func TestDistanceNearAntipode(t *testing.T) {
	half := math.Pi * 6371000.0
	tests := []struct {
		a, b Point
	}{
		{Point{10, 20}, Point{-10, -160}},
		{Point{0, 0}, Point{0, 180}},
		{Point{45, 90}, Point{-45, -90}},
		{Point{-33.8688, 151.2093}, Point{33.8688, -28.7907}},
	}
	for _, tt := range tests {
		got := Distance(tt.a, tt.b)
		if math.IsNaN(got) || math.Abs(got-half) > 1 {
			t.Errorf("Distance(%v, %v) = %v, want %v", tt.a, tt.b, got, half)
		}
	}
}

func TestPathLengthIsOpen(t *testing.T) {
	a := Point{0, 0}
	b := Point{0, 1}
	c := Point{1, 1}

	got := PathLength([]Point{a, b, c})
	want := Distance(a, b) + Distance(b, c)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("PathLength = %v, want %v", got, want)
	}

	if PathLength(nil) != 0 || PathLength([]Point{a}) != 0 {
		t.Error("PathLength of fewer than two points should be 0")
	}
}

func TestBearingCardinals(t *testing.T) {
	origin := Point{0, 0}
	tests := []struct {
		to   Point
		want string
	}{
		{Point{1, 0}, "N"},
		{Point{0, 1}, "E"},
		{Point{-1, 0}, "S"},
		{Point{0, -1}, "W"},
		{Point{1, 1}, "NE"},
	}
	for _, tt := range tests {
		if got := CompassPoint(Bearing(origin, tt.to)); got != tt.want {
			t.Errorf("CompassPoint(Bearing(origin, %v)) = %s, want %s", tt.to, got, tt.want)
		}
	}
}

func TestDestinationInvertsBearingAndDistance(t *testing.T) {
	from := Point{37.7749, -122.4194}
	to := Point{37.7769, -122.4174}

	dest := Destination(from, Bearing(from, to), Distance(from, to))
	if d := Distance(dest, to); d > 0.5 {
		t.Errorf("Destination landed %.3fm away from target", d)
	}
}

func TestPathSegments(t *testing.T) {
	var p Path
	if p.Segments() != nil {
		t.Error("empty path should have no segments")
	}
	p.Add(Point{0, 0})
	p.Add(Point{0, 1})
	p.Add(Point{0, 2})

	segs := p.Segments()
	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}
	if math.Abs(segs[0]+segs[1]-p.Length()) > 1e-9 {
		t.Error("segments should sum to path length")
	}

	p.Clear()
	if p.Len() != 0 || p.Length() != 0 {
		t.Error("Clear should empty the path")
	}
}

func TestStaticLocatorPermission(t *testing.T) {
	l := NewStaticLocator(Point{1, 2})
	ctx := context.Background()

	got, err := l.CurrentPosition(ctx)
	if err != nil || got != (Point{1, 2}) {
		t.Fatalf("CurrentPosition = %v, %v", got, err)
	}

	l.SetEnabled(false)
	if _, err := l.CurrentPosition(ctx); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("err = %v, want ErrPermissionDenied", err)
	}
}
