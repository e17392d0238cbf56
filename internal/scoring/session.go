package scoring

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"jacktrack.app/internal/config"
	"jacktrack.app/internal/course"
)

var (
	// ErrNoActiveRound is returned by mutators when no round has been started.
	ErrNoActiveRound = errors.New("no active round")
	// ErrHoleOutOfRange is returned for hole numbers outside 1..18.
	ErrHoleOutOfRange = errors.New("hole out of range")
)

// Repository persists rounds. The storage package provides the KV-backed one.
type Repository interface {
	SaveRound(ctx context.Context, r *Round) error
	LoadRound(ctx context.Context, id string) (*Round, error)
}

// Session holds the in-progress round and the current-hole pointer. All
// mutation goes through its methods; readers get copies.
type Session struct {
	mu          sync.RWMutex
	repo        Repository
	round       *Round
	currentHole int
	courseName  string

	now   func() time.Time
	newID func() string
}

// NewSession creates a session with no active round.
func NewSession(repo Repository) *Session {
	return &Session{
		repo:        repo,
		currentHole: 1,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// StartRound replaces any current round, saved or not, with a fresh one where
// every hole starts at par. The hole pointer goes back to 1.
func (s *Session) StartRound(courseID, courseName string) *Round {
	c := course.Lookup(courseID)
	r := NewRound(s.newID(), c, courseName, s.now())

	s.mu.Lock()
	s.round = r
	s.currentHole = 1
	s.courseName = courseName
	s.mu.Unlock()

	log.Debug().Str("round", r.ID).Str("course", courseID).Msg("round started")
	return r.Clone()
}

// SetHoleScore replaces the strokes for a hole. The value is not clamped.
func (s *Session) SetHoleScore(hole, strokes int) error {
	return s.mutateHole(hole, func(h *HoleRecord) {
		h.Strokes = strokes
	})
}

// IncrementStroke adds one stroke to a hole.
func (s *Session) IncrementStroke(hole int) error {
	return s.mutateHole(hole, func(h *HoleRecord) {
		h.Strokes++
	})
}

// DecrementStroke removes one stroke from a hole, never going below 1.
func (s *Session) DecrementStroke(hole int) error {
	return s.mutateHole(hole, func(h *HoleRecord) {
		if h.Strokes > 1 {
			h.Strokes--
		}
	})
}

// SetPutts records the putt count for a hole. Negative values are rejected.
func (s *Session) SetPutts(hole, putts int) error {
	if putts < 0 {
		return fmt.Errorf("putts %d: must not be negative", putts)
	}
	return s.mutateHole(hole, func(h *HoleRecord) {
		h.Putts = putts
	})
}

// SetFairwayHit records whether the tee shot found the fairway.
func (s *Session) SetFairwayHit(hole int, hit bool) error {
	return s.mutateHole(hole, func(h *HoleRecord) {
		h.FairwayHit = &hit
	})
}

// SetGreenInRegulation records whether the green was reached in regulation.
func (s *Session) SetGreenInRegulation(hole int, hit bool) error {
	return s.mutateHole(hole, func(h *HoleRecord) {
		h.GreenInRegulation = &hit
	})
}

func (s *Session) mutateHole(hole int, fn func(h *HoleRecord)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.round == nil {
		return ErrNoActiveRound
	}
	if hole < 1 || hole > config.HoleCount {
		return fmt.Errorf("hole %d: %w", hole, ErrHoleOutOfRange)
	}
	h := s.round.Hole(hole)
	if h == nil {
		return fmt.Errorf("hole %d: %w", hole, ErrHoleOutOfRange)
	}
	fn(h)
	return nil
}

// SetCurrentHole moves the hole pointer. Values outside 1..18 are rejected
// and leave the pointer where it was.
func (s *Session) SetCurrentHole(hole int) error {
	if hole < 1 || hole > config.HoleCount {
		return fmt.Errorf("hole %d: %w", hole, ErrHoleOutOfRange)
	}
	s.mu.Lock()
	s.currentHole = hole
	s.mu.Unlock()
	return nil
}

// NextHole advances the pointer, stopping at 18.
func (s *Session) NextHole() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentHole < config.HoleCount {
		s.currentHole++
	}
	return s.currentHole
}

// PrevHole moves the pointer back, stopping at 1.
func (s *Session) PrevHole() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentHole > 1 {
		s.currentHole--
	}
	return s.currentHole
}

// MarkComplete flags the current round as finished.
func (s *Session) MarkComplete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.round == nil {
		return ErrNoActiveRound
	}
	s.round.IsComplete = true
	return nil
}

// Save persists the current round. Failures are logged and returned; the
// in-memory round is never modified by Save.
func (s *Session) Save(ctx context.Context) error {
	s.mu.RLock()
	r := s.round.Clone()
	s.mu.RUnlock()

	if r == nil {
		return ErrNoActiveRound
	}
	if err := s.repo.SaveRound(ctx, r); err != nil {
		log.Error().Err(err).Str("round", r.ID).Msg("error saving round")
		return fmt.Errorf("save round %s: %w", r.ID, err)
	}
	log.Info().Str("round", r.ID).Int("strokes", r.TotalStrokes()).Msg("round saved")
	return nil
}

// Load replaces the current round with the stored one. On any failure the
// session is left exactly as it was.
func (s *Session) Load(ctx context.Context, id string) error {
	r, err := s.repo.LoadRound(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("round", id).Msg("error loading round")
		return fmt.Errorf("load round %s: %w", id, err)
	}

	s.mu.Lock()
	s.round = r
	s.courseName = r.CourseName
	s.currentHole = 1
	s.mu.Unlock()
	return nil
}

// Round returns a copy of the current round, or nil.
func (s *Session) Round() *Round {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.round.Clone()
}

// Active reports whether a round is in progress.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.round != nil
}

// CurrentHole returns the hole pointer.
func (s *Session) CurrentHole() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentHole
}

// CourseName returns the course of the current (or last) round.
func (s *Session) CourseName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.courseName
}

// HoleScore returns the record for a hole of the current round.
func (s *Session) HoleScore(hole int) (HoleRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.round == nil {
		return HoleRecord{}, false
	}
	h := s.round.Hole(hole)
	if h == nil {
		return HoleRecord{}, false
	}
	return *h, true
}

// TotalStrokes is 0 when no round is active.
func (s *Session) TotalStrokes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.round == nil {
		return 0
	}
	return s.round.TotalStrokes()
}

// TotalPar is 0 when no round is active.
func (s *Session) TotalPar() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.round == nil {
		return 0
	}
	return s.round.TotalPar()
}

// ToPar is the strokes-to-par differential of the current round.
func (s *Session) ToPar() int {
	return s.TotalStrokes() - s.TotalPar()
}
