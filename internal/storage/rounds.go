package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"jacktrack.app/internal/scoring"
)

const (
	roundKeyPrefix = "round_"
	roundIndexKey  = "rounds"
)

// RoundKey is the KV key holding the full serialized round.
func RoundKey(id string) string {
	return roundKeyPrefix + id
}

// Rounds persists rounds as JSON blobs plus a summary index. It implements
// scoring.Repository.
type Rounds struct {
	kv KV
}

// NewRounds wraps kv.
func NewRounds(kv KV) *Rounds {
	return &Rounds{kv: kv}
}

// SaveRound writes the round and upserts its summary into the index. An
// existing entry with the same id is replaced in place; the last write wins.
func (s *Rounds) SaveRound(ctx context.Context, r *scoring.Round) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode round %s: %w", r.ID, err)
	}
	if err := s.kv.Set(ctx, RoundKey(r.ID), data); err != nil {
		return err
	}

	index, err := s.List(ctx)
	if err != nil && !errors.Is(err, ErrMalformed) {
		return err
	}

	sum := scoring.Summarize(r)
	replaced := false
	for i := range index {
		if index[i].ID == r.ID {
			index[i] = sum
			replaced = true
			break
		}
	}
	if !replaced {
		index = append(index, sum)
	}

	data, err = json.Marshal(index)
	if err != nil {
		return fmt.Errorf("encode round index: %w", err)
	}
	return s.kv.Set(ctx, roundIndexKey, data)
}

// LoadRound returns the stored round. Missing rounds yield ErrNotFound;
// undecodable or structurally invalid ones yield ErrMalformed.
func (s *Rounds) LoadRound(ctx context.Context, id string) (*scoring.Round, error) {
	data, err := s.kv.Get(ctx, RoundKey(id))
	if err != nil {
		return nil, err
	}
	var r scoring.Round
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("round %s: %w: %v", id, ErrMalformed, err)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &r, nil
}

// List returns the summary index in save order. A missing index is an
// empty list; a corrupt one returns ErrMalformed with an empty list.
func (s *Rounds) List(ctx context.Context) ([]scoring.Summary, error) {
	data, err := s.kv.Get(ctx, roundIndexKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var index []scoring.Summary
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("round index: %w: %v", ErrMalformed, err)
	}
	return index, nil
}

// DeleteRound removes a round and its index entry. A round that is in
// neither the index nor storage yields ErrNotFound.
func (s *Rounds) DeleteRound(ctx context.Context, id string) error {
	index, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := make([]scoring.Summary, 0, len(index))
	for _, sum := range index {
		if sum.ID != id {
			kept = append(kept, sum)
		}
	}
	if len(kept) == len(index) {
		if _, err := s.kv.Get(ctx, RoundKey(id)); err != nil {
			return fmt.Errorf("round %s: %w", id, err)
		}
	}

	if err := s.kv.Delete(ctx, RoundKey(id)); err != nil {
		return err
	}
	data, err := json.Marshal(kept)
	if err != nil {
		return fmt.Errorf("encode round index: %w", err)
	}
	return s.kv.Set(ctx, roundIndexKey, data)
}
