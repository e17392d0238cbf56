package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"jacktrack.app/internal/course"
	"jacktrack.app/internal/scoring"
)

func kvImplementations(t *testing.T) map[string]KV {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]KV{
		"memory": NewMemoryKV(),
		"sqlite": sqlite,
	}
}

func TestKVGetSetDelete(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get missing: err = %v, want ErrNotFound", err)
			}
			if err := kv.Set(ctx, "k", []byte("v1")); err != nil {
				t.Fatal(err)
			}
			if err := kv.Set(ctx, "k", []byte("v2")); err != nil {
				t.Fatal(err)
			}
			got, err := kv.Get(ctx, "k")
			if err != nil || string(got) != "v2" {
				t.Errorf("Get = %q, %v; want v2", got, err)
			}
			if err := kv.Delete(ctx, "k"); err != nil {
				t.Fatal(err)
			}
			if _, err := kv.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after delete: err = %v", err)
			}
			if err := kv.Delete(ctx, "k"); err != nil {
				t.Errorf("Delete missing: %v", err)
			}
		})
	}
}

func testRound(id string) *scoring.Round {
	r := scoring.NewRound(id, course.Default(), "Pebble Beach",
		time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC))
	r.Hole(1).Strokes = 5
	r.Hole(5).Strokes = 2
	return r
}

func TestRoundsSaveLoad(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewRounds(kv)
			r := testRound("abc")

			if err := repo.SaveRound(ctx, r); err != nil {
				t.Fatal(err)
			}
			got, err := repo.LoadRound(ctx, "abc")
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(r, got); diff != "" {
				t.Errorf("round mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundsIndexUpsertsById(t *testing.T) {
	ctx := context.Background()
	repo := NewRounds(NewMemoryKV())

	a := testRound("a")
	b := testRound("b")
	if err := repo.SaveRound(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveRound(ctx, b); err != nil {
		t.Fatal(err)
	}
	a.Hole(2).Strokes = 9
	a.IsComplete = true
	if err := repo.SaveRound(ctx, a); err != nil {
		t.Fatal(err)
	}

	index, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(index) != 2 {
		t.Fatalf("index has %d entries, want 2", len(index))
	}
	if index[0].ID != "a" || index[1].ID != "b" {
		t.Errorf("index order = %s,%s", index[0].ID, index[1].ID)
	}
	if !index[0].IsComplete || index[0].TotalStrokes != a.TotalStrokes() {
		t.Errorf("index entry not replaced: %+v", index[0])
	}
}

func TestLoadRoundMissingAndMalformed(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	repo := NewRounds(kv)

	if _, err := repo.LoadRound(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing: err = %v, want ErrNotFound", err)
	}

	_ = kv.Set(ctx, RoundKey("bad"), []byte("{not json"))
	if _, err := repo.LoadRound(ctx, "bad"); !errors.Is(err, ErrMalformed) {
		t.Errorf("bad json: err = %v, want ErrMalformed", err)
	}

	_ = kv.Set(ctx, RoundKey("short"), []byte(`{"id":"short","holes":[{"hole":1,"par":4,"strokes":4}]}`))
	if _, err := repo.LoadRound(ctx, "short"); !errors.Is(err, ErrMalformed) {
		t.Errorf("short round: err = %v, want ErrMalformed", err)
	}
}

func TestSaveRecoversFromCorruptIndex(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	repo := NewRounds(kv)
	_ = kv.Set(ctx, roundIndexKey, []byte("garbage"))

	if _, err := repo.List(ctx); !errors.Is(err, ErrMalformed) {
		t.Fatalf("List: err = %v, want ErrMalformed", err)
	}
	if err := repo.SaveRound(ctx, testRound("x")); err != nil {
		t.Fatal(err)
	}
	index, err := repo.List(ctx)
	if err != nil || len(index) != 1 {
		t.Errorf("List = %v, %v", index, err)
	}
}

func TestDeleteRound(t *testing.T) {
	ctx := context.Background()
	repo := NewRounds(NewMemoryKV())
	_ = repo.SaveRound(ctx, testRound("a"))
	_ = repo.SaveRound(ctx, testRound("b"))

	if err := repo.DeleteRound(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.LoadRound(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	index, _ := repo.List(ctx)
	if len(index) != 1 || index[0].ID != "b" {
		t.Errorf("index = %+v", index)
	}
	if err := repo.DeleteRound(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestSessionPersistsThroughSQLite(t *testing.T) {
	ctx := context.Background()
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer kv.Close()

	repo := NewRounds(kv)
	s := scoring.NewSession(repo)
	r := s.StartRound(course.DefaultID, "Pebble Beach")
	_ = s.IncrementStroke(1)
	want := s.Round()

	if err := s.Save(ctx); err != nil {
		t.Fatal(err)
	}

	fresh := scoring.NewSession(repo)
	if err := fresh.Load(ctx, r.ID); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, fresh.Round()); diff != "" {
		t.Errorf("round mismatch (-want +got):\n%s", diff)
	}
}

type failingKV struct{ KV }

func (failingKV) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("disk full")
}

func TestSessionSaveSurfacesStorageFailure(t *testing.T) {
	s := scoring.NewSession(NewRounds(failingKV{NewMemoryKV()}))
	s.StartRound(course.DefaultID, "Pebble Beach")
	if err := s.Save(context.Background()); err == nil {
		t.Error("expected save error")
	}
}
