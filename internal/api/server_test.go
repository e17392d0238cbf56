package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"jacktrack.app/internal/course"
	"jacktrack.app/internal/scoring"
	"jacktrack.app/internal/stats"
	"jacktrack.app/internal/storage"
)

func seed(t *testing.T) (*Server, storage.KV) {
	t.Helper()
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	rounds := storage.NewRounds(kv)

	c := course.Default()
	for i, extra := range []int{6, 2} {
		r := scoring.NewRound(
			[]string{"older", "newer"}[i], c, c.Name,
			time.Date(2024, 5, 1+i, 8, 0, 0, 0, time.UTC),
		)
		r.Holes[0].Strokes += extra
		if err := rounds.SaveRound(ctx, r); err != nil {
			t.Fatal(err)
		}
	}
	return New(rounds), kv
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := seed(t)
	rec := get(t, s, "/health")
	if rec.Code != http.StatusOK || rec.Body.String() != `{"ok":true}` {
		t.Errorf("health = %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}
}

func TestListRoundsNewestFirst(t *testing.T) {
	s, _ := seed(t)
	rec := get(t, s, "/rounds")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []scoring.Summary
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	ids := []string{}
	for _, g := range got {
		ids = append(ids, g.ID)
	}
	if diff := cmp.Diff([]string{"newer", "older"}, ids); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	rec = get(t, s, "/rounds?limit=1")
	got = nil
	_ = json.NewDecoder(rec.Body).Decode(&got)
	if len(got) != 1 || got[0].ID != "newer" {
		t.Errorf("limit=1 gave %+v", got)
	}

	if rec := get(t, s, "/rounds?limit=x"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d", rec.Code)
	}
}

func TestGetRound(t *testing.T) {
	s, _ := seed(t)
	rec := get(t, s, "/rounds/older")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		ID    string `json:"id"`
		Holes []scoring.HoleRecord
		ToPar int `json:"toPar"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.ID != "older" || body.ToPar != 6 || len(body.Holes) != 18 {
		t.Errorf("round = %+v", body)
	}
}

func TestGetRoundErrors(t *testing.T) {
	s, kv := seed(t)
	if rec := get(t, s, "/rounds/missing"); rec.Code != http.StatusNotFound {
		t.Errorf("missing round status = %d", rec.Code)
	}

	if err := kv.Set(context.Background(), storage.RoundKey("broken"), []byte("{")); err != nil {
		t.Fatal(err)
	}
	if rec := get(t, s, "/rounds/broken"); rec.Code != http.StatusInternalServerError {
		t.Errorf("malformed round status = %d", rec.Code)
	}

	if rec := get(t, s, "/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown path status = %d", rec.Code)
	}
}

func TestStats(t *testing.T) {
	s, _ := seed(t)
	rec := get(t, s, "/stats")
	var got stats.Statistics
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	want := stats.Statistics{TotalRounds: 2, AverageScore: 76, BestRound: 74, AverageToPar: 4, Trend: -4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteRound(t *testing.T) {
	s, _ := seed(t)
	del := func(path string) int {
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, path, nil))
		return rec.Code
	}

	if code := del("/rounds/older"); code != http.StatusNoContent {
		t.Fatalf("delete status = %d", code)
	}
	if rec := get(t, s, "/rounds/older"); rec.Code != http.StatusNotFound {
		t.Errorf("deleted round status = %d", rec.Code)
	}
	var got []scoring.Summary
	_ = json.NewDecoder(get(t, s, "/rounds").Body).Decode(&got)
	if len(got) != 1 || got[0].ID != "newer" {
		t.Errorf("rounds after delete = %+v", got)
	}

	if code := del("/rounds/older"); code != http.StatusNotFound {
		t.Errorf("second delete status = %d", code)
	}
}
