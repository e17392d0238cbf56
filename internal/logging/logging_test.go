package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jacktrack.log")
	closer, err := Setup("debug", path)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug().Str("ball", "b1").Msg("hello")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.Contains(got, `"message":"hello"`) || !strings.Contains(got, `"ball":"b1"`) {
		t.Errorf("log file = %s", got)
	}
}

func TestSetupBadLevelFallsBackToInfo(t *testing.T) {
	closer, err := Setup("loud", "")
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("level = %v, want info", zerolog.GlobalLevel())
	}
}

func TestSetupUnwritablePath(t *testing.T) {
	if _, err := Setup("info", filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Error("expected error for missing directory")
	}
}
