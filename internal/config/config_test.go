package config

import "testing"

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JACKTRACK_DB", "/tmp/rounds.db")
	t.Setenv("JACKTRACK_LOG_LEVEL", "debug")
	t.Setenv("JACKTRACK_HOME_LAT", "36.5686")
	t.Setenv("JACKTRACK_HOME_LON", "not-a-number")

	cfg := Load()
	if cfg.DBPath != "/tmp/rounds.db" || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.HomeLat != 36.5686 {
		t.Errorf("HomeLat = %v", cfg.HomeLat)
	}
	if cfg.HomeLon != DefaultHomeLon {
		t.Errorf("unparseable HomeLon = %v, want default", cfg.HomeLon)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"JACKTRACK_DB", "JACKTRACK_LOG_FILE", "JACKTRACK_ADDR"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.DBPath != DefaultStoragePath || cfg.LogFile != "jacktrack.log" || cfg.Addr != ":8080" {
		t.Errorf("cfg = %+v", cfg)
	}
}
