package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("nbview", pflag.ContinueOnError)
	fs.String("db", "", "")
	fs.Bool("ephemeral", false, "")
	fs.BoolP("debug", "D", false, "")
	fs.String("config", "", "")
	return fs
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil, "")
	if err != nil {
		t.Fatal(err)
	}
	home, _ := os.UserHomeDir()
	if cfg.DBPath != filepath.Join(home, ".nbview", "nbview.db") {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if !cfg.Autosave || !cfg.Exec.Enabled || cfg.Exec.MaxSteps != 10_000_000 || cfg.Import.PreviewCells != 3 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Import.Timeout != 30*time.Second || cfg.Log.Level != "info" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Backup.Dir != filepath.Join(home, ".nbview", "backups") || cfg.Backup.Keep != 5 {
		t.Errorf("backup = %+v", cfg.Backup)
	}
}

func TestLayering(t *testing.T) {
	file := writeConfig(t, "nbview.yaml", `
db_path: /tmp/from-file.db
autosave: false
import:
  timeout: 5s
  preview_cells: 2
exec:
  max_steps: 100
render:
  width: 60
`)
	t.Setenv("NBVIEW_EXEC_MAX_STEPS", "500")
	t.Setenv("NBVIEW_IMPORT_USER_AGENT", "agent/1")

	fs := newFlags()
	if err := fs.Parse([]string{"--db", "/tmp/from-flag.db", "-D"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(fs, file)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/tmp/from-flag.db" {
		t.Errorf("flag should win: %q", cfg.DBPath)
	}
	if cfg.Exec.MaxSteps != 500 {
		t.Errorf("env should beat file: %d", cfg.Exec.MaxSteps)
	}
	if cfg.Import.UserAgent != "agent/1" || cfg.Import.Timeout != 5*time.Second || cfg.Import.PreviewCells != 2 {
		t.Errorf("import = %+v", cfg.Import)
	}
	if cfg.Autosave || cfg.Render.Width != 60 || cfg.Log.Level != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Import.APIBase != "https://api.github.com" {
		t.Errorf("unset keys keep defaults: %q", cfg.Import.APIBase)
	}
}

func TestUnchangedFlagsDoNotOverride(t *testing.T) {
	file := writeConfig(t, "nbview.json", `{"db_path": "/tmp/file.db", "log": {"level": "warn"}}`)
	fs := newFlags()
	_ = fs.Parse(nil)

	cfg, err := LoadConfig(fs, file)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/tmp/file.db" || cfg.Log.Level != "warn" || cfg.Ephemeral {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestTomlAndEnvFiles(t *testing.T) {
	cfg, err := LoadConfig(nil, writeConfig(t, "nbview.toml", "[exec]\nenabled = false\n"))
	if err != nil || cfg.Exec.Enabled {
		t.Errorf("toml: %+v, %v", cfg.Exec, err)
	}

	cfg, err = LoadConfig(nil, writeConfig(t, ".env", "NBVIEW_RENDER_WIDTH=42\n"))
	if err != nil || cfg.Render.Width != 42 {
		t.Errorf("dotenv: %+v, %v", cfg.Render, err)
	}
}

func TestBadConfigFile(t *testing.T) {
	if _, err := LoadConfig(nil, writeConfig(t, "nbview.ini", "x=1")); err == nil {
		t.Error("expected error for unknown extension")
	}
	if _, err := LoadConfig(nil, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEnvKey(t *testing.T) {
	for in, want := range map[string]string{
		"NBVIEW_EXEC_MAX_STEPS":  "exec.max_steps",
		"NBVIEW_DB_PATH":         "db_path",
		"NBVIEW_AUTOSAVE":        "autosave",
		"NBVIEW_LOG_LEVEL":       "log.level",
		"NBVIEW_IMPORT_API_BASE": "import.api_base",
		"NBVIEW_RENDER_WIDTH":    "render.width",
		"NBVIEW_BACKUP_KEEP":     "backup.keep",
	} {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}
