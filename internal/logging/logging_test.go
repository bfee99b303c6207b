package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInitWritesToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nbview.log")
	if err := Init(Config{Level: "debug", Format: "json", OutputPath: out}); err != nil {
		t.Fatal(err)
	}
	L().Debug("hello from test")
	_ = Sync()

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"hello from test"`) {
		t.Errorf("log = %s", data)
	}

	if err := Init(Config{Level: "error", Format: "json", OutputPath: out}); err != nil {
		t.Fatal(err)
	}
	L().Info("suppressed")
	_ = Sync()
	data, _ = os.ReadFile(out)
	if strings.Contains(string(data), "suppressed") {
		t.Error("info logged at error level")
	}
}

func TestNewFallsBackToInfo(t *testing.T) {
	logger, err := New(Config{Level: "loud", OutputPath: filepath.Join(t.TempDir(), "x.log")})
	if err != nil {
		t.Fatal(err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug should be disabled for an unknown level")
	}
}
