package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "lingua.log")
	logger, closeFn, err := New(Config{FilePath: path, Level: "info"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("lesson completed", zap.String("lesson", "en-basics-1"))
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry should be filtered: %s", out)
	}
	if !strings.Contains(out, `"message":"lesson completed"`) || !strings.Contains(out, `"lesson":"en-basics-1"`) {
		t.Fatalf("unexpected log output: %s", out)
	}
}

func TestNewOffIsNop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lingua.log")
	logger, closeFn, err := New(Config{FilePath: path, Level: "off"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Error("ignored")
	closeFn()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file, got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	if lv, err := ParseLevel("WARN"); err != nil || lv != zap.WarnLevel {
		t.Fatalf("unexpected level %v %v", lv, err)
	}
	if lv, err := ParseLevel(""); err != nil || lv != zap.InfoLevel {
		t.Fatalf("expected info for empty level, got %v %v", lv, err)
	}
	if lv, err := ParseLevel("dpanic"); err != nil || lv != zap.DPanicLevel {
		t.Fatalf("expected dpanic level, got %v %v", lv, err)
	}
	lv, err := ParseLevel(" Off ")
	if err != nil {
		t.Fatalf("parse off: %v", err)
	}
	if lv.Enabled(zap.FatalLevel) {
		t.Fatalf("expected off to enable nothing")
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
