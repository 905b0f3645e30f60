package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewModeDefaults(t *testing.T) {
	prod, err := New("production", "")
	if err != nil {
		t.Fatalf("New production: %v", err)
	}
	core := prod.SugaredLogger.Desugar().Core()
	if core.Enabled(zapcore.DebugLevel) {
		t.Fatal("production default admits debug")
	}
	if !core.Enabled(zapcore.InfoLevel) {
		t.Fatal("production default rejects info")
	}

	dev, err := New("development", "")
	if err != nil {
		t.Fatalf("New development: %v", err)
	}
	if !dev.SugaredLogger.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("development default rejects debug")
	}
}

func TestNewLevelOverride(t *testing.T) {
	l, err := New("development", "warn")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	core := l.SugaredLogger.Desugar().Core()
	if core.Enabled(zapcore.InfoLevel) {
		t.Fatal("warn override admits info")
	}
	if !core.Enabled(zapcore.WarnLevel) {
		t.Fatal("warn override rejects warn")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("development", "loud"); err == nil {
		t.Fatal("unknown level accepted")
	}
}
