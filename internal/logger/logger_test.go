package logger

import (
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func resetLogger() {
	Replace(zap.NewNop())
	atomicLevel.SetLevel(zapcore.WarnLevel)
	once = sync.Once{}
}

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{"json info", "info", "json", zapcore.InfoLevel, false},
		{"console debug", "debug", "console", zapcore.DebugLevel, false},
		{"console warn", "warn", "console", zapcore.WarnLevel, false},
		{"json error", "error", "json", zapcore.ErrorLevel, false},
		{"invalid level", "invalid", "json", 0, true},
		{"invalid format", "info", "xml", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetLogger()
			t.Cleanup(resetLogger)
			err := Init(tt.level, tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("Init(%q, %q) error = %v, wantErr %v", tt.level, tt.format, err, tt.wantErr)
				return
			}
			if !tt.wantErr && atomicLevel.Level() != tt.wantLevel {
				t.Errorf("atomicLevel.Level() = %v, want %v", atomicLevel.Level(), tt.wantLevel)
			}
		})
	}
}

func TestSetLevel(t *testing.T) {
	resetLogger()
	t.Cleanup(resetLogger)

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel() error = %v", err)
	}
	if atomicLevel.Level() != zapcore.DebugLevel {
		t.Errorf("atomicLevel.Level() = %v, want debug", atomicLevel.Level())
	}
	if err := SetLevel("bogus"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestInitAgainChangesLevel(t *testing.T) {
	resetLogger()
	t.Cleanup(resetLogger)

	if err := Init("warn", "console"); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	built := L()
	if err := Init("debug", "json"); err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	if atomicLevel.Level() != zapcore.DebugLevel {
		t.Errorf("level = %v, want debug", atomicLevel.Level())
	}
	if L() != built {
		t.Error("second Init rebuilt the logger")
	}
	if !L().Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug entries are still filtered")
	}
}

func TestLBeforeInitIsUsable(t *testing.T) {
	resetLogger()
	L().Info("dropped")
	if err := Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}
}

func TestReplace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))
	L().Debug("hello", zap.String("k", "v"))
	restore()
	L().Debug("after restore")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", logs.Len())
	}
	if got := logs.All()[0].Message; got != "hello" {
		t.Errorf("message = %q", got)
	}
}
