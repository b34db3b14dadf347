package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T, level Level) (*FileLogger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	l, err := NewFileLogger(&Config{
		LogFilePath: path,
		MaxFileSize: 10 * 1024 * 1024,
		MaxBackups:  3,
		Level:       level,
	})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l, path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(data)
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	l, path := newTestLogger(t, LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message", errors.New("boom"))

	content := readLog(t, path)
	if strings.Contains(content, "debug message") || strings.Contains(content, "info message") {
		t.Errorf("messages below level were written:\n%s", content)
	}
	if !strings.Contains(content, "warn message") || !strings.Contains(content, "error message") {
		t.Errorf("messages at or above level missing:\n%s", content)
	}
}

func TestSetLevel(t *testing.T) {
	l, path := newTestLogger(t, LevelError)

	l.Info("before")
	l.SetLevel(LevelDebug)
	l.Debug("after")

	content := readLog(t, path)
	if strings.Contains(content, "before") {
		t.Error("message below initial level was written")
	}
	if !strings.Contains(content, "after") {
		t.Error("message after lowering level was dropped")
	}
}

func TestFieldFormatting(t *testing.T) {
	l, path := newTestLogger(t, LevelDebug)

	l.Info("with fields",
		String("name", "value"),
		Int("count", 7),
		Int64("big", 1<<40),
		Float64("ratio", 0.5),
		Bool("flag", true),
		Any("shape", []int{1, 2}),
		Err(errors.New("went sideways")))

	content := readLog(t, path)
	for _, want := range []string{
		"[INFO] with fields",
		"name=value",
		"count=7",
		"flag=true",
		"ratio=0.5",
		"shape=[1 2]",
		"error=went sideways",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("log entry missing %q:\n%s", want, content)
		}
	}
}

func TestErrEntry(t *testing.T) {
	l, path := newTestLogger(t, LevelDebug)

	l.Error("operation failed", errors.New("root cause"))

	content := readLog(t, path)
	if !strings.Contains(content, `error="root cause"`) {
		t.Errorf("error cause missing from entry:\n%s", content)
	}
}

func TestRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rotating.log")
	l, err := NewFileLogger(&Config{
		LogFilePath: path,
		MaxFileSize: 256,
		MaxBackups:  2,
		Level:       LevelDebug,
	})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	defer l.Close()

	long := strings.Repeat("x", 100)
	for i := 0; i < 10; i++ {
		l.Info(long)
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Errorf("expected first backup after rotation: %v", err)
	}
	if fi, err := os.Stat(path); err != nil {
		t.Errorf("active log file missing after rotation: %v", err)
	} else if fi.Size() > 512 {
		t.Errorf("active log file not truncated by rotation: %d bytes", fi.Size())
	}
}

func TestGlobalLogger(t *testing.T) {
	t.Run("uninitialized global is a no-op", func(t *testing.T) {
		SetGlobalLogger(nil)
		// Must not panic.
		Debug("dropped")
		Info("dropped")
		Warn("dropped")
		Error("dropped", errors.New("ignored"))
	})

	t.Run("initialized global writes through", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "global.log")
		if err := Init(&Config{LogFilePath: path, MaxFileSize: 1024 * 1024, MaxBackups: 1, Level: LevelDebug}); err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		defer Close()

		Info("global message", String("k", "v"))

		content := readLog(t, path)
		if !strings.Contains(content, "global message") || !strings.Contains(content, "k=v") {
			t.Errorf("global entry missing:\n%s", content)
		}
	})
}
