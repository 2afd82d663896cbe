package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newFileLogger(t *testing.T, level Level) (*Logger, string) {
	t.Helper()
	logFile := filepath.Join(t.TempDir(), "test.log")

	l, err := NewLogger(level, logFile)
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	return l, logFile
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(content)
}

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(LevelDebug, "")
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}

	if l.Level() != LevelDebug {
		t.Errorf("Expected level DEBUG, got %s", l.Level())
	}

	if l.logger == nil {
		t.Error("Expected logger to be initialized")
	}
}

func TestNewLogger_WithLogFile(t *testing.T) {
	l, logFile := newFileLogger(t, LevelInfo)
	defer l.Close()

	if l.logFile == nil {
		t.Error("Expected log file to be opened")
	}

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		t.Error("Expected log file to be created")
	}
}

func TestNewLogger_BadPath(t *testing.T) {
	_, err := NewLogger(LevelInfo, filepath.Join(t.TempDir(), "missing", "dir", "test.log"))
	if err == nil {
		t.Fatal("Expected error for unwritable log path")
	}
}

func TestLogger_Infof(t *testing.T) {
	l, logFile := newFileLogger(t, LevelInfo)
	l.Infof("Parsed %d events", 3)
	l.Close()

	content := readLog(t, logFile)
	if !strings.Contains(content, "[INFO]") {
		t.Error("Expected log to contain [INFO] prefix")
	}
	if !strings.Contains(content, "Parsed 3 events") {
		t.Error("Expected log to contain message")
	}
}

func TestLogger_LevelThreshold(t *testing.T) {
	tests := []struct {
		level    Level
		wantSeen []string
		wantGone []string
	}{
		{LevelDebug, []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"}, nil},
		{LevelInfo, []string{"[INFO]", "[WARN]", "[ERROR]"}, []string{"[DEBUG]"}},
		{LevelWarn, []string{"[WARN]", "[ERROR]"}, []string{"[DEBUG]", "[INFO]"}},
		{LevelError, []string{"[ERROR]"}, []string{"[DEBUG]", "[INFO]", "[WARN]"}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			l, logFile := newFileLogger(t, tt.level)
			l.Debugf("d")
			l.Infof("i")
			l.Warnf("w")
			l.Errorf("e")
			l.Close()

			content := readLog(t, logFile)
			for _, s := range tt.wantSeen {
				if !strings.Contains(content, s) {
					t.Errorf("Expected %s in log", s)
				}
			}
			for _, s := range tt.wantGone {
				if strings.Contains(content, s) {
					t.Errorf("Did not expect %s in log", s)
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"TRACE", LevelDebug, false},
		{"", LevelInfo, false},
		{" info ", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestStep_Complete(t *testing.T) {
	l, logFile := newFileLogger(t, LevelDebug)

	step := l.Step("Decode stream")
	time.Sleep(10 * time.Millisecond)
	step.Complete()
	l.Close()

	if !strings.Contains(readLog(t, logFile), "Decode stream completed") {
		t.Error("Expected step completion message")
	}
}

func TestStep_Fail(t *testing.T) {
	l, logFile := newFileLogger(t, LevelDebug)

	step := l.Step("Decode stream")
	step.Fail(os.ErrNotExist)
	l.Close()

	content := readLog(t, logFile)
	if !strings.Contains(content, "Decode stream failed") {
		t.Error("Expected step failure message")
	}
	if !strings.Contains(content, "[ERROR]") {
		t.Error("Expected ERROR prefix for failed step")
	}
}

func TestLogger_Close(t *testing.T) {
	l, _ := newFileLogger(t, LevelInfo)

	if err := l.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}

	// Double close should not error
	if err := l.Close(); err != nil {
		t.Errorf("Second Close() should not error")
	}
}

func TestReplace(t *testing.T) {
	first, _ := newFileLogger(t, LevelInfo)
	second, _ := newFileLogger(t, LevelInfo)
	defer second.Close()

	if err := Replace(first); err != nil {
		t.Fatalf("Replace() failed: %v", err)
	}
	if Get() != first {
		t.Error("Expected Get() to return the logger passed to Replace")
	}

	if err := Replace(second); err != nil {
		t.Fatalf("Replace() failed: %v", err)
	}
	if Get() != second {
		t.Error("Expected Get() to return the replacement logger")
	}
	if first.logFile != nil {
		t.Error("Expected replaced logger's file to be closed")
	}

	// Replacing with the same logger keeps it open
	if err := Replace(second); err != nil {
		t.Fatalf("Replace() with same logger failed: %v", err)
	}
	if second.logFile == nil {
		t.Error("Expected current logger to stay open")
	}
}
