package logging

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
		wantWarn  bool
	}{
		{LevelDebug, true, true, true},
		{LevelInfo, false, true, true},
		{LevelWarn, false, false, true},
		{LevelError, false, false, false},
		{"bogus", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWriterLogger(&buf, tt.level)
			l.Debug("d")
			l.Info("i")
			l.Warn("w")
			l.Error("e")

			out := buf.String()
			if got := strings.Contains(out, "[DEBUG]"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "[INFO]"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if got := strings.Contains(out, "[WARN]"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tt.wantWarn)
			}
			if !strings.Contains(out, "[ERROR]") {
				t.Errorf("error should always be logged")
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", File: "x.log", MaxSize: 1}, false},
		{"uppercase level", Config{Level: "INFO", File: "x.log", MaxSize: 1}, false},
		{"bad level", Config{Level: "loud", File: "x.log", MaxSize: 1}, true},
		{"no file", Config{Level: "info", MaxSize: 1}, true},
		{"zero size", Config{Level: "info", File: "x.log"}, true},
		{"negative backups", Config{Level: "info", File: "x.log", MaxSize: 1, MaxBackups: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error %v should match ErrInvalidConfig", err)
			}
		})
	}
}

func TestNewLoggerCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(&Config{
		Level:   LevelInfo,
		File:    filepath.Join(dir, "nested", "api.log"),
		MaxSize: 1,
	})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer l.Close()
	l.Info("hello %s", "world")
}

func TestLogHTTPErrorGating(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LevelInfo)

	l.LogHTTPError(http.MethodPost, "/api/contacts", "1.2.3.4", http.StatusBadRequest, "bad", errors.New("x"))
	if buf.Len() != 0 {
		t.Fatalf("client error should be silent without request logging, got %q", buf.String())
	}

	l.LogHTTPError(http.MethodPost, "/api/contacts", "1.2.3.4", http.StatusInternalServerError, "boom", errors.New("x"))
	if !strings.Contains(buf.String(), "[HTTP-ERROR]") {
		t.Fatalf("server error should always be logged, got %q", buf.String())
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "ctx") != nil {
		t.Fatal("WrapError(nil) should be nil")
	}
	_, err := NewLogger(&Config{Level: "loud", File: "x.log", MaxSize: 1})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("NewLogger error %v should unwrap to ErrInvalidConfig", err)
	}
	if err.Error() != "logging: invalid configuration: invalid log level: loud" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
