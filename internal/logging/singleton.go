package logging

import (
	"io"
	"sync"
)

var (
	instance *Logger
	mu       sync.RWMutex
)

// InitLogger builds the process-wide logger from config.
// Calling it again replaces the previous instance.
func InitLogger(config *Config) error {
	logger, err := NewLogger(config)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		instance.Close()
	}
	instance = logger
	return nil
}

// GetGlobalLogger returns the process-wide logger.
// Before InitLogger is called it returns a stdout-only logger at info level.
func GetGlobalLogger() *Logger {
	mu.RLock()
	if instance != nil {
		defer mu.RUnlock()
		return instance
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = NewWriterLogger(stdout(), LevelInfo)
	}
	return instance
}

// SetGlobalLogger swaps the process-wide logger, mainly for tests.
func SetGlobalLogger(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	instance = l
}

// NewTestLogger returns a logger that writes only to w at debug level.
func NewTestLogger(w io.Writer) *Logger {
	return NewWriterLogger(w, LevelDebug)
}
