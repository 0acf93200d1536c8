package logs

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const prefix = "[calnotes] "

var (
	Logger  = log.New(io.Discard, prefix, log.LstdFlags|log.Lshortfile)
	logFile *os.File
	mu      sync.Mutex
)

// Initialize points the logger at path, creating parent directories.
// An empty path leaves logging disabled.
func Initialize(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	if logFile != nil {
		logFile.Close()
	}

	logFile = f
	Logger = log.New(f, prefix, log.LstdFlags|log.Lshortfile)
	return nil
}

// Printf logs to the current logger.
func Printf(format string, args ...any) {
	mu.Lock()
	l := Logger
	mu.Unlock()
	l.Output(2, fmt.Sprintf(format, args...))
}

// Close closes the log file and disables logging.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	Logger = log.New(io.Discard, prefix, log.LstdFlags|log.Lshortfile)
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}
