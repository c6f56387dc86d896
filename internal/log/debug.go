// Package log provides file-backed debug logging for diffdeck. Messages
// written before a log file is configured are buffered and flushed once
// SetFile is called; without a file they are eventually discarded.
package log

import (
	"log"
	"os"
	"sync"
)

type debugWriter struct {
	mu      sync.Mutex
	file    *os.File
	buffer  []byte
	discard bool
}

var (
	writer = &debugWriter{}
	// stdLogger adds timestamps via the standard log formatting.
	stdLogger = log.New(writer, "", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer. Output goes to the configured file, or to
// the in-memory buffer until one is set.
func (w *debugWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.discard {
		return len(p), nil
	}
	if w.file != nil {
		n, err := w.file.Write(p)
		_ = w.file.Sync()
		return n, err
	}

	b := make([]byte, len(p))
	copy(b, p)
	w.buffer = append(w.buffer, b...)
	return len(p), nil
}

// SetFile directs debug output to path, creating the file if needed and
// flushing anything buffered so far. An empty path discards all output.
func SetFile(path string) error {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	if writer.file != nil {
		_ = writer.file.Close()
		writer.file = nil
	}

	if path == "" {
		writer.discard = true
		writer.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		writer.discard = true
		writer.buffer = nil
		return err
	}

	writer.file = f
	writer.discard = false
	if len(writer.buffer) > 0 {
		_, _ = f.Write(writer.buffer)
		_ = f.Sync()
		writer.buffer = nil
	}
	return nil
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}

// Println writes a debug message.
func Println(v ...any) {
	stdLogger.Println(v...)
}

// Close closes the debug log file if open.
func Close() error {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	if writer.file == nil {
		return nil
	}
	err := writer.file.Close()
	writer.file = nil
	return err
}
