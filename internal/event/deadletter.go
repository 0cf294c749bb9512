package event

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
)

// DeadLetterSchemaVersion tags every line so old files stay readable
const DeadLetterSchemaVersion = "1.0"

// DeadLetterEntry is one undeliverable event
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends entries as JSON lines. Safe for concurrent use.
type DeadLetterWriter struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
	now func() time.Time
}

// NewDeadLetterWriter opens path for appending, creating it and its directory
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, DeadLetterDirPermissions); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgOpenDeadLetter, err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgOpenDeadLetter, err)
	}
	return &DeadLetterWriter{f: f, enc: json.NewEncoder(f), now: time.Now}, nil
}

// Write records evt after attempts failed deliveries
func (w *DeadLetterWriter) Write(evt Event, attempts int, lastErr error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Event:         evt,
		Attempts:      attempts,
	}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	entry.Timestamp = w.now().UTC()
	logger.FromContext(context.Background()).Warn(LogMsgEventDeadLettered,
		"event_type", evt.Type, "attempts", attempts, "error", entry.LastError)

	// Encoder terminates each value with a newline
	if err := w.enc.Encode(entry); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteDeadLetter, err)
	}
	return nil
}

// Close flushes and closes the file
func (w *DeadLetterWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}

// ReadDeadLetters loads every entry in a dead-letter file, oldest first.
// Lines that do not parse are skipped and counted.
func ReadDeadLetters(path string) ([]DeadLetterEntry, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", ErrMsgOpenDeadLetter, err)
	}
	defer f.Close()

	var (
		entries []DeadLetterEntry
		skipped int
	)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), MaxDeadLetterLineBytes)
	for sc.Scan() {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var e DeadLetterEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			skipped++
			continue
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return entries, skipped, fmt.Errorf("%s: %w", ErrMsgReadDeadLetter, err)
	}
	return entries, skipped, nil
}
