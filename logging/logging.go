package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/gammazero/deque"

	"lautenbacher.net/lavalamp/config"
)

// MaxBufferedLines bounds the backlog kept while no live target is attached.
// The oldest lines are dropped first.
const MaxBufferedLines = 2000

// lineWriter keeps log records while the TUI is not (yet) showing them and
// copies everything to an optional log file.
type lineWriter struct {
	mu        sync.Mutex
	backlog   deque.Deque[[]byte]
	dropped   int
	target    io.Writer
	file      *os.File
	buffering bool
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var firstErr error
	switch {
	case w.buffering:
		if w.backlog.Len() >= MaxBufferedLines {
			w.backlog.PopFront()
			w.dropped++
		}
		// slog reuses p after Write returns
		w.backlog.PushBack(append([]byte(nil), p...))
	case w.target != nil:
		if _, err := w.target.Write(p); err != nil {
			firstErr = err
		}
	}

	if w.file != nil {
		if _, err := w.file.Write(p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return len(p), firstErr
}

// flushTo writes the backlog to out. Callers hold mu.
func (w *lineWriter) flushTo(out io.Writer) error {
	if w.dropped > 0 {
		fmt.Fprintf(out, "... %d earlier log lines dropped\n", w.dropped)
		w.dropped = 0
	}
	for w.backlog.Len() > 0 {
		if _, err := out.Write(w.backlog.Front()); err != nil {
			return err
		}
		w.backlog.PopFront()
	}
	return nil
}

var writer = &lineWriter{target: os.Stderr}

// ParseLevel maps DEBUG, INFO, WARN and ERROR (any case) onto slog levels.
// Anything else is INFO.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Init installs the default slog logger. With buffered set, records are kept
// until SetOutput attaches a target; otherwise they go to stderr. A File in
// cfg receives a copy of every record.
func Init(cfg config.LogConfig, buffered bool) error {
	w := &lineWriter{buffering: buffered}
	if !buffered {
		w.target = os.Stderr
	}
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return fmt.Errorf("can't open log file %s: %w", cfg.File, err)
		}
		w.file = file
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	writer = w
	slog.SetDefault(slog.New(handler))
	return nil
}

// SetOutput flushes the backlog into target and logs live from then on.
func SetOutput(target io.Writer) error {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	if err := writer.flushTo(target); err != nil {
		return err
	}
	writer.target = target
	writer.buffering = false
	return nil
}

// BufferOutput detaches the live target and keeps records in the backlog.
func BufferOutput() {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	writer.target = nil
	writer.buffering = true
}

// Close flushes a pending backlog to stderr unless a log file already has
// it, then closes the log file.
func Close() error {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	var firstErr error
	if writer.file == nil {
		firstErr = writer.flushTo(os.Stderr)
	} else {
		writer.backlog.Clear()
		if err := writer.file.Close(); err != nil {
			firstErr = err
		}
		writer.file = nil
	}
	return firstErr
}
