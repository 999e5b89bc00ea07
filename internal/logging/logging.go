package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options controls where and how much the application logs.
type Options struct {
	Level string // zerolog level name; unknown values fall back to info
	File  string // log file path; empty disables file output
	// Console enables human-readable output on Stderr. The TUI turns this off
	// because it owns the terminal.
	Console bool
	Stderr  io.Writer // defaults to os.Stderr
}

// Logger wraps a zerolog.Logger together with the file it writes to.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New builds a Logger from opts. With neither a file nor console output the
// logger discards everything.
func New(opts Options) (*Logger, error) {
	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer
	if opts.Console {
		out := opts.Stderr
		if out == nil {
			out = os.Stderr
		}
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		})
	}

	var file *os.File
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, err
		}
		file, err = os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return nil, err
		}
		writers = append(writers, file)
	}

	if len(writers) == 0 {
		return &Logger{Logger: zerolog.Nop()}, nil
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return &Logger{Logger: logger, file: file}, nil
}

// Component returns a child logger tagged with component=name.
func (l *Logger) Component(name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
