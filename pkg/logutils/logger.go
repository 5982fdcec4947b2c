// Package logutils builds the process logger.
package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Stderr is the file value that selects stderr instead of a log file.
const Stderr = "-"

// New returns a logger at the given level.
//
// When file is Stderr, logs go to stderr (or the stderr writer, when not
// nil): human readable through a zerolog.ConsoleWriter when the process
// stderr is a terminal, JSON otherwise. Any other non-empty file is opened
// for appending and receives JSON. An empty file discards everything.
//
// The level parameter can be one of: debug, info, warn, error, fatal.
func New(level, file string, stderr io.Writer) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	var writer io.Writer
	switch file {
	case "":
		writer = io.Discard
	case Stderr:
		if stderr == nil {
			stderr = os.Stderr
		}
		writer = stderr
		if term.IsTerminal(int(os.Stderr.Fd())) {
			writer = zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}
		}
	default:
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}

		osFile, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("open log file: %w", err)
		}
		closer = func() { _ = osFile.Close() }
		writer = osFile
	}

	l := zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, closer, nil
}
