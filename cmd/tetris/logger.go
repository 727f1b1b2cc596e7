package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// newLogger builds the logger for a command. When the UI owns the terminal
// logs only go to --log-file, otherwise to stderr. The returned func closes
// the log file.
func newLogger(prefix string, uiOwnsTerminal bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closer = func() { f.Close() }
	case uiOwnsTerminal:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}
