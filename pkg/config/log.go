package config

import (
	"io"
	"log/slog"
	"os"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// LogWhere decides where to send log output. "" throws it away,
// "stdout" and "stderr" are what they say, anything else is a file we
// append to. Close the returned Closer when finished.
func LogWhere(where string, level slog.Level) (*slog.Logger, io.Closer, error) {
	var w io.Writer
	var closer io.Closer = nopCloser{}
	switch where {
	case "":
		return slog.New(slog.NewTextHandler(io.Discard, nil)), closer, nil
	case "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		fp, err := os.OpenFile(where, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, err
		}
		w, closer = fp, fp
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{AddSource: true, Level: level})
	return slog.New(h), closer, nil
}
