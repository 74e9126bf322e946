package logger

import (
	"log/slog"
	"testing"

	"github.com/alphabill-org/hashchain/logger"
)

/*
New returns logger for test t on debug level.
*/
func New(t testing.TB) *slog.Logger {
	return NewLvl(t, slog.LevelDebug)
}

/*
NewLvl returns logger for test t on level "level".

Log is written into test log (t.Log) so it is only shown when the test fails
or in verbose mode.
*/
func NewLvl(t testing.TB, level slog.Level) *slog.Logger {
	cfg := &logger.LogConfiguration{
		Level:      level.String(),
		Format:     logger.FormatConsole,
		TimeFormat: "15:04:05.0000",
		HashFormat: "short",
		Writer:     &testLogWriter{t: t},
	}
	log, err := logger.New(cfg)
	if err != nil {
		t.Fatalf("creating test logger: %v", err)
	}
	return log
}

type testLogWriter struct {
	t testing.TB
}

func (w *testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	// strip trailing newline, t.Log adds it's own
	n := len(p)
	if n > 0 && p[n-1] == '\n' {
		p = p[:n-1]
	}
	w.t.Log(string(p))
	return n, nil
}
