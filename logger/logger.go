package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatECS     = "ecs"
	FormatConsole = "console"
)

/*
LogConfiguration describes how to build the logger. It can be loaded from
YAML file, empty fields mean "use default".
*/
type LogConfiguration struct {
	// DEBUG, INFO, WARN or ERROR, default INFO
	Level string `yaml:"defaultLevel"`
	// one of text, json, ecs or console, default text
	Format string `yaml:"format"`
	// file path or one of the special values stdout, stderr, discard. Default stderr.
	OutputPath string `yaml:"outputPath"`
	// Go time format string or "none" to not log time at all.
	TimeFormat string `yaml:"timeFormat"`
	// "short", "none" or empty for full hashes.
	HashFormat string `yaml:"hashFormat"`
	// when not nil log is written into Writer and OutputPath is ignored
	Writer io.Writer `yaml:"-"`
}

// LoadConfiguration decodes logger configuration from YAML.
func LoadConfiguration(r io.Reader) (*LogConfiguration, error) {
	cfg := &LogConfiguration{}
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding logger configuration: %w", err)
	}
	return cfg, nil
}

// New builds logger according to the configuration.
func New(cfg *LogConfiguration) (*slog.Logger, error) {
	h, err := cfg.Handler()
	if err != nil {
		return nil, err
	}
	return slog.New(h), nil
}

func (cfg *LogConfiguration) Handler() (slog.Handler, error) {
	var level slog.Level
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	out, err := cfg.writer()
	if err != nil {
		return nil, fmt.Errorf("opening log output: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(cfg.Format) {
	case "", FormatText:
		opts.ReplaceAttr = composeAttrFmt(formatTimeAttr(cfg.TimeFormat), formatHashAttr(cfg.HashFormat), formatDataAttrAsJSON)
		return slog.NewTextHandler(out, opts), nil
	case FormatJSON:
		opts.ReplaceAttr = composeAttrFmt(formatTimeAttr(cfg.TimeFormat), formatHashAttr(cfg.HashFormat))
		return slog.NewJSONHandler(out, opts), nil
	case FormatECS:
		opts.AddSource = true
		opts.ReplaceAttr = composeAttrFmt(formatTimeAttr(cfg.TimeFormat), formatHashAttr(cfg.HashFormat), formatAttrECS)
		return slog.NewJSONHandler(out, opts), nil
	case FormatConsole:
		cw := zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    !isTerminal(out),
			TimeFormat: "15:04:05.0000",
		}
		// console writer does it's own time formatting
		switch cfg.TimeFormat {
		case "":
		case "none":
			cw.PartsExclude = []string{zerolog.TimestampFieldName}
		default:
			cw.TimeFormat = cfg.TimeFormat
		}
		opts.ReplaceAttr = composeAttrFmt(formatHashAttr(cfg.HashFormat), formatDataAttrAsJSON, formatAttrConsole)
		return slog.NewJSONHandler(cw, opts), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}

func (cfg *LogConfiguration) writer() (io.Writer, error) {
	if cfg.Writer != nil {
		return cfg.Writer, nil
	}
	switch strings.ToLower(cfg.OutputPath) {
	case "", "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	case "discard":
		return io.Discard, nil
	default:
		// #nosec G304
		return os.OpenFile(cfg.OutputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
