package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/netspec/prtg-reporter/internal/config"
	"github.com/netspec/prtg-reporter/internal/version"
	"github.com/rs/zerolog"
)

// Sinks owns the writers behind a logger and closes them at exit
type Sinks struct {
	FilePath string
	closers  []io.Closer
}

// Close flushes and closes every file and syslog sink
func (s *Sinks) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// New builds the run logger: JSON lines to stdout, plus a per-run log file
// when cfg.FileName is set, plus every reachable syslog target. An
// unreachable syslog target is reported and skipped.
func New(cfg config.LoggingConfig, stdout io.Writer, now time.Time) (zerolog.Logger, *Sinks, error) {
	zerolog.TimeFieldFormat = time.RFC3339
	sinks := &Sinks{}
	writers := []io.Writer{stdout}

	if cfg.FileName != "" {
		f, path, err := openRunFile(cfg.Directory, cfg.FileName, now)
		if err != nil {
			return zerolog.Nop(), sinks, err
		}
		sinks.FilePath = path
		sinks.closers = append(sinks.closers, f)
		writers = append(writers, f)
	}

	var unreachable []error
	for _, target := range cfg.SyslogTargets {
		w, err := dialSyslog(target, cfg.Name)
		if err != nil {
			unreachable = append(unreachable, fmt.Errorf("syslog %s: %w", target, err))
			continue
		}
		sinks.closers = append(sinks.closers, w)
		writers = append(writers, zerolog.SyslogLevelWriter(w))
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Str("logger", cfg.Name).
		Str("version", version.Version).
		Str("commit", version.Commit).
		Logger()

	for _, e := range unreachable {
		logger.Warn().Err(e).Msg("Syslog sink unavailable, continuing without it")
	}

	return logger, sinks, nil
}

// openRunFile creates <dir>/<name>_log_<UTC timestamp>.log
func openRunFile(dir, name string, now time.Time) (*os.File, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("ensure log directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_log_%s.log", name, now.UTC().Format("2006-01-02_15-04-05-MST")))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, "", fmt.Errorf("open log file: %w", err)
	}
	return f, path, nil
}
