package cmd

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Iron-Ham/scoreboard/internal/board"
	"github.com/Iron-Ham/scoreboard/internal/config"
	"github.com/Iron-Ham/scoreboard/internal/event"
	"github.com/Iron-Ham/scoreboard/internal/logging"
	"github.com/Iron-Ham/scoreboard/internal/render"
)

// session is one board together with the logger, event bus and metrics
// registry it reports to.
type session struct {
	cfg      *config.Config
	board    *board.Board
	bus      *event.Bus
	logger   *logging.Logger
	registry *prometheus.Registry
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newSession(cfg *config.Config) (*session, error) {
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	bus := event.NewBus(logger)
	reg := prometheus.NewRegistry()
	b := board.New(
		board.WithStrictNames(cfg.Board.StrictNames),
		board.WithLogger(logger),
		board.WithEventBus(bus),
		board.WithMetrics(reg),
	)

	logger.WithSession(b.ID()).Info("session started", "strict_names", cfg.Board.StrictNames)
	return &session{
		cfg:      cfg,
		board:    b,
		bus:      bus,
		logger:   logger,
		registry: reg,
	}, nil
}

// Close logs the end of the session and closes the log file.
func (s *session) Close() error {
	s.logger.WithSession(s.board.ID()).Info("session ended", "ongoing", s.board.Len())
	return s.logger.Close()
}

func newLogger(cfg config.LoggingConfig) (*logging.Logger, error) {
	if !cfg.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLoggerWithRotation(cfg.ResolveDir(), cfg.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session log: %w", err)
	}
	return logger, nil
}

// renderOptions resolves the output format, letting flag override the
// configured one.
func renderOptions(cfg *config.Config, flag string) (render.Format, render.Options, error) {
	name := cfg.Output.Format
	if strings.TrimSpace(flag) != "" {
		name = flag
	}
	format, err := render.ParseFormat(name)
	if err != nil {
		return "", render.Options{}, err
	}
	return format, render.Options{MaxNameWidth: cfg.TUI.MaxNameWidth}, nil
}
