package cmd

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/Iron-Ham/scoreboard/internal/command"
	"github.com/Iron-Ham/scoreboard/internal/config"
	"github.com/Iron-Ham/scoreboard/internal/errors"
	"github.com/Iron-Ham/scoreboard/internal/render"
	"github.com/Iron-Ham/scoreboard/internal/tui"
	"github.com/Iron-Ham/scoreboard/internal/tui/styles"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Keep score interactively",
	Long: `Start an interactive scoreboard session.

On a terminal this opens the full-screen scoreboard. Otherwise commands are
read line by line from stdin and results are printed as they are applied.

Type 'help' in the session to list the commands.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var (
	playMetricsAddr string
	playNoTUI       bool
)

const shutdownTimeout = 5 * time.Second

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringVar(&playMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on host:port (default from config)")
	playCmd.Flags().BoolVar(&playNoTUI, "no-tui", false, "Read commands from stdin even on a terminal")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	addr := cfg.Metrics.Address
	if playMetricsAddr != "" {
		addr = playMetricsAddr
	}

	// Bind before reading any input so a busy address fails the command at
	// once instead of after stdin closes.
	var ln net.Listener
	if addr != "" {
		if ln, err = net.Listen("tcp", addr); err != nil {
			return fmt.Errorf("metrics server: %w", err)
		}
	}

	s, err := newSession(cfg)
	if err != nil {
		if ln != nil {
			_ = ln.Close()
		}
		return err
	}
	defer func() { _ = s.Close() }()

	interactive := !playNoTUI && isTerminal(os.Stdin) && isTerminal(os.Stdout)

	// Line mode blocks reading stdin, so it keeps the default signal
	// handling; the TUI shuts down through its context instead.
	ctx := cmd.Context()
	if interactive {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
		defer stop()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if ln != nil {
		srv := newMetricsServer(addr, s)
		g.Go(func() error {
			s.logger.Info("serving metrics", "address", ln.Addr().String())
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
			defer done()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		// The session ends when the user does; this also stops the metrics server.
		defer cancel()
		if interactive {
			return playTUI(ctx, s)
		}
		return playLines(ctx, cmd, s)
	})

	return g.Wait()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newMetricsServer(addr string, s *session) *http.Server {
	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func playTUI(ctx context.Context, s *session) error {
	name, err := resolveTheme(s.cfg.TUI)
	if err != nil {
		s.logger.Warn("falling back to default theme", "error", err.Error())
		name = styles.ThemeDefault
	}
	styles.SetActiveTheme(name)

	app := tui.New(s.board, s.bus, tui.Options{MaxNameWidth: s.cfg.TUI.MaxNameWidth})

	if viper.ConfigFileUsed() != "" {
		viper.OnConfigChange(func(e fsnotify.Event) {
			cfg, err := config.Load()
			if err != nil {
				s.logger.Warn("ignoring invalid config change", "file", e.Name, "error", err.Error())
				return
			}
			name, err := resolveTheme(cfg.TUI)
			if err != nil {
				s.logger.Warn("ignoring theme change", "file", e.Name, "error", err.Error())
				return
			}
			s.logger.Info("config reloaded", "file", e.Name, "theme", string(name))
			app.SetTheme(name)
		})
		viper.WatchConfig()
	}

	return app.Run(ctx)
}

// resolveTheme returns the theme to activate. A theme file takes precedence
// over the theme name.
func resolveTheme(cfg config.TUIConfig) (styles.ThemeName, error) {
	if cfg.ThemeFile != "" {
		path := cfg.ThemeFile
		if rest, ok := strings.CutPrefix(path, "~/"); ok {
			if home, err := os.UserHomeDir(); err == nil {
				path = filepath.Join(home, rest)
			}
		}
		return styles.RegisterThemeFile(appFs, path)
	}
	if cfg.Theme == "" {
		return styles.ThemeDefault, nil
	}
	if !styles.IsValidTheme(cfg.Theme) {
		return "", fmt.Errorf("unknown theme %q", cfg.Theme)
	}
	return styles.ThemeName(cfg.Theme), nil
}

// playLines reads commands from stdin. Summaries use plain output unless
// output.format asks for something else.
func playLines(ctx context.Context, cmd *cobra.Command, s *session) error {
	format, opts, err := renderOptions(s.cfg, "")
	if err != nil {
		return err
	}
	if format == render.FormatTable {
		format = render.FormatPlain
	}

	runner := command.NewRunner(command.NewExecutor(s.board), cmd.OutOrStdout(),
		command.WithErrorOutput(cmd.ErrOrStderr()),
		command.WithRenderer(render.Func(format, opts)),
	)
	stats, err := runner.Run(ctx, cmd.InOrStdin())
	s.logger.WithSession(s.board.ID()).Info("input closed",
		"lines", stats.Lines, "applied", stats.Applied, "rejected", stats.Rejected)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
