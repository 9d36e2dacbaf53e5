package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"phonebook/internal/config"
	"phonebook/internal/logging"
	"phonebook/internal/server/database"
	"phonebook/internal/server/router"
	"phonebook/internal/server/websocket"
)

var version = "dev"

var (
	headless bool
	port     int
	memory   bool
)

var rootCmd = &cobra.Command{
	Use:           "phonebook-server",
	Short:         "Reference phonebook server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of the server",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "phonebook-server "+version)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&headless, "headless", false, "log to stderr instead of showing the status screen")
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on, overrides PORT")
	rootCmd.Flags().BoolVar(&memory, "memory", false, "keep contacts in memory even if DATABASE_URL is set")
	rootCmd.AddCommand(versionCmd)
}

func openStore(ctx context.Context, cfg config.Server, logger *zap.Logger) (database.Store, string, error) {
	if memory || cfg.DatabaseURL == "" {
		logger.Warn("no database configured, contacts are kept in memory")
		return database.NewMemory(), "In-memory", nil
	}
	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, "", err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, "", err
	}
	return db, "PostgreSQL", nil
}

func serverLog(cfg config.Server) logging.Options {
	if headless {
		return logging.Options{File: "-", Level: cfg.LogLevel}
	}
	file := os.DevNull
	if dir, err := config.GetConfigDir(); err == nil {
		file = filepath.Join(dir, "logs", "server.log")
	}
	return logging.Options{File: file, Level: cfg.LogLevel}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg := config.LoadServer()
	if port > 0 {
		cfg.Port = port
	}

	logger, closer, err := logging.New(serverLog(cfg))
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, backend, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	stats := new(router.Stats)
	srv := &http.Server{
		Addr: net.JoinHostPort("", strconv.Itoa(cfg.Port)),
		Handler: router.New(router.Options{
			Title:   "Phonebook",
			Version: version,
			Store:   store,
			Hub:     hub,
			Logger:  logger,
			Stats:   stats,
		}),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("backend", backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	if headless {
		select {
		case <-ctx.Done():
		case err := <-serveErr:
			if err != nil {
				return err
			}
		}
	} else {
		p := tea.NewProgram(newStatus(status{
			addr:    srv.Addr,
			backend: backend,
			stats:   stats,
			hub:     hub,
			serve:   serveErr,
		}), tea.WithContext(ctx), tea.WithAltScreen())
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
