package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"phonebook/internal/client/api"
	"phonebook/internal/config"
	"phonebook/internal/logging"
	"phonebook/internal/phonebook"
	"phonebook/internal/ui"
)

var version = "dev"

var (
	configPath string
	apiURL     string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "phonebook",
	Short:         "Phonebook keeps a contact list in sync with a phonebook server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of phonebook",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "phonebook "+version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/phonebook/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "phonebook server address, overrides the config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr at debug level")
	rootCmd.AddCommand(versionCmd)
}

// session is what every command needs: the resolved config, a logger and a
// client for the server.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	client *api.Client
	closer io.Closer
}

func openSession(tui bool) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	logOpts := logging.Options{File: cfg.Log.File, Level: cfg.Log.Level}
	if verbose && !tui {
		logOpts = logging.Options{File: "-", Level: "debug"}
	}
	logger, closer, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	client, err := api.New(cfg.APIURL, api.WithTimeout(cfg.Timeout), api.WithLogger(logger))
	if err != nil {
		closer.Close()
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, client: client, closer: closer}, nil
}

func (s *session) Close() { s.closer.Close() }

func runTUI(cmd *cobra.Command, _ []string) error {
	s, err := openSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	expiry := phonebook.NewExpiry(s.cfg.NoticeTTL)
	defer expiry.Stop()

	s.logger.Info("starting", zap.String("version", version), zap.String("server", s.client.BaseURL()))
	p := tea.NewProgram(ui.New(ui.Options{
		Remote:    s.client,
		Logger:    s.logger,
		Expiry:    expiry,
		ServerURL: s.client.BaseURL(),
	}), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
