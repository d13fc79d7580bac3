package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/race-calendar/internal/logger"
	"github.com/pfrederiksen/race-calendar/internal/prompt"
	"github.com/pfrederiksen/race-calendar/internal/scraper"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

const (
	envPrefix  = "RACECAL"
	configName = "race-calendar"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "race-calendar",
		Short: "Convert a race calendar page into an .ics file",
		Long: `A CLI tool that scrapes a race calendar page and writes one all-day
calendar event per race. Multi-day races get a START and an END event.
URL and FILE are asked interactively when not configured.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, v)
		},
	}

	cmd.Flags().String("url", "", "Calendar page URL")
	cmd.Flags().String("file", "", "Destination .ics file")
	cmd.Flags().Bool("yes", false, "Answer yes to every confirmation")
	cmd.Flags().Bool("debug", false, "Return full errors instead of a one-line summary")
	cmd.Flags().Bool("verbose", false, "Enable verbose logging")
	cmd.Flags().Duration("timeout", scraper.Timeout, "HTTP timeout for fetching the page")
	cmd.Flags().String("user-agent", scraper.UserAgent, "User-Agent header sent with the request")
	cmd.Flags().String("config", "", "Config file (default ./race-calendar.* or ~/.config/race-calendar/race-calendar.*)")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(cmd.Flags())

	return cmd
}

// loadConfig reads the optional config file and resolves flags, env and file values
func loadConfig(v *viper.Viper) (Config, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/race-calendar")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := Config{
		URL:       strings.TrimSpace(v.GetString("url")),
		File:      strings.TrimSpace(v.GetString("file")),
		AssumeYes: v.GetBool("yes"),
		Debug:     v.GetBool("debug"),
		Verbose:   v.GetBool("verbose"),
		Timeout:   v.GetDuration("timeout"),
		UserAgent: v.GetString("user-agent"),
	}

	if cfg.Timeout <= 0 {
		return Config{}, fmt.Errorf("invalid timeout: %s (must be positive)", cfg.Timeout)
	}

	return cfg, nil
}

// runRoot is the main command logic
func runRoot(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	log := newLogger(cfg, stderr)
	log.Debug("Loaded configuration", logger.Fields{
		"url":         cfg.URL,
		"file":        cfg.File,
		"config_file": v.ConfigFileUsed(),
		"timeout":     cfg.Timeout.String(),
	})

	console := prompt.NewConsole(cmd.InOrStdin(), stdout)

	var confirm prompt.Confirmer = console
	if cfg.AssumeYes {
		confirm = prompt.Static(true)
	}

	deps := Deps{
		Fetcher: scraper.New(
			scraper.WithTimeout(cfg.Timeout),
			scraper.WithUserAgent(cfg.UserAgent),
			scraper.WithLogger(log),
		),
		Confirm: confirm,
		Ask:     console,
		Stdout:  stdout,
		Stderr:  stderr,
		Log:     log,
		Now:     time.Now,
	}

	code, err := Run(cmd.Context(), cfg, deps)
	if err != nil {
		return err
	}
	if code != ExitSuccess {
		return exitCodeError(code)
	}
	return nil
}

func newLogger(cfg Config, w io.Writer) *logger.Logger {
	level := logger.LevelWarn
	if cfg.Verbose {
		level = logger.LevelDebug
	}
	return logger.New(level, w)
}

// execute runs cmd and maps its outcome to an exit status
func execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var code exitCodeError
	if errors.As(err, &code) {
		return int(code)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return ExitError
}

// Execute runs the CLI
func Execute() {
	os.Exit(execute(NewRootCmd()))
}
