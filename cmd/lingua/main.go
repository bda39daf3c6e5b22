// Package main provides the CLI entrypoint for lingua.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/lingua/internal/config"
	"github.com/verte-zerg/lingua/internal/ledger"
	"github.com/verte-zerg/lingua/internal/model"
)

const (
	defaultLang     = "en"
	defaultLogLevel = "info"
	defaultTimezone = "local"
)

var (
	dbPath     string
	configPath string
	logLevel   string
	logFile    string
	timezone   string
	catalogSrc string

	registerUsername string
	registerEmail    string
	registerPassword string

	loginEmail    string
	loginPassword string

	lessonsLang string
	playWords   string
	awardLang   string
	plainReport bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lingua",
		Short:         "Terminal language learning",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dbPath, "db", config.DefaultDBPath(), "path to the progress database")
	flags.StringVar(&configPath, "config", config.DefaultConfigPath(), "path to the config file")
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error, off)")
	flags.StringVar(&logFile, "log-file", config.DefaultLogPath(), "log file path")
	flags.StringVar(&timezone, "timezone", defaultTimezone, "timezone used to count streak days")
	flags.StringVar(&catalogSrc, "catalog", "", "lesson catalog TOML file (default: built-in)")

	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newLessonsCmd())
	rootCmd.AddCommand(newLearnCmd())
	rootCmd.AddCommand(newGamesCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newAwardCmd())
	rootCmd.AddCommand(newProgressCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// loadSettings merges the config file under the flags the user set.
func loadSettings(cmd *cobra.Command) (settings, error) {
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	applyStringConfig(cmd, "timezone", &timezone, fileCfg.Calendar.Timezone)
	applyStringConfig(cmd, "catalog", &catalogSrc, fileCfg.Learn.Catalog)

	s := settings{
		Config: model.Config{
			Lang:     defaultLang,
			Catalog:  catalogSrc,
			Timezone: timezone,
			LogLevel: logLevel,
			LogFile:  logFile,
		},
		DBPath: dbPath,
	}
	if fileCfg.Learn.Lang != nil && strings.TrimSpace(*fileCfg.Learn.Lang) != "" {
		s.Lang = strings.ToLower(strings.TrimSpace(*fileCfg.Learn.Lang))
	}
	if err := validateSettings(s); err != nil {
		return settings{}, err
	}
	return s, nil
}

func validateSettings(s settings) error {
	if strings.TrimSpace(s.DBPath) == "" {
		return fmt.Errorf("--db must not be empty")
	}
	if _, err := config.Location(s.Timezone); err != nil {
		return fmt.Errorf("--timezone: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# lingua configuration
# Uncomment a value to enable it. CLI flags override config values.

[learn]
# lang = %q               # Default language for "lingua lessons"
# catalog = ""             # Lesson catalog TOML file (empty: built-in)

[log]
# level = %q            # debug, info, warn, error or off
# file = %q

[calendar]
# timezone = %q        # IANA name used to count streak days
`,
		defaultLang,
		defaultLogLevel,
		config.DefaultLogPath(),
		defaultTimezone,
	)
}

func userError(err error) error {
	if errors.Is(err, ledger.ErrNotLoggedIn) {
		return fmt.Errorf("not logged in: run lingua login --email <email> or lingua register")
	}
	return err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
