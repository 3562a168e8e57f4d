package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dgallion1/wordcut/internal/config"
	"github.com/dgallion1/wordcut/internal/logger"
)

// NewRootCmd creates the root command. Each call gets its own viper
// instance so commands can be built repeatedly in tests.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "wordcut",
		Short: "Count the body words of an academic manuscript",
		Long: `wordcut removes titles, references, appendices, citations, captions,
page numbers and other non-body material from a manuscript and reports
the word count before and after.

Input may be plain text, Markdown, HTML, PDF or DOCX. With no files,
text is read from stdin.

Defaults for any flag can be set in .wordcut.yaml (current or home
directory) or with WORDCUT_ environment variables. The same file may
define named option profiles under "profiles".`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(v)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (default ./.wordcut.yaml or $HOME/.wordcut.yaml)")
	pf.Bool("debug", false, "enable debug logging")
	pf.BoolP("quiet", "q", false, "only log errors")
	pf.Bool("log-json", false, "log as JSON")

	_ = v.BindPFlag("config", pf.Lookup("config"))
	_ = v.BindPFlag("debug", pf.Lookup("debug"))
	_ = v.BindPFlag("quiet", pf.Lookup("quiet"))
	_ = v.BindPFlag("log_json", pf.Lookup("log-json"))

	cmd.AddCommand(newCleanCmd(v))
	cmd.AddCommand(newCountCmd(v))
	cmd.AddCommand(newOptionsCmd(v))
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initConfig reads the config file and environment. A missing default
// config file is not an error; a missing explicit one is.
func initConfig(v *viper.Viper) error {
	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(strings.TrimSuffix(config.DefaultProfilesFile, ".yaml"))
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("WORDCUT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// newLogger builds the CLI logger. Logs go to the command's stderr so
// stdout carries only results.
func newLogger(cmd *cobra.Command, v *viper.Viper) *slog.Logger {
	return logger.New(logger.Options{
		Debug:  v.GetBool("debug"),
		Quiet:  v.GetBool("quiet"),
		JSON:   v.GetBool("log_json"),
		Output: cmd.ErrOrStderr(),
	})
}

// loadProfiles resolves the profiles file: --profiles-file, then an
// explicit --config file, then the default search.
func loadProfiles(v *viper.Viper) (config.Profiles, error) {
	path := v.GetString("profiles_file")
	if path == "" {
		path = v.GetString("config")
	}
	return config.ResolveProfiles(path)
}
