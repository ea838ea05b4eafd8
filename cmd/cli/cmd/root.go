package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/picogrid/ctwrap/pkg/config"
	"github.com/picogrid/ctwrap/pkg/logger"

	// Import modules to register them
	_ "github.com/picogrid/ctwrap/cmd/template"
)

type rootOptions struct {
	cfgFile  string
	logLevel string
	noColor  bool
}

// NewRootCmd builds the ctwrap command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "ctwrap",
		Short: "Run pluggable simulation modules",
		Long: `ctwrap discovers simulation modules, merges their default configuration
with user overrides, runs them and prints the resulting tables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, opts)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.ctwrap/config.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.String("presets", "", "presets file (default is $HOME/.ctwrap/presets.yaml)")

	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("no_color", flags.Lookup("no-color"))
	_ = v.BindPFlag("presets_file", flags.Lookup("presets"))

	rootCmd.AddCommand(newRunCmd(v))
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newSelfTestCmd())
	rootCmd.AddCommand(newPresetCmd(v))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// initConfig reads in config file and ENV variables if set
func initConfig(v *viper.Viper, opts *rootOptions) error {
	if opts.cfgFile != "" {
		v.SetConfigFile(opts.cfgFile)
	} else {
		v.AddConfigPath("$HOME/" + config.DirName)
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	logger.SetLevel(logger.ParseLevel(v.GetString("log_level")))
	logger.SetNoColor(v.GetBool("no_color"))
	return nil
}

// presetsPath resolves the presets file from flags, config or the default location
func presetsPath(v *viper.Viper) (string, error) {
	if p := v.GetString("presets_file"); p != "" {
		return p, nil
	}
	return config.DefaultPresetsPath()
}

// interactive reports whether prompts may be shown
func interactive() bool {
	return !config.SkipPrompts() && term.IsTerminal(int(os.Stdin.Fd()))
}
