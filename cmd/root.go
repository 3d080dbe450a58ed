package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/printpositions/internal/config"
	"github.com/zjrosen/printpositions/internal/log"
	"github.com/zjrosen/printpositions/internal/paths"
)

var (
	version    = "dev"
	cfgFile    string
	debugFlag  bool
	logFile    string
	cfg        config.Config
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "printpos",
	Short: "Split terminal text into print positions",
	Long: `printpos segments text containing ANSI control sequences into print positions:
one visible grapheme together with the escape sequences that decorate it.

Input is taken from the command line arguments (joined by spaces) or, when no
arguments are given, read line by line from standard input.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .printpos/config.yaml, then ~/.config/printpos/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also enabled by PRINTPOS_DEBUG)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"debug log path (default: debug.log)")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("log_path", rootCmd.PersistentFlags().Lookup("log-file"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("debug", defaults.Debug)
	viper.SetDefault("log_path", defaults.LogPath)
	viper.SetDefault("log_level", defaults.LogLevel)
	viper.SetDefault("layout.width", defaults.Layout.Width)
	viper.SetDefault("layout.fill", defaults.Layout.Fill)
	viper.SetDefault("layout.align", defaults.Layout.Align)
	viper.SetDefault("layout.ellipsis", defaults.Layout.Ellipsis)
	viper.SetDefault("layout.east_asian_wide", defaults.Layout.EastAsianWide)

	viper.SetEnvPrefix("printpos")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	path, found := paths.ResolveConfig(cfgFile)
	if found {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "printpos: reading config %s: %v\n", path, err)
		}
	}

	decodeConfig(viper.GetViper(), os.Stderr, &cfg)
}

// decodeConfig unmarshals v into c, reporting a decode failure to errOut.
// Fields that failed to decode keep their previous values.
func decodeConfig(v *viper.Viper, errOut io.Writer, c *config.Config) {
	if err := v.Unmarshal(c); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to decode config", err, "path", v.ConfigFileUsed())
		fmt.Fprintf(errOut, "printpos: decoding config %s: %v\n", v.ConfigFileUsed(), err)
	}
}

// setup validates the loaded configuration and starts logging when debug mode is on.
func setup(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !cfg.Debug {
		return nil
	}
	logPath := cfg.LogPath
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, "printpos")
	if err != nil {
		return fmt.Errorf("initializing log: %w", err)
	}
	logCleanup = cleanup

	level, _ := log.ParseLevel(cfg.LogLevel)
	log.SetMinLevel(level)
	log.Info(log.CatCLI, "printpos starting", "command", cmd.Name(), "config", viper.ConfigFileUsed())
	return nil
}

// configPath returns the file config writes should go to.
func configPath() string {
	return paths.WriteTarget(viper.ConfigFileUsed())
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
