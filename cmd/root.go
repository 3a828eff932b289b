package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/defreg/internal/config"
	"github.com/zjrosen/defreg/internal/log"
)

var (
	version    = "dev"
	cfgFile    string
	outFormat  string
	debug      bool
	cfg        config.Config
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "defreg",
	Short: "Resolve, validate and fingerprint component definitions",
	Long: `defreg loads component, application, script and style definitions from
source directories and databases, resolves their dependency sets and derives a
stable UID for each root definition.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logCleanup != nil {
			logCleanup()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./.defreg.yaml, then ~/.config/defreg/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outFormat, "format", "f", "text",
		`output format: "text" or "json"`)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"log debug output to stderr")
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .defreg.yaml (current directory)
		// 2. ~/.config/defreg/config.yaml (user config)
		if _, err := os.Stat(config.DefaultConfigPath); err == nil {
			viper.SetConfigFile(config.DefaultConfigPath)
		} else if dir := config.UserConfigDir(); dir != "" {
			viper.AddConfigPath(dir)
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// A missing config file is fine; the defaults apply.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "warning: reading config %s: %v\n", cfgFile, err)
		}
	}
}

// setup loads the configuration and starts logging before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded

	switch {
	case debug:
		log.InitWriter(os.Stderr)
		log.SetMinLevel(log.LevelDebug)
	case cfg.Log.Path != "":
		if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o750); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		cleanup, err := log.Init(cfg.Log.Path)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logCleanup = cleanup
		level := log.ParseLevel(cfg.Log.Level)
		if cfg.Log.Debug {
			level = log.LevelDebug
		}
		log.SetMinLevel(level)
	}
	log.Debug(log.CatCLI, "command started", "command", cmd.CommandPath(), "config", viper.ConfigFileUsed())
	return nil
}

// configPath is the file the current configuration came from, or the
// project default when none was read.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return config.DefaultConfigPath
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
