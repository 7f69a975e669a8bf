package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dtsx2py/dtsx2py/internal/config"
)

var (
	configPath string
	outputDir  string
	logLevel   string
	logFormat  string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a dtsx2py.hcl config file")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Directory for generated scripts")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (console or json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Shorthand for --log-level=debug")
}

var rootCmd = &cobra.Command{
	Use:   "dtsx2py",
	Short: "dtsx2py: convert SSIS DTSX packages to Python ETL scripts",
	Long: `dtsx2py reads SQL Server Integration Services package files (.dtsx),
extracts their connection managers, variables, data-flow components and
control-flow tasks, and generates equivalent pandas/SQLAlchemy Python
scripts together with a conversion summary.`,
	SilenceUsage: true,
}

// loadConfig merges the config file with command-line overrides. Flags
// win over the file; the file wins over defaults.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = "dtsx2py.hcl"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("bad log level %q: %w", cfg.LogLevel, err)
	}

	var zc zap.Config
	if cfg.LogFormat == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	log, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
