package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/josexy/hosts-whitelist/config"
	"github.com/josexy/hosts-whitelist/util/logger"
	"github.com/josexy/logx"
	"github.com/spf13/cobra"
)

var (
	Version   = ""
	GitCommit = ""
)

var rootCmd = &cobra.Command{
	Use:     "hosts-whitelist",
	Short:   "remove whitelisted entries from hosts files and domain lists",
	Version: Version,
}

var (
	configFile string
	cfg        = config.Default()
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "yaml configuration file, explicitly set flags take precedence")
	// whitelist sources
	rootCmd.PersistentFlags().StringSliceVarP(&cfg.Whitelist.Files, "whitelist", "w", nil, "additional whitelist files or urls")
	rootCmd.PersistentFlags().StringSliceVarP(&cfg.Whitelist.AntiFiles, "anti-whitelist", "a", nil, "anti-whitelist files or urls, their lines are removed from the whitelist")
	rootCmd.PersistentFlags().BoolVar(&cfg.Whitelist.WithoutCore, "without-core", false, "do not use the official whitelist")
	rootCmd.PersistentFlags().BoolVar(&cfg.Whitelist.NoComplement, "no-complement", false, "do not generate www. complements of rules")
	rootCmd.PersistentFlags().BoolVar(&cfg.Filter.AlreadyFormatted, "already-formatted", false, "skip IDNA formatting of candidate lines")
	// logger options
	rootCmd.PersistentFlags().BoolVarP(&cfg.Log.Color, "color", "C", false, "enable output color mode")
	rootCmd.PersistentFlags().StringVarP(&cfg.Log.LogLevel, "level", "L", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().IntVarP(&cfg.Log.VerboseLevel, "verbose-level", "V", 1, "verbose output level (0, 1, 2, 3)")
}

// flagOverrides copy a flag-bound value from the flag config to the file
// config, keyed by flag name.
var flagOverrides = map[string]func(dst, src *config.Config){
	"whitelist":         func(dst, src *config.Config) { dst.Whitelist.Files = src.Whitelist.Files },
	"anti-whitelist":    func(dst, src *config.Config) { dst.Whitelist.AntiFiles = src.Whitelist.AntiFiles },
	"without-core":      func(dst, src *config.Config) { dst.Whitelist.WithoutCore = src.Whitelist.WithoutCore },
	"no-complement":     func(dst, src *config.Config) { dst.Whitelist.NoComplement = src.Whitelist.NoComplement },
	"already-formatted": func(dst, src *config.Config) { dst.Filter.AlreadyFormatted = src.Filter.AlreadyFormatted },
	"color":             func(dst, src *config.Config) { dst.Log.Color = src.Log.Color },
	"level":             func(dst, src *config.Config) { dst.Log.LogLevel = src.Log.LogLevel },
	"verbose-level":     func(dst, src *config.Config) { dst.Log.VerboseLevel = src.Log.VerboseLevel },
	"multiprocessing":   func(dst, src *config.Config) { dst.Filter.Parallel = src.Filter.Parallel },
	"processes":         func(dst, src *config.Config) { dst.Filter.Workers = src.Filter.Workers },
	"listen":            func(dst, src *config.Config) { dst.Serve.Listen = src.Serve.Listen },
	"metrics-path":      func(dst, src *config.Config) { dst.Serve.MetricsPath = src.Serve.MetricsPath },
	"reload-interval":   func(dst, src *config.Config) { dst.Serve.ReloadInterval = src.Serve.ReloadInterval },
}

func flagChanged(name string) bool {
	return rootCmd.PersistentFlags().Changed(name) ||
		filterCmd.Flags().Changed(name) ||
		serveCmd.Flags().Changed(name)
}

func initConfig() {
	if err := loadConfig(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	setupLogger()
}

// loadConfig replaces the flag config with the config file, if any, and then
// applies the flags set on the command line on top of it.
func loadConfig() error {
	if configFile != "" {
		fileCfg, err := config.ParseConfigFile(configFile)
		if err != nil {
			return err
		}
		for name, override := range flagOverrides {
			if flagChanged(name) {
				override(fileCfg, cfg)
			}
		}
		cfg = fileCfg
	}
	return cfg.Validate()
}

func setupLogger() {
	// disable logger
	if cfg.Log == nil || cfg.Log.VerboseLevel == 0 {
		logger.Logger = logx.NewLogContext().WithWriter(io.Discard).BuildConsoleLogger(logx.LevelPanic)
		return
	}

	var writer io.Writer = os.Stderr
	if cfg.Log.Color {
		writer = color.Error
	}
	logCtx := logx.NewLogContext().
		WithColor(cfg.Log.Color).
		WithTime(true, func(t time.Time) any { return t.Format(time.DateTime) }).
		WithCaller(true, true, true, true).
		WithLevel(true, true).
		WithEncoder(logx.Json).
		WithEscapeQuote(true).
		WithWriter(writer)

	switch cfg.Log.VerboseLevel {
	case 1:
		logCtx.WithCaller(false, false, false, false).WithTime(true, func(t time.Time) any { return t.Format(time.TimeOnly) })
	case 2:
		logCtx.WithCaller(true, true, false, true).WithTime(true, func(t time.Time) any { return t.Format(time.DateTime) })
	}
	var logLevel logx.LevelType
	switch cfg.Log.LogLevel {
	case "trace":
		logLevel = logx.LevelTrace
	case "debug":
		logLevel = logx.LevelDebug
	case "warn":
		logLevel = logx.LevelWarn
	case "error":
		logLevel = logx.LevelError
	case "fatal":
		logLevel = logx.LevelFatal
	case "panic":
		logLevel = logx.LevelPanic
	default:
		logLevel = logx.LevelInfo
	}
	logger.Logger = logCtx.BuildConsoleLogger(logLevel)
}
