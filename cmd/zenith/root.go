// Package main implements the zenith CLI driver: a thin command surface
// wired to the parse/validate/simulate/metrics/pattern core, following the
// cobra/viper subcommand-tree shape this repository's CLI tooling uses.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zenithlang/zenith/config"
	"github.com/zenithlang/zenith/parser"
)

var (
	v          = viper.New()
	cfgFile    string
	verboseLog bool
	appConfig  config.Config
)

var rootCmd = &cobra.Command{
	Use:   "zenith",
	Short: "Parse, validate, simulate, and analyze Zenith temporal-law corpora",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to an optional .toml config file")
	rootCmd.PersistentFlags().BoolVarP(&verboseLog, "verbose", "v", false, "verbose structured logging")
}

// initConfig loads flag/env/file-precedence defaults once per invocation.
// A missing --config file is fine (Load treats no path as "use defaults");
// a malformed one is reported immediately rather than deferred to the first
// subcommand that happens to touch a resource limit.
func initConfig() {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(exitIOError))
	}
	appConfig = cfg
}

// parserLimits derives parser.Limits from the loaded configuration.
func parserLimits() parser.Limits {
	return parser.Limits{MaxDepth: appConfig.MaxASTDepth, MaxTokens: appConfig.MaxTokens}
}

func initLogging() {
	level := slog.LevelWarn
	if verboseLog {
		level = slog.LevelDebug
	}
	if isTerminal(os.Stderr) {
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		})))
	} else {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// exitKind distinguishes the CLI's exit-code classes: 0 success, 1 I/O or
// argument error, 2 parse error, 3 validation error, 4 runtime analysis
// error.
type exitKind int

const (
	exitIOError         exitKind = 1
	exitParseError      exitKind = 2
	exitValidationError exitKind = 3
	exitRuntimeError    exitKind = 4
)

type exitError struct {
	kind exitKind
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCodeFor(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return int(ee.kind)
	}
	return 1
}

func main() {
	Execute()
}
