package main

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/zenithlang/zenith/config"
)

func TestExitCodeForUnwrapsExitError(t *testing.T) {
	wrapped := &exitError{kind: exitValidationError, err: errors.New("bad corpus")}
	if got := exitCodeFor(wrapped); got != int(exitValidationError) {
		t.Errorf("exitCodeFor = %d, want %d", got, exitValidationError)
	}
	if got := exitCodeFor(errors.New("unrelated")); got != 1 {
		t.Errorf("exitCodeFor(plain error) = %d, want 1", got)
	}
}

func TestParserLimitsReflectsAppConfig(t *testing.T) {
	prior := appConfig
	defer func() { appConfig = prior }()

	appConfig = config.Config{MaxASTDepth: 12, MaxTokens: 99}
	limits := parserLimits()
	if limits.MaxDepth != 12 || limits.MaxTokens != 99 {
		t.Errorf("parserLimits() = %+v, want {12 99}", limits)
	}
}

func TestEffectiveStrictFallsBackToConfig(t *testing.T) {
	prior := appConfig
	defer func() { appConfig = prior }()

	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().BoolVar(&strictFlag, "strict", false, "")

	appConfig = config.Config{Strict: true}
	strictFlag = false
	if !effectiveStrict(cmd) {
		t.Error("effectiveStrict should fall back to appConfig.Strict when --strict is unset")
	}

	if err := cmd.Flags().Parse([]string{"--strict=false"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if effectiveStrict(cmd) {
		t.Error("effectiveStrict should honor an explicit --strict=false over appConfig")
	}
}
