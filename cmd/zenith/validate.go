package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/zenithlang/zenith/corpus"
)

var strictFlag bool

// effectiveStrict returns the command's --strict value, falling back to the
// loaded configuration's default when the flag was never set by the user.
func effectiveStrict(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("strict") {
		return strictFlag
	}
	return strictFlag || appConfig.Strict
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Parse and validate a corpus without simulating it",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&strictFlag, "strict", false, "treat validation warnings as errors")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	strict := effectiveStrict(cmd)

	tree, err := loadCorpus(args[0])
	if err != nil {
		return err
	}

	c := corpus.Build(tree)
	diags := corpus.Validate(c, corpus.ValidateOptions{Strict: strict})

	for _, d := range diags {
		slog.Info("diagnostic", "kind", d.Kind, "severity", d.Severity, "message", d.Message)
		fmt.Println(d.Error())
	}

	if diags.HasErrors(strict) {
		return &exitError{kind: exitValidationError, err: fmt.Errorf("validation failed with %d finding(s)", len(diags))}
	}
	fmt.Println("ok")
	return nil
}
