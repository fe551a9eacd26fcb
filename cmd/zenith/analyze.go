package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zenithlang/zenith/analysis"
)

var (
	analyzeLaw        string
	analyzeTarget     string
	analyzePopulation int
	analyzePretty     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Parse, validate, and simulate a corpus; emit a JSON report",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeLaw, "law", "", "restrict the report to a single law")
	analyzeCmd.Flags().StringVar(&analyzeTarget, "target", "", "restrict the report to a single target")
	analyzeCmd.Flags().IntVar(&analyzePopulation, "population", -1, "restrict the report to a generation-bounded population")
	analyzeCmd.Flags().BoolVar(&analyzePretty, "pretty", false, "pretty-print the JSON report")
	analyzeCmd.Flags().BoolVar(&strictFlag, "strict", false, "treat validation warnings as errors")
	rootCmd.AddCommand(analyzeCmd)
}

type analyzeReport struct {
	Diagnostics []diagnosticJSON     `json:"diagnostics"`
	Events      []simulatedEventJSON `json:"events"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	strict := effectiveStrict(cmd)
	pretty := analyzePretty || (!cmd.Flags().Changed("pretty") && appConfig.Pretty)
	population := analyzePopulation
	if !cmd.Flags().Changed("population") {
		population = appConfig.DefaultPopulation
	}

	tree, err := loadCorpus(args[0])
	if err != nil {
		return err
	}

	snap, err := analysis.RunAST(tree, analysis.Options{Strict: strict})
	if err != nil {
		return &exitError{kind: exitRuntimeError, err: err}
	}

	var events []simulatedEventJSON
	switch {
	case analyzeLaw != "":
		events = toEventJSON(snap.Law(analyzeLaw))
	case analyzeTarget != "":
		events = toEventJSON(snap.Target(analyzeTarget))
	default:
		events = toEventJSON(snap.Population(population))
	}

	report := analyzeReport{
		Diagnostics: toDiagnosticJSON(snap.Diagnostics),
		Events:      events,
	}

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(report); err != nil {
		return &exitError{kind: exitIOError, err: err}
	}

	if snap.Diagnostics.HasErrors(strict) {
		return &exitError{kind: exitValidationError, err: fmt.Errorf("analysis completed with validation errors")}
	}
	return nil
}
