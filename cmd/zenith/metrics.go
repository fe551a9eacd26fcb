package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zenithlang/zenith/analysis"
	"github.com/zenithlang/zenith/metrics"
	"github.com/zenithlang/zenith/pattern"
)

var (
	metricsType       string
	metricsLaw        string
	metricsPopulation int
)

var metricsCmd = &cobra.Command{
	Use:   "metrics <file>",
	Short: "Parse, simulate, and compute metrics over a corpus",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetrics,
}

func init() {
	metricsCmd.Flags().StringVar(&metricsType, "type", "all", "metric group to report: all|temporal|rhythm|density|frequency|complexity|entropy|patterns")
	metricsCmd.Flags().StringVar(&metricsLaw, "law", "", "restrict metrics to a single law")
	metricsCmd.Flags().IntVar(&metricsPopulation, "population", -1, "restrict metrics to a generation-bounded population")
	metricsCmd.Flags().BoolVar(&strictFlag, "strict", false, "treat validation warnings as errors")
	rootCmd.AddCommand(metricsCmd)
}

type metricsReport struct {
	Temporal   *metrics.TemporalStatistics `json:"temporal_statistics,omitempty"`
	Rhythm     *metrics.RhythmMetrics      `json:"rhythm,omitempty"`
	Density    *float64                    `json:"temporal_density,omitempty"`
	Frequency  map[string]int              `json:"event_frequency,omitempty"`
	Complexity *metrics.Complexity         `json:"sequence_complexity,omitempty"`
	Entropy    *float64                    `json:"entropy,omitempty"`
	Patterns   []pattern.Motif             `json:"patterns_detected,omitempty"`
}

func runMetrics(cmd *cobra.Command, args []string) error {
	strict := effectiveStrict(cmd)
	population := metricsPopulation
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
	if snap.Diagnostics.HasErrors(strict) {
		return &exitError{kind: exitValidationError, err: fmt.Errorf("corpus failed validation")}
	}

	evs := snap.Population(population)
	if metricsLaw != "" {
		evs = snap.Law(metricsLaw)
	}

	report := metricsReport{}
	include := func(name string) bool { return metricsType == "all" || metricsType == name }

	if include("temporal") {
		t := metrics.TemporalStats(evs)
		report.Temporal = &t
	}
	if include("rhythm") {
		r := metrics.Rhythm(evs)
		report.Rhythm = &r
	}
	if include("density") {
		d := metrics.Density(evs)
		report.Density = &d
	}
	if include("frequency") {
		report.Frequency = metrics.Frequency(evs)
	}
	if include("complexity") {
		c := metrics.SequenceComplexity(evs)
		report.Complexity = &c
	}
	if include("entropy") {
		e := metrics.Entropy(evs)
		report.Entropy = &e
	}
	if include("patterns") {
		report.Patterns = pattern.Mine(boundedEventNames(evs), pattern.DefaultOptions())
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return &exitError{kind: exitIOError, err: err}
	}
	return nil
}
