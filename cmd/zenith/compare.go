package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zenithlang/zenith/analysis"
	"github.com/zenithlang/zenith/cache"
	"github.com/zenithlang/zenith/metrics"
)

func cacheKeyForFile(path string, strict bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &exitError{kind: exitIOError, err: err}
	}
	return cache.Key(string(data), strict), nil
}

var compareLabels string

var compareCmd = &cobra.Command{
	Use:   "compare <files...>",
	Short: "Run metrics across multiple corpora and emit a side-by-side report",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareLabels, "labels", "", "comma-separated labels, one per input file")
	compareCmd.Flags().BoolVar(&strictFlag, "strict", false, "treat validation warnings as errors")
	rootCmd.AddCommand(compareCmd)
}

type compareEntry struct {
	Label      string                     `json:"label"`
	File       string                     `json:"file"`
	Temporal   metrics.TemporalStatistics `json:"temporal_statistics"`
	Complexity metrics.Complexity         `json:"sequence_complexity"`
	Entropy    float64                    `json:"entropy"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	strict := effectiveStrict(cmd)
	labels := strings.Split(compareLabels, ",")
	snapCache := cache.NewSnapshotCache(len(args))

	entries := make([]compareEntry, 0, len(args))
	for i, file := range args {
		label := file
		if i < len(labels) && strings.TrimSpace(labels[i]) != "" {
			label = strings.TrimSpace(labels[i])
		}

		key, err := cacheKeyForFile(file, strict)
		if err != nil {
			return err
		}
		snap, err := snapCache.GetOrCompute(key, func() (*analysis.Snapshot, error) {
			tree, err := loadCorpus(file)
			if err != nil {
				return nil, err
			}
			return analysis.RunAST(tree, analysis.Options{Strict: strict})
		})
		if err != nil {
			var ee *exitError
			if errors.As(err, &ee) {
				return ee
			}
			return &exitError{kind: exitRuntimeError, err: err}
		}
		if snap.Diagnostics.HasErrors(strict) {
			return &exitError{kind: exitValidationError, err: fmt.Errorf("%s failed validation", file)}
		}

		evs := snap.Population(-1)
		entries = append(entries, compareEntry{
			Label:      label,
			File:       file,
			Temporal:   metrics.TemporalStats(evs),
			Complexity: metrics.SequenceComplexity(evs),
			Entropy:    metrics.Entropy(evs),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
