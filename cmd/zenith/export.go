package main

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/zenithlang/zenith/analysis"
	"github.com/zenithlang/zenith/eventlog"
	"github.com/zenithlang/zenith/jsonast"
	"github.com/zenithlang/zenith/metrics"
	"github.com/zenithlang/zenith/pattern"
)

var (
	exportFormats string
	exportDir     string
	exportZip     bool
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Bundle a corpus's JSON AST and derived artifacts under a tagged run directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormats, "formats", "json,report,metrics", "comma-separated artifacts to emit: json,report,metrics,jsonl,csv")
	exportCmd.Flags().StringVar(&exportDir, "out", ".", "directory to write the run bundle under")
	exportCmd.Flags().BoolVar(&exportZip, "zip", false, "archive the run bundle into a single .zip file")
	exportCmd.Flags().BoolVar(&strictFlag, "strict", false, "treat validation warnings as errors")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	strict := effectiveStrict(cmd)

	tree, err := loadCorpus(args[0])
	if err != nil {
		return err
	}

	snap, err := analysis.RunAST(tree, analysis.Options{Strict: strict})
	if err != nil {
		return &exitError{kind: exitRuntimeError, err: err}
	}

	runID := uuid.New().String()
	bundleDir := filepath.Join(exportDir, "zenith-export-"+runID)
	if err := os.MkdirAll(bundleDir, 0o755); err != nil {
		return &exitError{kind: exitIOError, err: err}
	}

	formats := strings.Split(exportFormats, ",")
	want := map[string]bool{}
	for _, f := range formats {
		want[strings.TrimSpace(f)] = true
	}

	if want["json"] {
		payload, err := jsonast.Encode(tree)
		if err != nil {
			return &exitError{kind: exitRuntimeError, err: err}
		}
		if err := os.WriteFile(filepath.Join(bundleDir, "ast.json"), payload, 0o644); err != nil {
			return &exitError{kind: exitIOError, err: err}
		}
	}

	if want["report"] {
		report := analyzeReport{
			Diagnostics: toDiagnosticJSON(snap.Diagnostics),
			Events:      toEventJSON(snap.Population(-1)),
		}
		if err := writeJSON(filepath.Join(bundleDir, "report.json"), report); err != nil {
			return err
		}
	}

	if want["metrics"] {
		evs := snap.Population(-1)
		report := metricsReport{}
		t := metrics.TemporalStats(evs)
		r := metrics.Rhythm(evs)
		d := metrics.Density(evs)
		c := metrics.SequenceComplexity(evs)
		e := metrics.Entropy(evs)
		report.Temporal = &t
		report.Rhythm = &r
		report.Density = &d
		report.Complexity = &c
		report.Entropy = &e
		report.Frequency = metrics.Frequency(evs)
		report.Patterns = pattern.Mine(boundedEventNames(evs), pattern.DefaultOptions())
		if err := writeJSON(filepath.Join(bundleDir, "metrics.json"), report); err != nil {
			return err
		}
	}

	if want["jsonl"] || want["csv"] {
		evs := snap.Population(-1)
		simulated := make([]eventlog.SimulatedEvent, len(evs))
		for i, ev := range evs {
			simulated[i] = eventlog.SimulatedEvent{
				CaseID:    ev.LawName,
				Activity:  ev.EventName,
				Resource:  ev.Description,
				Timestamp: ev.Start.Unix(),
			}
		}
		log := eventlog.FromSimulatedEvents(simulated)

		if want["jsonl"] {
			if err := eventlog.WriteJSONLFile(filepath.Join(bundleDir, "events.jsonl"), log); err != nil {
				return &exitError{kind: exitIOError, err: err}
			}
		}
		if want["csv"] {
			if err := eventlog.WriteCSVFile(filepath.Join(bundleDir, "events.csv"), log); err != nil {
				return &exitError{kind: exitIOError, err: err}
			}
		}
	}

	if exportZip {
		zipPath := bundleDir + ".zip"
		if err := zipDir(bundleDir, zipPath); err != nil {
			return &exitError{kind: exitIOError, err: err}
		}
		if err := os.RemoveAll(bundleDir); err != nil {
			return &exitError{kind: exitIOError, err: err}
		}
		fmt.Println(zipPath)
		return nil
	}

	fmt.Println(bundleDir)
	return nil
}

// zipDir archives every regular file directly under dir into a flat zip
// at zipPath, named by its base filename.
func zipDir(dir, zipPath string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	f, err := os.Create(zipPath)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := addFileToZip(zw, filepath.Join(dir, entry.Name()), entry.Name()); err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}

func addFileToZip(zw *zip.Writer, path, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return &exitError{kind: exitIOError, err: err}
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return &exitError{kind: exitIOError, err: err}
	}
	return nil
}
