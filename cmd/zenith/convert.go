package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zenithlang/zenith/jsonast"
	"github.com/zenithlang/zenith/unparse"
)

var (
	convertFrom string
	convertTo   string
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert between Zenith source text and the JSON AST encoding",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

var validConvertFromFormats = map[string]bool{
	"zenith": true, "json": true, "ics": true, "csv": true, "jsonl": true,
}

func init() {
	convertCmd.Flags().StringVar(&convertFrom, "from", "zenith", "input format: zenith|json|ics|csv|jsonl")
	convertCmd.Flags().StringVar(&convertTo, "to", "json", "output format: zenith|json")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]

	if !validConvertFromFormats[convertFrom] {
		return &exitError{kind: exitIOError, err: fmt.Errorf("unknown input format %q", convertFrom)}
	}

	tree, err := loadCorpus(in)
	if err != nil {
		return err
	}

	var payload []byte
	switch convertTo {
	case "json":
		payload, err = jsonast.Encode(tree)
	case "zenith":
		payload = []byte(unparse.Corpus(tree))
	default:
		return &exitError{kind: exitIOError, err: fmt.Errorf("unknown output format %q", convertTo)}
	}
	if err != nil {
		return &exitError{kind: exitRuntimeError, err: err}
	}

	if err := os.WriteFile(out, payload, 0o644); err != nil {
		return &exitError{kind: exitIOError, err: err}
	}
	return nil
}
