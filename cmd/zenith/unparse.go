package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zenithlang/zenith/jsonast"
	"github.com/zenithlang/zenith/unparse"
)

var unparseCmd = &cobra.Command{
	Use:   "unparse <ast.json>",
	Short: "Render a JSON AST back to canonical Zenith source text",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnparse,
}

func init() {
	rootCmd.AddCommand(unparseCmd)
}

func runUnparse(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return &exitError{kind: exitIOError, err: err}
	}
	tree, err := jsonast.Decode(data)
	if err != nil {
		return &exitError{kind: exitParseError, err: err}
	}
	fmt.Print(unparse.Corpus(tree))
	return nil
}
