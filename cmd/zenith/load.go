package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/zenithlang/zenith/ast"
	"github.com/zenithlang/zenith/eventlog"
	"github.com/zenithlang/zenith/ical"
	"github.com/zenithlang/zenith/jsonast"
	"github.com/zenithlang/zenith/parser"
)

var validSourceExtensions = map[string]bool{
	".zenith": true,
	".zth":    true,
	".znth":   true,
}

// loadCorpus reads a file and parses it into an AST, dispatching on
// extension: .ics goes through the iCalendar importer, .csv/.jsonl through
// the event-log importer, .json through the AST JSON bridge, and
// .zenith/.zth/.znth through the lexer/parser.
func loadCorpus(path string) (*ast.Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &exitError{kind: exitIOError, err: err}
	}

	switch {
	case strings.HasSuffix(path, ".ics"):
		tree, err := ical.Import(data)
		if err != nil {
			return nil, &exitError{kind: exitParseError, err: err}
		}
		return tree, nil
	case strings.HasSuffix(path, ".csv"):
		log, err := eventlog.ParseCSVReader(bytes.NewReader(data), eventlog.DefaultCSVConfig())
		if err != nil {
			return nil, &exitError{kind: exitParseError, err: err}
		}
		return eventlog.ToCorpus(log), nil
	case strings.HasSuffix(path, ".jsonl"):
		log, err := eventlog.ParseJSONLReader(bytes.NewReader(data), eventlog.DefaultJSONLConfig())
		if err != nil {
			return nil, &exitError{kind: exitParseError, err: err}
		}
		return eventlog.ToCorpus(log), nil
	case strings.HasSuffix(path, ".json"):
		tree, err := jsonast.Decode(data)
		if err != nil {
			return nil, &exitError{kind: exitParseError, err: err}
		}
		return tree, nil
	default:
		ext := extensionOf(path)
		if !validSourceExtensions[ext] {
			return nil, &exitError{kind: exitIOError, err: fmt.Errorf("unrecognized file extension %q", ext)}
		}
		p, err := parser.NewWithLimits(string(data), parserLimits())
		if err != nil {
			return nil, &exitError{kind: exitParseError, err: err}
		}
		tree, err := p.ParseCorpus()
		if err != nil {
			return nil, &exitError{kind: exitParseError, err: err}
		}
		return tree, nil
	}
}

func extensionOf(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return ""
	}
	return path[idx:]
}
