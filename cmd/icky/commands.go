// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/log"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/icky"
	"github.com/probechain/icky/lang/ast"
	"github.com/probechain/icky/lang/diag"
)

var (
	formatFlag = cli.StringFlag{
		Name:  "format",
		Usage: "Output format: tree, source or dump",
		Value: formatTree,
	}
	spansFlag = cli.BoolFlag{
		Name:  "spans",
		Usage: "Annotate identifiers with their byte ranges (tree format)",
	}
	outputFlags = []cli.Flag{
		formatFlag,
		spansFlag,
	}

	tokensCommand = cli.Command{
		Action:    tokensCmd,
		Name:      "tokens",
		Usage:     "Print the token sequence of a source file",
		ArgsUsage: "<file>",
		Category:  "FRONT END COMMANDS",
		Description: `
The tokens command lexes a source file and prints one row per token with its
byte offset, length, kind and source text.`,
	}
	parseCommand = cli.Command{
		Action:    parseCmd,
		Name:      "parse",
		Usage:     "Print the syntax tree of a source file",
		ArgsUsage: "<file>",
		Flags:     outputFlags,
		Category:  "FRONT END COMMANDS",
		Description: `
The parse command lexes and parses a source file. The tree is printed as an
indented outline (tree), as canonical source (source) or as a raw Go value
dump (dump).`,
	}
	checkCommand = cli.Command{
		Action:    checkCmd,
		Name:      "check",
		Usage:     "Parse source files and report errors",
		ArgsUsage: "<file> [<file>...]",
		Category:  "FRONT END COMMANDS",
		Description: `
The check command parses every given file and reports the first error found in
each. It fails if any file does not parse.`,
	}
)

// treeDumper renders trees for the dump output format.
var treeDumper = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func errWriter(ctx *cli.Context) io.Writer {
	if ctx.App.ErrWriter != nil {
		return ctx.App.ErrWriter
	}
	return os.Stderr
}

func tokensCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("usage: icky tokens <file>")
	}
	path := ctx.Args().First()
	source, err := readSource(path)
	if err != nil {
		return err
	}
	toks, err := icky.Tokens(source)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetHeader([]string{"Offset", "Len", "Kind", "Text"})
	table.SetAutoWrapText(false)
	for _, tok := range toks {
		table.Append([]string{
			strconv.Itoa(tok.Span.Start),
			strconv.Itoa(tok.Span.Len),
			tok.Kind.String(),
			strconv.Quote(tok.Span.Text(source)),
		})
	}
	table.Render()
	return nil
}

func parseCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("usage: icky parse [--format tree|source|dump] [--spans] <file>")
	}
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	path := ctx.Args().First()
	source, err := readSource(path)
	if err != nil {
		return err
	}
	tree, err := icky.Parse(source)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return printTree(ctx.App.Writer, tree, source, cfg.Output)
}

// printTree writes tree in the configured output format.
func printTree(w io.Writer, tree *ast.SyntaxTree, source string, out outputConfig) error {
	switch out.Format {
	case formatSource:
		_, err := io.WriteString(w, tree.Format(source))
		return err
	case formatDump:
		treeDumper.Fdump(w, tree)
		return nil
	default:
		return tree.Dump(w, source, out.Spans)
	}
}

// checkFile parses one file and returns its declaration count.
func checkFile(path string) (int, error) {
	source, err := readSource(path)
	if err != nil {
		return 0, err
	}
	tree, err := icky.Parse(source)
	if err != nil {
		return 0, err
	}
	return len(tree.Declarations), nil
}

func checkCmd(ctx *cli.Context) error {
	paths := ctx.Args()
	if len(paths) == 0 {
		return errors.New("usage: icky check <file> [<file>...]")
	}
	// Files are checked concurrently, reports keep argument order.
	var (
		g      errgroup.Group
		counts = make([]int, len(paths))
		errs   = make([]error, len(paths))
	)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			counts[i], errs[i] = checkFile(path)
			return nil
		})
	}
	g.Wait()

	var failed int
	for i, path := range paths {
		if errs[i] != nil {
			failed++
			diag.Fprint(errWriter(ctx), fmt.Errorf("%s: %w", path, errs[i]))
			continue
		}
		log.Debug("Checked source file", "path", path, "declarations", counts[i])
		fmt.Fprintf(ctx.App.Writer, "%s: ok (%d declarations)\n", path, counts[i])
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, len(paths))
	}
	return nil
}
