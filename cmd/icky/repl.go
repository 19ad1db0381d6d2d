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
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/icky"
	"github.com/probechain/icky/lang/diag"
	"github.com/probechain/icky/lang/parser"
)

const (
	historyFile = ".icky_history"
	promptMain  = "icky> "
	promptCont  = "  ... "
)

var replCommand = cli.Command{
	Action:   replCmd,
	Name:     "repl",
	Usage:    "Read declarations interactively",
	Flags:    outputFlags,
	Category: "FRONT END COMMANDS",
	Description: `
The repl command reads declarations line by line and prints the syntax tree of
each one. A declaration that is not yet complete is continued on the next line.
Type :quit or press Ctrl-D to leave.`,
}

// prompter is the part of a line editor the REPL needs.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

type repl struct {
	in     prompter
	out    io.Writer
	errOut io.Writer
	output outputConfig
}

func replCmd(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	var histPath string
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		} else {
			log.Warn("Failed to save REPL history", "path", histPath, "err", err)
		}
	}()

	color.New(color.FgCyan).Fprintf(ctx.App.Writer, "icky %s, type :quit to exit\n", version)
	r := &repl{in: ln, out: ctx.App.Writer, errOut: errWriter(ctx), output: cfg.Output}
	return r.run()
}

// run reads and prints declarations until the input ends or :quit is entered.
func (r *repl) run() error {
	for {
		src, err := r.read()
		switch {
		case err == io.EOF:
			fmt.Fprintln(r.out)
			return nil
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case err != nil:
			return err
		}

		input := strings.TrimSpace(src)
		if input == "" {
			continue
		}
		if strings.HasPrefix(input, ":") {
			switch input {
			case ":quit", ":q":
				return nil
			default:
				fmt.Fprintln(r.out, "unknown command, type :quit to exit")
			}
			continue
		}

		r.in.AppendHistory(historyEntry(src))
		tree, err := icky.Parse(src)
		if err != nil {
			diag.Fprint(r.errOut, err)
			continue
		}
		if err := printTree(r.out, tree, src, r.output); err != nil {
			return err
		}
	}
}

// read collects lines until they form a complete input. Lines are joined
// with newlines, so a signature line followed by its definition line parses
// as one declaration.
func (r *repl) read() (string, error) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := r.in.Prompt(prompt)
		if err != nil {
			return "", err
		}
		// A command line drops any pending input. No continuation line can
		// validly start with a colon, since it always follows a line break.
		if strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, nil
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == "" {
			return src, nil
		}
		toks, err := icky.Tokens(src)
		if err != nil {
			return src, nil
		}
		if _, err := parser.Parse(toks); parser.IsIncomplete(err) {
			continue
		}
		return src, nil
	}
}

// historyEntry flattens a multi-line input into one history line that still
// parses, using semicolons in place of line breaks.
func historyEntry(src string) string {
	var parts []string
	for _, line := range strings.Split(src, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "; ")
}
