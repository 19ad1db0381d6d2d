// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command icky is the command-line front end of the icky language.
//
// Usage:
//
//	icky [global flags] <command> [flags] <args>
//
// Commands:
//
//	tokens <file>      Print the token sequence of a source file
//	parse <file>       Print the syntax tree of a source file
//	check <file>...    Parse every file and report the first error of each
//	repl               Read declarations interactively
//	dumpconfig [file]  Show configuration values
package main

import (
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/icky/lang/diag"
)

const (
	clientIdentifier = "icky"
	version          = "0.1.0"
)

var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: int(log.LvlInfo),
	}
	noColorFlag = cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable colored terminal output",
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = clientIdentifier
	app.Usage = "the icky language front end"
	app.Version = version
	app.Flags = []cli.Flag{
		configFileFlag,
		verbosityFlag,
		noColorFlag,
	}
	app.Commands = []cli.Command{
		tokensCommand,
		parseCommand,
		checkCommand,
		replCommand,
		dumpConfigCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		setupLogging(cfg.Log)
		return nil
	}
	return app
}

// setupLogging installs the root log handler. Until this runs the front-end
// packages log into a discard handler.
func setupLogging(cfg logConfig) {
	var (
		fd       = os.Stderr.Fd()
		usecolor = cfg.Color && (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
		output   = io.Writer(os.Stderr)
	)
	if usecolor {
		output = colorable.NewColorableStderr()
	}
	glogger := log.NewGlogHandler(log.StreamHandler(output, log.TerminalFormat(usecolor)))
	glogger.Verbosity(log.Lvl(cfg.Verbosity))
	log.Root().SetHandler(glogger)

	if !cfg.Color {
		color.NoColor = true
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		diag.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}
