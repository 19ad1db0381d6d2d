// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"unicode"

	"github.com/ethereum/go-ethereum/log"
	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"
)

var (
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "[<file>]",
		Flags:       outputFlags,
		Category:    "MISCELLANEOUS COMMANDS",
		Description: `The dumpconfig command shows configuration values.`,
	}

	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// Output formats accepted by the parse command and the REPL.
const (
	formatTree   = "tree"
	formatSource = "source"
	formatDump   = "dump"
)

type logConfig struct {
	Verbosity int
	Color     bool
}

type outputConfig struct {
	Format string
	Spans  bool
}

type ickyConfig struct {
	Log    logConfig
	Output outputConfig
}

var defaultConfig = ickyConfig{
	Log: logConfig{
		Verbosity: int(log.LvlInfo),
		Color:     true,
	},
	Output: outputConfig{
		Format: formatTree,
	},
}

func (c outputConfig) validate() error {
	switch c.Format {
	case formatTree, formatSource, formatDump:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want %s, %s or %s)", c.Format, formatTree, formatSource, formatDump)
	}
}

func loadConfig(file string, cfg *ickyConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig assembles the effective configuration: defaults, then the
// config file, then flags. Command-level output flags are honoured when ctx
// belongs to a command that declares them.
func makeConfig(ctx *cli.Context) (ickyConfig, error) {
	cfg := defaultConfig

	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}

	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	if ctx.GlobalBool(noColorFlag.Name) {
		cfg.Log.Color = false
	}
	if ctx.IsSet(formatFlag.Name) {
		cfg.Output.Format = ctx.String(formatFlag.Name)
	}
	if ctx.Bool(spansFlag.Name) {
		cfg.Output.Spans = true
	}
	return cfg, cfg.Output.validate()
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	var dump io.Writer = ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	_, err = dump.Write(out)
	return err
}
