// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package diag holds the single error type produced by the icky front end.
package diag

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Error is a lexical or syntactic failure. It carries a human-readable
// message only; any location is part of the text.
type Error struct {
	Msg string
}

// Errorf formats a message into an Error.
func Errorf(format string, args ...interface{}) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string { return e.Msg }

var errorLabel = color.New(color.FgRed, color.Bold)

// Fprint writes err to w for a human reader. Front-end errors found anywhere
// in the wrap chain are labelled as such; other errors are printed as is.
func Fprint(w io.Writer, err error) {
	if err == nil {
		return
	}
	var de *Error
	if errors.As(err, &de) {
		errorLabel.Fprint(w, "error:")
	} else {
		errorLabel.Fprint(w, "fatal:")
	}
	fmt.Fprintf(w, " %v\n", err)
}
