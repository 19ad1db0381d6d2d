// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package syntax

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/probechain/icky"
	"github.com/probechain/icky/lang/lexer"
	"github.com/probechain/icky/lang/parser"
	"github.com/probechain/icky/lang/token"
)

// Fuzz is the fuzzing entry point. It lexes and parses arbitrary input and
// panics when a token span falls outside the source, when two LineBreak
// tokens are adjacent, or when a parsed tree does not survive a print and
// re-parse round trip.
func Fuzz(data []byte) int {
	source := string(data)
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return 0
	}
	for i, tok := range toks {
		if tok.Span.Start < 0 || tok.Span.End() > len(source) {
			panic(fmt.Sprintf("token %d (%v) spans outside of %d byte source", i, tok, len(source)))
		}
		if i > 0 && tok.Kind == token.LineBreak && toks[i-1].Kind == token.LineBreak {
			panic(fmt.Sprintf("adjacent line breaks at tokens %d and %d", i-1, i))
		}
	}
	tree, err := parser.Parse(toks)
	if err != nil {
		return 0
	}
	printed := tree.Format(source)
	again, err := icky.Parse(printed)
	if err != nil {
		panic(fmt.Sprintf("printed tree does not parse: %v\n%s", err, printed))
	}
	if printed != again.Format(printed) {
		panic(fmt.Sprintf("print is not stable:\n%s", cmp.Diff(printed, again.Format(printed))))
	}
	return 1
}
