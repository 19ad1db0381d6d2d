// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package icky is the front end of the icky language: it turns source text
// into a syntax tree ready for semantic analysis.
//
// Lexing and parsing are two separate phases. The whole token sequence is
// collected before the parser starts, and the first lexical error stops the
// pipeline before any parsing happens.
package icky

import (
	"github.com/probechain/icky/lang/ast"
	"github.com/probechain/icky/lang/lexer"
	"github.com/probechain/icky/lang/parser"
	"github.com/probechain/icky/lang/token"
)

// Tokens lexes source into its complete token sequence.
func Tokens(source string) ([]token.Token, error) {
	return lexer.Tokenize(source)
}

// Parse lexes and parses source. Spans in the returned tree refer to source,
// which must be kept around for as long as names are resolved from the tree.
func Parse(source string) (*ast.SyntaxTree, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return parser.Parse(toks)
}
