// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probechain/icky/lang/ast"
	"github.com/probechain/icky/lang/lexer"
	"github.com/probechain/icky/lang/token"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func lex(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	require.NoError(t, err, "lexing %q", src)
	return toks
}

// mustParse asserts that the source parses and returns the tree.
func mustParse(t *testing.T, src string) *ast.SyntaxTree {
	t.Helper()
	tree, err := Parse(lex(t, src))
	require.NoError(t, err, "parsing %q", src)
	require.NotNil(t, tree)
	return tree
}

// parseWithError expects the parse to fail and returns the error.
func parseWithError(t *testing.T, src string) error {
	t.Helper()
	tree, err := Parse(lex(t, src))
	require.Error(t, err, "parsing %q", src)
	assert.Nil(t, tree)
	return err
}

// ignoreSpans compares trees modulo source positions.
var ignoreSpans = cmpopts.IgnoreTypes(token.Span{})

// ---------------------------------------------------------------------------
// Accepted programs
// ---------------------------------------------------------------------------

func TestParseDeclaration(t *testing.T) {
	tree := mustParse(t, "a : Int\na = 0")

	want := &ast.SyntaxTree{Declarations: []ast.Declaration{{
		HeaderName: ast.LowerIdent{Span: token.Span{Start: 0, Len: 1}},
		HeaderType: ast.UpperIdent{Span: token.Span{Start: 4, Len: 3}},
		BodyName:   ast.LowerIdent{Span: token.Span{Start: 8, Len: 1}},
		Body:       &ast.IntegerLiteral{Value: 0},
	}}}
	if diff := cmp.Diff(want, tree); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestSeparatorsAreInterchangeable(t *testing.T) {
	newline := mustParse(t, "a : Int\na = 0")
	semicolon := mustParse(t, "a : Int; a = 0")
	if diff := cmp.Diff(newline, semicolon, ignoreSpans); diff != "" {
		t.Errorf("trees differ (-newline +semicolon):\n%s", diff)
	}
	assert.Equal(t, token.Span{Start: 9, Len: 1}, semicolon.Declarations[0].BodyName.Span)
}

func TestParseEmpty(t *testing.T) {
	for _, src := range []string{"", "   ", "\n\n", ";", " ;\n; "} {
		tree := mustParse(t, src)
		assert.Empty(t, tree.Declarations, "source %q", src)
	}
}

func TestParseMultipleDeclarations(t *testing.T) {
	src := "\n\na : Int\na = 0\n\n;b : Bool; b = 1;\nlimit : Int\n  limit = 1000\n"
	tree := mustParse(t, src)
	require.Len(t, tree.Declarations, 3)

	cases := []struct {
		name, typ string
		value     int64
	}{
		{"a", "Int", 0},
		{"b", "Bool", 1},
		{"limit", "Int", 1000},
	}
	for i, c := range cases {
		d := tree.Declarations[i]
		assert.Equal(t, c.name, d.HeaderName.Name(src))
		assert.Equal(t, c.typ, d.HeaderType.Name(src))
		assert.Equal(t, c.name, d.BodyName.Name(src))
		assert.Equal(t, &ast.IntegerLiteral{Value: c.value}, d.Body)
	}
}

func TestNamesAreNotMatched(t *testing.T) {
	src := "a : Int\nb = 0"
	d := mustParse(t, src).Declarations[0]
	assert.Equal(t, "a", d.HeaderName.Name(src))
	assert.Equal(t, "b", d.BodyName.Name(src))
}

func TestParseIsPure(t *testing.T) {
	toks := lex(t, "a : Int\na = 0\nb : Int; b = 2")
	saved := append([]token.Token(nil), toks...)

	first, err := Parse(toks)
	require.NoError(t, err)
	second, err := Parse(toks)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated parse differs:\n%s", diff)
	}
	assert.Equal(t, saved, toks)
}

func TestFormatRoundTrip(t *testing.T) {
	src := "x:Int;x=1\n\n  y :  Count\n y = 22;"
	tree := mustParse(t, src)

	printed := tree.Format(src)
	assert.Equal(t, "x : Int\nx = 1\ny : Count\ny = 22\n", printed)

	again := mustParse(t, printed)
	if diff := cmp.Diff(tree, again, ignoreSpans); diff != "" {
		t.Errorf("round trip differs:\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// Rejected programs
// ---------------------------------------------------------------------------

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name       string
		src        string
		msg        string
		incomplete bool
	}{
		{
			"header only", "a : Int",
			"parser: unexpected end of input, expected `;` or line break", true,
		},
		{
			"header and separator", "a : Int\n",
			"parser: unexpected end of input, expected lower-case name", true,
		},
		{
			"missing equals", "a : Int\na",
			"parser: unexpected end of input, expected `=`", true,
		},
		{
			"missing body", "a : Int\na =",
			"parser: unexpected end of input, expected expression", true,
		},
		{
			"missing type", "a :",
			"parser: unexpected end of input, expected upper-case name", true,
		},
		{
			"body without header", "a = 0",
			"parser: unexpected `=` at offset 2, expected `:`", false,
		},
		{
			"upper-case value name", "A : Int\na = 0",
			"parser: unexpected upper-case name at offset 0, expected lower-case name", false,
		},
		{
			"lower-case type name", "a : int\na = 0",
			"parser: unexpected lower-case name at offset 4, expected upper-case name", false,
		},
		{
			"two separators inside declaration", "a : Int\n;a = 0",
			"parser: unexpected `;` at offset 8, expected lower-case name", false,
		},
		{
			"missing separator", "a : Int a = 0",
			"parser: unexpected lower-case name at offset 8, expected `;` or line break", false,
		},
		{
			"name as body", "a : Int\na = b",
			"parser: unexpected lower-case name at offset 12, expected expression", false,
		},
		{
			"stray literal", "a : Int\na = 0 1",
			"parser: unexpected integer literal 1 at offset 14, expected lower-case name", false,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := parseWithError(t, c.src)
			assert.EqualError(t, err, c.msg)
			assert.Equal(t, c.incomplete, IsIncomplete(err))
		})
	}
}

func TestIsIncomplete(t *testing.T) {
	_, err := Parse(lex(t, "a : Int"))
	require.Error(t, err)

	assert.True(t, IsIncomplete(err))
	assert.True(t, IsIncomplete(fmt.Errorf("repl.icky: %w", err)))
	assert.False(t, IsIncomplete(nil))
	assert.False(t, IsIncomplete(errors.New("parser: unexpected end of input")))
}
