// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ast defines the syntax tree produced by the icky parser.
//
// Design overview:
//
//   - Identifiers are spans into the source, wrapped in UpperIdent and
//     LowerIdent so a type name can never stand in for a value name.
//   - Expressions implement the Expr marker interface. New expression forms
//     are added as new node types.
//   - The tree is built once per parse and never mutated afterwards. The
//     source text must outlive it, since names are resolved lazily.
package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/probechain/icky/lang/token"
)

// ---------------------------------------------------------------------------
// Identifiers
// ---------------------------------------------------------------------------

// UpperIdent is a name starting with an upper-case letter, e.g. a type name.
type UpperIdent struct {
	Span token.Span
}

// Name resolves the identifier against its source.
func (i UpperIdent) Name(source string) string { return i.Span.Text(source) }

// LowerIdent is a name starting with a lower-case letter, e.g. a value name.
type LowerIdent struct {
	Span token.Span
}

// Name resolves the identifier against its source.
func (i LowerIdent) Name(source string) string { return i.Span.Text(source) }

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Expr is a marker interface for all expression nodes.
type Expr interface {
	// String returns a debug representation of the expression.
	String() string
	exprNode()
}

// IntegerLiteral is a decimal integer literal such as 0 or 1000.
type IntegerLiteral struct {
	Value int64
}

func (e *IntegerLiteral) exprNode()      {}
func (e *IntegerLiteral) String() string { return fmt.Sprintf("IntegerLiteral(%d)", e.Value) }

// formatExpr renders an expression as source text. Literals that wrapped
// to a negative value are printed as their unsigned bit pattern, which lexes
// back to the same value.
func formatExpr(e Expr) string {
	switch e := e.(type) {
	case *IntegerLiteral:
		return strconv.FormatUint(uint64(e.Value), 10)
	default:
		return e.String()
	}
}

// ---------------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------------

// Declaration is a type signature line paired with its definition line:
//
//	a : Int
//	a = 0
//
// HeaderName and BodyName are expected to denote the same identifier; the
// parser does not check this.
type Declaration struct {
	HeaderName LowerIdent
	HeaderType UpperIdent
	BodyName   LowerIdent
	Body       Expr
}

// SyntaxTree is the root of every parse. Declarations are in source order.
type SyntaxTree struct {
	Declarations []Declaration
}

// Format renders the tree back into canonical source text, one signature and
// one definition line per declaration.
func (t *SyntaxTree) Format(source string) string {
	var out strings.Builder
	for _, d := range t.Declarations {
		fmt.Fprintf(&out, "%s : %s\n", d.HeaderName.Name(source), d.HeaderType.Name(source))
		fmt.Fprintf(&out, "%s = %s\n", d.BodyName.Name(source), formatExpr(d.Body))
	}
	return out.String()
}

// Dump writes an indented view of the tree to w. When spans is set, every
// identifier is followed by its byte range.
func (t *SyntaxTree) Dump(w io.Writer, source string, spans bool) error {
	ident := func(name string, s token.Span) string {
		if spans {
			return fmt.Sprintf("%s @%s", name, s)
		}
		return name
	}
	if _, err := fmt.Fprintf(w, "SyntaxTree (%d declarations)\n", len(t.Declarations)); err != nil {
		return err
	}
	for _, d := range t.Declarations {
		_, err := fmt.Fprintf(w,
			"  Declaration\n    header_name: %s\n    header_type: %s\n    body_name:   %s\n    body:        %s\n",
			ident(d.HeaderName.Name(source), d.HeaderName.Span),
			ident(d.HeaderType.Name(source), d.HeaderType.Span),
			ident(d.BodyName.Name(source), d.BodyName.Span),
			d.Body,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
