// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package token defines the lexical vocabulary shared by the icky lexer and
// parser.
//
// Design principles:
//   - A token is a small value: a Kind tag, the Span it was scanned from and,
//     for integer literals, the decoded value.
//   - Names are never copied out of the source. A Span is resolved against the
//     original text only when the name is actually needed.
//   - New token shapes are added as new Kind tags, never as flag fields.
package token

import "fmt"

// Kind is the set of lexical token kinds.
type Kind uint8

const (
	UpperName      Kind = iota // Int, Bool (first character upper case)
	LowerName                  // a, count2 (first character lower case)
	IntegerLiteral             // 0, 1000
	LineBreak                  // whitespace run containing at least one '\n'
	Colon                      // :
	Semicolon                  // ;
	Equals                     // =
)

var kindNames = [...]string{
	UpperName:      "UpperName",
	LowerName:      "LowerName",
	IntegerLiteral: "IntegerLiteral",
	LineBreak:      "LineBreak",
	Colon:          "Colon",
	Semicolon:      "Semicolon",
	Equals:         "Equals",
}

var kindDescriptions = [...]string{
	UpperName:      "upper-case name",
	LowerName:      "lower-case name",
	IntegerLiteral: "integer literal",
	LineBreak:      "line break",
	Colon:          "`:`",
	Semicolon:      "`;`",
	Equals:         "`=`",
}

// String returns the debug name of a token kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Describe returns the human-readable form of a kind used in diagnostics.
func (k Kind) Describe() string {
	if int(k) < len(kindDescriptions) {
		return kindDescriptions[k]
	}
	return k.String()
}

// IsSeparator reports whether tokens of this kind terminate a statement.
func (k Kind) IsSeparator() bool {
	return k == Semicolon || k == LineBreak
}

// Span is a half-open byte range [Start, Start+Len) into the source text.
// The lexer never produces an empty span.
type Span struct {
	Start int
	Len   int
}

// End returns the offset one past the last byte of the span.
func (s Span) End() int { return s.Start + s.Len }

// Text resolves the span against the source it was produced from.
func (s Span) Text(source string) string {
	return source[s.Start:s.End()]
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End())
}

// Token is a single lexical unit produced by the lexer.
type Token struct {
	Kind  Kind
	Span  Span
	Value int64 // decoded value, IntegerLiteral only
}

// Name returns the span of an UpperName or LowerName token.
func (t Token) Name() (Span, bool) {
	switch t.Kind {
	case UpperName, LowerName:
		return t.Span, true
	}
	return Span{}, false
}

// Integer returns the decoded value of an IntegerLiteral token.
func (t Token) Integer() (int64, bool) {
	if t.Kind == IntegerLiteral {
		return t.Value, true
	}
	return 0, false
}

func (t Token) String() string {
	switch t.Kind {
	case UpperName, LowerName:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Span)
	case IntegerLiteral:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Value)
	default:
		return t.Kind.String()
	}
}

// Describe renders the token for diagnostics.
func (t Token) Describe() string {
	if t.Kind == IntegerLiteral {
		return fmt.Sprintf("%s %d", t.Kind.Describe(), t.Value)
	}
	return t.Kind.Describe()
}
