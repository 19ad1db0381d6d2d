// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package lexer implements a single-pass, no-backtracking lexer for the icky
// language.
//
// Design principles:
//   - Pull based: Next yields one token per call, Tokenize drains the sequence
//     for the parser.
//   - One rune of lookahead; a token, once started, is either completed or the
//     whole lex fails.
//   - Whitespace is folded: a run containing a newline becomes one LineBreak
//     token (statement separator insertion), any other run is dropped.
//   - Character classes follow Unicode: letters by case, alphanumerics,
//     whitespace. Decimal digits are ASCII only. Bytes that are not valid
//     UTF-8 are reported by value.
package lexer

import (
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/log"

	"github.com/probechain/icky/lang/diag"
	"github.com/probechain/icky/lang/token"
)

// Lexer holds the state for a single tokenization run over source.
type Lexer struct {
	source string

	// pos is the byte offset of the next rune to be consumed.
	pos int

	// err is sticky: once the scan fails every later call reports it again.
	err error
}

// New creates a Lexer positioned at the start of source.
func New(source string) *Lexer {
	return &Lexer{source: source}
}

// peek decodes the rune at pos without consuming it. ok is false at end of
// input.
func (l *Lexer) peek() (r rune, size int, ok bool) {
	if l.pos >= len(l.source) {
		return 0, 0, false
	}
	r, size = utf8.DecodeRuneInString(l.source[l.pos:])
	return r, size, true
}

// advance consumes and returns the rune at pos.
func (l *Lexer) advance() (rune, bool) {
	r, size, ok := l.peek()
	if ok {
		l.pos += size
	}
	return r, ok
}

// advanceIf consumes the next rune when it satisfies pred.
func (l *Lexer) advanceIf(pred func(rune) bool) (rune, bool) {
	r, size, ok := l.peek()
	if !ok || !pred(r) {
		return 0, false
	}
	l.pos += size
	return r, true
}

// spanFrom returns the span covering everything consumed since start.
func (l *Lexer) spanFrom(start int) token.Span {
	return token.Span{Start: start, Len: l.pos - start}
}

func (l *Lexer) makeToken(kind token.Kind, start int) token.Token {
	return token.Token{Kind: kind, Span: l.spanFrom(start)}
}

// Next scans and returns the next token. At end of input it returns io.EOF,
// and keeps doing so on later calls.
func (l *Lexer) Next() (token.Token, error) {
	if l.err != nil {
		return token.Token{}, l.err
	}
	// Whitespace without a newline produces nothing, so we loop until a token
	// is produced or the input runs out.
	for {
		start := l.pos
		c, ok := l.advance()
		if !ok {
			return token.Token{}, io.EOF
		}
		switch {
		case c == ':':
			return l.makeToken(token.Colon, start), nil
		case c == ';':
			return l.makeToken(token.Semicolon, start), nil
		case c == '=':
			return l.makeToken(token.Equals, start), nil
		case startsLowerName(c):
			l.name()
			return l.makeToken(token.LowerName, start), nil
		case startsUpperName(c):
			l.name()
			return l.makeToken(token.UpperName, start), nil
		case unicode.IsSpace(c):
			if l.whitespace(c) {
				return l.makeToken(token.LineBreak, start), nil
			}
		case isDigit(c):
			value := l.integer(c)
			tok := l.makeToken(token.IntegerLiteral, start)
			tok.Value = value
			return tok, nil
		case c == utf8.RuneError && l.pos-start == 1:
			l.err = diag.Errorf("lexer: invalid UTF-8 byte %#x at offset %d", l.source[start], start)
			return token.Token{}, l.err
		default:
			l.err = diag.Errorf("lexer: unexpected character %q at offset %d", c, start)
			return token.Token{}, l.err
		}
	}
}

// Tokenize drains a fresh lexer over source. The first lexical error aborts
// the collection and no tokens are returned.
func Tokenize(source string) ([]token.Token, error) {
	var (
		l    = New(source)
		toks []token.Token
	)
	for {
		tok, err := l.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Debug("Lexing failed", "offset", l.pos, "err", err)
			return nil, err
		}
		toks = append(toks, tok)
	}
	log.Trace("Tokenized source", "bytes", len(source), "tokens", len(toks))
	return toks, nil
}

// ---------------------------------------------------------------------------
// Internal readers. Each assumes the first rune of the token has already been
// consumed by Next.
// ---------------------------------------------------------------------------

// name consumes the alphanumeric tail of an identifier.
func (l *Lexer) name() {
	for {
		if _, ok := l.advanceIf(continuesName); !ok {
			return
		}
	}
}

// whitespace consumes the rest of a whitespace run started by first and
// reports whether the run contained a newline.
func (l *Lexer) whitespace(first rune) bool {
	newline := first == '\n'
	for {
		c, ok := l.advanceIf(unicode.IsSpace)
		if !ok {
			return newline
		}
		newline = newline || c == '\n'
	}
}

// integer folds the decimal digit run started by first. Overflow wraps like
// native int64 arithmetic.
func (l *Lexer) integer(first rune) int64 {
	acc := digitValue(first)
	for {
		c, ok := l.advanceIf(isDigit)
		if !ok {
			return acc
		}
		acc = acc*10 + digitValue(c)
	}
}

// ---------------------------------------------------------------------------
// Character classification helpers
// ---------------------------------------------------------------------------

// Case follows the Unicode Lowercase and Uppercase properties, which add the
// Other_Lowercase and Other_Uppercase code points (ª, ʰ, ⓐ, Ⅰ) to the
// Ll and Lu categories.
func startsLowerName(c rune) bool {
	return unicode.IsLower(c) || unicode.Is(unicode.Other_Lowercase, c)
}

func startsUpperName(c rune) bool {
	return unicode.IsUpper(c) || unicode.Is(unicode.Other_Uppercase, c)
}

// continuesName accepts Alphabetic or Numeric code points.
func continuesName(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsNumber(c) || unicode.Is(unicode.Other_Alphabetic, c)
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func digitValue(c rune) int64 { return int64(c - '0') }
