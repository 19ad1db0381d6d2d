// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package parser implements a recursive-descent parser for the icky language.
//
// Grammar:
//
//	root        = { sep } { declaration { sep } } ;
//	declaration = lower_ident ":" upper_ident sep lower_ident "=" expr ;
//	expr        = integer_lit ;
//	sep         = ";" | LineBreak ;
//
// Design overview:
//
//   - The parser runs over a fully materialized token slice, so it can look
//     at any token without touching the lexer.
//   - Semicolons and line breaks are interchangeable separators. Inside a
//     declaration exactly one is required between the signature and the
//     definition; runs of them around declarations are absorbed.
//   - There is no error recovery. The first token that does not fit the
//     grammar aborts the parse with an expected-versus-found message.
package parser

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/log"

	"github.com/probechain/icky/lang/ast"
	"github.com/probechain/icky/lang/diag"
	"github.com/probechain/icky/lang/token"
)

// incompletePrefix starts every message produced when input ends early.
const incompletePrefix = "parser: unexpected end of input"

// Parser holds the mutable state for a single parse run.
type Parser struct {
	tokens []token.Token
	pos    int // index of the current token
}

// Parse builds a syntax tree from a complete token sequence.
func Parse(tokens []token.Token) (*ast.SyntaxTree, error) {
	p := &Parser{tokens: tokens}
	tree, err := p.parseRoot()
	if err != nil {
		log.Debug("Parsing failed", "position", p.pos, "tokens", len(tokens), "err", err)
		return nil, err
	}
	log.Trace("Parsed syntax tree", "tokens", len(tokens), "declarations", len(tree.Declarations))
	return tree, nil
}

// IsIncomplete reports whether err is a parse failure caused only by the
// token sequence ending before a declaration was complete. More input may
// turn such a failure into a success.
func IsIncomplete(err error) bool {
	var e *diag.Error
	return errors.As(err, &e) && strings.HasPrefix(e.Msg, incompletePrefix)
}

// ---------------------------------------------------------------------------
// Token navigation helpers
// ---------------------------------------------------------------------------

// cur returns the current token; ok is false at end of input.
func (p *Parser) cur() (token.Token, bool) {
	if p.pos >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[p.pos], true
}

// curIs reports whether the current token has the given kind.
func (p *Parser) curIs(kind token.Kind) bool {
	tok, ok := p.cur()
	return ok && tok.Kind == kind
}

func (p *Parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *Parser) advance() token.Token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

// expect consumes the current token if it has the given kind. Otherwise it
// returns an error naming what was expected and what was found.
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if p.curIs(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.unexpected(kind.Describe())
}

// unexpected builds the failure for the current position.
func (p *Parser) unexpected(expected string) error {
	tok, ok := p.cur()
	if !ok {
		return diag.Errorf("%s, expected %s", incompletePrefix, expected)
	}
	return diag.Errorf("parser: unexpected %s at offset %d, expected %s",
		tok.Describe(), tok.Span.Start, expected)
}

// skipSeparators absorbs any run of separator tokens.
func (p *Parser) skipSeparators() {
	for {
		tok, ok := p.cur()
		if !ok || !tok.Kind.IsSeparator() {
			return
		}
		p.advance()
	}
}

// ---------------------------------------------------------------------------
// Rules
// ---------------------------------------------------------------------------

func (p *Parser) parseRoot() (*ast.SyntaxTree, error) {
	tree := &ast.SyntaxTree{}
	p.skipSeparators()
	for !p.atEnd() {
		decl, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		tree.Declarations = append(tree.Declarations, decl)
		p.skipSeparators()
	}
	return tree, nil
}

// parseDeclaration parses a signature line and its definition line.
func (p *Parser) parseDeclaration() (ast.Declaration, error) {
	var (
		decl ast.Declaration
		err  error
	)
	if decl.HeaderName, err = p.parseLowerIdent(); err != nil {
		return decl, err
	}
	if _, err = p.expect(token.Colon); err != nil {
		return decl, err
	}
	if decl.HeaderType, err = p.parseUpperIdent(); err != nil {
		return decl, err
	}
	if err = p.parseSeparator(); err != nil {
		return decl, err
	}
	if decl.BodyName, err = p.parseLowerIdent(); err != nil {
		return decl, err
	}
	if _, err = p.expect(token.Equals); err != nil {
		return decl, err
	}
	if decl.Body, err = p.parseExpr(); err != nil {
		return decl, err
	}
	return decl, nil
}

// parseSeparator consumes exactly one statement separator.
func (p *Parser) parseSeparator() error {
	tok, ok := p.cur()
	if ok && tok.Kind.IsSeparator() {
		p.advance()
		return nil
	}
	return p.unexpected("`;` or line break")
}

func (p *Parser) parseLowerIdent() (ast.LowerIdent, error) {
	tok, err := p.expect(token.LowerName)
	if err != nil {
		return ast.LowerIdent{}, err
	}
	return ast.LowerIdent{Span: tok.Span}, nil
}

func (p *Parser) parseUpperIdent() (ast.UpperIdent, error) {
	tok, err := p.expect(token.UpperName)
	if err != nil {
		return ast.UpperIdent{}, err
	}
	return ast.UpperIdent{Span: tok.Span}, nil
}

// parseExpr parses an expression. Integer literals are the only form today.
func (p *Parser) parseExpr() (ast.Expr, error) {
	tok, ok := p.cur()
	if !ok {
		return nil, p.unexpected("expression")
	}
	switch tok.Kind {
	case token.IntegerLiteral:
		p.advance()
		return &ast.IntegerLiteral{Value: tok.Value}, nil
	default:
		return nil, p.unexpected("expression")
	}
}
