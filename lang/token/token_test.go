// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindNames(t *testing.T) {
	for k := UpperName; k <= Equals; k++ {
		assert.NotEmpty(t, kindNames[k], "missing name for kind %d", k)
		assert.NotEmpty(t, kindDescriptions[k], "missing description for kind %d", k)
	}
	assert.Equal(t, "Kind(200)", Kind(200).String())
	assert.Equal(t, "Kind(200)", Kind(200).Describe())
}

func TestIsSeparator(t *testing.T) {
	for k := UpperName; k <= Equals; k++ {
		want := k == Semicolon || k == LineBreak
		assert.Equal(t, want, k.IsSeparator(), "kind %s", k)
	}
}

func TestSpan(t *testing.T) {
	source := "count : Int"
	s := Span{Start: 8, Len: 3}
	assert.Equal(t, 11, s.End())
	assert.Equal(t, "Int", s.Text(source))
	assert.Equal(t, "8..11", s.String())
}

func TestTokenPayload(t *testing.T) {
	name := Token{Kind: LowerName, Span: Span{Start: 0, Len: 5}}
	span, ok := name.Name()
	assert.True(t, ok)
	assert.Equal(t, Span{0, 5}, span)
	_, ok = name.Integer()
	assert.False(t, ok)

	lit := Token{Kind: IntegerLiteral, Span: Span{Start: 4, Len: 2}, Value: 42}
	v, ok := lit.Integer()
	assert.True(t, ok)
	assert.Equal(t, int64(42), v)
	_, ok = lit.Name()
	assert.False(t, ok)

	_, ok = Token{Kind: Colon}.Name()
	assert.False(t, ok)
}

func TestTokenString(t *testing.T) {
	cases := []struct {
		tok      Token
		str      string
		describe string
	}{
		{Token{Kind: LowerName, Span: Span{0, 1}}, "LowerName(0..1)", "lower-case name"},
		{Token{Kind: UpperName, Span: Span{4, 3}}, "UpperName(4..7)", "upper-case name"},
		{Token{Kind: IntegerLiteral, Value: 42}, "IntegerLiteral(42)", "integer literal 42"},
		{Token{Kind: LineBreak}, "LineBreak", "line break"},
		{Token{Kind: Colon}, "Colon", "`:`"},
		{Token{Kind: Semicolon}, "Semicolon", "`;`"},
		{Token{Kind: Equals}, "Equals", "`=`"},
	}
	for _, c := range cases {
		assert.Equal(t, c.str, c.tok.String())
		assert.Equal(t, c.describe, c.tok.Describe())
	}
}
