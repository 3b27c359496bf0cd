// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/go-picoasm/pkg/util/source"
)

// lexString lexes a given string, returning just the token kinds.
func lexString(input string) []uint {
	srcfile := source.NewSourceFile("test.s", []byte(input))
	tokens := Lex(srcfile)
	//
	kinds := make([]uint, len(tokens))
	for i, t := range tokens {
		kinds[i] = t.Kind
	}
	//
	return kinds
}

func TestLexEmpty(t *testing.T) {
	assert.Equal(t, []uint{END_OF}, lexString(""))
}

func TestLexWhitespaceOnly(t *testing.T) {
	assert.Equal(t, []uint{END_OF}, lexString("  \t \r "))
}

func TestLexInstruction(t *testing.T) {
	assert.Equal(t,
		[]uint{IDENTIFIER, IDENTIFIER, COMMA, IDENTIFIER, END_OF},
		lexString("add r1, r2"))
}

func TestLexLine(t *testing.T) {
	assert.Equal(t,
		[]uint{LABEL, IDENTIFIER, IDENTIFIER, COMMA, INTEGER, COMMENT, NEWLINE, END_OF},
		lexString("loop: ldi r0, 10 ; load counter\n"))
}

func TestLexBlankLines(t *testing.T) {
	assert.Equal(t,
		[]uint{NEWLINE, NEWLINE, IDENTIFIER, NEWLINE, END_OF},
		lexString("\n\nnop\n"))
}

func TestLexCommentToEof(t *testing.T) {
	// A comment on the last line has no terminating newline.
	assert.Equal(t, []uint{COMMENT, END_OF}, lexString("; trailing"))
}

func TestLexLabelIncludesColon(t *testing.T) {
	srcfile := source.NewSourceFile("test.s", []byte("loop:"))
	tokens := Lex(srcfile)
	//
	require.Equal(t, 2, len(tokens))
	assert.Equal(t, LABEL, tokens[0].Kind)
	assert.Equal(t, "loop:", srcfile.Text(tokens[0].Span))
}

func TestLexIdentifierWithUnderscore(t *testing.T) {
	assert.Equal(t,
		[]uint{IDENTIFIER, IDENTIFIER, COMMA, IDENTIFIER, END_OF},
		lexString("out r0, seg_left"))
}

func TestLexUnicodeIdentifier(t *testing.T) {
	// Identifiers accept any unicode letter, not just ASCII.
	srcfile := source.NewSourceFile("test.s", []byte("étiquette: nop"))
	tokens := Lex(srcfile)
	//
	require.Equal(t, 3, len(tokens))
	assert.Equal(t, LABEL, tokens[0].Kind)
	assert.Equal(t, "étiquette:", srcfile.Text(tokens[0].Span))
	assert.Equal(t, IDENTIFIER, tokens[1].Kind)
}

func TestLexInvalidToken(t *testing.T) {
	assert.Equal(t, []uint{INVALID_TOKEN, END_OF}, lexString("@"))
}

func TestLexMinusIsInvalid(t *testing.T) {
	// A leading minus sign starts no token, so negative literals do not lex.
	assert.Equal(t,
		[]uint{INVALID_TOKEN, INTEGER, END_OF},
		lexString("-1"))
}

func TestLexInvalidInteger(t *testing.T) {
	// Digits running into letters form a single malformed integer token.
	srcfile := source.NewSourceFile("test.s", []byte("12ab"))
	tokens := Lex(srcfile)
	//
	require.Equal(t, 2, len(tokens))
	assert.Equal(t, INVALID_INTEGER, tokens[0].Kind)
	assert.Equal(t, "12ab", srcfile.Text(tokens[0].Span))
}

func TestLexSpans(t *testing.T) {
	srcfile := source.NewSourceFile("test.s", []byte("add r1, r2"))
	tokens := Lex(srcfile)
	//
	require.Equal(t, 5, len(tokens))
	assert.Equal(t, "add", srcfile.Text(tokens[0].Span))
	assert.Equal(t, "r1", srcfile.Text(tokens[1].Span))
	assert.Equal(t, ",", srcfile.Text(tokens[2].Span))
	assert.Equal(t, "r2", srcfile.Text(tokens[3].Span))
}
