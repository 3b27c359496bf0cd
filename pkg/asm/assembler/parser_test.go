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

	"github.com/consensys/go-picoasm/pkg/util/collection/array"
	"github.com/consensys/go-picoasm/pkg/util/source"
	"github.com/consensys/go-picoasm/pkg/util/source/lex"
)

// parseString lexes and parses a given string, mirroring the filtering the
// full pipeline applies before parsing.
func parseString(input string) ([]Item, *LabelTable, *ParseError) {
	srcfile := source.NewSourceFile("test.s", []byte(input))
	tokens := array.RemoveMatching(Lex(srcfile), func(t lex.Token) bool {
		return t.Kind == COMMENT
	})
	//
	return NewParser(srcfile, tokens).Parse()
}

// requireParseError checks that parsing fails with a given error kind.
func requireParseError(t *testing.T, input string, kind ParseErrorKind) *ParseError {
	t.Helper()
	//
	_, _, err := parseString(input)
	require.NotNil(t, err)
	assert.Equal(t, kind, err.Kind)
	//
	return err
}

func TestParseEmpty(t *testing.T) {
	items, labels, err := parseString("")
	require.Nil(t, err)
	assert.Equal(t, 0, len(items))
	assert.Equal(t, uint(0), labels.Len())
}

func TestParseBlankLines(t *testing.T) {
	items, _, err := parseString("\n\n\n")
	require.Nil(t, err)
	assert.Equal(t, 0, len(items))
}

func TestParseNop(t *testing.T) {
	items, _, err := parseString("nop")
	require.Nil(t, err)
	require.Equal(t, 1, len(items))
	//
	insn, ok := items[0].(*NoOperand)
	require.True(t, ok)
	assert.Equal(t, NOP, insn.Opcode())
}

func TestParseRegisterPair(t *testing.T) {
	items, _, err := parseString("add r1, r2")
	require.Nil(t, err)
	require.Equal(t, 1, len(items))
	//
	insn, ok := items[0].(*DoubleOperand)
	require.True(t, ok)
	assert.Equal(t, ADD, insn.Opcode())
	assert.Equal(t, Register(1), insn.first.(*RegisterOperand).register)
	assert.Equal(t, Register(2), insn.second.(*RegisterOperand).register)
}

func TestParseImmediate(t *testing.T) {
	items, _, err := parseString("ldi r3, 100")
	require.Nil(t, err)
	require.Equal(t, 1, len(items))
	//
	insn := items[0].(*DoubleOperand)
	assert.Equal(t, LDI, insn.Opcode())
	assert.Equal(t, int8(100), insn.second.(*IntegerOperand).value)
}

func TestParseCaseInsensitive(t *testing.T) {
	items, _, err := parseString("ADD R1, R2")
	require.Nil(t, err)
	require.Equal(t, 1, len(items))
	assert.Equal(t, ADD, items[0].(*DoubleOperand).Opcode())
}

func TestParseLabelAndInstruction(t *testing.T) {
	items, labels, err := parseString("loop: nop")
	require.Nil(t, err)
	require.Equal(t, 2, len(items))
	//
	_, ok := items[0].(*LabelItem)
	assert.True(t, ok)
	assert.Equal(t, uint(1), labels.Len())
}

func TestParseBareLabelLine(t *testing.T) {
	// A label may sit on its own line, binding to the next instruction.
	items, _, err := parseString("loop:\nnop")
	require.Nil(t, err)
	require.Equal(t, 2, len(items))
}

func TestParseLabelOperand(t *testing.T) {
	items, labels, err := parseString("loop: nop\nj loop")
	require.Nil(t, err)
	require.Equal(t, 3, len(items))
	//
	insn := items[2].(*SingleOperand)
	operand, ok := insn.operand.(*LabelOperand)
	require.True(t, ok)
	assert.True(t, labels.IsDefined(operand.label))
}

func TestParseForwardReference(t *testing.T) {
	items, labels, err := parseString("j end\nend: nop")
	require.Nil(t, err)
	require.Equal(t, 3, len(items))
	//
	operand := items[0].(*SingleOperand).operand.(*LabelOperand)
	assert.True(t, labels.IsDefined(operand.label))
}

func TestParseNamedSource(t *testing.T) {
	items, _, err := parseString("in r0, sw")
	require.Nil(t, err)
	//
	insn := items[0].(*DoubleOperand)
	operand, ok := insn.second.(*PortOperand)
	require.True(t, ok)
	assert.Equal(t, uint8(0), operand.port)
}

func TestParseNamedSink(t *testing.T) {
	items, _, err := parseString("out r1, seg_left")
	require.Nil(t, err)
	//
	operand := items[0].(*DoubleOperand).second.(*PortOperand)
	assert.Equal(t, uint8(1), operand.port)
}

func TestParseCommentsIgnored(t *testing.T) {
	items, _, err := parseString("; leading comment\nnop ; trailing comment\n")
	require.Nil(t, err)
	assert.Equal(t, 1, len(items))
}

func TestParseErrInvalidInstruction(t *testing.T) {
	requireParseError(t, "foo r0", ErrInvalidInstruction)
}

func TestParseErrExpectedInstruction(t *testing.T) {
	requireParseError(t, "42", ErrExpectedInstruction)
}

func TestParseErrExpectedNoOperands(t *testing.T) {
	requireParseError(t, "nop r0", ErrExpectedNoOperands)
}

func TestParseErrUnexpectedToken(t *testing.T) {
	// Trailing garbage after a complete instruction.
	err := requireParseError(t, "add r1, r2 r3", ErrUnexpectedToken)
	assert.Equal(t, NEWLINE, err.Required)
}

func TestParseErrMissingComma(t *testing.T) {
	err := requireParseError(t, "add r1 r2", ErrUnexpectedToken)
	assert.Equal(t, COMMA, err.Required)
}

func TestParseErrMissingToken(t *testing.T) {
	// Input ends where a comma was required.
	err := requireParseError(t, "add r1", ErrMissingToken)
	assert.Equal(t, COMMA, err.Required)
}

func TestParseErrExpectedOperandFoundEOF(t *testing.T) {
	requireParseError(t, "add r1,", ErrExpectedOperandFoundEOF)
}

func TestParseErrExpectedRegister(t *testing.T) {
	// r16 looks like a register but is not one.
	requireParseError(t, "add r16, r0", ErrExpectedRegister)
}

func TestParseErrExpectedOperand(t *testing.T) {
	// ldi only accepts an immediate in its second position.
	err := requireParseError(t, "ldi r0, foo", ErrExpectedOperand)
	assert.Equal(t, "integer", err.Expected)
}

func TestParseErrExpectedOperandKinds(t *testing.T) {
	// A comma fits none of the accepted kinds.
	err := requireParseError(t, "jz r0, ,", ErrExpectedOperand)
	assert.Equal(t, "integer or label", err.Expected)
}

func TestParseErrUnknownPort(t *testing.T) {
	// An identifier in a port position must name a known source.
	requireParseError(t, "in r0, seg_left", ErrExpectedOperand)
}

func TestParseErrIntegerOutOfRange(t *testing.T) {
	requireParseError(t, "ldi r0, 200", ErrIntegerOutOfRange)
}

func TestParseErrDuplicateLabel(t *testing.T) {
	requireParseError(t, "a: nop\na: nop", ErrDuplicateLabel)
}

func TestParseErrSecondLabelOnSameLine(t *testing.T) {
	// A second label on the same line sits in instruction position, so it is
	// rejected as a non-instruction rather than as a pending-label violation.
	requireParseError(t, "a: b: nop", ErrExpectedInstruction)
}

func TestParseErrConsecutiveLabelLines(t *testing.T) {
	// The pending label persists across the line break.
	requireParseError(t, "a:\nb: nop", ErrExpectedInstructionBeforeLabel)
}

func TestParsePendingLabelSurvivesBlankLine(t *testing.T) {
	// Blank lines do not discharge a pending label either.
	requireParseError(t, "a:\n\nb: nop", ErrExpectedInstructionBeforeLabel)
}

func TestParseLabelAfterInstruction(t *testing.T) {
	// Once an instruction lands, a fresh label is fine again.
	items, _, err := parseString("a: nop\nb: nop")
	require.Nil(t, err)
	assert.Equal(t, 4, len(items))
}
