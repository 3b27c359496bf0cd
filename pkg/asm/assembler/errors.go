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
	"fmt"

	"github.com/consensys/go-picoasm/pkg/util/source"
	"github.com/consensys/go-picoasm/pkg/util/source/lex"
)

// ParseErrorKind enumerates the closed set of errors the parser (and token
// filtering) can report.
type ParseErrorKind uint8

// The possible parse errors.
const (
	// ErrInvalidToken arises from a character which starts no token.
	ErrInvalidToken ParseErrorKind = iota
	// ErrInvalidInteger arises from a malformed integer literal (e.g. "12ab").
	ErrInvalidInteger
	// ErrUnexpectedToken arises when a specific token was required but
	// something else was found.
	ErrUnexpectedToken
	// ErrMissingToken arises when a specific token was required but the file
	// ended.
	ErrMissingToken
	// ErrInvalidInstruction arises from an identifier which is no mnemonic.
	ErrInvalidInstruction
	// ErrExpectedInstructionBeforeLabel arises from two label definitions
	// with no instruction between them.
	ErrExpectedInstructionBeforeLabel
	// ErrDuplicateLabel arises from a second definition of a label.
	ErrDuplicateLabel
	// ErrExpectedInstruction arises when an instruction was required but the
	// token is no identifier.
	ErrExpectedInstruction
	// ErrExpectedNoOperands arises from trailing tokens after a nullary
	// mnemonic.
	ErrExpectedNoOperands
	// ErrExpectedOperandFoundEOF arises when the file ends where an operand
	// was required.
	ErrExpectedOperandFoundEOF
	// ErrExpectedOperand arises from a token which fits none of the accepted
	// operand kinds.
	ErrExpectedOperand
	// ErrExpectedRegister arises from an identifier which is no register
	// name, in a position accepting only registers.
	ErrExpectedRegister
	// ErrIntegerOutOfRange arises from an integer literal outside the signed
	// 8-bit range.
	ErrIntegerOutOfRange
)

// ParseError is a structured syntax or static-semantics error, carrying the
// offending token plus whatever context its kind requires for rendering.
type ParseError struct {
	// Kind of this error.
	Kind ParseErrorKind
	// The offending token.  For ErrMissingToken no token exists, and for
	// ErrExpectedOperandFoundEOF this is the instruction token instead.
	Token lex.Token
	// For ErrUnexpectedToken / ErrMissingToken, the kind of token that was
	// required.
	Required uint
	// For ErrExpectedOperand, a description of the accepted operand kinds.
	Expected string
}

// GeneratorErrorKind enumerates the closed set of errors code generation can
// report.
type GeneratorErrorKind uint8

// The possible generation errors.
const (
	// ErrMaximumInstructions arises when the program exceeds the instruction
	// memory capacity.
	ErrMaximumInstructions GeneratorErrorKind = iota
	// ErrDanglingLabel arises from a label with no following instruction.
	ErrDanglingLabel
	// ErrUndefinedLabel arises from a reference to a label which was never
	// defined.
	ErrUndefinedLabel
	// ErrJumpDestinationRange arises from an integer jump target outside the
	// instruction memory.
	ErrJumpDestinationRange
	// ErrSourceOrSinkRange arises from a port number outside the 4-bit
	// range.
	ErrSourceOrSinkRange
)

// GeneratorError is a structured layout or encoding error.
type GeneratorError struct {
	// Kind of this error.
	Kind GeneratorErrorKind
	// Location the error points at.  ErrMaximumInstructions carries no
	// location.
	Span source.Span
	// Whether Span is meaningful.
	HasSpan bool
}

// ============================================================================
// Diagnostics
// ============================================================================

// Diagnostic is the rendered form of an error: a fixed label string plus an
// optional span into the source it was produced from.  Exactly one diagnostic
// is ever produced per failed assembly.
type Diagnostic struct {
	// Label holds the human-readable message.
	Label string
	// Span locates the diagnostic in the source, when it has a location.
	Span source.Span
	// HasSpan determines whether Span is meaningful.
	HasSpan bool
}

// NewDiagnostic constructs a diagnostic with no source location.
func NewDiagnostic(label string) *Diagnostic {
	return &Diagnostic{label, source.Span{}, false}
}

// NewSpannedDiagnostic constructs a diagnostic pointing at a given span.
func NewSpannedDiagnostic(label string, span source.Span) *Diagnostic {
	return &Diagnostic{label, span, true}
}

// Diagnostic translates this parse error into its diagnostic, extracting the
// offending source text as required by the message.
func (p *ParseError) Diagnostic(srcfile *source.File) *Diagnostic {
	text := srcfile.Text(p.Token.Span)
	//
	switch p.Kind {
	case ErrInvalidToken:
		return NewSpannedDiagnostic(
			fmt.Sprintf("invalid token `%s`", text), p.Token.Span)
	case ErrInvalidInteger:
		return NewSpannedDiagnostic(
			fmt.Sprintf("invalid integer value `%s`", text), p.Token.Span)
	case ErrUnexpectedToken:
		return NewSpannedDiagnostic(
			fmt.Sprintf("expected `%s`, found `%s`", KindName(p.Required), text),
			p.Token.Span)
	case ErrMissingToken:
		return NewDiagnostic(
			fmt.Sprintf("expected `%s`, found the end of file", KindName(p.Required)))
	case ErrInvalidInstruction:
		return NewSpannedDiagnostic(
			fmt.Sprintf("`%s` is not a valid instruction", text), p.Token.Span)
	case ErrExpectedInstructionBeforeLabel:
		return NewSpannedDiagnostic(
			fmt.Sprintf("expected instruction after label, found second label `%s`", text),
			p.Token.Span)
	case ErrDuplicateLabel:
		return NewSpannedDiagnostic(
			fmt.Sprintf("duplicate label `%s`", text), p.Token.Span)
	case ErrExpectedInstruction:
		return NewSpannedDiagnostic(
			fmt.Sprintf("expected an instruction, found `%s`", text), p.Token.Span)
	case ErrExpectedNoOperands:
		return NewSpannedDiagnostic(
			fmt.Sprintf("instruction takes no operands, found `%s`", text), p.Token.Span)
	case ErrExpectedOperandFoundEOF:
		return NewSpannedDiagnostic(
			fmt.Sprintf("expected instruction operand for `%s`, found end of file", text),
			p.Token.Span)
	case ErrExpectedOperand:
		return NewSpannedDiagnostic(
			fmt.Sprintf("expected instruction operand (one of %s), found `%s`",
				p.Expected, text),
			p.Token.Span)
	case ErrExpectedRegister:
		return NewSpannedDiagnostic(
			fmt.Sprintf("expected register for instruction operand, found `%s`", text),
			p.Token.Span)
	case ErrIntegerOutOfRange:
		return NewSpannedDiagnostic(
			"value is out of range for an 8-bit signed integer", p.Token.Span)
	default:
		panic("unknown parse error kind")
	}
}

// Diagnostic translates this generator error into its diagnostic.
func (p *GeneratorError) Diagnostic(srcfile *source.File) *Diagnostic {
	switch p.Kind {
	case ErrMaximumInstructions:
		return NewDiagnostic(fmt.Sprintf(
			"maximum number of instructions reached (%d)", MaxInstructions))
	case ErrDanglingLabel:
		return NewSpannedDiagnostic(fmt.Sprintf(
			"dangling label `%s`", srcfile.Text(p.Span)), p.Span)
	case ErrUndefinedLabel:
		return NewSpannedDiagnostic(fmt.Sprintf(
			"label `%s` is undefined", srcfile.Text(p.Span)), p.Span)
	case ErrJumpDestinationRange:
		return NewSpannedDiagnostic(fmt.Sprintf(
			"jump destination must be in the range 0-%d, found `%s`",
			MaxInstructions-1, srcfile.Text(p.Span)), p.Span)
	case ErrSourceOrSinkRange:
		return NewSpannedDiagnostic(fmt.Sprintf(
			"source or sink must be in the range 0-15, found `%s`",
			srcfile.Text(p.Span)), p.Span)
	default:
		panic("unknown generator error kind")
	}
}
