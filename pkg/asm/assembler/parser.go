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
	"strconv"
	"strings"

	"github.com/consensys/go-picoasm/pkg/util/source"
	"github.com/consensys/go-picoasm/pkg/util/source/lex"
)

// Parser is a parser for pico16 assembly language.  It consumes the filtered
// token sequence exactly once, left to right and line by line, producing the
// ordered item sequence together with the label table.  The parser fails
// fast: the first error aborts the parse with no attempt at recovery.
type Parser struct {
	srcfile *source.File
	// Token sequence being parsed, always terminated by an END_OF token.
	tokens []lex.Token
	// Position within the tokens
	index int
	// Label table being populated.
	labels *LabelTable
	// Set after a label definition, cleared once an instruction follows.  At
	// most one pending label is permitted per instruction.
	justSawLabel bool
}

// NewParser constructs a new parser for a given token sequence.  The sequence
// must already have had comment and error tokens filtered out.
func NewParser(srcfile *source.File, tokens []lex.Token) *Parser {
	return &Parser{srcfile, tokens, 0, NewLabelTable(), false}
}

// Parse the token sequence into a sequence of zero or more items and the
// label table, or the first error encountered.
func (p *Parser) Parse() ([]Item, *LabelTable, *ParseError) {
	var items []Item
	//
	for p.lookahead().Kind != END_OF {
		lineItems, err := p.parseLine()
		if err != nil {
			return nil, nil, err
		}
		//
		items = append(items, lineItems...)
	}
	//
	return items, p.labels, nil
}

// parseLine parses a single line, contributing zero, one or two items (an
// optional label marker, an optional instruction).
func (p *Parser) parseLine() ([]Item, *ParseError) {
	var (
		items     []Item
		lookahead = p.lookahead()
	)
	// Blank line?
	if p.match(NEWLINE) {
		return nil, nil
	}
	//
	if lookahead.Kind == LABEL {
		item, err := p.parseLabel(lookahead)
		if err != nil {
			return nil, err
		}
		//
		items = append(items, item)
		// A bare label line is legal, contributing just the label.
		if kind := p.lookahead().Kind; kind != END_OF && kind != NEWLINE {
			insn, err := p.parseInstruction()
			if err != nil {
				return nil, err
			}
			//
			items = append(items, insn)
		}
	} else {
		insn, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		//
		items = append(items, insn)
	}
	// Line must end here.
	if err := p.consumeLineEnd(); err != nil {
		return nil, err
	}
	//
	return items, nil
}

// parseLabel handles a label definition token, registering it in the label
// table.  Definitions may fill in a previously forward-referenced label, but
// a second definition of the same name is rejected.
func (p *Parser) parseLabel(token lex.Token) (Item, *ParseError) {
	if p.justSawLabel {
		return nil, p.errorAt(ErrExpectedInstructionBeforeLabel, token)
	}
	//
	p.justSawLabel = true
	// Strip the trailing colon to obtain the label name.
	withColon := p.text(token)
	name := withColon[:len(withColon)-1]
	//
	if id, ok := p.labels.Id(name); ok {
		if p.labels.IsDefined(id) {
			return nil, p.errorAt(ErrDuplicateLabel, token)
		}
		// Forward reference now gains its definition.
		p.labels.Define(id, token.Span)
		p.match(LABEL)
		//
		return &LabelItem{id}, nil
	}
	// Fresh label.
	id := p.labels.Reference(name)
	p.labels.Define(id, token.Span)
	p.match(LABEL)
	//
	return &LabelItem{id}, nil
}

// parseInstruction parses exactly one instruction, starting from its
// mnemonic, with operands as dictated by the opcode's rules.
func (p *Parser) parseInstruction() (Instruction, *ParseError) {
	token := p.lookahead()
	// Unreachable by construction: every caller has checked for END_OF.
	if token.Kind == END_OF {
		panic("attempted to parse instruction from empty token stream")
	}
	//
	p.index++
	//
	if token.Kind != IDENTIFIER {
		return nil, p.errorAt(ErrExpectedInstruction, token)
	}
	// Mnemonics are matched case-insensitively.
	opcode, ok := ParseOpcode(strings.ToLower(p.text(token)))
	if !ok {
		return nil, p.errorAt(ErrInvalidInstruction, token)
	}
	//
	insn, err := p.parseOperands(opcode, token)
	if err != nil {
		return nil, err
	}
	// The pending label (if any) is now attached to an instruction.
	p.justSawLabel = false
	//
	return insn, nil
}

// parseOperands parses the operand list of a given opcode against its operand
// rules.
func (p *Parser) parseOperands(opcode Opcode, token lex.Token) (Instruction, *ParseError) {
	rules := RulesOf(opcode)
	//
	switch len(rules) {
	case 0:
		// Nullary mnemonics must end the line immediately.
		if kind := p.lookahead().Kind; kind != END_OF && kind != NEWLINE {
			extra := p.lookahead()
			p.index++
			//
			return nil, p.errorAt(ErrExpectedNoOperands, extra)
		}
		//
		return &NoOperand{opcode}, nil
	case 1:
		operand, err := p.parseOperand(token, rules[0])
		if err != nil {
			return nil, err
		}
		//
		return &SingleOperand{opcode, operand}, nil
	case 2:
		first, err := p.parseOperand(token, rules[0])
		if err != nil {
			return nil, err
		}
		//
		if err := p.expect(COMMA); err != nil {
			return nil, err
		}
		//
		second, err := p.parseOperand(token, rules[1])
		if err != nil {
			return nil, err
		}
		//
		return &DoubleOperand{opcode, first, second}, nil
	default:
		panic("instructions with more than two operands are not supported")
	}
}

// parseOperand parses a single operand against the set of operand kinds
// accepted at this position.  The instruction token is retained purely for
// the end-of-file diagnostic.
func (p *Parser) parseOperand(insn lex.Token, rule OperandRule) (Operand, *ParseError) {
	token := p.lookahead()
	//
	if token.Kind == END_OF {
		return nil, p.errorAt(ErrExpectedOperandFoundEOF, insn)
	}
	//
	p.index++
	// Check the token is lexically acceptable for at least one accepted kind
	// (identifiers stand for registers, ports and labels alike).
	if !acceptsToken(rule, token.Kind) {
		return nil, p.operandError(token, rule)
	}
	// Operand text is matched case-insensitively throughout.
	text := strings.ToLower(p.text(token))
	//
	if token.Kind == IDENTIFIER {
		if rule.Contains(KIND_REGISTER) {
			if register, ok := ParseRegister(text); ok {
				return &RegisterOperand{register, token.Span}, nil
			}
		}
		//
		if rule.Contains(KIND_SOURCE) {
			if port, ok := ParseSource(text); ok {
				return &PortOperand{port, token.Span}, nil
			}
		}
		//
		if rule.Contains(KIND_SINK) {
			if port, ok := ParseSink(text); ok {
				return &PortOperand{port, token.Span}, nil
			}
		}
		//
		if rule.Contains(KIND_LABEL) {
			// Nothing further can be checked until layout time.
			return &LabelOperand{p.labels.Reference(text), token.Span}, nil
		}
		// It should have been a register, it just wasn't a valid one.
		if rule.Contains(KIND_REGISTER) {
			return nil, p.errorAt(ErrExpectedRegister, token)
		}
		// An identifier was acceptable only as a port name, and it matched
		// none.
		return nil, p.operandError(token, rule)
	}
	// Integer literal; must fit a signed 8-bit value.
	value, err := strconv.ParseInt(text, 10, 8)
	if err != nil {
		return nil, p.errorAt(ErrIntegerOutOfRange, token)
	}
	//
	return &IntegerOperand{int8(value), token.Span}, nil
}

// acceptsToken checks whether a token of the given kind can lexically begin
// any of the operand kinds in the rule.
func acceptsToken(rule OperandRule, kind uint) bool {
	for _, k := range rule {
		if k == KIND_INTEGER {
			if kind == INTEGER {
				return true
			}
		} else if kind == IDENTIFIER {
			return true
		}
	}
	//
	return false
}

// consumeLineEnd requires the current line to finish, either at a newline
// (consumed) or at the end of the input.
func (p *Parser) consumeLineEnd() *ParseError {
	lookahead := p.lookahead()
	//
	switch lookahead.Kind {
	case END_OF:
		return nil
	case NEWLINE:
		p.index++
		return nil
	default:
		p.index++
		//
		return &ParseError{ErrUnexpectedToken, lookahead, NEWLINE, ""}
	}
}

// Lookahead returns the next token.  This must exist because END_OF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

// Match attempts to match the given token, consuming it on success.
func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

// Expect errors if the next token is not what was required.
func (p *Parser) expect(kind uint) *ParseError {
	lookahead := p.lookahead()
	//
	switch lookahead.Kind {
	case kind:
		p.index++
		return nil
	case END_OF:
		return &ParseError{ErrMissingToken, lex.Token{}, kind, ""}
	default:
		p.index++
		//
		return &ParseError{ErrUnexpectedToken, lookahead, kind, ""}
	}
}

// Get the text representing the given token as a string.
func (p *Parser) text(token lex.Token) string {
	return p.srcfile.Text(token.Span)
}

func (p *Parser) errorAt(kind ParseErrorKind, token lex.Token) *ParseError {
	return &ParseError{kind, token, 0, ""}
}

func (p *Parser) operandError(token lex.Token, rule OperandRule) *ParseError {
	return &ParseError{ErrExpectedOperand, token, 0, rule.String()}
}
