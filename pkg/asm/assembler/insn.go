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
)

// Register identifies one of the sixteen general-purpose registers of the
// pico16 machine, r0 through r15.  A register encodes as its index in a
// single nibble.
type Register uint8

// ParseRegister attempts to interpret a given (lower-cased) identifier as a
// register name.
func ParseRegister(name string) (Register, bool) {
	reg, ok := registerNames[name]
	//
	return reg, ok
}

// Encode returns the 4-bit encoding of this register.
func (p Register) Encode() uint8 {
	return uint8(p)
}

func (p Register) String() string {
	return fmt.Sprintf("r%d", uint8(p))
}

var registerNames = map[string]Register{
	"r0": 0, "r1": 1, "r2": 2, "r3": 3,
	"r4": 4, "r5": 5, "r6": 6, "r7": 7,
	"r8": 8, "r9": 9, "r10": 10, "r11": 11,
	"r12": 12, "r13": 13, "r14": 14, "r15": 15,
}

// Opcode identifies one of the fifteen operations the pico16 machine
// understands.
type Opcode uint8

// The available opcodes.  Note that declaration order is not the encoding
// order; see Encode.
const (
	NOP Opcode = iota
	ADD
	LDI
	SUB
	AND
	OR
	INV
	XOR
	SR
	SL
	IN
	OUT
	JZ
	JLT
	J
)

// ParseOpcode attempts to interpret a given (lower-cased) identifier as an
// opcode mnemonic.
func ParseOpcode(name string) (Opcode, bool) {
	opcode, ok := opcodeNames[name]
	//
	return opcode, ok
}

// Encode returns the 4-bit encoding of this opcode.  The mapping is authored
// explicitly, rather than derived from declaration order, because encoding
// value 4 is reserved and deliberately unused.
func (p Opcode) Encode() uint8 {
	switch p {
	case NOP:
		return 0
	case ADD:
		return 1
	case LDI:
		return 2
	case SUB:
		return 3
	case AND:
		return 5
	case OR:
		return 6
	case INV:
		return 7
	case XOR:
		return 8
	case SR:
		return 9
	case SL:
		return 10
	case IN:
		return 11
	case OUT:
		return 12
	case JZ:
		return 13
	case JLT:
		return 14
	case J:
		return 15
	default:
		panic(fmt.Sprintf("unknown opcode %d", uint8(p)))
	}
}

func (p Opcode) String() string {
	for name, opcode := range opcodeNames {
		if opcode == p {
			return name
		}
	}
	//
	return fmt.Sprintf("opcode(%d)", uint8(p))
}

var opcodeNames = map[string]Opcode{
	"nop": NOP, "add": ADD, "ldi": LDI, "sub": SUB,
	"and": AND, "or": OR, "inv": INV, "xor": XOR,
	"sr": SR, "sl": SL, "in": IN, "out": OUT,
	"jz": JZ, "jlt": JLT, "j": J,
}

// The named input sources an "in" instruction can read from, along with their
// port encodings on the target board.
var sourceNames = map[string]uint8{
	"sw":      0,
	"btnc":    1,
	"btnu":    2,
	"btnl":    3,
	"btnr":    4,
	"btnd":    5,
	"counter": 6,
}

// The named output sinks an "out" instruction can write to, along with their
// port encodings on the target board.
var sinkNames = map[string]uint8{
	"seg_right": 0,
	"seg_left":  1,
}

// ParseSource attempts to interpret a given (lower-cased) identifier as a
// named input source.
func ParseSource(name string) (uint8, bool) {
	port, ok := sourceNames[name]
	//
	return port, ok
}

// ParseSink attempts to interpret a given (lower-cased) identifier as a named
// output sink.
func ParseSink(name string) (uint8, bool) {
	port, ok := sinkNames[name]
	//
	return port, ok
}

// ============================================================================
// Operands
// ============================================================================

// Operand is a value supplied to an instruction: a register, an immediate
// integer, a named port or a label reference.  Every operand retains the span
// of its source text, which is used only for diagnostics.
type Operand interface {
	// Span returns the location of this operand in the original source.
	Span() source.Span
	//
	isOperand()
}

// RegisterOperand is an operand naming a general-purpose register.
type RegisterOperand struct {
	register Register
	span     source.Span
}

// Span returns the location of this operand in the original source.
func (p *RegisterOperand) Span() source.Span { return p.span }

func (p *RegisterOperand) isOperand() {}

// IntegerOperand is an immediate operand holding an 8-bit signed value.
type IntegerOperand struct {
	value int8
	span  source.Span
}

// Span returns the location of this operand in the original source.
func (p *IntegerOperand) Span() source.Span { return p.span }

func (p *IntegerOperand) isOperand() {}

// PortOperand is an operand naming an input source or output sink by its
// board-level name (e.g. "sw" or "seg_left").  Its value is always within the
// 4-bit port range by construction.
type PortOperand struct {
	port uint8
	span source.Span
}

// Span returns the location of this operand in the original source.
func (p *PortOperand) Span() source.Span { return p.span }

func (p *PortOperand) isOperand() {}

// LabelOperand is an operand referring to a label, possibly one which has not
// been defined yet.
type LabelOperand struct {
	label LabelId
	span  source.Span
}

// Span returns the location of this operand in the original source.
func (p *LabelOperand) Span() source.Span { return p.span }

func (p *LabelOperand) isOperand() {}

// ============================================================================
// Instructions & items
// ============================================================================

// Item is a single element of the parsed program: either a label marker or an
// instruction.  The order of items determines instruction layout.
type Item interface {
	isItem()
}

// LabelItem marks the definition point of a label within the item sequence.
type LabelItem struct {
	// Identifier of the label being defined.
	Label LabelId
}

func (p *LabelItem) isItem() {}

// Instruction is an item describing a single machine instruction, tagged by
// its operand arity.
type Instruction interface {
	Item
	// Opcode returns the opcode of this instruction.
	Opcode() Opcode
}

// NoOperand is an instruction taking no operands (nop only).
type NoOperand struct {
	opcode Opcode
}

// Opcode returns the opcode of this instruction.
func (p *NoOperand) Opcode() Opcode { return p.opcode }

func (p *NoOperand) isItem() {}

// SingleOperand is an instruction taking exactly one operand.
type SingleOperand struct {
	opcode  Opcode
	operand Operand
}

// Opcode returns the opcode of this instruction.
func (p *SingleOperand) Opcode() Opcode { return p.opcode }

func (p *SingleOperand) isItem() {}

// DoubleOperand is an instruction taking exactly two operands.
type DoubleOperand struct {
	opcode Opcode
	first  Operand
	second Operand
}

// Opcode returns the opcode of this instruction.
func (p *DoubleOperand) Opcode() Opcode { return p.opcode }

func (p *DoubleOperand) isItem() {}
