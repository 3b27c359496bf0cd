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

// InstructionMemorySize is the size of the pico16 instruction memory in
// bytes, which is also the exact size of every output image.
const InstructionMemorySize = 64

// InstructionSize is the fixed width of an encoded instruction in bytes.
const InstructionSize = 2

// MaxInstructions bounds how many instructions fit in instruction memory.
const MaxInstructions = InstructionMemorySize / InstructionSize

// Generator encodes a parsed item sequence into its binary form.  Generation
// runs in two explicit passes over the same items: a layout pass which
// resolves every label to an instruction offset (and enforces the capacity
// bound), followed by an encoding pass which emits two bytes per
// instruction.  The passes are kept separate because every label offset must
// be known before any label operand can be encoded.
type Generator struct {
	items  []Item
	labels *LabelTable
}

// NewGenerator constructs a generator for the given parser output.
func NewGenerator(items []Item, labels *LabelTable) *Generator {
	return &Generator{items, labels}
}

// Generate produces the encoded instruction bytes (two per instruction, no
// padding) or the first layout/encoding error.  Item shapes the parser cannot
// produce are treated as internal faults and panic.
func (p *Generator) Generate() ([]byte, *GeneratorError) {
	if err := p.layout(); err != nil {
		return nil, err
	}
	//
	return p.encode()
}

// layout walks the items once, assigning each label the offset of the
// instruction which follows it and bounding the instruction count.
func (p *Generator) layout() *GeneratorError {
	var (
		counter = 0
		// Tracks a trailing label, which binds to nothing.
		dangling *LabelItem
	)
	//
	for _, item := range p.items {
		switch item := item.(type) {
		case *LabelItem:
			dangling = item
			p.labels.Resolve(item.Label, int8(counter))
		case Instruction:
			dangling = nil
			counter++
			//
			if counter > MaxInstructions {
				return &GeneratorError{Kind: ErrMaximumInstructions}
			}
		default:
			panic("unknown item")
		}
	}
	// A label at the end of the file has no instruction to bind to.
	if dangling != nil {
		span := p.labels.SpanOf(dangling.Label)
		return &GeneratorError{ErrDanglingLabel, span, true}
	}
	//
	return nil
}

// encode walks the items a second time, emitting the binary encoding of each
// instruction.
func (p *Generator) encode() ([]byte, *GeneratorError) {
	var output []byte
	//
	for _, item := range p.items {
		var err *GeneratorError
		//
		switch insn := item.(type) {
		case *LabelItem:
			// Labels occupy no space.
		case *NoOperand:
			output = p.encodeNoOperand(output, insn)
		case *SingleOperand:
			output, err = p.encodeSingleOperand(output, insn)
		case *DoubleOperand:
			output, err = p.encodeDoubleOperand(output, insn)
		default:
			panic("unknown item")
		}
		//
		if err != nil {
			return nil, err
		}
	}
	//
	return output, nil
}

func (p *Generator) encodeNoOperand(output []byte, insn *NoOperand) []byte {
	if insn.opcode != NOP {
		panic("no-operand instruction other than nop")
	}
	// Everything but the opcode nibble is ignored by the machine.
	return appendImmediate(output, insn.opcode, 0, 0)
}

func (p *Generator) encodeSingleOperand(output []byte, insn *SingleOperand) ([]byte, *GeneratorError) {
	switch insn.opcode {
	case INV:
		register := registerOf(insn.operand)
		// The data byte is ignored by the machine.
		return appendImmediate(output, insn.opcode, register, 0), nil
	case J:
		// The register field is never looked at; encode it as zero.
		target, err := p.resolveTarget(insn.operand)
		if err != nil {
			return nil, err
		}
		//
		return appendImmediate(output, insn.opcode, 0, byte(target)), nil
	default:
		panic("unknown single-operand instruction")
	}
}

func (p *Generator) encodeDoubleOperand(output []byte, insn *DoubleOperand) ([]byte, *GeneratorError) {
	switch insn.opcode {
	case ADD, SUB, AND, OR, XOR, SR, SL:
		first := registerOf(insn.first)
		second := registerOf(insn.second)
		// Secondary register sits in the high nibble of the data byte.
		return append(output,
			insn.opcode.Encode()<<4|first.Encode(),
			second.Encode()<<4), nil
	case JZ, JLT:
		register := registerOf(insn.first)
		//
		target, err := p.resolveJump(insn.second)
		if err != nil {
			return nil, err
		}
		//
		return appendImmediate(output, insn.opcode, register, byte(target)), nil
	case LDI:
		register := registerOf(insn.first)
		value := integerOf(insn.second)
		//
		return appendImmediate(output, insn.opcode, register, byte(value)), nil
	case IN, OUT:
		register := registerOf(insn.first)
		//
		port, err := p.resolvePort(insn.second)
		if err != nil {
			return nil, err
		}
		// Port number sits in the high nibble of the data byte.
		return appendImmediate(output, insn.opcode, register, port<<4), nil
	default:
		panic("unknown double-operand instruction")
	}
}

// resolveTarget determines the value of an integer-or-label operand, as used
// by an unconditional jump.
func (p *Generator) resolveTarget(operand Operand) (int8, *GeneratorError) {
	switch operand := operand.(type) {
	case *IntegerOperand:
		return operand.value, nil
	case *LabelOperand:
		value, ok := p.labels.Offset(operand.label)
		// Referenced but never defined.
		if !ok {
			return 0, &GeneratorError{ErrUndefinedLabel, operand.span, true}
		}
		//
		return value, nil
	default:
		panic("jump target is neither integer nor label")
	}
}

// resolveJump determines the value of a conditional jump target, which for
// integer literals must lie within the instruction memory.
func (p *Generator) resolveJump(operand Operand) (int8, *GeneratorError) {
	if operand, ok := operand.(*IntegerOperand); ok {
		if operand.value >= MaxInstructions {
			return 0, &GeneratorError{ErrJumpDestinationRange, operand.span, true}
		}
		//
		return operand.value, nil
	}
	//
	return p.resolveTarget(operand)
}

// resolvePort determines the 4-bit port number of an in/out operand.
func (p *Generator) resolvePort(operand Operand) (uint8, *GeneratorError) {
	switch operand := operand.(type) {
	case *IntegerOperand:
		port := uint8(operand.value)
		// Negative values wrap past 15 and are rejected alike.
		if port > 0b1111 {
			return 0, &GeneratorError{ErrSourceOrSinkRange, operand.span, true}
		}
		//
		return port, nil
	case *PortOperand:
		// Named ports are within range by construction.
		return operand.port, nil
	default:
		panic("port operand is neither integer nor named port")
	}
}

// appendImmediate emits the common instruction shape: opcode and primary
// register packed into the first byte, an arbitrary data byte second.
func appendImmediate(output []byte, opcode Opcode, register Register, value byte) []byte {
	return append(output, opcode.Encode()<<4|register.Encode(), value)
}

// registerOf extracts a register operand which the operand rules guarantee.
func registerOf(operand Operand) Register {
	register, ok := operand.(*RegisterOperand)
	if !ok {
		panic("expected register operand")
	}
	//
	return register.register
}

// integerOf extracts an integer operand which the operand rules guarantee.
func integerOf(operand Operand) int8 {
	integer, ok := operand.(*IntegerOperand)
	if !ok {
		panic("expected integer operand")
	}
	//
	return integer.value
}
