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

import "strings"

// OperandKind describes one kind of operand an instruction position accepts.
type OperandKind uint8

// The possible operand kinds.
const (
	// KIND_REGISTER accepts a register name (r0..r15).
	KIND_REGISTER OperandKind = iota
	// KIND_INTEGER accepts an 8-bit signed decimal immediate.
	KIND_INTEGER
	// KIND_LABEL accepts a (possibly forward) label reference.
	KIND_LABEL
	// KIND_SOURCE accepts a named input source (sw, btnc, ...).
	KIND_SOURCE
	// KIND_SINK accepts a named output sink (seg_right, seg_left).
	KIND_SINK
)

func (p OperandKind) String() string {
	switch p {
	case KIND_REGISTER:
		return "register"
	case KIND_INTEGER:
		return "integer"
	case KIND_LABEL:
		return "label"
	case KIND_SOURCE:
		return "source"
	case KIND_SINK:
		return "sink"
	default:
		panic("unknown operand kind")
	}
}

// OperandRule gives the set of operand kinds accepted at one operand
// position.
type OperandRule []OperandKind

// Contains checks whether a given kind is accepted by this rule.
func (p OperandRule) Contains(kind OperandKind) bool {
	for _, k := range p {
		if k == kind {
			return true
		}
	}
	//
	return false
}

// String describes the accepted kinds for use in diagnostics, e.g. "integer
// or label".
func (p OperandRule) String() string {
	names := make([]string, len(p))
	//
	for i, k := range p {
		names[i] = k.String()
	}
	//
	switch len(names) {
	case 1:
		return names[0]
	default:
		n := len(names)
		return strings.Join(names[:n-1], ", ") + " or " + names[n-1]
	}
}

// The static operand rule table.  Each opcode maps to an ordered list of
// zero, one or two operand rules, which both drives the parser and documents
// the per-opcode encoding branch of the generator.  Built once; never
// mutated.
var operandRules = map[Opcode][]OperandRule{
	NOP: {},
	ADD: {{KIND_REGISTER}, {KIND_REGISTER}},
	LDI: {{KIND_REGISTER}, {KIND_INTEGER}},
	SUB: {{KIND_REGISTER}, {KIND_REGISTER}},
	AND: {{KIND_REGISTER}, {KIND_REGISTER}},
	OR:  {{KIND_REGISTER}, {KIND_REGISTER}},
	INV: {{KIND_REGISTER}},
	XOR: {{KIND_REGISTER}, {KIND_REGISTER}},
	SR:  {{KIND_REGISTER}, {KIND_REGISTER}},
	SL:  {{KIND_REGISTER}, {KIND_REGISTER}},
	IN:  {{KIND_REGISTER}, {KIND_INTEGER, KIND_SOURCE}},
	OUT: {{KIND_REGISTER}, {KIND_INTEGER, KIND_SINK}},
	JZ:  {{KIND_REGISTER}, {KIND_INTEGER, KIND_LABEL}},
	JLT: {{KIND_REGISTER}, {KIND_INTEGER, KIND_LABEL}},
	J:   {{KIND_INTEGER, KIND_LABEL}},
}

// RulesOf looks up the operand rules for a given opcode.
func RulesOf(opcode Opcode) []OperandRule {
	rules, ok := operandRules[opcode]
	// Every opcode has an entry; a miss indicates a table/opcode mismatch.
	if !ok {
		panic("no operand rules for opcode")
	}
	//
	return rules
}
