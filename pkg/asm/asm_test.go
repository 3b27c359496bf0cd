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
package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/go-picoasm/pkg/asm/assembler"
	"github.com/consensys/go-picoasm/pkg/util/source"
)

// assembleString assembles a given string as if it were a source file.
func assembleString(input string) ([]byte, *assembler.Diagnostic) {
	return Assemble(source.NewSourceFile("test.s", []byte(input)))
}

func TestAssembleEmpty(t *testing.T) {
	// The empty program is just 32 nops.
	image, diagnostic := assembleString("")
	require.Nil(t, diagnostic)
	assert.Equal(t, make([]byte, assembler.InstructionMemorySize), image)
}

func TestAssembleImageSize(t *testing.T) {
	image, diagnostic := assembleString("ldi r0, 1\nadd r0, r0")
	require.Nil(t, diagnostic)
	require.Equal(t, assembler.InstructionMemorySize, len(image))
	// Code at the front, zero padding behind.
	assert.Equal(t, []byte{0x20, 0x01, 0x10, 0x00}, image[:4])
	assert.Equal(t, make([]byte, assembler.InstructionMemorySize-4), image[4:])
}

func TestAssembleEchoSwitches(t *testing.T) {
	// Reads the switches and mirrors them on the right display, forever.
	program := `
; echo switches to the display
start:  in r0, sw
        out r0, seg_right
        j start
`
	image, diagnostic := assembleString(program)
	require.Nil(t, diagnostic)
	assert.Equal(t, []byte{0xb0, 0x00, 0xc0, 0x00, 0xf0, 0x00}, image[:6])
}

func TestAssembleCountdown(t *testing.T) {
	program := `
        ldi r1, 1       ; decrement
        ldi r0, 10      ; counter
loop:   sub r0, r1
        out r0, seg_left
        jz r0, done
        j loop
done:   nop
`
	image, diagnostic := assembleString(program)
	require.Nil(t, diagnostic)
	assert.Equal(t, []byte{
		0x21, 0x01, // ldi r1, 1
		0x20, 0x0a, // ldi r0, 10
		0x30, 0x10, // sub r0, r1
		0xc0, 0x10, // out r0, seg_left
		0xd0, 0x06, // jz r0, done
		0xf0, 0x02, // j loop
		0x00, 0x00, // nop
	}, image[:14])
}

func TestAssembleFullMemory(t *testing.T) {
	var program string
	for i := 0; i < assembler.MaxInstructions; i++ {
		program += "inv r1\n"
	}
	//
	image, diagnostic := assembleString(program)
	require.Nil(t, diagnostic)
	//
	for i := 0; i < len(image); i += 2 {
		assert.Equal(t, byte(0x71), image[i])
	}
}

func TestAssembleInvalidToken(t *testing.T) {
	image, diagnostic := assembleString("nop\nadd r1, @")
	require.NotNil(t, diagnostic)
	assert.Nil(t, image)
	assert.Equal(t, "invalid token `@`", diagnostic.Label)
	assert.True(t, diagnostic.HasSpan)
}

func TestAssembleInvalidInteger(t *testing.T) {
	_, diagnostic := assembleString("ldi r0, 12ab")
	require.NotNil(t, diagnostic)
	assert.Equal(t, "invalid integer value `12ab`", diagnostic.Label)
}

func TestAssembleNegativeLiteralRejected(t *testing.T) {
	// The minus sign starts no token, so negative immediates do not lex.
	_, diagnostic := assembleString("ldi r0, -1")
	require.NotNil(t, diagnostic)
	assert.Equal(t, "invalid token `-`", diagnostic.Label)
}

func TestAssembleParseDiagnostic(t *testing.T) {
	_, diagnostic := assembleString("mov r0, r1")
	require.NotNil(t, diagnostic)
	assert.Equal(t, "`mov` is not a valid instruction", diagnostic.Label)
	assert.True(t, diagnostic.HasSpan)
}

func TestAssembleGeneratorDiagnostic(t *testing.T) {
	_, diagnostic := assembleString("j missing")
	require.NotNil(t, diagnostic)
	assert.Equal(t, "label `missing` is undefined", diagnostic.Label)
}

func TestAssembleCapacityDiagnostic(t *testing.T) {
	var program string
	for i := 0; i < assembler.MaxInstructions+1; i++ {
		program += "nop\n"
	}
	//
	_, diagnostic := assembleString(program)
	require.NotNil(t, diagnostic)
	assert.Equal(t, "maximum number of instructions reached (32)", diagnostic.Label)
	assert.False(t, diagnostic.HasSpan)
}

func TestAssembleDeterministic(t *testing.T) {
	program := "start: ldi r0, 1\nj start"
	//
	first, diagnostic := assembleString(program)
	require.Nil(t, diagnostic)
	second, diagnostic := assembleString(program)
	require.Nil(t, diagnostic)
	//
	assert.Equal(t, first, second)
}
