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
	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-picoasm/pkg/asm/assembler"
	"github.com/consensys/go-picoasm/pkg/util/collection/array"
	"github.com/consensys/go-picoasm/pkg/util/source"
	"github.com/consensys/go-picoasm/pkg/util/source/lex"
)

// Assemble a pico16 assembly source file into its instruction memory image.
// On success this always produces exactly 64 bytes, with any space not
// occupied by an instruction zero padded (i.e. filled with nop).  On failure
// it produces the first diagnostic encountered, and no image.
func Assemble(srcfile *source.File) ([]byte, *assembler.Diagnostic) {
	// Lexing itself never fails; lexical errors surface as error tokens.
	tokens := assembler.Lex(srcfile)
	//
	log.Debugf("lexed %s into %d tokens", srcfile.Filename(), len(tokens))
	//
	if lexErr, ok := findInvalidToken(tokens); ok {
		return nil, lexErr.Diagnostic(srcfile)
	}
	// Comments play no further part.
	tokens = array.RemoveMatching(tokens, func(t lex.Token) bool {
		return t.Kind == assembler.COMMENT
	})
	//
	items, labels, parseErr := assembler.NewParser(srcfile, tokens).Parse()
	if parseErr != nil {
		return nil, parseErr.Diagnostic(srcfile)
	}
	//
	log.Debugf("parsed %d items (%d labels)", len(items), labels.Len())
	//
	code, genErr := assembler.NewGenerator(items, labels).Generate()
	if genErr != nil {
		return nil, genErr.Diagnostic(srcfile)
	}
	//
	log.Debugf("generated %d code bytes", len(code))
	// Pad out to the full instruction memory.
	image := make([]byte, assembler.InstructionMemorySize)
	copy(image, code)
	//
	return image, nil
}

// findInvalidToken locates the first error token (if any), translating it into
// the corresponding parse error.
func findInvalidToken(tokens []lex.Token) (*assembler.ParseError, bool) {
	token, ok := array.First(tokens, func(t lex.Token) bool {
		return t.Kind == assembler.INVALID_TOKEN || t.Kind == assembler.INVALID_INTEGER
	})
	//
	if !ok {
		return nil, false
	}
	//
	kind := assembler.ErrInvalidToken
	if token.Kind == assembler.INVALID_INTEGER {
		kind = assembler.ErrInvalidInteger
	}
	//
	return &assembler.ParseError{Kind: kind, Token: token}, true
}
