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
	"unicode"

	"github.com/consensys/go-picoasm/pkg/util/collection/array"
	"github.com/consensys/go-picoasm/pkg/util/source"
	"github.com/consensys/go-picoasm/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals space, tab or carriage return
const WHITESPACE uint = 1

// NEWLINE signals "\n", which terminates a line
const NEWLINE uint = 2

// COMMA signals ","
const COMMA uint = 3

// COMMENT signals "; ... \n"
const COMMENT uint = 4

// INTEGER signals an unsigned decimal integer literal
const INTEGER uint = 5

// IDENTIFIER signals a mnemonic, register, port or label reference
const IDENTIFIER uint = 6

// LABEL signals a label definition, i.e. an identifier with a trailing colon
// (the colon is part of the token)
const LABEL uint = 7

// INVALID_TOKEN signals a character which starts no token
const INVALID_TOKEN uint = 8

// INVALID_INTEGER signals a malformed integer literal (digits followed by
// letters, e.g. "12ab")
const INVALID_INTEGER uint = 9

// KindName returns a human-readable name for a given token kind, as used in
// diagnostics.
func KindName(kind uint) string {
	switch kind {
	case END_OF:
		return "end of file"
	case NEWLINE:
		return "newline"
	case COMMA:
		return ","
	case COMMENT:
		return "comment"
	case INTEGER:
		return "integer"
	case IDENTIFIER:
		return "identifier"
	case LABEL:
		return "label"
	default:
		panic("unknown token kind")
	}
}

// Rule for describing whitespace.  Newlines are significant and hence
// excluded here.
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit(' '),
	lex.Unit('\t'),
	lex.Unit('\r')))

// Comments start with ';' and continue until (but excluding) the next
// newline.
var comment lex.Scanner[rune] = lex.And(lex.Unit(';'), lex.Until('\n'))

var (
	digit lex.Scanner[rune] = lex.Within('0', '9')
	// Letters follow the unicode classification, so identifiers are not
	// restricted to ASCII.
	letter lex.Scanner[rune] = lex.Class(unicode.IsLetter)
)

// Rule for describing integers: a run of decimal digits.
var integer lex.Scanner[rune] = lex.And(digit, lex.Many(digit))

// Rule for describing malformed integers: a run of digits followed by at
// least one letter (e.g. "12ab").  Keeping these as a distinct token kind
// means lexically broken numbers remain distinguishable from valid ones.
var invalidInteger lex.Scanner[rune] = lex.Sequence(
	integer,
	lex.And(letter, lex.Many(lex.Or(letter, digit))))

// Rule for describing identifiers: a letter followed by letters, digits,
// underscores or hyphens.
var identifier lex.Scanner[rune] = lex.And(letter, lex.Many(lex.Or(
	letter,
	digit,
	lex.Unit('_'),
	lex.Unit('-'))))

// Rule for describing label definitions: an identifier with a trailing
// colon.  The colon is part of the token, hence part of its span.
var labelDef lex.Scanner[rune] = lex.Sequence(identifier, lex.Unit(':'))

// Lexing rules.  Order matters: malformed integers shadow valid ones, and
// label definitions shadow plain identifiers.  The final catch-all rule
// classifies any unrecognised character as an invalid token, meaning lexing
// itself never fails.
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(lex.Unit('\n'), NEWLINE),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(comment, COMMENT),
	lex.Rule(invalidInteger, INVALID_INTEGER),
	lex.Rule(integer, INTEGER),
	lex.Rule(labelDef, LABEL),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
	lex.Rule(lex.Any[rune](), INVALID_TOKEN),
}

// Lex a given source file into its complete token sequence in a single
// left-to-right scan.  Whitespace produces no tokens; every other character
// is covered by exactly one token.  Lexical errors are represented as
// INVALID_TOKEN / INVALID_INTEGER tokens rather than failing the scan.
func Lex(srcfile *source.File) []lex.Token {
	tokens := lex.NewLexer(srcfile.Contents(), rules...).Collect()
	// Remove any whitespace
	return array.RemoveMatching(tokens, func(t lex.Token) bool {
		return t.Kind == WHITESPACE
	})
}
