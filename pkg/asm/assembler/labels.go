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
	"github.com/consensys/go-picoasm/pkg/util/source"
)

// LabelId is a stable identifier for a label.  Once allocated it never
// changes and never aliases another name.
type LabelId = uint

// label is a single row of the label table.  A row progresses through (up to)
// three states: referenced only (neither span nor offset), defined (span
// filled in by the parser), and resolved (offset filled in by the generator's
// layout pass).
type label struct {
	// Name of the label, unique within the table.
	name string
	// Location of the defining occurrence (i.e. "name:"), if any.
	span source.Span
	// Whether the label has been defined yet.
	defined bool
	// Instruction offset the label resolves to.  Stored signed because it
	// shares the 8-bit immediate slot with integer operands.
	offset int8
	// Whether the offset has been filled in yet.
	resolved bool
}

// LabelTable maps label names to stable identifiers, tracking for each label
// its defining occurrence and, eventually, its resolved offset.  Rows are held
// in an arena indexed by id, with a separate name index so the name string is
// stored once.
type LabelTable struct {
	labels []label
	ids    map[string]LabelId
}

// NewLabelTable constructs an empty label table.
func NewLabelTable() *LabelTable {
	return &LabelTable{nil, make(map[string]LabelId)}
}

// Id returns the identifier assigned to a given name, if any.
func (p *LabelTable) Id(name string) (LabelId, bool) {
	id, ok := p.ids[name]
	//
	return id, ok
}

// Reference returns the identifier for a given name, allocating a fresh
// (undefined) row when the name has not been seen before.  This is how
// forward references enter the table.
func (p *LabelTable) Reference(name string) LabelId {
	if id, ok := p.ids[name]; ok {
		return id
	}
	//
	id := uint(len(p.labels))
	p.labels = append(p.labels, label{name: name})
	p.ids[name] = id
	//
	return id
}

// Define records the defining occurrence of a given label.  The caller is
// responsible for rejecting duplicate definitions beforehand (see IsDefined).
func (p *LabelTable) Define(id LabelId, span source.Span) {
	if p.labels[id].defined {
		panic("label defined twice")
	}
	//
	p.labels[id].span = span
	p.labels[id].defined = true
}

// IsDefined checks whether a given label has a defining occurrence yet.
func (p *LabelTable) IsDefined(id LabelId) bool {
	return p.labels[id].defined
}

// SpanOf returns the span of the defining occurrence of a given label.  This
// panics if the label was never defined.
func (p *LabelTable) SpanOf(id LabelId) source.Span {
	if !p.labels[id].defined {
		panic("label has no defining occurrence")
	}
	//
	return p.labels[id].span
}

// Resolve assigns the instruction offset a given label stands for.  Each
// label is resolved at most once, during the generator's layout pass.
func (p *LabelTable) Resolve(id LabelId, offset int8) {
	p.labels[id].offset = offset
	p.labels[id].resolved = true
}

// Offset returns the resolved instruction offset of a given label, or false
// when the label was referenced but never defined.
func (p *LabelTable) Offset(id LabelId) (int8, bool) {
	return p.labels[id].offset, p.labels[id].resolved
}

// Len returns the number of labels in the table.
func (p *LabelTable) Len() uint {
	return uint(len(p.labels))
}
