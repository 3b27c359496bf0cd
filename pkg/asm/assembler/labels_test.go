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

	"github.com/consensys/go-picoasm/pkg/util/source"
)

func TestLabelTableEmpty(t *testing.T) {
	table := NewLabelTable()
	assert.Equal(t, uint(0), table.Len())
	//
	_, ok := table.Id("loop")
	assert.False(t, ok)
}

func TestLabelTableReference(t *testing.T) {
	table := NewLabelTable()
	id := table.Reference("loop")
	// Referencing again yields the same identifier.
	assert.Equal(t, id, table.Reference("loop"))
	assert.Equal(t, uint(1), table.Len())
	assert.False(t, table.IsDefined(id))
	// And it remains unresolved.
	_, ok := table.Offset(id)
	assert.False(t, ok)
}

func TestLabelTableDistinctNames(t *testing.T) {
	table := NewLabelTable()
	a := table.Reference("a")
	b := table.Reference("b")
	assert.NotEqual(t, a, b)
	assert.Equal(t, uint(2), table.Len())
}

func TestLabelTableDefine(t *testing.T) {
	table := NewLabelTable()
	span := source.NewSpan(0, 5)
	//
	id := table.Reference("loop")
	table.Define(id, span)
	//
	assert.True(t, table.IsDefined(id))
	assert.Equal(t, span, table.SpanOf(id))
}

func TestLabelTableResolve(t *testing.T) {
	table := NewLabelTable()
	id := table.Reference("loop")
	table.Define(id, source.NewSpan(0, 5))
	table.Resolve(id, 7)
	//
	offset, ok := table.Offset(id)
	require.True(t, ok)
	assert.Equal(t, int8(7), offset)
}

func TestLabelTableDefineTwicePanics(t *testing.T) {
	table := NewLabelTable()
	id := table.Reference("loop")
	table.Define(id, source.NewSpan(0, 5))
	//
	assert.Panics(t, func() {
		table.Define(id, source.NewSpan(10, 15))
	})
}
