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
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/consensys/go-picoasm/pkg/asm/assembler"
	"github.com/consensys/go-picoasm/pkg/util/source"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// printDiagnostic prints a diagnostic to stderr with appropriate highlighting,
// pointing into the source file when the diagnostic carries a location.
func printDiagnostic(srcfile *source.File, diagnostic *assembler.Diagnostic) {
	fmt.Fprintf(os.Stderr, "%serror:%s %s\n", ansiRed(), ansiReset(), diagnostic.Label)
	//
	if !diagnostic.HasSpan {
		return
	}
	// Identify the line the diagnostic starts on.
	line := srcfile.FindFirstEnclosingLine(diagnostic.Span)
	column := line.ColumnOf(diagnostic.Span.Start())
	// Restrict the highlight to the enclosing line.
	length := min(diagnostic.Span.Length(), line.Length()-(diagnostic.Span.Start()-line.Start()))
	length = max(length, 1)
	// Print location, line and highlight.
	fmt.Fprintf(os.Stderr, "  %s:%d:%d\n", srcfile.Filename(), line.Number(), column+1)
	fmt.Fprintf(os.Stderr, "  %s\n", line.Rendered())
	fmt.Fprintf(os.Stderr, "  %s%s%s%s\n",
		strings.Repeat(" ", column), ansiRed(), strings.Repeat("^", length), ansiReset())
}

// ansiRed returns the escape for red bold text, or nothing when stderr is not
// a terminal.
func ansiRed() string {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return "\033[1;31m"
	}
	//
	return ""
}

// ansiReset returns the escape restoring default text, or nothing when stderr
// is not a terminal.
func ansiReset() string {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return "\033[0m"
	}
	//
	return ""
}
