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
	"path"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/consensys/go-picoasm/pkg/asm"
	"github.com/consensys/go-picoasm/pkg/util/source"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble [flags] asm_file",
	Short: "assemble a pico16 assembly file into an instruction memory image.",
	Long: `Assemble a given pico16 assembly file into its 64 byte instruction memory
	 image, with any unused space zero padded.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		output := GetString(cmd, "output")
		if output == "" {
			output = defaultOutputFile(args[0])
		}
		// Read the assembly file
		srcfile, err := source.ReadFile(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		// Assemble it
		image, diagnostic := asm.Assemble(srcfile)
		if diagnostic != nil {
			printDiagnostic(srcfile, diagnostic)
			os.Exit(1)
		}
		//
		if GetFlag(cmd, "hex") {
			printHex(image)
		}
		// Write out the image
		if err := os.WriteFile(output, image, 0644); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

// defaultOutputFile determines the output filename used when none is given:
// the input filename with its extension replaced by ".bin".
func defaultOutputFile(input string) string {
	return strings.TrimSuffix(input, path.Ext(input)) + ".bin"
}

// printHex dumps an instruction memory image to stdout, sixteen bytes per row.
func printHex(image []byte) {
	for i, b := range image {
		if i%16 == 15 {
			fmt.Printf("%02x\n", b)
		} else {
			fmt.Printf("%02x ", b)
		}
	}
}

func init() {
	rootCmd.AddCommand(assembleCmd)
	assembleCmd.Flags().StringP("output", "o", "", "specify output file.")
	assembleCmd.Flags().Bool("hex", false, "dump the image to stdout as hex.")
}
