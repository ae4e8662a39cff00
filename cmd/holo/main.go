// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "holo",
	Short: "Inspect DNAs and local agent chains",
	Long: `holo provides local inspection tools for a Holochain-style agent
context: hashing a DNA file and listing its zomes, and replaying a JSON list
of app entries into an in-memory agent chain, without spinning up the
network or WASM runtime.`,
}

func main() {
	rootCmd.AddCommand(
		dnaCmd(),
		chainCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
