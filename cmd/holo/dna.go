// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/luxfi/holo/dna"
	"github.com/spf13/cobra"
)

func dnaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dna",
		Short: "Inspect DNA files",
	}
	cmd.AddCommand(dnaHashCmd(), dnaZomesCmd())
	return cmd
}

func dnaHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <file>",
		Short: "Print a DNA file's content address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDNA(args[0])
			if err != nil {
				return err
			}
			hash, err := d.Hash()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func dnaZomesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zomes <file>",
		Short: "List a DNA file's zomes in definition order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDNA(args[0])
			if err != nil {
				return err
			}
			d.Zomes.Range(func(name string, z dna.Zome) bool {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entry types, %d capabilities\n",
					name, z.EntryTypes.Len(), z.Capabilities.Len())
				return true
			})
			return nil
		},
	}
}

func loadDNA(path string) (*dna.DNA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return dna.Parse(data)
}
