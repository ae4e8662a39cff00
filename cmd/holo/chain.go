// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/luxfi/holo/action"
	"github.com/luxfi/holo/chain"
	"github.com/luxfi/holo/entry"
	"github.com/luxfi/holo/state"
	"github.com/luxfi/holo/validation"
	"github.com/spf13/cobra"
)

func chainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Replay and inspect a local agent chain",
	}
	cmd.AddCommand(chainReplayCmd())
	return cmd
}

// replayEntry is the on-disk shape chainReplayCmd reads: a flat list of
// app entries to commit in order, skipping the sandboxed WASM validation
// callback entirely (this is a local inspection tool, not an agent
// runtime — see rootCmd's Long description in main.go).
type replayEntry struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

func chainReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <file>",
		Short: "Commit a JSON list of app entries and print the resulting chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var entries []replayEntry
			if err := json.Unmarshal(raw, &entries); err != nil {
				return err
			}

			s := state.New(nil, chain.NewMemContentStore(), chain.NewMemEavStore(), 0)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go s.Run(ctx)

			for _, re := range entries {
				e := entry.NewApp(re.Type, []byte(re.Data))
				commit := action.Commit{
					Entry:     e,
					Zome:      "cli",
					Lifecycle: validation.Chain,
					Validate: func(ctx context.Context, e entry.Entry, data validation.ValidationData) error {
						return nil
					},
				}
				if err := s.Dispatch(ctx, commit); err != nil {
					return fmt.Errorf("commit %s: %w", re.Type, err)
				}
			}

			for _, h := range s.Snapshot().Chain.Iter() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", h.EntryType, h.EntryAddress)
			}
			return nil
		},
	}
}
