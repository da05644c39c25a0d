// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trustcampus/campusapps/internal/algo"
	"github.com/trustcampus/campusapps/internal/command"
)

// SubmitOptions holds flags for the submit command.
type SubmitOptions struct {
	*RootOptions
	App uint64
}

// NewSubmitCommand creates the submit command.
func NewSubmitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SubmitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "submit <txn-file>",
		Short: "Apply the application calls in a transaction file",
		Long: `Apply the application calls in a transaction file, in order.

The file may hold JSON transactions (optionally wrapped as {"txn": ...}),
base64 msgpack or raw msgpack, signed or unsigned. Transactions of other
types are skipped. --app redirects every non-creation call to one
application. Application calls stop at the first rejection; earlier calls
stay applied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txns, err := algo.ParseTransactionFile(args[0])
			if err != nil {
				return err
			}

			eng, _, err := openSession(cmd.Context(), opts.RootOptions)
			if err != nil {
				return err
			}
			defer func() { _ = eng.Close() }()

			results, skipped, applyErr := eng.ApplyTransactions(cmd.Context(), txns, opts.App)

			out := cmd.OutOrStdout()
			if opts.Format == "json" {
				if err := writeJSON(out, results); err != nil {
					return err
				}
			} else {
				for _, res := range results {
					command.PrintResult(out, res)
				}
				if skipped > 0 {
					fmt.Fprintf(out, "skipped %d non-application transaction(s)\n", skipped)
				}
			}
			return applyErr
		},
	}

	cmd.Flags().Uint64Var(&opts.App, "app", 0, "application id to call (default: the id in each transaction)")

	return cmd
}
