// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trustcampus/campusapps/internal/command"
)

// LogsOptions holds flags for the logs command.
type LogsOptions struct {
	*RootOptions
	App   uint64
	After uint64
}

// NewLogsCommand creates the logs command.
func NewLogsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the decoded log stream",
		Long: `Print the log records of one application, or of all applications,
in commit order. --after resumes a stream after a known sequence number.

Example:
  tcshell logs --app 1000 --after 12`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openSession(cmd.Context(), opts.RootOptions)
			if err != nil {
				return err
			}
			defer func() { _ = eng.Close() }()

			logs, err := eng.Logs(cmd.Context(), opts.App, opts.After)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.Format == "json" {
				return writeJSON(out, logs)
			}
			if len(logs) == 0 {
				fmt.Fprintln(out, "No log records")
				return nil
			}
			for _, l := range logs {
				command.PrintLog(out, l)
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&opts.App, "app", 0, "application id (default: all applications)")
	cmd.Flags().Uint64Var(&opts.After, "after", 0, "only records after this sequence number")

	return cmd
}
