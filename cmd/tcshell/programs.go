// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trustcampus/campusapps/internal/programs"
)

// NewProgramsCommand creates the programs command.
func NewProgramsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "programs",
		Short: "List the deployable programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := programs.Names()
			if rootOpts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), names)
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
