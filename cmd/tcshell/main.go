// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Command tcshell deploys and drives the campus programs against a local
// ledger, from scripts or an interactive shell.
package main

import (
	"fmt"
	"os"

	"github.com/trustcampus/campusapps/internal/util"
)

func main() {
	// Initialize logger (supports TCSHELL_DEBUG environment variable)
	util.InitLogger()

	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
