// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package util

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	acceptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	rejectStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))
)

// supportsColor checks if the terminal supports ANSI color codes
func supportsColor() bool {
	// Check if stdout is a terminal
	if !term.IsTerminal(int(os.Stdout.Fd())) { // #nosec G115 - file descriptors are small integers
		return false
	}

	// Check TERM environment variable
	termEnv := os.Getenv("TERM")
	if termEnv == "" || termEnv == "dumb" {
		return false
	}

	return true
}

func render(style lipgloss.Style, s string) string {
	if !supportsColor() {
		return s
	}
	return style.Render(s)
}

// Accepted styles a message about an accepted call.
func Accepted(s string) string { return render(acceptStyle, s) }

// Rejected styles a message about a rejected call.
func Rejected(s string) string { return render(rejectStyle, s) }

// Dim styles secondary detail such as ids and rounds.
func Dim(s string) string { return render(dimStyle, s) }

// Title styles a section heading.
func Title(s string) string { return render(titleStyle, s) }
