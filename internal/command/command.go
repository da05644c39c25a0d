// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Package command defines the tcshell REPL commands and their registry.
package command

// Command represents a REPL command with metadata
type Command struct {
	Name        string   // Primary command name
	Aliases     []string // Alternative names (e.g., "h" for "help")
	Usage       string   // Usage string: "call <app> [args...] [from=<account>]"
	Description string   // One-line description
	LongHelp    string   // Multi-line detailed help (optional)
	Category    string   // "Application Commands", "Setup", etc.
	Handler     Handler  // Command execution handler
}

// Handler is the interface all command handlers must implement
type Handler interface {
	Execute(args []string, ctx *Context) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(args []string, ctx *Context) error

// Execute implements the Handler interface
func (f HandlerFunc) Execute(args []string, ctx *Context) error {
	return f(args, ctx)
}

// Category constants for organizing commands
const (
	CategorySetup       = "Setup Commands"
	CategoryApplication = "Application Commands"
	CategoryInfo        = "Information"
	CategoryScripting   = "Scripting"
	CategorySession     = "Session"
)

// categoryOrder is the order help lists categories in.
var categoryOrder = []string{
	CategorySetup,
	CategoryApplication,
	CategoryInfo,
	CategoryScripting,
	CategorySession,
}
