// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Package scripting runs scenario scripts against a tcshell session.
package scripting

import "context"

// ScriptError is a JavaScript exception raised by a script, including the
// ledger rejections the API turns into exceptions.
type ScriptError struct {
	Message string
}

func (e *ScriptError) Error() string {
	return e.Message
}

// Result holds the outcome of running a script.
type Result struct {
	// Value is the exported result value (nil if IsEmpty is true)
	Value interface{}
	// IsEmpty is true if the script returned undefined/null/void
	IsEmpty bool
}

// Runner executes scripts in a runtime bound to one engine. The runtime
// keeps its variables between calls, so the REPL and `tcshell run` share
// the same implementation.
type Runner interface {
	// Run executes code and returns its completion value.
	Run(code string) (Result, error)

	// RunFile executes the script at path.
	RunFile(path string) (Result, error)

	// SetOutput sets the function used for print() and log() output.
	SetOutput(fn func(string))

	// SetContext bounds the ledger calls made by later scripts.
	SetContext(ctx context.Context)

	// SetVerbose turns log() output and call traces on or off.
	SetVerbose(verbose bool)

	// Interrupt stops the running script. Safe to call from another
	// goroutine.
	Interrupt()
}

// Options configures a Runner built by New.
type Options struct {
	Ctx     context.Context
	Verbose bool
	Output  func(string)
}
