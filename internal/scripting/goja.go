// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package scripting

import (
	"context"
	"fmt"
	"os"

	"github.com/dop251/goja"

	"github.com/trustcampus/campusapps/internal/engine"
	"github.com/trustcampus/campusapps/internal/jsapi"
)

// GojaRunner implements Runner using the Goja JavaScript interpreter.
type GojaRunner struct {
	vm     *goja.Runtime
	api    *jsapi.API
	output func(string)
}

// New returns a Goja runner for eng configured with opts.
func New(eng *engine.Engine, opts Options) Runner {
	r := NewGojaRunner(eng)
	if opts.Ctx != nil {
		r.SetContext(opts.Ctx)
	}
	r.SetVerbose(opts.Verbose)
	r.SetOutput(opts.Output)
	return r
}

// NewGojaRunner creates a new Goja-based script runner.
// The runner is bound to the given Engine for API access.
func NewGojaRunner(eng *engine.Engine) *GojaRunner {
	r := &GojaRunner{
		output: func(s string) {}, // Default: discard output
	}

	// Create Goja runtime
	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))

	// Create API with output wrapper (so SetOutput works after creation)
	api := jsapi.NewAPI(eng, false, func(msg string) {
		r.output(msg)
	})
	if err := api.RegisterAll(vm); err != nil {
		// Registration errors are programming bugs, not runtime errors
		panic("failed to register JS API: " + err.Error())
	}

	r.vm = vm
	r.api = api

	return r
}

// Run executes JavaScript code and returns the result.
func (r *GojaRunner) Run(code string) (Result, error) {
	result, err := r.vm.RunString(code)
	if err != nil {
		// Convert Goja exceptions to regular errors with clean messages
		if jsErr, ok := err.(*goja.Exception); ok {
			// Use String() to get proper error message including stack trace info
			// Don't use Value().Export() as that returns map[] for Error objects
			return Result{}, &ScriptError{Message: jsErr.String()}
		}
		return Result{}, err
	}

	// Check for empty/void results
	if result == nil || goja.IsUndefined(result) || goja.IsNull(result) {
		return Result{IsEmpty: true}, nil
	}

	return Result{Value: result.Export()}, nil
}

// SetOutput sets the function used for print() and log() output.
func (r *GojaRunner) SetOutput(fn func(string)) {
	if fn == nil {
		r.output = func(s string) {}
	} else {
		r.output = fn
	}
}

// SetContext bounds the ledger operations of scripts run afterwards.
func (r *GojaRunner) SetContext(ctx context.Context) {
	r.api.SetContext(ctx)
}

// SetVerbose turns log() output and per-call traces on or off.
func (r *GojaRunner) SetVerbose(verbose bool) {
	r.api.SetVerbose(verbose)
}

// RunFile executes a JavaScript file.
func (r *GojaRunner) RunFile(path string) (Result, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read script: %w", err)
	}
	return r.Run(string(code))
}

// Interrupt stops the currently running script.
// Safe to call from another goroutine (e.g., for timeout enforcement).
func (r *GojaRunner) Interrupt() {
	r.vm.Interrupt("script interrupted")
}

// Compile-time interface check
var _ Runner = (*GojaRunner)(nil)
