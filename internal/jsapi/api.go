// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Package jsapi provides JavaScript API bindings for the campus engine.
//
// This package exposes engine functionality to JavaScript scripts running in
// the Goja runtime. Functions are organized into domain-specific files:
//   - api.go: Core API struct, registration, output, session settings
//   - apps.go: Deployment, application calls, lifecycle operations
//   - queries.go: Accounts, assets, holdings, log records
//   - helpers.go: Type conversion utilities
package jsapi

import (
	"context"
	"fmt"

	"github.com/dop251/goja"

	"github.com/trustcampus/campusapps/internal/engine"
)

// API provides JavaScript bindings for the engine.
type API struct {
	engine  *engine.Engine
	runtime *goja.Runtime
	verbose bool
	output  func(string)
	ctx     context.Context
}

// NewAPI creates a new JavaScript API instance.
func NewAPI(eng *engine.Engine, verbose bool, output func(string)) *API {
	return &API{
		engine:  eng,
		verbose: verbose,
		output:  output,
	}
}

// RegisterAll registers all API functions on the given Goja runtime.
func (a *API) RegisterAll(vm *goja.Runtime) error {
	a.runtime = vm

	functions := []struct {
		name string
		fn   func(goja.FunctionCall) goja.Value
	}{
		// Output and session
		{"print", a.jsPrint},
		{"log", a.jsLog},
		{"setVerbose", a.jsSetVerbose},
		{"programs", a.jsPrograms},
		{"setSender", a.jsSetSender},
		{"sender", a.jsSender},

		// Applications
		{"deploy", a.jsDeploy},
		{"call", a.jsCall},
		{"optIn", a.jsOptIn},
		{"closeOut", a.jsCloseOut},
		{"update", a.jsUpdate},
		{"remove", a.jsRemove},
		{"apps", a.jsApps},
		{"appAddress", a.jsAppAddress},
		{"isOptedIn", a.jsIsOptedIn},

		// Queries
		{"account", a.jsAccount},
		{"accounts", a.jsAccounts},
		{"asset", a.jsAsset},
		{"holding", a.jsHolding},
		{"logs", a.jsLogs},
	}

	for _, f := range functions {
		if err := vm.Set(f.name, f.fn); err != nil {
			return fmt.Errorf("failed to register %s: %w", f.name, err)
		}
	}
	return nil
}

// output helper for internal use.
func (a *API) outputMsg(msg string) {
	if a.output != nil {
		a.output(msg)
	} else {
		fmt.Println(msg)
	}
}

// fail raises a JS exception naming the function that failed.
func (a *API) fail(fn string, err error) {
	panic(a.runtime.ToValue(fmt.Sprintf("%s() error: %v", fn, err)))
}

// jsPrint outputs a message to the console.
func (a *API) jsPrint(call goja.FunctionCall) goja.Value {
	args := make([]interface{}, len(call.Arguments))
	for i, arg := range call.Arguments {
		args[i] = arg.Export()
	}
	a.outputMsg(fmt.Sprint(args...))
	return goja.Undefined()
}

// jsLog outputs a debug message (only in verbose mode).
func (a *API) jsLog(call goja.FunctionCall) goja.Value {
	if !a.verbose {
		return goja.Undefined()
	}
	args := make([]interface{}, len(call.Arguments))
	for i, arg := range call.Arguments {
		args[i] = arg.Export()
	}
	a.outputMsg("[debug] " + fmt.Sprint(args...))
	return goja.Undefined()
}

// SetVerbose turns log() output and per-call traces on or off.
func (a *API) SetVerbose(verbose bool) {
	a.verbose = verbose
	a.engine.Verbose = verbose
}

// jsSetVerbose enables or disables verbose output.
// setVerbose(enabled)
func (a *API) jsSetVerbose(call goja.FunctionCall) goja.Value {
	a.requireArgs(call, 1, "setVerbose() requires a boolean argument")
	a.SetVerbose(call.Arguments[0].ToBoolean())
	return goja.Undefined()
}

// jsPrograms returns the deployable program names.
func (a *API) jsPrograms(call goja.FunctionCall) goja.Value {
	names := a.engine.Programs()
	out := make([]interface{}, len(names))
	for i, n := range names {
		out[i] = n
	}
	return a.runtime.ToValue(out)
}

// jsSetSender sets the default sender and returns its address.
// setSender(account)
func (a *API) jsSetSender(call goja.FunctionCall) goja.Value {
	a.requireArgs(call, 1, "setSender() requires an account argument")
	addr, err := a.engine.SetSender(call.Arguments[0].String())
	if err != nil {
		a.fail("setSender", err)
	}
	return a.runtime.ToValue(addr.String())
}

// jsSender returns the default sender, or null when none is set.
func (a *API) jsSender(call goja.FunctionCall) goja.Value {
	addr, ok := a.engine.Sender()
	if !ok {
		return goja.Null()
	}
	return a.runtime.ToValue(addr.String())
}
