// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package jsapi

// JavaScript API functions for applications:
// - Deployment (deploy)
// - Calls (call, optIn, closeOut, update, remove)
// - Application queries (apps, appAddress, isOptedIn)

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/trustcampus/campusapps/internal/engine"
)

// jsDeploy creates an application.
// deploy(program, sender?) - Returns the call result; result.app is the new id
func (a *API) jsDeploy(call goja.FunctionCall) goja.Value {
	a.requireArgs(call, 1, "deploy() requires a program name")
	program := call.Arguments[0].String()
	sender := optionalString(call, 1)

	res, err := a.engine.Deploy(a.context(), program, sender)
	if err != nil {
		a.fail("deploy", err)
	}
	return a.runtime.ToValue(callResultObject(res))
}

// jsCall sends an application call.
// call({app, sender?, onComplete?, args?, program?})
func (a *API) jsCall(call goja.FunctionCall) goja.Value {
	a.requireArgs(call, 1, "call() requires an options object")
	opts, ok := call.Arguments[0].Export().(map[string]interface{})
	if !ok {
		panic(a.runtime.ToValue("call() requires an options object"))
	}

	rawApp, ok := opts["app"]
	if !ok {
		panic(a.runtime.ToValue("call() requires an app id"))
	}
	app, err := toUint64Interface(rawApp)
	if err != nil {
		panic(a.runtime.ToValue(fmt.Sprintf("call() invalid app: %v", err)))
	}

	req := engine.CallRequest{App: app}
	if s, ok := opts["sender"].(string); ok {
		req.Sender = s
	}
	if s, ok := opts["onComplete"].(string); ok {
		req.OnComplete = s
	}
	if s, ok := opts["program"].(string); ok {
		req.Program = s
	}
	if raw, ok := opts["args"]; ok && raw != nil {
		req.Args, err = a.toArgs(raw)
		if err != nil {
			panic(a.runtime.ToValue(fmt.Sprintf("call() invalid args: %v", err)))
		}
	}

	return a.submit("call", req)
}

// jsOptIn opts an account in to an application.
// optIn(app, sender?)
func (a *API) jsOptIn(call goja.FunctionCall) goja.Value {
	return a.lifecycle(call, "optIn", "optin")
}

// jsCloseOut closes an account out of an application.
// closeOut(app, sender?)
func (a *API) jsCloseOut(call goja.FunctionCall) goja.Value {
	return a.lifecycle(call, "closeOut", "closeout")
}

// jsRemove deletes an application.
// remove(app, sender?)
func (a *API) jsRemove(call goja.FunctionCall) goja.Value {
	return a.lifecycle(call, "remove", "delete")
}

// jsUpdate updates an application, replacing its program when one is named.
// update(app, sender?, program?)
func (a *API) jsUpdate(call goja.FunctionCall) goja.Value {
	a.requireArgs(call, 1, "update() requires an app id")
	req := engine.CallRequest{
		App:        toUint64(a.runtime, call.Arguments[0]),
		Sender:     optionalString(call, 1),
		OnComplete: "update",
		Program:    optionalString(call, 2),
	}
	return a.submit("update", req)
}

func (a *API) lifecycle(call goja.FunctionCall, fn, oc string) goja.Value {
	a.requireArgs(call, 1, fn+"() requires an app id")
	req := engine.CallRequest{
		App:        toUint64(a.runtime, call.Arguments[0]),
		Sender:     optionalString(call, 1),
		OnComplete: oc,
	}
	return a.submit(fn, req)
}

func (a *API) submit(fn string, req engine.CallRequest) goja.Value {
	res, err := a.engine.Call(a.context(), req)
	if err != nil {
		a.fail(fn, err)
	}
	if a.verbose {
		a.outputMsg(fmt.Sprintf("[debug] %s app=%d round=%d txid=%s", fn, res.AppID, res.Round, res.TxID))
	}
	return a.runtime.ToValue(callResultObject(res))
}

// jsApps lists live applications.
func (a *API) jsApps(call goja.FunctionCall) goja.Value {
	apps := a.engine.Apps()
	out := make([]interface{}, len(apps))
	for i, app := range apps {
		out[i] = map[string]interface{}{
			"id":      app.AppID,
			"program": app.Program,
			"creator": app.Creator,
			"address": app.Address,
			"optedIn": app.OptedIn,
		}
	}
	return a.runtime.ToValue(out)
}

// jsAppAddress returns the account address of an application.
// appAddress(app)
func (a *API) jsAppAddress(call goja.FunctionCall) goja.Value {
	a.requireArgs(call, 1, "appAddress() requires an app id")
	return a.runtime.ToValue(a.engine.AppAddress(toUint64(a.runtime, call.Arguments[0])).String())
}

// jsIsOptedIn reports whether an account is opted in to an application.
// isOptedIn(app, account)
func (a *API) jsIsOptedIn(call goja.FunctionCall) goja.Value {
	a.requireArgs(call, 2, "isOptedIn() requires app and account arguments")
	ok, err := a.engine.IsOptedIn(toUint64(a.runtime, call.Arguments[0]), call.Arguments[1].String())
	if err != nil {
		a.fail("isOptedIn", err)
	}
	return a.runtime.ToValue(ok)
}
