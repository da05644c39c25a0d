// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package jsapi

import (
	"github.com/dop251/goja"
)

// jsAccount returns the address of an account name, creating the account
// when the name is new.
// account(name)
func (a *API) jsAccount(call goja.FunctionCall) goja.Value {
	a.requireArgs(call, 1, "account() requires a name argument")
	addr, err := a.engine.Account(call.Arguments[0].String())
	if err != nil {
		a.fail("account", err)
	}
	return a.runtime.ToValue(addr.String())
}

// jsAccounts returns the alias table as {name: address}.
func (a *API) jsAccounts(call goja.FunctionCall) goja.Value {
	out := make(map[string]interface{})
	for name, addr := range a.engine.Aliases() {
		out[name] = addr
	}
	return a.runtime.ToValue(out)
}

// jsAsset returns asset parameters.
// asset(id)
func (a *API) jsAsset(call goja.FunctionCall) goja.Value {
	a.requireArgs(call, 1, "asset() requires an asset id")
	v, err := a.engine.Asset(toUint64(a.runtime, call.Arguments[0]))
	if err != nil {
		a.fail("asset", err)
	}
	return a.runtime.ToValue(map[string]interface{}{
		"id":            v.AssetID,
		"name":          v.Name,
		"unitName":      v.UnitName,
		"total":         v.Total,
		"decimals":      v.Decimals,
		"defaultFrozen": v.DefaultFrozen,
		"url":           v.URL,
		"creator":       v.Creator,
		"manager":       v.Manager,
		"clawback":      v.Clawback,
	})
}

// jsHolding returns {amount, frozen} or null when the account holds nothing.
// holding(account, id)
func (a *API) jsHolding(call goja.FunctionCall) goja.Value {
	a.requireArgs(call, 2, "holding() requires account and asset id arguments")
	h, ok, err := a.engine.Holding(call.Arguments[0].String(), toUint64(a.runtime, call.Arguments[1]))
	if err != nil {
		a.fail("holding", err)
	}
	if !ok {
		return goja.Null()
	}
	return a.runtime.ToValue(map[string]interface{}{
		"amount": h.Amount,
		"frozen": h.Frozen,
	})
}

// jsLogs returns decoded log records.
// logs(app?, after?) - app 0 or omitted means every application
func (a *API) jsLogs(call goja.FunctionCall) goja.Value {
	var app, after uint64
	if len(call.Arguments) > 0 && !goja.IsUndefined(call.Arguments[0]) && !goja.IsNull(call.Arguments[0]) {
		app = toUint64(a.runtime, call.Arguments[0])
	}
	if len(call.Arguments) > 1 {
		after = toUint64(a.runtime, call.Arguments[1])
	}
	logs, err := a.engine.Logs(a.context(), app, after)
	if err != nil {
		a.fail("logs", err)
	}
	out := make([]interface{}, len(logs))
	for i, l := range logs {
		out[i] = logObject(l)
	}
	return a.runtime.ToValue(out)
}
