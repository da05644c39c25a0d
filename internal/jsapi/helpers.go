// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package jsapi

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dop251/goja"

	"github.com/trustcampus/campusapps/internal/engine"
)

// SetContext bounds the ledger operations of later calls.
func (a *API) SetContext(ctx context.Context) {
	a.ctx = ctx
}

func (a *API) context() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

// requireArgs panics with a JS exception if the call has fewer than n arguments.
func (a *API) requireArgs(call goja.FunctionCall, n int, msg string) {
	if len(call.Arguments) < n {
		panic(a.runtime.ToValue(msg))
	}
}

// optionalString returns argument i as a string, or "" when it is absent,
// undefined or null.
func optionalString(call goja.FunctionCall, i int) string {
	if len(call.Arguments) <= i {
		return ""
	}
	v := call.Arguments[i]
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return ""
	}
	return v.String()
}

// toUint64 converts a Goja value to uint64.
// Panics with a JS exception if the value is negative.
func toUint64(vm *goja.Runtime, v goja.Value) uint64 {
	switch val := v.Export().(type) {
	case int64:
		if val < 0 {
			panic(vm.ToValue("value cannot be negative"))
		}
		return uint64(val)
	case float64:
		if val < 0 {
			panic(vm.ToValue("value cannot be negative"))
		}
		return uint64(val)
	case int:
		if val < 0 {
			panic(vm.ToValue("value cannot be negative"))
		}
		return uint64(val)
	case uint64:
		return val
	default:
		i := v.ToInteger()
		if i < 0 {
			panic(vm.ToValue("value cannot be negative"))
		}
		return uint64(i)
	}
}

// errNegativeValue is returned when a negative value is passed where uint64 is expected.
var errNegativeValue = fmt.Errorf("value cannot be negative")

// toUint64Interface converts an interface{} to uint64.
// Returns error for negative values or unsupported types.
func toUint64Interface(v interface{}) (uint64, error) {
	switch val := v.(type) {
	case int64:
		if val < 0 {
			return 0, errNegativeValue
		}
		return uint64(val), nil
	case float64:
		if val < 0 {
			return 0, errNegativeValue
		}
		return uint64(val), nil
	case int:
		if val < 0 {
			return 0, errNegativeValue
		}
		return uint64(val), nil
	case uint64:
		return val, nil
	default:
		return 0, fmt.Errorf("unsupported type for uint64 conversion: %T", v)
	}
}

// toArgs converts an exported JS array into application arguments.
// Strings use the shell argument prefixes (0x, b64:, addr:, str:), whole
// numbers become their decimal text and byte arrays pass through.
func (a *API) toArgs(v interface{}) ([][]byte, error) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("args must be an array, got %T", v)
	}
	out := make([][]byte, 0, len(items))
	for i, item := range items {
		switch val := item.(type) {
		case string:
			b, err := a.engine.ParseArg(val)
			if err != nil {
				return nil, err
			}
			out = append(out, b)
		case []byte:
			out = append(out, append([]byte(nil), val...))
		case goja.ArrayBuffer:
			out = append(out, append([]byte(nil), val.Bytes()...))
		case int64:
			out = append(out, []byte(strconv.FormatInt(val, 10)))
		case float64:
			if val != float64(int64(val)) {
				return nil, fmt.Errorf("arg %d: %v is not a whole number", i, val)
			}
			out = append(out, []byte(strconv.FormatInt(int64(val), 10)))
		default:
			return nil, fmt.Errorf("arg %d: unsupported type %T", i, item)
		}
	}
	return out, nil
}

func callResultObject(res *engine.CallResult) map[string]interface{} {
	logs := make([]interface{}, len(res.Logs))
	for i, l := range res.Logs {
		logs[i] = logObject(l)
	}
	assets := make([]interface{}, len(res.CreatedAssets))
	for i, id := range res.CreatedAssets {
		assets[i] = id
	}
	return map[string]interface{}{
		"txid":          res.TxID,
		"round":         res.Round,
		"app":           res.AppID,
		"appAddress":    res.AppAddress,
		"logs":          logs,
		"innerTxns":     res.InnerTxns,
		"createdAssets": assets,
	}
}

func logObject(l engine.LogView) map[string]interface{} {
	fields := make(map[string]interface{}, len(l.Fields))
	for k, v := range l.Fields {
		fields[k] = v
	}
	return map[string]interface{}{
		"seq":    l.Seq,
		"round":  l.Round,
		"app":    l.AppID,
		"txid":   l.TxID,
		"kind":   l.Kind,
		"fields": fields,
		"raw":    l.Raw,
	}
}
