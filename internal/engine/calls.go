// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package engine

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/trustcampus/campusapps/internal/algo"
	"github.com/trustcampus/campusapps/internal/avm"
	"github.com/trustcampus/campusapps/internal/ledger"
)

// CallRequest describes an application call in user terms.
type CallRequest struct {
	App        uint64
	Sender     string // alias or address; empty uses the default sender
	OnComplete string // noop, optin, closeout, update, delete, clearstate
	Args       [][]byte
	// Program replaces the application's program on update.
	Program string
}

// Call runs an application call.
func (e *Engine) Call(ctx context.Context, req CallRequest) (*CallResult, error) {
	if req.App == 0 {
		return nil, fmt.Errorf("%w: use deploy to create applications", ErrInvalidAppID)
	}
	from, err := e.senderFor(req.Sender)
	if err != nil {
		return nil, err
	}
	oc, err := avm.ParseOnCompletion(req.OnComplete)
	if err != nil {
		return nil, err
	}

	call := avm.Call{
		AppID:        types.AppIndex(req.App),
		Sender:       from,
		OnCompletion: oc,
		Args:         req.Args,
	}
	res, err := e.Ledger.Submit(ctx, ledger.Request{Call: call, Program: req.Program})
	if err != nil {
		return nil, err
	}
	return e.callResult(res), nil
}

// ApplyTransactions runs the application calls among txns in order and
// stops at the first failure. A non-zero app retargets non-creation calls.
func (e *Engine) ApplyTransactions(ctx context.Context, txns []types.Transaction, app uint64) ([]*CallResult, int, error) {
	calls, skipped := algo.AppCalls(txns, types.AppIndex(app))
	var results []*CallResult
	for i, txn := range calls {
		res, err := e.Ledger.ApplyTransaction(ctx, txn)
		if err != nil {
			return results, skipped, fmt.Errorf("application call %d: %w", i+1, err)
		}
		results = append(results, e.callResult(res))
	}
	return results, skipped, nil
}

// ParseArg encodes one textual application argument. Prefixes select the
// encoding:
//
//	0x<hex>          raw bytes
//	b64:<base64>     raw bytes
//	addr:<account>   the 32 raw bytes of an alias or address
//	str:<text>       text, for values that would otherwise match a prefix
//
// Anything else is taken as UTF-8 text.
func (e *Engine) ParseArg(s string) ([]byte, error) {
	switch {
	case strings.HasPrefix(s, "0x"):
		b, err := hex.DecodeString(s[2:])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidArgument, s, err)
		}
		return b, nil
	case strings.HasPrefix(s, "b64:"):
		b, err := base64.StdEncoding.DecodeString(s[4:])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidArgument, s, err)
		}
		return b, nil
	case strings.HasPrefix(s, "addr:"):
		addr, err := e.Account(s[5:])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidArgument, s, err)
		}
		return append([]byte(nil), addr[:]...), nil
	case strings.HasPrefix(s, "str:"):
		return []byte(s[4:]), nil
	default:
		return []byte(s), nil
	}
}

// ParseArgs encodes a list of textual arguments.
func (e *Engine) ParseArgs(args []string) ([][]byte, error) {
	out := make([][]byte, 0, len(args))
	for _, a := range args {
		b, err := e.ParseArg(a)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
