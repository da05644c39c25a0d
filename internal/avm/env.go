// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package avm

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/types"
)

// Program is a ledger-resident application. Approve returns nil to accept the
// call; any error rejects the whole call and the host discards its effects.
type Program interface {
	Name() string
	Approve(ctx context.Context, env *Env) error
}

// Global holds the ledger-global facts readable during a call.
type Global struct {
	CurrentApplicationID      types.AppIndex
	CurrentApplicationAddress types.Address
	CreatorAddress            types.Address
	Round                     uint64
	LatestTimestamp           int64
}

// InnerResult is what the host reports back for a committed inner transaction.
type InnerResult struct {
	TxID           string
	CreatedAssetID types.AssetIndex
}

// InnerExecutor executes a follow-on transaction issued by the program.
type InnerExecutor interface {
	SubmitInner(ctx context.Context, txn types.Transaction) (InnerResult, error)
}

// Host is the facility set a running program sees.
type Host interface {
	InnerExecutor
	Log(record []byte) error
}

// Env is the execution environment of a single call.
type Env struct {
	Call   Call
	Global Global

	host Host
}

// NewEnv binds a call and its global facts to a host.
func NewEnv(call Call, global Global, host Host) *Env {
	return &Env{Call: call, Global: global, host: host}
}

// Log appends a record to the host's log for this call.
func (e *Env) Log(record []byte) error {
	if e.host == nil {
		return ErrNoHost
	}
	return e.host.Log(record)
}

// SubmitInner issues a follow-on transaction signed by the application
// account. A zero sender is filled with the application address; any other
// sender is refused since the program can only act as itself.
func (e *Env) SubmitInner(ctx context.Context, txn types.Transaction) (InnerResult, error) {
	if e.host == nil {
		return InnerResult{}, ErrNoHost
	}
	if txn.Sender.IsZero() {
		txn.Sender = e.Global.CurrentApplicationAddress
	}
	if txn.Sender != e.Global.CurrentApplicationAddress {
		return InnerResult{}, fmt.Errorf("%w: inner sender %s is not the application account", ErrProtocol, txn.Sender)
	}
	return e.host.SubmitInner(ctx, txn)
}

// Executor exposes the environment as an InnerExecutor.
func (e *Env) Executor() InnerExecutor {
	return envExecutor{e}
}

type envExecutor struct{ env *Env }

func (x envExecutor) SubmitInner(ctx context.Context, txn types.Transaction) (InnerResult, error) {
	return x.env.SubmitInner(ctx, txn)
}
