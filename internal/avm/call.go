// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Package avm defines the interface between ledger-resident programs and the
// host ledger that runs them: the inbound call, the global facts a program may
// read, the log facility and inner transaction submission.
package avm

import (
	"fmt"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/types"
)

// Host limits mirrored from the AVM consensus parameters.
const (
	MaxAppArgs         = 16
	MaxAppTotalArgLen  = 2048
	MaxLogCalls        = 32
	MaxLogSize         = 1024
	MaxInnerTxns       = 16
	AddressLength      = 32
	DeploymentAppIndex = types.AppIndex(0)
)

// Call is the immutable per-invocation input delivered by the host.
type Call struct {
	Sender       types.Address
	OnCompletion types.OnCompletion
	Args         [][]byte
	AppID        types.AppIndex
}

// IsDeployment reports whether this is the program's first-ever invocation.
func (c Call) IsDeployment() bool {
	return c.AppID == DeploymentAppIndex
}

// NumArgs returns the declared argument count.
func (c Call) NumArgs() int {
	return len(c.Args)
}

// Arg returns argument i, or ErrShape if i is outside the declared arguments.
func (c Call) Arg(i int) ([]byte, error) {
	if i < 0 || i >= len(c.Args) {
		return nil, fmt.Errorf("%w: argument %d of %d", ErrShape, i, len(c.Args))
	}
	return c.Args[i], nil
}

// CallFromTransaction converts an application call transaction into a Call.
func CallFromTransaction(txn types.Transaction) (Call, error) {
	if txn.Type != types.ApplicationCallTx {
		return Call{}, fmt.Errorf("transaction type %q is not an application call", txn.Type)
	}
	args := make([][]byte, len(txn.ApplicationArgs))
	for i, a := range txn.ApplicationArgs {
		args[i] = append([]byte(nil), a...)
	}
	return Call{
		Sender:       txn.Sender,
		OnCompletion: txn.OnCompletion,
		Args:         args,
		AppID:        txn.ApplicationID,
	}, nil
}

// Transaction renders the call as an application call transaction.
func (c Call) Transaction() types.Transaction {
	return types.Transaction{
		Type: types.ApplicationCallTx,
		Header: types.Header{
			Sender: c.Sender,
		},
		ApplicationFields: types.ApplicationFields{
			ApplicationCallTxnFields: types.ApplicationCallTxnFields{
				ApplicationID:   c.AppID,
				OnCompletion:    c.OnCompletion,
				ApplicationArgs: c.Args,
			},
		},
	}
}

// OnCompletionName returns the conventional name of an OnCompletion value.
func OnCompletionName(oc types.OnCompletion) string {
	switch oc {
	case types.NoOpOC:
		return "NoOp"
	case types.OptInOC:
		return "OptIn"
	case types.CloseOutOC:
		return "CloseOut"
	case types.ClearStateOC:
		return "ClearState"
	case types.UpdateApplicationOC:
		return "UpdateApplication"
	case types.DeleteApplicationOC:
		return "DeleteApplication"
	default:
		return fmt.Sprintf("OnCompletion(%d)", oc)
	}
}

// ParseOnCompletion maps a case-insensitive name ("noop", "optin", "update", ...)
// to an OnCompletion value.
func ParseOnCompletion(name string) (types.OnCompletion, error) {
	switch normalizeName(name) {
	case "", "noop", "call":
		return types.NoOpOC, nil
	case "optin":
		return types.OptInOC, nil
	case "closeout":
		return types.CloseOutOC, nil
	case "clearstate", "clear":
		return types.ClearStateOC, nil
	case "updateapplication", "update":
		return types.UpdateApplicationOC, nil
	case "deleteapplication", "delete":
		return types.DeleteApplicationOC, nil
	}
	return 0, fmt.Errorf("unknown on-completion %q", name)
}

func normalizeName(s string) string {
	return strings.ToLower(nameReplacer.Replace(s))
}

var nameReplacer = strings.NewReplacer("_", "", "-", "", " ", "")
