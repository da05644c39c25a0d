// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Package testutil provides reusable test infrastructure and utilities.
package testutil

import (
	"context"
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/trustcampus/campusapps/internal/avm"
)

// NewAccount generates a fresh account address.
func NewAccount(t *testing.T) types.Address {
	t.Helper()
	return crypto.GenerateAccount().Address
}

// Args converts strings to call arguments.
func Args(args ...string) [][]byte {
	out := make([][]byte, len(args))
	for i, a := range args {
		out[i] = []byte(a)
	}
	return out
}

// Host is an avm.Host that records logs and inner transactions without a ledger.
type Host struct {
	Logs      [][]byte
	Inner     []types.Transaction
	NextAsset types.AssetIndex

	// FailInnerAt makes the n-th inner submission (1-based) fail with FailErr.
	FailInnerAt int
	FailErr     error
}

// Log implements avm.Host.
func (h *Host) Log(record []byte) error {
	h.Logs = append(h.Logs, append([]byte(nil), record...))
	return nil
}

// SubmitInner implements avm.Host. Asset creations get sequential ids
// starting after NextAsset.
func (h *Host) SubmitInner(_ context.Context, txn types.Transaction) (avm.InnerResult, error) {
	if h.FailInnerAt > 0 && len(h.Inner)+1 == h.FailInnerAt {
		return avm.InnerResult{}, h.FailErr
	}
	h.Inner = append(h.Inner, txn)
	res := avm.InnerResult{TxID: crypto.GetTxID(txn)}
	if txn.Type == types.AssetConfigTx && txn.ConfigAsset == 0 {
		h.NextAsset++
		res.CreatedAssetID = h.NextAsset
	}
	return res, nil
}

// Env builds an environment for a call to application appID created by creator.
func Env(call avm.Call, appID types.AppIndex, creator types.Address, host avm.Host) *avm.Env {
	call.AppID = appID
	return avm.NewEnv(call, avm.Global{
		CurrentApplicationID:      appID,
		CurrentApplicationAddress: crypto.GetApplicationAddress(uint64(appID)),
		CreatorAddress:            creator,
	}, host)
}

var _ avm.Host = (*Host)(nil)
