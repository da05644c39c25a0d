// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package ledger

import (
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// overlay holds the pending effects of one call. Reads fall through to the
// committed state; nothing reaches the committed state until the call is
// accepted and merged, so dropping the overlay is the rollback.
type overlay struct {
	base *state

	nextIndex uint64

	assets     map[types.AssetIndex]AssetInfo
	assetOrder []types.AssetIndex

	holdings     map[holdingKey]Holding
	holdingOrder []holdingKey

	logs     [][]byte
	logBytes int

	inner []types.Transaction
}

func newOverlay(base *state) *overlay {
	return &overlay{
		base:      base,
		nextIndex: base.nextIndex,
		assets:    make(map[types.AssetIndex]AssetInfo),
		holdings:  make(map[holdingKey]Holding),
	}
}

// allocIndex hands out the next application/asset id.
func (o *overlay) allocIndex() uint64 {
	id := o.nextIndex
	o.nextIndex++
	return id
}

func (o *overlay) asset(id types.AssetIndex) (AssetInfo, bool) {
	if a, ok := o.assets[id]; ok {
		return a, true
	}
	a, ok := o.base.assets[id]
	return a, ok
}

func (o *overlay) putAsset(a AssetInfo) {
	if _, ok := o.assets[a.ID]; !ok {
		o.assetOrder = append(o.assetOrder, a.ID)
	}
	o.assets[a.ID] = a
}

func (o *overlay) holding(account types.Address, asset types.AssetIndex) (Holding, bool) {
	k := holdingKey{account: account, asset: asset}
	if h, ok := o.holdings[k]; ok {
		return h, true
	}
	h, ok := o.base.holdings[k]
	return h, ok
}

func (o *overlay) putHolding(account types.Address, asset types.AssetIndex, h Holding) {
	k := holdingKey{account: account, asset: asset}
	if _, ok := o.holdings[k]; !ok {
		o.holdingOrder = append(o.holdingOrder, k)
	}
	o.holdings[k] = h
}

func (o *overlay) createdAssets() []AssetInfo {
	out := make([]AssetInfo, 0, len(o.assetOrder))
	for _, id := range o.assetOrder {
		out = append(out, o.assets[id])
	}
	return out
}

func (o *overlay) changedHoldings() []HoldingRecord {
	out := make([]HoldingRecord, 0, len(o.holdingOrder))
	for _, k := range o.holdingOrder {
		out = append(out, HoldingRecord{Account: k.account, Asset: k.asset, Holding: o.holdings[k]})
	}
	return out
}
