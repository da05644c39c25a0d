// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package ledger

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/trustcampus/campusapps/internal/avm"
)

// Asset parameter limits enforced on inner asset creation.
const (
	maxAssetNameLen = 32
	maxUnitNameLen  = 8
	maxAssetURLLen  = 96
)

// callHost is the avm.Host a program sees during one call.
type callHost struct {
	pending *overlay
	round   uint64
}

// Log implements avm.Host.
func (h *callHost) Log(record []byte) error {
	if len(h.pending.logs) >= avm.MaxLogCalls {
		return fmt.Errorf("%w: more than %d log calls", ErrLimitExceeded, avm.MaxLogCalls)
	}
	if h.pending.logBytes+len(record) > avm.MaxLogSize {
		return fmt.Errorf("%w: logs exceed %d bytes", ErrLimitExceeded, avm.MaxLogSize)
	}
	h.pending.logs = append(h.pending.logs, append([]byte(nil), record...))
	h.pending.logBytes += len(record)
	return nil
}

// SubmitInner implements avm.Host. Inner transactions apply to the pending
// overlay immediately so later steps of the same call observe their effects.
func (h *callHost) SubmitInner(ctx context.Context, txn types.Transaction) (avm.InnerResult, error) {
	if err := ctx.Err(); err != nil {
		return avm.InnerResult{}, err
	}
	if len(h.pending.inner) >= avm.MaxInnerTxns {
		return avm.InnerResult{}, fmt.Errorf("%w: more than %d inner transactions", ErrLimitExceeded, avm.MaxInnerTxns)
	}

	txn.FirstValid = types.Round(h.round)
	txn.LastValid = types.Round(h.round)

	var res avm.InnerResult
	switch txn.Type {
	case types.AssetConfigTx:
		if txn.ConfigAsset != 0 {
			return res, fmt.Errorf("%w: asset reconfiguration", ErrUnsupportedInner)
		}
		id, err := h.createAsset(txn)
		if err != nil {
			return res, err
		}
		res.CreatedAssetID = id
	case types.AssetTransferTx:
		if err := h.transferAsset(txn); err != nil {
			return res, err
		}
	default:
		return res, fmt.Errorf("%w: type %q", ErrUnsupportedInner, txn.Type)
	}

	h.pending.inner = append(h.pending.inner, txn)
	res.TxID = crypto.GetTxID(txn)
	return res, nil
}

func validateAssetParams(p types.AssetParams) error {
	switch {
	case p.Total == 0:
		return fmt.Errorf("%w: total supply is zero", ErrInvalidAssetParams)
	case p.Decimals > 19:
		return fmt.Errorf("%w: %d decimals", ErrInvalidAssetParams, p.Decimals)
	case len(p.AssetName) > maxAssetNameLen:
		return fmt.Errorf("%w: asset name longer than %d bytes", ErrInvalidAssetParams, maxAssetNameLen)
	case len(p.UnitName) > maxUnitNameLen:
		return fmt.Errorf("%w: unit name longer than %d bytes", ErrInvalidAssetParams, maxUnitNameLen)
	case len(p.URL) > maxAssetURLLen:
		return fmt.Errorf("%w: url longer than %d bytes", ErrInvalidAssetParams, maxAssetURLLen)
	}
	return nil
}

func (h *callHost) createAsset(txn types.Transaction) (types.AssetIndex, error) {
	if err := validateAssetParams(txn.AssetParams); err != nil {
		return 0, err
	}
	id := types.AssetIndex(h.pending.allocIndex())
	h.pending.putAsset(AssetInfo{ID: id, Creator: txn.Sender, Params: txn.AssetParams})
	// The creator's holding starts with the whole supply and is never frozen.
	h.pending.putHolding(txn.Sender, id, Holding{Amount: txn.AssetParams.Total})
	return id, nil
}

// transferAsset moves units between holdings. A receiver without a holding
// gets one created with the asset's default-frozen flag. Frozen holdings may
// only be moved by the asset's freeze or clawback account.
func (h *callHost) transferAsset(txn types.Transaction) error {
	asset, ok := h.pending.asset(txn.XferAsset)
	if !ok {
		return fmt.Errorf("%w: %d", ErrAssetNotFound, txn.XferAsset)
	}
	if !txn.AssetSender.IsZero() || !txn.AssetCloseTo.IsZero() {
		return fmt.Errorf("%w: clawback and close-to transfers", ErrUnsupportedInner)
	}

	from, ok := h.pending.holding(txn.Sender, asset.ID)
	if !ok || from.Amount < txn.AssetAmount {
		return fmt.Errorf("%w: %s holds %d of asset %d, needs %d", ErrInsufficientBalance, txn.Sender, from.Amount, asset.ID, txn.AssetAmount)
	}
	to, ok := h.pending.holding(txn.AssetReceiver, asset.ID)
	if !ok {
		to = Holding{Frozen: asset.Params.DefaultFrozen}
	}

	privileged := txn.Sender == asset.Params.Clawback || txn.Sender == asset.Params.Freeze
	if (from.Frozen || to.Frozen) && !privileged {
		return fmt.Errorf("%w: asset %d", ErrFrozen, asset.ID)
	}

	if txn.Sender == txn.AssetReceiver {
		h.pending.putHolding(txn.Sender, asset.ID, from)
		return nil
	}
	from.Amount -= txn.AssetAmount
	to.Amount += txn.AssetAmount
	h.pending.putHolding(txn.Sender, asset.ID, from)
	h.pending.putHolding(txn.AssetReceiver, asset.ID, to)
	return nil
}

var _ avm.Host = (*callHost)(nil)
