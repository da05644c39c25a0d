// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package engine

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/trustcampus/campusapps/internal/ledger"
)

// programOf returns the program an application runs or ran, or "" if the
// session never saw it.
func (e *Engine) programOf(app uint64) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if info, err := e.Ledger.App(types.AppIndex(app)); err == nil {
		e.seen[app] = info.Program
		return info.Program
	}
	return e.seen[app]
}

// Apps lists the live applications.
func (e *Engine) Apps() []AppView {
	infos := e.Ledger.Apps()
	out := make([]AppView, 0, len(infos))
	for _, info := range infos {
		out = append(out, AppView{
			AppID:   uint64(info.ID),
			Program: info.Program,
			Creator: e.FormatAddress(info.Creator),
			Address: info.Address.String(),
			OptedIn: info.OptedIn,
		})
	}
	return out
}

// AppAddress returns the account address of an application id.
func (e *Engine) AppAddress(app uint64) types.Address {
	return crypto.GetApplicationAddress(app)
}

// Asset looks up an asset.
func (e *Engine) Asset(id uint64) (AssetView, error) {
	a, err := e.Ledger.Asset(types.AssetIndex(id))
	if err != nil {
		return AssetView{}, err
	}
	return assetView(a), nil
}

// Holding looks up an account's holding of an asset.
func (e *Engine) Holding(account string, asset uint64) (ledger.Holding, bool, error) {
	addr, err := e.Resolve(account)
	if err != nil {
		return ledger.Holding{}, false, err
	}
	h, ok := e.Ledger.Holding(addr, types.AssetIndex(asset))
	return h, ok, nil
}

// IsOptedIn reports whether account is opted in to app.
func (e *Engine) IsOptedIn(app uint64, account string) (bool, error) {
	addr, err := e.Resolve(account)
	if err != nil {
		return false, err
	}
	return e.Ledger.IsOptedIn(types.AppIndex(app), addr), nil
}

// Logs returns the decoded log stream of app (0 = all apps) after seq.
// Sessions backed by a store read the durable log.
func (e *Engine) Logs(ctx context.Context, app, after uint64) ([]LogView, error) {
	var entries []ledger.LogEntry
	if e.Store != nil {
		var err error
		entries, err = e.Store.Logs(ctx, types.AppIndex(app), after)
		if err != nil {
			return nil, fmt.Errorf("read logs: %w", err)
		}
	} else {
		for _, entry := range e.Ledger.Logs(types.AppIndex(app)) {
			if entry.Seq > after {
				entries = append(entries, entry)
			}
		}
	}

	out := make([]LogView, 0, len(entries))
	for _, entry := range entries {
		program := entry.Program
		if program == "" {
			program = e.programOf(uint64(entry.AppID))
		}
		v := decodeRecord(program, entry.Record)
		v.Seq = entry.Seq
		v.Round = entry.Round
		v.AppID = uint64(entry.AppID)
		v.TxID = entry.TxID
		out = append(out, v)
	}
	return out, nil
}
