// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/trustcampus/campusapps/internal/ledger"
)

// Load reads the full committed state.
func (s *Store) Load(ctx context.Context) (*ledger.Snapshot, error) {
	snap := &ledger.Snapshot{}
	var err error

	if snap.Round, err = s.meta(ctx, metaRound); err != nil {
		return nil, err
	}
	if snap.NextIndex, err = s.meta(ctx, metaNextIndex); err != nil {
		return nil, err
	}
	if snap.Apps, err = s.apps(ctx); err != nil {
		return nil, err
	}
	if snap.OptIns, err = s.optIns(ctx); err != nil {
		return nil, err
	}
	if snap.Assets, err = s.assets(ctx); err != nil {
		return nil, err
	}
	if snap.Holdings, err = s.holdings(ctx); err != nil {
		return nil, err
	}
	if snap.Logs, err = s.Logs(ctx, 0, 0); err != nil {
		return nil, err
	}
	return snap, nil
}

// Logs returns the log records of an application with seq > afterSeq in
// commit order. An app id of 0 selects every application.
func (s *Store) Logs(ctx context.Context, app types.AppIndex, afterSeq uint64) ([]ledger.LogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, round, app_id, txid, record, program FROM logs
		WHERE seq > ? AND (? = 0 OR app_id = ?)
		ORDER BY seq ASC
	`, afterSeq, uint64(app), uint64(app))
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	defer rows.Close()

	var out []ledger.LogEntry
	for rows.Next() {
		var e ledger.LogEntry
		var appID uint64
		if err := rows.Scan(&e.Seq, &e.Round, &appID, &e.TxID, &e.Record, &e.Program); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		e.AppID = types.AppIndex(appID)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate logs: %w", err)
	}
	return out, nil
}

func (s *Store) meta(ctx context.Context, key string) (uint64, error) {
	var v int64
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", key, err)
	}
	return uint64(v), nil // #nosec G115 - written from uint64 below 2^63
}

func (s *Store) apps(ctx context.Context) ([]ledger.AppRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, program, creator FROM apps ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query apps: %w", err)
	}
	defer rows.Close()

	var out []ledger.AppRecord
	for rows.Next() {
		var id uint64
		var program, creator string
		if err := rows.Scan(&id, &program, &creator); err != nil {
			return nil, fmt.Errorf("scan app: %w", err)
		}
		addr, err := types.DecodeAddress(creator)
		if err != nil {
			return nil, fmt.Errorf("app %d creator: %w", id, err)
		}
		out = append(out, ledger.AppRecord{ID: types.AppIndex(id), Program: program, Creator: addr})
	}
	return out, rows.Err()
}

func (s *Store) optIns(ctx context.Context) ([]ledger.LocalState, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT app_id, account FROM optins ORDER BY app_id, account`)
	if err != nil {
		return nil, fmt.Errorf("query opt-ins: %w", err)
	}
	defer rows.Close()

	var out []ledger.LocalState
	for rows.Next() {
		var app uint64
		var account string
		if err := rows.Scan(&app, &account); err != nil {
			return nil, fmt.Errorf("scan opt-in: %w", err)
		}
		addr, err := types.DecodeAddress(account)
		if err != nil {
			return nil, fmt.Errorf("opt-in account: %w", err)
		}
		out = append(out, ledger.LocalState{App: types.AppIndex(app), Account: addr})
	}
	return out, rows.Err()
}

func (s *Store) assets(ctx context.Context) ([]ledger.AssetInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, creator, params FROM assets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query assets: %w", err)
	}
	defer rows.Close()

	var out []ledger.AssetInfo
	for rows.Next() {
		var id uint64
		var creator string
		var raw []byte
		if err := rows.Scan(&id, &creator, &raw); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		a := ledger.AssetInfo{ID: types.AssetIndex(id)}
		if a.Creator, err = types.DecodeAddress(creator); err != nil {
			return nil, fmt.Errorf("asset %d creator: %w", id, err)
		}
		if err := msgpack.Decode(raw, &a.Params); err != nil {
			return nil, fmt.Errorf("asset %d params: %w", id, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) holdings(ctx context.Context) ([]ledger.HoldingRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT account, asset_id, amount, frozen FROM holdings ORDER BY asset_id, account`)
	if err != nil {
		return nil, fmt.Errorf("query holdings: %w", err)
	}
	defer rows.Close()

	var out []ledger.HoldingRecord
	for rows.Next() {
		var account string
		var asset uint64
		var h ledger.Holding
		if err := rows.Scan(&account, &asset, &h.Amount, &h.Frozen); err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}
		addr, err := types.DecodeAddress(account)
		if err != nil {
			return nil, fmt.Errorf("holding account: %w", err)
		}
		out = append(out, ledger.HoldingRecord{Account: addr, Asset: types.AssetIndex(asset), Holding: h})
	}
	return out, rows.Err()
}
