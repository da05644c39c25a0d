// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"

	"github.com/trustcampus/campusapps/internal/ledger"
)

// Commit writes one accepted call. It implements ledger.Persister.
func (s *Store) Commit(ctx context.Context, d *ledger.Delta) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("commit round %d: %w", d.Round, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = writeDelta(ctx, tx, d); err != nil {
		return fmt.Errorf("commit round %d: %w", d.Round, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit round %d: %w", d.Round, err)
	}
	return nil
}

func writeDelta(ctx context.Context, tx *sql.Tx, d *ledger.Delta) error {
	for key, value := range map[string]uint64{metaRound: d.Round, metaNextIndex: d.NextIndex} {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO meta (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, int64(value)); err != nil { // #nosec G115 - rounds and ids stay far below 2^63
			return fmt.Errorf("write %s: %w", key, err)
		}
	}

	if a := d.CreatedApp; a != nil {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO apps (id, program, creator, created_round) VALUES (?, ?, ?, ?)
		`, uint64(a.ID), a.Program, a.Creator.String(), d.Round); err != nil {
			return fmt.Errorf("write app %d: %w", a.ID, err)
		}
	}
	if a := d.UpdatedApp; a != nil {
		if _, err := tx.ExecContext(ctx, `UPDATE apps SET program = ? WHERE id = ?`, a.Program, uint64(a.ID)); err != nil {
			return fmt.Errorf("update app %d: %w", a.ID, err)
		}
	}

	for _, ls := range d.OptedIn {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO optins (app_id, account) VALUES (?, ?)
		`, uint64(ls.App), ls.Account.String()); err != nil {
			return fmt.Errorf("write opt-in %s/%d: %w", ls.Account, ls.App, err)
		}
	}
	for _, ls := range d.ClosedOut {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM optins WHERE app_id = ? AND account = ?
		`, uint64(ls.App), ls.Account.String()); err != nil {
			return fmt.Errorf("delete opt-in %s/%d: %w", ls.Account, ls.App, err)
		}
	}
	if d.DeletedApp != 0 {
		// optins go with the app through ON DELETE CASCADE
		if _, err := tx.ExecContext(ctx, `DELETE FROM apps WHERE id = ?`, uint64(d.DeletedApp)); err != nil {
			return fmt.Errorf("delete app %d: %w", d.DeletedApp, err)
		}
	}

	for _, a := range d.Assets {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO assets (id, creator, params) VALUES (?, ?, ?)
		`, uint64(a.ID), a.Creator.String(), msgpack.Encode(a.Params)); err != nil {
			return fmt.Errorf("write asset %d: %w", a.ID, err)
		}
	}
	for _, h := range d.Holdings {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO holdings (account, asset_id, amount, frozen) VALUES (?, ?, ?, ?)
			ON CONFLICT(account, asset_id) DO UPDATE SET amount = excluded.amount, frozen = excluded.frozen
		`, h.Account.String(), uint64(h.Asset), h.Amount, h.Frozen); err != nil {
			return fmt.Errorf("write holding %s/%d: %w", h.Account, h.Asset, err)
		}
	}

	for _, e := range d.Logs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO logs (seq, round, app_id, txid, record, program) VALUES (?, ?, ?, ?, ?, ?)
		`, e.Seq, e.Round, uint64(e.AppID), e.TxID, e.Record, e.Program); err != nil {
			return fmt.Errorf("write log %d: %w", e.Seq, err)
		}
	}
	return nil
}
