// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package ledger

import (
	"context"

	"github.com/algorand/go-algorand-sdk/v2/types"
)

// Delta is everything one accepted call changed. It is handed to the
// Persister before the in-memory state is updated.
type Delta struct {
	Round     uint64
	TxID      string
	NextIndex uint64

	CreatedApp    *AppRecord
	UpdatedApp    *AppRecord
	DeletedApp    types.AppIndex
	OptedIn       []LocalState
	ClosedOut     []LocalState
	Assets        []AssetInfo
	Holdings      []HoldingRecord
	Logs          []LogEntry
	InnerTxnCount int
}

// Snapshot is the full committed state, used to restore a ledger.
type Snapshot struct {
	Round     uint64
	NextIndex uint64
	Apps      []AppRecord
	OptIns    []LocalState
	Assets    []AssetInfo
	Holdings  []HoldingRecord
	Logs      []LogEntry
}

// Persister receives every committed delta. A Commit error aborts the call.
type Persister interface {
	Commit(ctx context.Context, d *Delta) error
}
