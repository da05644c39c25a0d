// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package ledger

import (
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/trustcampus/campusapps/internal/avm"
)

// FirstIndex is the first id handed out to applications and assets. Both
// share one counter, as on the real ledger.
const FirstIndex = 1000

// AppRecord is the durable description of a deployed application.
type AppRecord struct {
	ID      types.AppIndex
	Program string
	Creator types.Address
}

// AppInfo describes a live application.
type AppInfo struct {
	AppRecord
	Address types.Address
	OptedIn int
}

// AssetInfo describes an asset created by an application.
type AssetInfo struct {
	ID      types.AssetIndex
	Creator types.Address
	Params  types.AssetParams
}

// Holding is an account's balance of one asset.
type Holding struct {
	Amount uint64
	Frozen bool
}

// HoldingRecord is a holding together with its key.
type HoldingRecord struct {
	Account types.Address
	Asset   types.AssetIndex
	Holding
}

// LocalState identifies an account's opted-in slot in an application.
type LocalState struct {
	App     types.AppIndex
	Account types.Address
}

// LogEntry is one record of the append-only application log. Seq orders the
// stream by commit order across all applications.
type LogEntry struct {
	Seq    uint64
	Round  uint64
	AppID  types.AppIndex
	TxID   string
	Record []byte

	// Program is the program that emitted the record.
	Program string
}

type holdingKey struct {
	account types.Address
	asset   types.AssetIndex
}

type app struct {
	id      types.AppIndex
	name    string
	program avm.Program
	creator avm.CreatorIdentity
	address types.Address
	optedIn map[types.Address]struct{}
}

func (a *app) record() AppRecord {
	creator, _ := a.creator.Address()
	return AppRecord{ID: a.id, Program: a.name, Creator: creator}
}

func (a *app) info() AppInfo {
	return AppInfo{AppRecord: a.record(), Address: a.address, OptedIn: len(a.optedIn)}
}

// state is the committed ledger.
type state struct {
	round     uint64
	nextIndex uint64
	logSeq    uint64
	apps      map[types.AppIndex]*app
	assets    map[types.AssetIndex]AssetInfo
	holdings  map[holdingKey]Holding
	logs      []LogEntry
}

func newState() *state {
	return &state{
		nextIndex: FirstIndex,
		apps:      make(map[types.AppIndex]*app),
		assets:    make(map[types.AssetIndex]AssetInfo),
		holdings:  make(map[holdingKey]Holding),
	}
}
