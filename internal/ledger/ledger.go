// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Package ledger is an in-process host ledger for campus programs. It
// delivers calls to programs, owns the append-only log, executes inner
// transactions and guarantees that every call commits all of its effects or
// none of them.
//
// The ledger is deterministic and single-writer: calls are serialized and
// each accepted call closes one round.
package ledger

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/trustcampus/campusapps/internal/avm"
	"github.com/trustcampus/campusapps/internal/programs"
	"github.com/trustcampus/campusapps/internal/util"
)

// Ledger runs campus programs.
type Ledger struct {
	mu        sync.Mutex
	st        *state
	opts      programs.Options
	persister Persister
	now       func() time.Time
}

// Option is a functional option for configuring the Ledger
type Option func(*Ledger) error

// WithPersister writes every commit through p before it becomes visible.
func WithPersister(p Persister) Option {
	return func(l *Ledger) error {
		l.persister = p
		return nil
	}
}

// WithProgramOptions sets the options programs are built with.
func WithProgramOptions(o programs.Options) Option {
	return func(l *Ledger) error {
		l.opts = o
		return nil
	}
}

// WithClock sets the source of LatestTimestamp.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) error {
		l.now = now
		return nil
	}
}

// WithSnapshot restores previously committed state. It must come after
// WithProgramOptions so restored programs get the right options.
func WithSnapshot(s *Snapshot) Option {
	return func(l *Ledger) error {
		return l.restore(s)
	}
}

// New creates an empty ledger, then applies options.
func New(opts ...Option) (*Ledger, error) {
	l := &Ledger{
		st:   newState(),
		opts: programs.DefaultOptions(),
		now:  time.Now,
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Request is a call plus the program name used by deployments and updates.
type Request struct {
	Call avm.Call
	// Program names a registered program. Required when Call.AppID is 0;
	// optional for UpdateApplication, where it replaces the program.
	Program string
}

// Result describes an accepted call.
type Result struct {
	TxID          string
	Round         uint64
	AppID         types.AppIndex
	Logs          [][]byte
	InnerTxns     []types.Transaction
	CreatedAssets []types.AssetIndex
}

// Deploy creates a new application running the named program.
func (l *Ledger) Deploy(ctx context.Context, sender types.Address, program string) (*Result, error) {
	return l.Submit(ctx, Request{Call: avm.Call{Sender: sender, OnCompletion: types.NoOpOC}, Program: program})
}

// Apply delivers a call to an existing application.
func (l *Ledger) Apply(ctx context.Context, call avm.Call) (*Result, error) {
	return l.Submit(ctx, Request{Call: call})
}

// ApplyTransaction delivers an application call transaction. For creations
// and updates the approval program bytes carry the program name.
func (l *Ledger) ApplyTransaction(ctx context.Context, txn types.Transaction) (*Result, error) {
	call, err := avm.CallFromTransaction(txn)
	if err != nil {
		return nil, err
	}
	return l.Submit(ctx, Request{Call: call, Program: string(txn.ApprovalProgram)})
}

func checkCallLimits(call avm.Call) error {
	if len(call.Args) > avm.MaxAppArgs {
		return fmt.Errorf("%w: %d arguments (max %d)", ErrLimitExceeded, len(call.Args), avm.MaxAppArgs)
	}
	total := 0
	for _, a := range call.Args {
		total += len(a)
	}
	if total > avm.MaxAppTotalArgLen {
		return fmt.Errorf("%w: %d argument bytes (max %d)", ErrLimitExceeded, total, avm.MaxAppTotalArgLen)
	}
	return nil
}

// Submit runs a request and commits its effects if the program accepts.
// Program rejections match avm.ErrRejected; host refusals match the errors
// of this package.
func (l *Ledger) Submit(ctx context.Context, req Request) (*Result, error) {
	call := req.Call
	if err := checkCallLimits(call); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	pending := newOverlay(l.st)
	round := l.st.round + 1

	target, err := l.target(pending, req)
	if err != nil {
		return nil, err
	}

	creator, _ := target.creator.Address()
	global := avm.Global{
		CurrentApplicationID:      target.id,
		CurrentApplicationAddress: target.address,
		CreatorAddress:            creator,
		Round:                     round,
		LatestTimestamp:           l.now().Unix(),
	}
	host := &callHost{pending: pending, round: round}
	env := avm.NewEnv(call, global, host)

	txn := call.Transaction()
	txn.FirstValid = types.Round(round)
	txn.LastValid = types.Round(round)
	txid := crypto.GetTxID(txn)

	if err := target.program.Approve(ctx, env); err != nil {
		util.Debug("call rejected", "app", target.id, "program", target.name,
			"on_completion", avm.OnCompletionName(call.OnCompletion), "sender", call.Sender.String(), "error", err)
		return nil, fmt.Errorf("app %d: %w", target.id, err)
	}

	delta := l.buildDelta(pending, target, req, round, txid)
	if l.persister != nil {
		if err := l.persister.Commit(ctx, delta); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPersist, err)
		}
	}
	l.merge(pending, target, delta)

	util.Debug("call committed", "app", target.id, "program", target.name, "round", round,
		"logs", len(delta.Logs), "inner", delta.InnerTxnCount)

	res := &Result{
		TxID:      txid,
		Round:     round,
		AppID:     target.id,
		InnerTxns: pending.inner,
	}
	for _, e := range delta.Logs {
		res.Logs = append(res.Logs, bytes.Clone(e.Record))
	}
	for _, a := range delta.Assets {
		res.CreatedAssets = append(res.CreatedAssets, a.ID)
	}
	return res, nil
}

// target resolves the application a request runs against. A deployment gets
// a fresh app whose creator identity is the sender; it only joins the ledger
// when the call commits.
func (l *Ledger) target(pending *overlay, req Request) (*app, error) {
	call := req.Call
	if call.IsDeployment() {
		prog, err := l.program(req.Program)
		if err != nil {
			return nil, err
		}
		id := types.AppIndex(pending.allocIndex())
		a := &app{
			id:      id,
			name:    prog.Name(),
			program: prog,
			address: crypto.GetApplicationAddress(uint64(id)),
			optedIn: make(map[types.Address]struct{}),
		}
		if err := a.creator.Init(call.Sender); err != nil {
			return nil, err
		}
		return a, nil
	}

	a, ok := l.st.apps[call.AppID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrAppNotFound, call.AppID)
	}
	_, opted := a.optedIn[call.Sender]
	switch call.OnCompletion {
	case types.OptInOC:
		if opted {
			return nil, fmt.Errorf("%w: %s in app %d", ErrAlreadyOptedIn, call.Sender, a.id)
		}
	case types.CloseOutOC:
		if !opted {
			return nil, fmt.Errorf("%w: %s in app %d", ErrNotOptedIn, call.Sender, a.id)
		}
	case types.UpdateApplicationOC:
		if req.Program != "" && !programs.Has(req.Program) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProgram, req.Program)
		}
	}
	return a, nil
}

func (l *Ledger) program(name string) (avm.Program, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: deployment names no program", ErrUnknownProgram)
	}
	p, err := programs.New(name, l.opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownProgram, err)
	}
	return p, nil
}

func (l *Ledger) buildDelta(pending *overlay, target *app, req Request, round uint64, txid string) *Delta {
	call := req.Call
	d := &Delta{
		Round:         round,
		TxID:          txid,
		NextIndex:     pending.nextIndex,
		Assets:        pending.createdAssets(),
		Holdings:      pending.changedHoldings(),
		InnerTxnCount: len(pending.inner),
	}
	local := LocalState{App: target.id, Account: call.Sender}

	if call.IsDeployment() {
		rec := target.record()
		d.CreatedApp = &rec
		if call.OnCompletion == types.OptInOC {
			d.OptedIn = append(d.OptedIn, local)
		}
	} else {
		switch call.OnCompletion {
		case types.OptInOC:
			d.OptedIn = append(d.OptedIn, local)
		case types.CloseOutOC:
			d.ClosedOut = append(d.ClosedOut, local)
		case types.DeleteApplicationOC:
			d.DeletedApp = target.id
		case types.UpdateApplicationOC:
			if req.Program != "" {
				rec := target.record()
				rec.Program = req.Program
				d.UpdatedApp = &rec
			}
		}
	}

	seq := l.st.logSeq
	for _, rec := range pending.logs {
		seq++
		d.Logs = append(d.Logs, LogEntry{Seq: seq, Round: round, AppID: target.id, TxID: txid, Record: bytes.Clone(rec), Program: target.name})
	}
	return d
}

// merge makes an accepted call's effects visible.
func (l *Ledger) merge(pending *overlay, target *app, d *Delta) {
	st := l.st
	st.round = d.Round
	st.nextIndex = d.NextIndex

	for _, a := range d.Assets {
		st.assets[a.ID] = a
	}
	for _, h := range d.Holdings {
		st.holdings[holdingKey{account: h.Account, asset: h.Asset}] = h.Holding
	}
	if n := len(d.Logs); n > 0 {
		st.logs = append(st.logs, d.Logs...)
		st.logSeq = d.Logs[n-1].Seq
	}

	if d.CreatedApp != nil {
		st.apps[target.id] = target
	}
	for _, ls := range d.OptedIn {
		target.optedIn[ls.Account] = struct{}{}
	}
	for _, ls := range d.ClosedOut {
		delete(target.optedIn, ls.Account)
	}
	if d.UpdatedApp != nil {
		if prog, err := programs.New(d.UpdatedApp.Program, l.opts); err == nil {
			target.name = prog.Name()
			target.program = prog
		}
	}
	if d.DeletedApp != 0 {
		delete(st.apps, d.DeletedApp)
	}
}

func (l *Ledger) restore(s *Snapshot) error {
	if s == nil {
		return nil
	}
	st := newState()
	st.round = s.Round
	if s.NextIndex > st.nextIndex {
		st.nextIndex = s.NextIndex
	}

	for _, rec := range s.Apps {
		prog, err := l.program(rec.Program)
		if err != nil {
			return fmt.Errorf("restore app %d: %w", rec.ID, err)
		}
		a := &app{
			id:      rec.ID,
			name:    prog.Name(),
			program: prog,
			address: crypto.GetApplicationAddress(uint64(rec.ID)),
			optedIn: make(map[types.Address]struct{}),
		}
		if err := a.creator.Init(rec.Creator); err != nil {
			return err
		}
		st.apps[rec.ID] = a
	}
	for _, ls := range s.OptIns {
		if a, ok := st.apps[ls.App]; ok {
			a.optedIn[ls.Account] = struct{}{}
		}
	}
	for _, a := range s.Assets {
		st.assets[a.ID] = a
	}
	for _, h := range s.Holdings {
		st.holdings[holdingKey{account: h.Account, asset: h.Asset}] = h.Holding
	}
	st.logs = append(st.logs, s.Logs...)
	for _, e := range s.Logs {
		if e.Seq > st.logSeq {
			st.logSeq = e.Seq
		}
	}
	l.st = st
	return nil
}

// Round returns the last committed round.
func (l *Ledger) Round() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.st.round
}

// App returns a live application.
func (l *Ledger) App(id types.AppIndex) (AppInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.st.apps[id]
	if !ok {
		return AppInfo{}, fmt.Errorf("%w: %d", ErrAppNotFound, id)
	}
	return a.info(), nil
}

// Apps returns all live applications ordered by id.
func (l *Ledger) Apps() []AppInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]AppInfo, 0, len(l.st.apps))
	for _, a := range l.st.apps {
		out = append(out, a.info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IsOptedIn reports whether account holds local state in the application.
func (l *Ledger) IsOptedIn(id types.AppIndex, account types.Address) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.st.apps[id]
	if !ok {
		return false
	}
	_, opted := a.optedIn[account]
	return opted
}

// Asset returns a created asset.
func (l *Ledger) Asset(id types.AssetIndex) (AssetInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.st.assets[id]
	if !ok {
		return AssetInfo{}, fmt.Errorf("%w: %d", ErrAssetNotFound, id)
	}
	return a, nil
}

// Holding returns an account's holding of an asset; ok is false if the
// account never held it.
func (l *Ledger) Holding(account types.Address, asset types.AssetIndex) (Holding, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.st.holdings[holdingKey{account: account, asset: asset}]
	return h, ok
}

// Logs returns the log stream of an application in commit order. An app id
// of 0 returns the stream of every application. Records are copies.
func (l *Ledger) Logs(id types.AppIndex) []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, 0)
	for _, e := range l.st.logs {
		if id == 0 || e.AppID == id {
			e.Record = bytes.Clone(e.Record)
			out = append(out, e)
		}
	}
	return out
}
