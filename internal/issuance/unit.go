// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Package issuance implements multi-step inner transaction protocols as a
// single transactional unit: an ordered list of steps where each step may use
// the results of the steps before it, committed all or nothing.
package issuance

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/trustcampus/campusapps/internal/avm"
)

// Receipts are the host results of committed steps, in step order.
type Receipts []avm.InnerResult

// CreatedAsset returns the asset id created by the given step.
func (r Receipts) CreatedAsset(step int) (types.AssetIndex, error) {
	if step < 0 || step >= len(r) {
		return 0, fmt.Errorf("step %d has not committed", step)
	}
	if r[step].CreatedAssetID == 0 {
		return 0, fmt.Errorf("step %d created no asset", step)
	}
	return r[step].CreatedAssetID, nil
}

// BuildFunc builds a step's transaction from the receipts of earlier steps.
type BuildFunc func(prior Receipts) (types.Transaction, error)

// Step is one inner transaction of a unit.
type Step struct {
	Name  string
	Build BuildFunc
}

// Unit is an ordered, all-or-nothing sequence of inner transactions.
// Atomicity comes from the host: a failed Commit makes the whole call fail,
// and the host discards every step that already ran.
type Unit struct {
	steps []Step
}

// NewUnit creates an empty unit.
func NewUnit() *Unit {
	return &Unit{}
}

// Then appends a step.
func (u *Unit) Then(name string, build BuildFunc) *Unit {
	u.steps = append(u.steps, Step{Name: name, Build: build})
	return u
}

// Steps returns the step names in execution order.
func (u *Unit) Steps() []string {
	names := make([]string, len(u.steps))
	for i, s := range u.steps {
		names[i] = s.Name
	}
	return names
}

// Commit runs every step in order. A step is built only after all earlier
// steps committed. The first failure aborts with avm.ErrProtocol.
func (u *Unit) Commit(ctx context.Context, exec avm.InnerExecutor) (Receipts, error) {
	if len(u.steps) == 0 {
		return nil, fmt.Errorf("%w: empty unit", avm.ErrProtocol)
	}
	if len(u.steps) > avm.MaxInnerTxns {
		return nil, fmt.Errorf("%w: %d steps exceed the limit of %d", avm.ErrProtocol, len(u.steps), avm.MaxInnerTxns)
	}

	receipts := make(Receipts, 0, len(u.steps))
	for _, step := range u.steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", avm.ErrProtocol, step.Name, err)
		}
		txn, err := step.Build(receipts)
		if err != nil {
			return nil, fmt.Errorf("%w: build %s: %w", avm.ErrProtocol, step.Name, err)
		}
		res, err := exec.SubmitInner(ctx, txn)
		if err != nil {
			return nil, fmt.Errorf("%w: submit %s: %w", avm.ErrProtocol, step.Name, err)
		}
		receipts = append(receipts, res)
	}
	return receipts, nil
}
