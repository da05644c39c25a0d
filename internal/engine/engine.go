// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Package engine provides the core session logic for tcshell, independent of
// any UI. It owns the ledger, the durable store and the account aliases, and
// is shared by the REPL commands and the JavaScript API.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/trustcampus/campusapps/internal/ledger"
	"github.com/trustcampus/campusapps/internal/programs"
	"github.com/trustcampus/campusapps/internal/store"
	"github.com/trustcampus/campusapps/internal/util"
)

// Engine contains all session state.
type Engine struct {
	Ledger *ledger.Ledger
	// Store is nil for in-memory sessions.
	Store *store.Store

	Verbose bool

	mu      sync.Mutex
	aliases util.Aliases
	sender  types.Address
	// seen remembers the program of every app observed this session so
	// records of deleted apps still decode.
	seen map[uint64]string
}

// EngineOption is a functional option for configuring the Engine
type EngineOption func(*Engine) error

// NewEngine creates a new Engine. Without WithLedger it runs on a fresh
// in-memory ledger.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	e := &Engine{aliases: util.Aliases{}, seen: make(map[uint64]string)}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if e.Ledger == nil {
		l, err := ledger.New()
		if err != nil {
			return nil, err
		}
		e.Ledger = l
	}
	return e, nil
}

// WithLedger runs the session against l
func WithLedger(l *ledger.Ledger) EngineOption {
	return func(e *Engine) error {
		e.Ledger = l
		return nil
	}
}

// WithStore reads durable logs from s
func WithStore(s *store.Store) EngineOption {
	return func(e *Engine) error {
		e.Store = s
		return nil
	}
}

// WithAliases seeds the alias table.
func WithAliases(aliases map[string]string) EngineOption {
	return func(e *Engine) error {
		for name, addr := range aliases {
			normalized, err := util.NormalizeAddress(addr)
			if err != nil {
				return fmt.Errorf("alias '%s': %w", name, err)
			}
			e.aliases[name] = normalized
		}
		return nil
	}
}

// Close releases the store, if any.
func (e *Engine) Close() error {
	if e.Store == nil {
		return nil
	}
	return e.Store.Close()
}

// Programs returns the names of the deployable programs.
func (e *Engine) Programs() []string {
	return programs.Names()
}

// Resolve turns an alias or an address string into an address.
func (e *Engine) Resolve(input string) (types.Address, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	addr, err := e.aliases.Resolve(input)
	if err != nil {
		return types.Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return addr, nil
}

// Account returns the address behind name. Unknown names get a freshly
// generated account, remembered as an alias for the rest of the session.
func (e *Engine) Account(name string) (types.Address, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if addr, err := e.aliases.Resolve(name); err == nil {
		return addr, nil
	}
	if name == "" {
		return types.Address{}, fmt.Errorf("%w: empty account name", ErrInvalidAddress)
	}
	addr := crypto.GenerateAccount().Address
	e.aliases[name] = addr.String()
	util.Debug("generated account", "name", name, "address", addr.String())
	return addr, nil
}

// Aliases returns a copy of the alias table.
func (e *Engine) Aliases() util.Aliases {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(util.Aliases, len(e.aliases))
	for k, v := range e.aliases {
		out[k] = v
	}
	return out
}

// FormatAddress renders an address with its alias.
func (e *Engine) FormatAddress(addr types.Address) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.aliases.Format(addr)
}

// SetSender sets the default sender of calls that name none.
func (e *Engine) SetSender(input string) (types.Address, error) {
	addr, err := e.Account(input)
	if err != nil {
		return types.Address{}, err
	}
	e.mu.Lock()
	e.sender = addr
	e.mu.Unlock()
	return addr, nil
}

// Sender returns the default sender and whether one is set.
func (e *Engine) Sender() (types.Address, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sender, !e.sender.IsZero()
}

// senderFor resolves an explicit sender, creating unknown names like
// Account does, and falls back to the default sender.
func (e *Engine) senderFor(input string) (types.Address, error) {
	if input != "" {
		return e.Account(input)
	}
	if addr, ok := e.Sender(); ok {
		return addr, nil
	}
	return types.Address{}, ErrNoSender
}

// Deploy creates an application running program.
func (e *Engine) Deploy(ctx context.Context, program, sender string) (*CallResult, error) {
	from, err := e.senderFor(sender)
	if err != nil {
		return nil, err
	}
	res, err := e.Ledger.Deploy(ctx, from, program)
	if err != nil {
		return nil, err
	}
	return e.callResult(res), nil
}
