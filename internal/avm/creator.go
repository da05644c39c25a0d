// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package avm

import (
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/types"
)

// CreatorIdentity is the write-once record of the account that deployed an
// application. The zero value is uninitialized.
type CreatorIdentity struct {
	addr types.Address
	set  bool
}

// Init records the creator. A second call fails with ErrAlreadyInitialized.
func (c *CreatorIdentity) Init(addr types.Address) error {
	if c.set {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, c.addr)
	}
	c.addr = addr
	c.set = true
	return nil
}

// Address returns the creator and whether it was ever initialized.
func (c CreatorIdentity) Address() (types.Address, bool) {
	return c.addr, c.set
}

// Is reports whether addr is the initialized creator.
func (c CreatorIdentity) Is(addr types.Address) bool {
	return c.set && c.addr == addr
}
