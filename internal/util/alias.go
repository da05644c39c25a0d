// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package util

import (
	"fmt"
	"sort"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/types"
)

// NormalizeAddress validates an Algorand address and returns it uppercased.
func NormalizeAddress(address string) (string, error) {
	decoded, err := types.DecodeAddress(strings.ToUpper(strings.TrimSpace(address)))
	if err != nil {
		return "", fmt.Errorf("invalid address: %w", err)
	}
	return decoded.String(), nil
}

// Aliases maps short names to addresses.
type Aliases map[string]string

// Resolve resolves an alias or address to an address.
// User-defined names take precedence over address decoding.
func (a Aliases) Resolve(input string) (types.Address, error) {
	if address, exists := a[input]; exists {
		return types.DecodeAddress(address)
	}
	decoded, err := types.DecodeAddress(strings.ToUpper(input))
	if err != nil {
		return types.Address{}, fmt.Errorf("'%s' is neither an alias nor a valid address", input)
	}
	return decoded, nil
}

// NameOf returns the alias of an address, or "" when it has none.
// With several aliases for one address the alphabetically first wins.
func (a Aliases) NameOf(addr types.Address) string {
	want := addr.String()
	names := make([]string, 0, len(a))
	for name, address := range a {
		if address == want {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return names[0]
}

// Format renders an address followed by its alias, if any.
func (a Aliases) Format(addr types.Address) string {
	if name := a.NameOf(addr); name != "" {
		return fmt.Sprintf("%s (%s)", addr.String(), name)
	}
	return addr.String()
}
