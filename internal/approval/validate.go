// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package approval

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trustcampus/campusapps/internal/avm"
)

// RequireArgs checks the call carries exactly n arguments.
func RequireArgs(call avm.Call, n int) error {
	if call.NumArgs() != n {
		return fmt.Errorf("%w: want %d arguments, got %d", avm.ErrShape, n, call.NumArgs())
	}
	return nil
}

// Decoders maps an action discriminator (the first argument) to the decoder
// of that action's typed variant.
type Decoders[T any] map[string]func(avm.Call) (T, error)

// Decode selects the decoder named by the first argument. A call with no
// arguments or an unknown discriminator is rejected with avm.ErrRouting.
func (d Decoders[T]) Decode(call avm.Call) (T, error) {
	var zero T
	name, err := call.Arg(0)
	if err != nil {
		return zero, fmt.Errorf("%w: missing action discriminator", avm.ErrRouting)
	}
	decode, ok := d[string(name)]
	if !ok {
		return zero, fmt.Errorf("%w: unknown action %q (known: %s)", avm.ErrRouting, name, strings.Join(d.Names(), ", "))
	}
	return decode(call)
}

// Names returns the registered discriminators, sorted.
func (d Decoders[T]) Names() []string {
	names := make([]string, 0, len(d))
	for k := range d {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
