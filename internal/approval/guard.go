// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package approval

import (
	"fmt"

	"github.com/trustcampus/campusapps/internal/avm"
)

// RequireCreator accepts only calls sent by the application creator.
func RequireCreator(env *avm.Env) error {
	creator := env.Global.CreatorAddress
	if creator.IsZero() || env.Call.Sender != creator {
		return fmt.Errorf("%w: %s", avm.ErrUnauthorized, env.Call.Sender)
	}
	return nil
}
