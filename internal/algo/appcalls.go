// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package algo

import (
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// AppCalls keeps the application call transactions of txns, in order, and
// reports how many other transactions were skipped. A non-zero app retargets
// every call that is not a creation, so files built against a network can be
// replayed against a local application id.
func AppCalls(txns []types.Transaction, app types.AppIndex) ([]types.Transaction, int) {
	var calls []types.Transaction
	skipped := 0
	for _, txn := range txns {
		if txn.Type != types.ApplicationCallTx {
			skipped++
			continue
		}
		if app != 0 && txn.ApplicationID != 0 {
			txn.ApplicationID = app
		}
		calls = append(calls, txn)
	}
	return calls, skipped
}
