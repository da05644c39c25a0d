// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package ledger

import "errors"

var (
	// ErrAppNotFound indicates a call to an application that does not exist (or was deleted)
	ErrAppNotFound = errors.New("application not found")

	// ErrUnknownProgram indicates a deployment or update naming an unregistered program
	ErrUnknownProgram = errors.New("unknown program")

	// ErrAlreadyOptedIn indicates an OptIn from an account that already holds local state
	ErrAlreadyOptedIn = errors.New("account already opted in")

	// ErrNotOptedIn indicates a CloseOut from an account without local state
	ErrNotOptedIn = errors.New("account not opted in")

	// ErrLimitExceeded indicates a host resource limit was hit (args, logs, inner transactions)
	ErrLimitExceeded = errors.New("host limit exceeded")

	// ErrAssetNotFound indicates an inner transaction referencing an unknown asset
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInsufficientBalance indicates an asset transfer larger than the sender's holding
	ErrInsufficientBalance = errors.New("insufficient asset balance")

	// ErrFrozen indicates a transfer touching a frozen holding without freeze or clawback authority
	ErrFrozen = errors.New("asset holding is frozen")

	// ErrInvalidAssetParams indicates an asset configuration the host refuses
	ErrInvalidAssetParams = errors.New("invalid asset parameters")

	// ErrUnsupportedInner indicates an inner transaction type the host does not execute
	ErrUnsupportedInner = errors.New("unsupported inner transaction")

	// ErrPersist indicates the commit could not be written to durable storage
	ErrPersist = errors.New("failed to persist commit")
)
