// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package avm

import "errors"

var (
	// ErrRejected is the root of every whole-call rejection raised by a program.
	ErrRejected = errors.New("call rejected")

	// ErrShape indicates the call arguments do not match the action's arity or layout
	ErrShape = rejection("malformed call")

	// ErrUnauthorized indicates a privileged lifecycle action from a non-creator
	ErrUnauthorized = rejection("sender is not the application creator")

	// ErrRouting indicates an unknown completion intent or action discriminator
	ErrRouting = rejection("no handler for call")

	// ErrProtocol indicates a follow-on transaction of the issuance protocol failed
	ErrProtocol = rejection("inner transaction failed")

	// ErrAlreadyInitialized indicates a second attempt to set the creator identity
	ErrAlreadyInitialized = errors.New("creator identity already initialized")

	// ErrNoHost indicates an Env was used without a host attached
	ErrNoHost = errors.New("no host attached to environment")
)

// rejectionError is a rejection kind that also matches ErrRejected.
type rejectionError struct {
	msg string
}

func rejection(msg string) error {
	return &rejectionError{msg: msg}
}

func (e *rejectionError) Error() string {
	return e.msg
}

func (e *rejectionError) Is(target error) bool {
	return target == ErrRejected
}

// IsRejection reports whether err is a program-level rejection (as opposed
// to a host failure such as an unknown application).
func IsRejection(err error) bool {
	return errors.Is(err, ErrRejected)
}
