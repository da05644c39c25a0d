// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package engine

import "errors"

var (
	// ErrInvalidAddress indicates an invalid address or alias
	ErrInvalidAddress = errors.New("invalid address or alias")

	// ErrNoSender indicates a call named no sender and no default is set
	ErrNoSender = errors.New("no sender given and no default sender set")

	// ErrInvalidArgument indicates an application argument that cannot be encoded
	ErrInvalidArgument = errors.New("invalid application argument")

	// ErrInvalidAppID indicates an invalid application ID
	ErrInvalidAppID = errors.New("invalid application ID")

	// ErrScriptError indicates an error during script execution
	ErrScriptError = errors.New("script execution error")

	// ErrExit is returned by the exit command to end a script or session
	ErrExit = errors.New("exit")
)
