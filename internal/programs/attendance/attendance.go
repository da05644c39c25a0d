// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Package attendance records class check-ins in the application log.
package attendance

import (
	"context"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/trustcampus/campusapps/internal/approval"
	"github.com/trustcampus/campusapps/internal/avm"
	"github.com/trustcampus/campusapps/internal/event"
)

// Name is the registry name of the program.
const Name = "attendance"

// CheckIn is the only NoOp action: [class_id, timestamp].
type CheckIn struct {
	Student   types.Address
	ClassID   []byte
	Timestamp []byte
}

// Decode validates the call shape and extracts the check-in.
func Decode(call avm.Call) (CheckIn, error) {
	if err := approval.RequireArgs(call, 2); err != nil {
		return CheckIn{}, err
	}
	return CheckIn{Student: call.Sender, ClassID: call.Args[0], Timestamp: call.Args[1]}, nil
}

// Record is the log record of the check-in.
func (c CheckIn) Record() []byte {
	return event.CheckIn(c.Student, c.ClassID, c.Timestamp)
}

// New returns the attendance program.
func New() *approval.Router {
	return approval.NewRouter(Name, handleCheckIn)
}

func handleCheckIn(_ context.Context, env *avm.Env) error {
	checkIn, err := Decode(env.Call)
	if err != nil {
		return err
	}
	return event.Emit(env, checkIn.Record())
}
