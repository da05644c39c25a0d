// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Package feedback records course feedback submissions. Only a hash of the
// feedback text goes on the ledger; the text itself stays off-chain.
package feedback

import (
	"context"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/trustcampus/campusapps/internal/approval"
	"github.com/trustcampus/campusapps/internal/avm"
	"github.com/trustcampus/campusapps/internal/event"
)

const Name = "feedback"

// Submit is the NoOp action: [class_id, teacher_id, feedback_hash].
type Submit struct {
	ClassID   []byte
	TeacherID []byte
	Hash      []byte
	Sender    types.Address
}

func Decode(call avm.Call) (Submit, error) {
	if err := approval.RequireArgs(call, 3); err != nil {
		return Submit{}, err
	}
	return Submit{
		ClassID:   call.Args[0],
		TeacherID: call.Args[1],
		Hash:      call.Args[2],
		Sender:    call.Sender,
	}, nil
}

func (s Submit) Record() []byte {
	return event.Feedback(s.ClassID, s.TeacherID, s.Hash, s.Sender)
}

func New() *approval.Router {
	return approval.NewRouter(Name, func(_ context.Context, env *avm.Env) error {
		submit, err := Decode(env.Call)
		if err != nil {
			return err
		}
		return event.Emit(env, submit.Record())
	})
}
