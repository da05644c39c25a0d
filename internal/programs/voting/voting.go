// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Package voting records proposals and votes. Votes are logged, never tallied.
//
// Calls name their action in the first argument:
//
//	["create_proposal", proposal_id, title, deadline]
//	["cast_vote", proposal_id, choice]
package voting

import (
	"context"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/trustcampus/campusapps/internal/approval"
	"github.com/trustcampus/campusapps/internal/avm"
	"github.com/trustcampus/campusapps/internal/event"
)

const (
	Name = "voting"

	ActionCreateProposal = "create_proposal"
	ActionCastVote       = "cast_vote"
)

// Action is one of CreateProposal or CastVote.
type Action interface {
	Record() []byte
}

type CreateProposal struct {
	ID       []byte
	Title    []byte
	Deadline []byte
}

type CastVote struct {
	ProposalID []byte
	Choice     []byte
	Voter      types.Address
}

func (p CreateProposal) Record() []byte {
	return event.Proposal(p.ID, p.Title, p.Deadline)
}

func (v CastVote) Record() []byte {
	return event.Vote(v.ProposalID, v.Choice, v.Voter)
}

var decoders = approval.Decoders[Action]{
	ActionCreateProposal: func(call avm.Call) (Action, error) {
		if err := approval.RequireArgs(call, 4); err != nil {
			return nil, err
		}
		return CreateProposal{ID: call.Args[1], Title: call.Args[2], Deadline: call.Args[3]}, nil
	},
	ActionCastVote: func(call avm.Call) (Action, error) {
		if err := approval.RequireArgs(call, 3); err != nil {
			return nil, err
		}
		return CastVote{ProposalID: call.Args[1], Choice: call.Args[2], Voter: call.Sender}, nil
	},
}

// Decode dispatches on the discriminator and validates the action's arity.
func Decode(call avm.Call) (Action, error) {
	return decoders.Decode(call)
}

// Actions lists the supported discriminators.
func Actions() []string {
	return decoders.Names()
}

func New() *approval.Router {
	return approval.NewRouter(Name, func(_ context.Context, env *avm.Env) error {
		action, err := Decode(env.Call)
		if err != nil {
			return err
		}
		return event.Emit(env, action.Record())
	})
}
