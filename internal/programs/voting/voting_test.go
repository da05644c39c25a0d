// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package voting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustcampus/campusapps/internal/avm"
	"github.com/trustcampus/campusapps/internal/testutil"
)

func run(t *testing.T, args ...string) (*testutil.Host, error) {
	t.Helper()
	creator, voter := testutil.NewAccount(t), testutil.NewAccount(t)
	host := &testutil.Host{}
	env := testutil.Env(avm.Call{Sender: voter, Args: testutil.Args(args...)}, 11, creator, host)
	return host, New().Approve(context.Background(), env)
}

func TestCreateProposalLog(t *testing.T) {
	host, err := run(t, ActionCreateProposal, "p1", "Extend library hours", "1700500000")
	require.NoError(t, err)
	require.Len(t, host.Logs, 1)
	assert.Equal(t, []byte("PROPOSAL:p1:Extend library hours:1700500000"), host.Logs[0])
}

func TestCastVoteLog(t *testing.T) {
	creator, voter := testutil.NewAccount(t), testutil.NewAccount(t)
	host := &testutil.Host{}
	env := testutil.Env(avm.Call{Sender: voter, Args: testutil.Args(ActionCastVote, "p1", "YES")}, 11, creator, host)

	require.NoError(t, New().Approve(context.Background(), env))
	require.Len(t, host.Logs, 1)
	assert.Equal(t, append([]byte("VOTE:p1:YES:FROM:"), voter[:]...), host.Logs[0])
}

func TestVotingRejections(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown action", []string{"close_proposal", "p1"}, avm.ErrRouting},
		{"no arguments", nil, avm.ErrRouting},
		{"proposal positional style", []string{ActionCreateProposal, "p1", "title"}, avm.ErrShape},
		{"vote missing choice", []string{ActionCastVote, "p1"}, avm.ErrShape},
		{"vote extra argument", []string{ActionCastVote, "p1", "YES", "again"}, avm.ErrShape},
		{"discriminator is case sensitive", []string{"CAST_VOTE", "p1", "YES"}, avm.ErrRouting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, err := run(t, tt.args...)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, host.Logs)
		})
	}
}

func TestActions(t *testing.T) {
	assert.Equal(t, []string{ActionCastVote, ActionCreateProposal}, Actions())
}
