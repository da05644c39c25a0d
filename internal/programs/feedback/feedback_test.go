// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustcampus/campusapps/internal/avm"
	"github.com/trustcampus/campusapps/internal/event"
	"github.com/trustcampus/campusapps/internal/testutil"
)

func TestSubmitFeedback(t *testing.T) {
	creator, student := testutil.NewAccount(t), testutil.NewAccount(t)
	host := &testutil.Host{}
	env := testutil.Env(avm.Call{Sender: student, Args: testutil.Args("CS50", "T-9", "9f86d081")}, 3, creator, host)

	require.NoError(t, New().Approve(context.Background(), env))
	require.Len(t, host.Logs, 1)
	assert.Equal(t, append([]byte("FEEDBACK:CS50:T-9:9f86d081:FROM:"), student[:]...), host.Logs[0])

	ev, err := event.ParseFeedback(host.Logs[0])
	require.NoError(t, err)
	assert.Equal(t, student, ev.Sender)
}

func TestSubmitFeedbackArity(t *testing.T) {
	creator, student := testutil.NewAccount(t), testutil.NewAccount(t)
	host := &testutil.Host{}
	env := testutil.Env(avm.Call{Sender: student, Args: testutil.Args("CS50", "9f86d081")}, 3, creator, host)

	require.ErrorIs(t, New().Approve(context.Background(), env), avm.ErrShape)
	assert.Empty(t, host.Logs)
}
