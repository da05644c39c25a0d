// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package avm

import (
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallArgBounds(t *testing.T) {
	call := Call{Args: [][]byte{[]byte("MATH101"), []byte("1700000000")}}

	arg, err := call.Arg(1)
	require.NoError(t, err)
	assert.Equal(t, []byte("1700000000"), arg)

	_, err = call.Arg(2)
	require.ErrorIs(t, err, ErrShape)
	assert.True(t, IsRejection(err))

	_, err = call.Arg(-1)
	require.ErrorIs(t, err, ErrShape)
}

func TestCallTransactionRoundTrip(t *testing.T) {
	var sender types.Address
	sender[0] = 7
	call := Call{
		Sender:       sender,
		OnCompletion: types.OptInOC,
		Args:         [][]byte{[]byte("a")},
		AppID:        42,
	}

	txn := call.Transaction()
	assert.Equal(t, types.ApplicationCallTx, txn.Type)

	back, err := CallFromTransaction(txn)
	require.NoError(t, err)
	assert.Equal(t, call, back)
}

func TestCallFromTransactionRejectsOtherTypes(t *testing.T) {
	_, err := CallFromTransaction(types.Transaction{Type: types.PaymentTx})
	require.Error(t, err)
}

func TestParseOnCompletion(t *testing.T) {
	tests := []struct {
		in   string
		want types.OnCompletion
	}{
		{"", types.NoOpOC},
		{"NoOp", types.NoOpOC},
		{"opt-in", types.OptInOC},
		{"CloseOut", types.CloseOutOC},
		{"update", types.UpdateApplicationOC},
		{"DeleteApplication", types.DeleteApplicationOC},
		{"clear_state", types.ClearStateOC},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOnCompletion(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.in != "" {
				assert.NotEmpty(t, OnCompletionName(got))
			}
		})
	}

	_, err := ParseOnCompletion("destroy")
	require.Error(t, err)
}

func TestRejectionKindsAreDistinct(t *testing.T) {
	kinds := []error{ErrShape, ErrUnauthorized, ErrRouting, ErrProtocol}
	for i, a := range kinds {
		assert.ErrorIs(t, a, ErrRejected)
		for j, b := range kinds {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
	assert.False(t, IsRejection(ErrAlreadyInitialized))
}
