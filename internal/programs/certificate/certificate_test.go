// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package certificate

import (
	"context"
	"errors"
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustcampus/campusapps/internal/avm"
	"github.com/trustcampus/campusapps/internal/event"
	"github.com/trustcampus/campusapps/internal/issuance"
	"github.com/trustcampus/campusapps/internal/testutil"
)

func mintCall(sender, recipient types.Address, hash string) avm.Call {
	return avm.Call{Sender: sender, Args: [][]byte{recipient[:], []byte(hash)}}
}

func TestMintIssuesAndTransfers(t *testing.T) {
	creator, student := testutil.NewAccount(t), testutil.NewAccount(t)
	host := &testutil.Host{NextAsset: 500}
	env := testutil.Env(mintCall(creator, student, "bafyCID"), 21, creator, host)
	appAddr := crypto.GetApplicationAddress(21)

	require.NoError(t, New(issuance.DefaultCredentialParams()).Approve(context.Background(), env))

	require.Len(t, host.Inner, 2)
	create, xfer := host.Inner[0], host.Inner[1]
	assert.Equal(t, types.AssetConfigTx, create.Type)
	assert.Equal(t, appAddr, create.Sender)
	assert.Equal(t, "ipfs://bafyCID", create.AssetParams.URL)
	assert.True(t, create.AssetParams.DefaultFrozen)
	assert.Equal(t, appAddr, create.AssetParams.Clawback)

	assert.Equal(t, types.AssetTransferTx, xfer.Type)
	assert.Equal(t, types.AssetIndex(501), xfer.XferAsset)
	assert.Equal(t, student, xfer.AssetReceiver)
	assert.Equal(t, uint64(1), xfer.AssetAmount)

	require.Len(t, host.Logs, 1)
	ev, err := event.ParseCertificate(host.Logs[0])
	require.NoError(t, err)
	assert.Equal(t, event.CertificateEvent{AssetID: 501, MetadataHash: []byte("bafyCID"), Recipient: student}, ev)
}

func TestMintCustomNaming(t *testing.T) {
	creator, student := testutil.NewAccount(t), testutil.NewAccount(t)
	host := &testutil.Host{}
	params := issuance.CredentialParams{AssetName: "Diploma", UnitName: "DIP", URLPrefix: "https://meta.example/"}
	p := New(params)

	require.NoError(t, p.Approve(context.Background(), testutil.Env(mintCall(creator, student, "x1"), 4, creator, host)))
	assert.Equal(t, params, p.Params())
	assert.Equal(t, "Diploma", host.Inner[0].AssetParams.AssetName)
	assert.Equal(t, "https://meta.example/x1", host.Inner[0].AssetParams.URL)
}

func TestMintTransferFailureRejectsCall(t *testing.T) {
	creator, student := testutil.NewAccount(t), testutil.NewAccount(t)
	host := &testutil.Host{FailInnerAt: 2, FailErr: errors.New("receiver not opted in")}
	env := testutil.Env(mintCall(creator, student, "h"), 21, creator, host)

	err := New(issuance.DefaultCredentialParams()).Approve(context.Background(), env)
	require.ErrorIs(t, err, avm.ErrProtocol)
	assert.Empty(t, host.Logs)
}

func TestMintShape(t *testing.T) {
	creator := testutil.NewAccount(t)
	tests := []struct {
		name string
		args [][]byte
	}{
		{"no args", nil},
		{"one arg", [][]byte{make([]byte, 32)}},
		{"short recipient", [][]byte{[]byte("student"), []byte("h")}},
		{"three args", [][]byte{make([]byte, 32), []byte("h"), []byte("x")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := &testutil.Host{}
			env := testutil.Env(avm.Call{Sender: creator, Args: tt.args}, 21, creator, host)
			err := New(issuance.DefaultCredentialParams()).Approve(context.Background(), env)
			require.ErrorIs(t, err, avm.ErrShape)
			assert.Empty(t, host.Inner)
			assert.Empty(t, host.Logs)
		})
	}
}
