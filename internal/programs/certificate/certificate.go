// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Package certificate mints a unique credential asset per call and hands it
// to the recipient. The application account stays manager, reserve, freeze
// and clawback of every credential it issues.
package certificate

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/trustcampus/campusapps/internal/approval"
	"github.com/trustcampus/campusapps/internal/avm"
	"github.com/trustcampus/campusapps/internal/event"
	"github.com/trustcampus/campusapps/internal/issuance"
)

const Name = "certificate"

// Mint is the NoOp action: [recipient (32-byte address), metadata_hash].
type Mint struct {
	Recipient    types.Address
	MetadataHash []byte
}

// Decode validates the call shape. The recipient must be a raw address.
func Decode(call avm.Call) (Mint, error) {
	if err := approval.RequireArgs(call, 2); err != nil {
		return Mint{}, err
	}
	if len(call.Args[0]) != avm.AddressLength {
		return Mint{}, fmt.Errorf("%w: recipient is %d bytes, want %d", avm.ErrShape, len(call.Args[0]), avm.AddressLength)
	}
	var m Mint
	copy(m.Recipient[:], call.Args[0])
	m.MetadataHash = call.Args[1]
	return m, nil
}

// Program is the certificate application.
type Program struct {
	*approval.Router
	params issuance.CredentialParams
}

// New returns the certificate program issuing credentials with the given naming.
func New(params issuance.CredentialParams) *Program {
	p := &Program{params: params}
	p.Router = approval.NewRouter(Name, p.mint)
	return p
}

// Params returns the credential naming used by this program.
func (p *Program) Params() issuance.CredentialParams {
	return p.params
}

func (p *Program) mint(ctx context.Context, env *avm.Env) error {
	m, err := Decode(env.Call)
	if err != nil {
		return err
	}

	unit := issuance.Credential(p.params, env.Global.CurrentApplicationAddress, m.Recipient, m.MetadataHash)
	receipts, err := unit.Commit(ctx, env.Executor())
	if err != nil {
		return err
	}

	assetID, err := receipts.CreatedAsset(0)
	if err != nil {
		return fmt.Errorf("%w: %w", avm.ErrProtocol, err)
	}
	return event.Emit(env, event.Certificate(assetID, m.MetadataHash, m.Recipient))
}
