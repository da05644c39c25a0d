// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package issuance

import (
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// Step names of the credential protocol.
const (
	StepIssue    = "issue"
	StepTransfer = "transfer"
)

// CredentialParams are the constant parts of an issued credential.
type CredentialParams struct {
	AssetName string
	UnitName  string
	URLPrefix string
}

// DefaultCredentialParams returns the campus certificate naming.
func DefaultCredentialParams() CredentialParams {
	return CredentialParams{
		AssetName: "TrustCampus Cert",
		UnitName:  "TCC",
		URLPrefix: "ipfs://",
	}
}

// AssetParams builds the unique, non-divisible, frozen-by-default asset
// configuration administered entirely by the application account.
func (p CredentialParams) AssetParams(app types.Address, metadataHash []byte) types.AssetParams {
	return types.AssetParams{
		Total:         1,
		Decimals:      0,
		DefaultFrozen: true,
		AssetName:     p.AssetName,
		UnitName:      p.UnitName,
		URL:           p.URLPrefix + string(metadataHash),
		Manager:       app,
		Reserve:       app,
		Freeze:        app,
		Clawback:      app,
	}
}

// Credential builds the two-step issuance unit: create the asset, then move
// its single unit from the application account to the recipient.
func Credential(p CredentialParams, app, recipient types.Address, metadataHash []byte) *Unit {
	params := p.AssetParams(app, metadataHash)
	return NewUnit().
		Then(StepIssue, func(Receipts) (types.Transaction, error) {
			return types.Transaction{
				Type:   types.AssetConfigTx,
				Header: types.Header{Sender: app},
				AssetConfigTxnFields: types.AssetConfigTxnFields{
					AssetParams: params,
				},
			}, nil
		}).
		Then(StepTransfer, func(prior Receipts) (types.Transaction, error) {
			assetID, err := prior.CreatedAsset(0)
			if err != nil {
				return types.Transaction{}, err
			}
			return types.Transaction{
				Type:   types.AssetTransferTx,
				Header: types.Header{Sender: app},
				AssetTransferTxnFields: types.AssetTransferTxnFields{
					XferAsset:     assetID,
					AssetAmount:   1,
					AssetReceiver: recipient,
				},
			}, nil
		})
}
