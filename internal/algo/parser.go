// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Package algo reads Algorand transaction files and turns their
// application calls into calls the campus ledger can run.
package algo

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	sdkjson "github.com/algorand/go-algorand-sdk/v2/encoding/json"
	"github.com/algorand/go-algorand-sdk/v2/encoding/msgpack"
	"github.com/algorand/go-algorand-sdk/v2/types"
)

// ParseTransactionFile reads a transaction file in any supported format.
func ParseTransactionFile(filepath string) ([]types.Transaction, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseTransactions(data)
}

// ParseTransactions auto-detects format (JSON, base64 msgpack or raw
// msgpack) and parses
func ParseTransactions(data []byte) ([]types.Transaction, error) {
	trimmed := []byte(strings.TrimSpace(string(data)))

	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return parseTransactionJSON(trimmed)
	}

	txns, err := ParseTransactionBase64(trimmed)
	if err == nil {
		return txns, nil
	}
	if raw, rawErr := ParseTransactionMsgpack(data); rawErr == nil {
		return raw, nil
	}
	return nil, err
}

func parseTransactionJSON(jsonData []byte) ([]types.Transaction, error) {
	var txnFile struct {
		Transactions []string `json:"txn"`
	}
	if err := json.Unmarshal(jsonData, &txnFile); err == nil && len(txnFile.Transactions) > 0 {
		var txns []types.Transaction
		for i, b64Txn := range txnFile.Transactions {
			decoded, err := base64.StdEncoding.DecodeString(b64Txn)
			if err != nil {
				return nil, fmt.Errorf("transaction %d: failed to decode base64: %w", i+1, err)
			}

			txn, err := decodeOne(decoded)
			if err != nil {
				return nil, fmt.Errorf("transaction %d: %w", i+1, err)
			}
			txns = append(txns, txn)
		}
		return txns, nil
	}

	var txnArray []types.Transaction
	if err := sdkjson.Decode(jsonData, &txnArray); err == nil {
		if len(txnArray) == 0 {
			return nil, fmt.Errorf("empty transaction array")
		}
		return txnArray, nil
	}

	var txn types.Transaction
	if err := sdkjson.Decode(jsonData, &txn); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: not a valid transaction or transaction array: %w", err)
	}

	return []types.Transaction{txn}, nil
}

// ParseTransactionBase64 decodes base64 msgpack.
func ParseTransactionBase64(base64Data []byte) ([]types.Transaction, error) {
	decoded, err := base64.StdEncoding.DecodeString(string(base64Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	return ParseTransactionMsgpack(decoded)
}

// ParseTransactionMsgpack decodes a single transaction, a signed
// transaction, or an array of transactions.
func ParseTransactionMsgpack(msgpackData []byte) ([]types.Transaction, error) {
	if txn, err := decodeOne(msgpackData); err == nil {
		return []types.Transaction{txn}, nil
	}

	var txnArray []types.Transaction
	if err := msgpack.Decode(msgpackData, &txnArray); err != nil {
		return nil, fmt.Errorf("failed to parse msgpack: not a valid transaction or transaction array: %w", err)
	}

	if len(txnArray) == 0 {
		return nil, fmt.Errorf("empty transaction array")
	}

	return txnArray, nil
}

// decodeOne decodes one msgpack transaction. Signed transactions are
// unwrapped; the signature is ignored since the local ledger does not
// verify signatures.
func decodeOne(data []byte) (types.Transaction, error) {
	var stx types.SignedTxn
	if err := msgpack.Decode(data, &stx); err == nil && stx.Txn.Type != "" {
		return stx.Txn, nil
	}

	var txn types.Transaction
	if err := msgpack.Decode(data, &txn); err != nil {
		return types.Transaction{}, fmt.Errorf("failed to decode msgpack: %w", err)
	}
	if txn.Type == "" {
		return types.Transaction{}, fmt.Errorf("failed to decode msgpack: transaction has no type")
	}
	return txn, nil
}
