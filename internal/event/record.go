// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Package event builds the log records campus programs emit for off-chain
// indexers, and parses them back on the indexer side.
//
// Records are plain byte concatenations in a fixed field order. Argument
// bytes are copied through uninterpreted.
package event

import (
	"fmt"
	"strconv"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/trustcampus/campusapps/internal/avm"
)

const (
	TagProposal    = "PROPOSAL:"
	TagVote        = "VOTE:"
	TagFeedback    = "FEEDBACK:"
	TagCertificate = "CERT:"

	sep     = ":"
	fromSep = ":FROM:"
	toSep   = ":TO:"
)

func concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// CheckIn is sender || class_id || timestamp.
func CheckIn(student types.Address, classID, timestamp []byte) []byte {
	return concat(student[:], classID, timestamp)
}

// Proposal is "PROPOSAL:" id ":" title ":" deadline.
func Proposal(id, title, deadline []byte) []byte {
	return concat([]byte(TagProposal), id, []byte(sep), title, []byte(sep), deadline)
}

// Vote is "VOTE:" proposal_id ":" choice ":FROM:" voter.
func Vote(proposalID, choice []byte, voter types.Address) []byte {
	return concat([]byte(TagVote), proposalID, []byte(sep), choice, []byte(fromSep), voter[:])
}

// Feedback is "FEEDBACK:" class_id ":" teacher_id ":" hash ":FROM:" sender.
func Feedback(classID, teacherID, hash []byte, sender types.Address) []byte {
	return concat([]byte(TagFeedback), classID, []byte(sep), teacherID, []byte(sep), hash, []byte(fromSep), sender[:])
}

// Certificate is "CERT:" asset_id ":" metadata_hash ":TO:" recipient, with
// the asset id in decimal.
func Certificate(assetID types.AssetIndex, metadataHash []byte, recipient types.Address) []byte {
	id := strconv.FormatUint(uint64(assetID), 10)
	return concat([]byte(TagCertificate), []byte(id), []byte(sep), metadataHash, []byte(toSep), recipient[:])
}

// Emit hands a single record to the host log.
func Emit(env *avm.Env, record []byte) error {
	if err := env.Log(record); err != nil {
		return fmt.Errorf("emit log record: %w", err)
	}
	return nil
}
