// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package event

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/trustcampus/campusapps/internal/avm"
)

// ErrMalformedRecord indicates a log record that does not match its program's format.
var ErrMalformedRecord = errors.New("malformed log record")

// Event is a decoded log record.
type Event interface {
	Kind() string
	Fields() map[string]string
}

// CheckInEvent is a decoded attendance record. The class id and timestamp
// are not delimited in the record, so they stay together in Payload.
type CheckInEvent struct {
	Student types.Address
	Payload []byte
}

type ProposalEvent struct {
	ID       []byte
	Title    []byte
	Deadline []byte
}

type VoteEvent struct {
	ProposalID []byte
	Choice     []byte
	Voter      types.Address
}

type CertificateEvent struct {
	AssetID      types.AssetIndex
	MetadataHash []byte
	Recipient    types.Address
}

type FeedbackEvent struct {
	ClassID   []byte
	TeacherID []byte
	Hash      []byte
	Sender    types.Address
}

func (CheckInEvent) Kind() string  { return "checkin" }
func (ProposalEvent) Kind() string { return "proposal" }
func (VoteEvent) Kind() string     { return "vote" }
func (FeedbackEvent) Kind() string { return "feedback" }

func (CertificateEvent) Kind() string { return "certificate" }

func (e CertificateEvent) Fields() map[string]string {
	return map[string]string{
		"asset_id":      strconv.FormatUint(uint64(e.AssetID), 10),
		"metadata_hash": Printable(e.MetadataHash),
		"recipient":     e.Recipient.String(),
	}
}

func (e CheckInEvent) Fields() map[string]string {
	return map[string]string{"student": e.Student.String(), "payload": Printable(e.Payload)}
}

func (e ProposalEvent) Fields() map[string]string {
	return map[string]string{"id": Printable(e.ID), "title": Printable(e.Title), "deadline": Printable(e.Deadline)}
}

func (e VoteEvent) Fields() map[string]string {
	return map[string]string{"proposal_id": Printable(e.ProposalID), "choice": Printable(e.Choice), "voter": e.Voter.String()}
}

func (e FeedbackEvent) Fields() map[string]string {
	return map[string]string{
		"class_id":   Printable(e.ClassID),
		"teacher_id": Printable(e.TeacherID),
		"hash":       Printable(e.Hash),
		"sender":     e.Sender.String(),
	}
}

// Parse decodes a record emitted by the named program.
func Parse(program string, record []byte) (Event, error) {
	switch program {
	case "attendance":
		return ParseCheckIn(record)
	case "voting":
		if bytes.HasPrefix(record, []byte(TagVote)) {
			return ParseVote(record)
		}
		return ParseProposal(record)
	case "feedback":
		return ParseFeedback(record)
	case "certificate":
		return ParseCertificate(record)
	}
	return nil, fmt.Errorf("%w: program %q does not emit records", ErrMalformedRecord, program)
}

func ParseCheckIn(record []byte) (CheckInEvent, error) {
	if len(record) < avm.AddressLength {
		return CheckInEvent{}, fmt.Errorf("%w: check-in shorter than an address", ErrMalformedRecord)
	}
	var ev CheckInEvent
	copy(ev.Student[:], record[:avm.AddressLength])
	ev.Payload = append([]byte(nil), record[avm.AddressLength:]...)
	return ev, nil
}

// ParseProposal splits on the first and last separator, so only the title
// may contain ':'.
func ParseProposal(record []byte) (ProposalEvent, error) {
	body, ok := bytes.CutPrefix(record, []byte(TagProposal))
	if !ok {
		return ProposalEvent{}, fmt.Errorf("%w: missing %s tag", ErrMalformedRecord, TagProposal)
	}
	first := bytes.Index(body, []byte(sep))
	last := bytes.LastIndex(body, []byte(sep))
	if first < 0 || first == last {
		return ProposalEvent{}, fmt.Errorf("%w: proposal needs three fields", ErrMalformedRecord)
	}
	return ProposalEvent{
		ID:       clone(body[:first]),
		Title:    clone(body[first+1 : last]),
		Deadline: clone(body[last+1:]),
	}, nil
}

// ParseVote splits the choice off at the last separator before ":FROM:".
func ParseVote(record []byte) (VoteEvent, error) {
	body, voter, err := cutSender(record, TagVote)
	if err != nil {
		return VoteEvent{}, err
	}
	i := bytes.LastIndex(body, []byte(sep))
	if i < 0 {
		return VoteEvent{}, fmt.Errorf("%w: vote needs proposal and choice", ErrMalformedRecord)
	}
	return VoteEvent{ProposalID: clone(body[:i]), Choice: clone(body[i+1:]), Voter: voter}, nil
}

// ParseFeedback splits on the first and last separator, so only the teacher
// id may contain ':'.
func ParseFeedback(record []byte) (FeedbackEvent, error) {
	body, sender, err := cutSender(record, TagFeedback)
	if err != nil {
		return FeedbackEvent{}, err
	}
	first := bytes.Index(body, []byte(sep))
	last := bytes.LastIndex(body, []byte(sep))
	if first < 0 || first == last {
		return FeedbackEvent{}, fmt.Errorf("%w: feedback needs three fields", ErrMalformedRecord)
	}
	return FeedbackEvent{
		ClassID:   clone(body[:first]),
		TeacherID: clone(body[first+1 : last]),
		Hash:      clone(body[last+1:]),
		Sender:    sender,
	}, nil
}

// ParseCertificate reads the asset id up to the first separator; the hash is
// everything between it and the ":TO:" recipient suffix.
func ParseCertificate(record []byte) (CertificateEvent, error) {
	body, recipient, err := cutAddress(record, TagCertificate, toSep)
	if err != nil {
		return CertificateEvent{}, err
	}
	i := bytes.Index(body, []byte(sep))
	if i < 0 {
		return CertificateEvent{}, fmt.Errorf("%w: certificate needs asset id and hash", ErrMalformedRecord)
	}
	id, err := strconv.ParseUint(string(body[:i]), 10, 64)
	if err != nil {
		return CertificateEvent{}, fmt.Errorf("%w: asset id: %v", ErrMalformedRecord, err)
	}
	return CertificateEvent{AssetID: types.AssetIndex(id), MetadataHash: clone(body[i+1:]), Recipient: recipient}, nil
}

// cutSender strips the tag and the trailing ":FROM:" + 32-byte address.
func cutSender(record []byte, tag string) ([]byte, types.Address, error) {
	return cutAddress(record, tag, fromSep)
}

func cutAddress(record []byte, tag, suffix string) ([]byte, types.Address, error) {
	var sender types.Address
	body, ok := bytes.CutPrefix(record, []byte(tag))
	if !ok {
		return nil, sender, fmt.Errorf("%w: missing %s tag", ErrMalformedRecord, tag)
	}
	tail := len(suffix) + avm.AddressLength
	if len(body) < tail || !bytes.Equal(body[len(body)-tail:len(body)-avm.AddressLength], []byte(suffix)) {
		return nil, sender, fmt.Errorf("%w: missing %s address suffix", ErrMalformedRecord, suffix)
	}
	copy(sender[:], body[len(body)-avm.AddressLength:])
	return body[:len(body)-tail], sender, nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}

// Printable renders bytes as text when they are printable UTF-8, otherwise as 0x-prefixed hex.
func Printable(b []byte) string {
	if utf8.Valid(b) {
		printable := true
		for _, r := range string(b) {
			if r < 0x20 || r == 0x7f {
				printable = false
				break
			}
		}
		if printable {
			return string(b)
		}
	}
	return "0x" + hex.EncodeToString(b)
}
