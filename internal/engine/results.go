// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package engine

import (
	"github.com/trustcampus/campusapps/internal/event"
	"github.com/trustcampus/campusapps/internal/ledger"
)

// CallResult holds the outcome of an accepted call
type CallResult struct {
	TxID          string    `json:"txid"`
	Round         uint64    `json:"round"`
	AppID         uint64    `json:"app"`
	AppAddress    string    `json:"appAddress"`
	Logs          []LogView `json:"logs"`
	InnerTxns     int       `json:"innerTxns"`
	CreatedAssets []uint64  `json:"createdAssets"`
}

// LogView is a log record decoded for display
type LogView struct {
	Seq    uint64            `json:"seq"`
	Round  uint64            `json:"round"`
	AppID  uint64            `json:"app"`
	TxID   string            `json:"txid"`
	Kind   string            `json:"kind"` // "checkin", "vote", ... or "raw"
	Fields map[string]string `json:"fields"`
	Raw    string            `json:"raw"`
}

// AssetView describes an asset for display
type AssetView struct {
	AssetID       uint64 `json:"id"`
	Name          string `json:"name"`
	UnitName      string `json:"unitName"`
	Total         uint64 `json:"total"`
	Decimals      uint32 `json:"decimals"`
	DefaultFrozen bool   `json:"defaultFrozen"`
	URL           string `json:"url"`
	Creator       string `json:"creator"`
	Manager       string `json:"manager"`
	Clawback      string `json:"clawback"`
}

// AppView describes an application for display
type AppView struct {
	AppID   uint64 `json:"id"`
	Program string `json:"program"`
	Creator string `json:"creator"`
	Address string `json:"address"`
	OptedIn int    `json:"optedIn"`
}

// ScriptResult holds the outcome of running a command script
type ScriptResult struct {
	LinesExecuted int
	CommandsRun   int
	Completed     bool
	Errors        []ScriptError
}

// ScriptError records a failing script line
type ScriptError struct {
	LineNumber int
	Command    string
	Error      string
}

func (e *Engine) callResult(res *ledger.Result) *CallResult {
	out := &CallResult{
		TxID:      res.TxID,
		Round:     res.Round,
		AppID:     uint64(res.AppID),
		InnerTxns: len(res.InnerTxns),
		Logs:      make([]LogView, 0, len(res.Logs)),
	}
	if info, err := e.Ledger.App(res.AppID); err == nil {
		out.AppAddress = info.Address.String()
	}
	program := e.programOf(uint64(res.AppID))
	for _, rec := range res.Logs {
		v := decodeRecord(program, rec)
		v.Round = res.Round
		v.AppID = uint64(res.AppID)
		v.TxID = res.TxID
		out.Logs = append(out.Logs, v)
	}
	for _, id := range res.CreatedAssets {
		out.CreatedAssets = append(out.CreatedAssets, uint64(id))
	}
	return out
}

func assetView(a ledger.AssetInfo) AssetView {
	return AssetView{
		AssetID:       uint64(a.ID),
		Name:          a.Params.AssetName,
		UnitName:      a.Params.UnitName,
		Total:         a.Params.Total,
		Decimals:      a.Params.Decimals,
		DefaultFrozen: a.Params.DefaultFrozen,
		URL:           a.Params.URL,
		Creator:       a.Creator.String(),
		Manager:       a.Params.Manager.String(),
		Clawback:      a.Params.Clawback.String(),
	}
}

func decodeRecord(program string, record []byte) LogView {
	v := LogView{Kind: "raw", Raw: event.Printable(record)}
	if program == "" {
		return v
	}
	ev, err := event.Parse(program, record)
	if err != nil {
		return v
	}
	v.Kind = ev.Kind()
	v.Fields = ev.Fields()
	return v
}
