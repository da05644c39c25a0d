// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package command

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/trustcampus/campusapps/internal/avm"
	"github.com/trustcampus/campusapps/internal/engine"
	"github.com/trustcampus/campusapps/internal/util"
)

// PrintResult prints an accepted call and its log records.
func PrintResult(w io.Writer, res *engine.CallResult) {
	_, _ = fmt.Fprintf(w, "%s app=%d round=%d %s\n",
		util.Accepted("accepted"), res.AppID, res.Round, util.Dim("txid="+res.TxID))
	if res.InnerTxns > 0 {
		_, _ = fmt.Fprintf(w, "  inner transactions: %d\n", res.InnerTxns)
	}
	for _, id := range res.CreatedAssets {
		_, _ = fmt.Fprintf(w, "  created asset: %d\n", id)
	}
	for _, l := range res.Logs {
		PrintLog(w, l)
	}
}

// ReportError prints a failed command. Calls refused by a program are
// reported as rejections, anything else as an error.
func ReportError(w io.Writer, err error) {
	if errors.Is(err, avm.ErrRejected) {
		_, _ = fmt.Fprintf(w, "%s %v\n", util.Rejected("rejected:"), err)
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}

// PrintLog prints one decoded log record.
func PrintLog(w io.Writer, l engine.LogView) {
	prefix := "  log"
	if l.Seq > 0 {
		prefix = fmt.Sprintf("  #%d app=%d round=%d", l.Seq, l.AppID, l.Round)
	}
	if len(l.Fields) == 0 {
		_, _ = fmt.Fprintf(w, "%s %s %s\n", prefix, l.Kind, l.Raw)
		return
	}
	_, _ = fmt.Fprintf(w, "%s %s %s\n", prefix, l.Kind, formatFields(l.Fields))
}

func formatFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, fields[k]))
	}
	return strings.Join(parts, " ")
}
