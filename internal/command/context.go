// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/trustcampus/campusapps/internal/engine"
)

// Context provides command handlers with access to session state
type Context struct {
	Engine   *engine.Engine
	Registry *Registry

	// Ctx bounds blocking ledger operations. Nil means context.Background().
	Ctx context.Context

	// Out receives command output. Nil means stdout.
	Out io.Writer

	// RawArgs contains the raw argument string before quote-stripping.
	// Used by commands like 'js' that need to preserve quotes in their input.
	RawArgs string
}

// Context returns the context for blocking operations.
func (ctx *Context) Context() context.Context {
	if ctx.Ctx == nil {
		return context.Background()
	}
	return ctx.Ctx
}

// Writer returns the output writer.
func (ctx *Context) Writer() io.Writer {
	if ctx.Out == nil {
		return os.Stdout
	}
	return ctx.Out
}

// Printf writes formatted output.
func (ctx *Context) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(ctx.Writer(), format, args...)
}

// Println writes a line of output.
func (ctx *Context) Println(args ...any) {
	_, _ = fmt.Fprintln(ctx.Writer(), args...)
}
