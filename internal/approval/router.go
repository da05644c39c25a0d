// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Package approval implements the approval-program pattern shared by every
// campus program: validate the call, route it on its completion intent (and
// optionally an action discriminator), guard privileged lifecycle actions,
// then hand normal calls to the program's own handler.
package approval

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/types"

	"github.com/trustcampus/campusapps/internal/avm"
)

// Handler runs a program's normal (NoOp) action.
type Handler func(ctx context.Context, env *avm.Env) error

// Route is the outcome of the first dispatch level.
type Route int

const (
	RouteReject  Route = iota // no handler; fail closed
	RouteDeploy               // first-ever invocation, always accepted
	RouteAction               // NoOp, handed to the program's handler
	RouteAccept               // OptIn / CloseOut, accepted without checks
	RouteGuarded              // Update / Delete, creator only
)

func (r Route) String() string {
	switch r {
	case RouteDeploy:
		return "deploy"
	case RouteAction:
		return "action"
	case RouteAccept:
		return "accept"
	case RouteGuarded:
		return "creator-only"
	default:
		return "reject"
	}
}

// Classify maps a call to its route. Deployment takes precedence over the
// completion intent.
func Classify(call avm.Call) Route {
	if call.IsDeployment() {
		return RouteDeploy
	}
	switch call.OnCompletion {
	case types.NoOpOC:
		return RouteAction
	case types.OptInOC, types.CloseOutOC:
		return RouteAccept
	case types.UpdateApplicationOC, types.DeleteApplicationOC:
		return RouteGuarded
	default:
		return RouteReject
	}
}

// Router is an avm.Program built from a name and a NoOp handler.
type Router struct {
	name string
	noop Handler
}

// NewRouter creates a router for the named program.
func NewRouter(name string, noop Handler) *Router {
	return &Router{name: name, noop: noop}
}

// Name returns the program name.
func (r *Router) Name() string {
	return r.name
}

// Approve implements avm.Program.
func (r *Router) Approve(ctx context.Context, env *avm.Env) error {
	switch Classify(env.Call) {
	case RouteDeploy, RouteAccept:
		return nil
	case RouteGuarded:
		return RequireCreator(env)
	case RouteAction:
		if r.noop == nil {
			return fmt.Errorf("%w: %s has no action handler", avm.ErrRouting, r.name)
		}
		return r.noop(ctx, env)
	default:
		return fmt.Errorf("%w: %s on %s", avm.ErrRouting, avm.OnCompletionName(env.Call.OnCompletion), r.name)
	}
}

var _ avm.Program = (*Router)(nil)
