// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

// Package programs is the registry of campus application programs.
package programs

import (
	"fmt"
	"strings"

	"github.com/trustcampus/campusapps/internal/avm"
	"github.com/trustcampus/campusapps/internal/issuance"
	"github.com/trustcampus/campusapps/internal/programs/attendance"
	"github.com/trustcampus/campusapps/internal/programs/certificate"
	"github.com/trustcampus/campusapps/internal/programs/feedback"
	"github.com/trustcampus/campusapps/internal/programs/voting"
	"github.com/trustcampus/campusapps/internal/util"
)

// Options carries the per-deployment settings programs are built with.
type Options struct {
	Credential issuance.CredentialParams
}

// DefaultOptions returns the stock campus settings.
func DefaultOptions() Options {
	return Options{Credential: issuance.DefaultCredentialParams()}
}

// Factory builds a program instance.
type Factory func(opts Options) avm.Program

var factories = util.NewStringRegistry[Factory]()

func init() {
	Register(attendance.Name, func(Options) avm.Program { return attendance.New() })
	Register(certificate.Name, func(o Options) avm.Program { return certificate.New(o.Credential) })
	Register(voting.Name, func(Options) avm.Program { return voting.New() })
	Register(feedback.Name, func(Options) avm.Program { return feedback.New() })
}

// Register adds a program factory. Names are normalized to lowercase; a
// duplicate registration is ignored.
func Register(name string, f Factory) {
	factories.Set(strings.ToLower(name), f)
}

// New builds the named program.
func New(name string, opts Options) (avm.Program, error) {
	f, ok := factories.Get(strings.ToLower(name))
	if !ok {
		return nil, fmt.Errorf("unknown program %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return f(opts), nil
}

// Has reports whether a program is registered.
func Has(name string) bool {
	return factories.Has(strings.ToLower(name))
}

// Names returns the registered program names, sorted.
func Names() []string {
	return factories.Keys()
}
