// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package command

import (
	"errors"
	"strings"
	"testing"
)

// MockHandler implements Handler interface for testing
type MockHandler struct {
	executeFunc func(args []string, ctx *Context) error
}

func (h *MockHandler) Execute(args []string, ctx *Context) error {
	if h.executeFunc != nil {
		return h.executeFunc(args, ctx)
	}
	return nil
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.commands == nil {
		t.Error("NewRegistry() commands map is nil")
	}
	if r.primary == nil {
		t.Error("NewRegistry() primary slice is nil")
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	cmd := &Command{
		Name:        "test",
		Aliases:     []string{"t"},
		Usage:       "test [args]",
		Description: "Test command",
		Category:    CategoryInfo,
		Handler:     &MockHandler{},
	}

	if err := r.Register(cmd); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, ok := r.Lookup("test")
	if !ok {
		t.Fatal("Register() command not found by name")
	}
	if got.Name != "test" {
		t.Errorf("Register() name = %v, want test", got.Name)
	}

	got, ok = r.Lookup("t")
	if !ok {
		t.Fatal("Register() command not found by alias")
	}
	if got.Name != "test" {
		t.Errorf("Register() alias lookup name = %v, want test", got.Name)
	}
}

func TestRegistry_Register_Duplicate(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&Command{Name: "test", Handler: &MockHandler{}}); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if err := r.Register(&Command{Name: "test", Handler: &MockHandler{}}); err == nil {
		t.Error("Register() expected error for duplicate command name")
	}
}

func TestRegistry_Register_AliasConflictLeavesNoTrace(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&Command{Name: "help", Aliases: []string{"h"}, Handler: &MockHandler{}}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	err := r.Register(&Command{Name: "history", Aliases: []string{"h"}, Handler: &MockHandler{}})
	if err == nil {
		t.Fatal("Register() expected alias conflict")
	}
	if _, ok := r.Lookup("history"); ok {
		t.Error("conflicting command was partially registered")
	}
	if len(r.All()) != 1 {
		t.Errorf("All() = %d commands, want 1", len(r.All()))
	}
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&Command{Name: "deploy", Handler: &MockHandler{}})
	_ = r.Register(&Command{Name: "apps", Aliases: []string{"a"}, Handler: &MockHandler{}})

	got := strings.Join(r.Names(), ",")
	if got != "a,apps,deploy" {
		t.Errorf("Names() = %s, want a,apps,deploy", got)
	}
}

func TestRegistry_ByCategory(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(&Command{Name: "logs", Category: CategoryInfo, Handler: &MockHandler{}})
	_ = r.Register(&Command{Name: "apps", Category: CategoryInfo, Handler: &MockHandler{}})
	_ = r.Register(&Command{Name: "deploy", Category: CategoryApplication, Handler: &MockHandler{}})

	cats := r.ByCategory()
	info := cats[CategoryInfo]
	if len(info) != 2 {
		t.Fatalf("ByCategory()[Info] = %d commands, want 2", len(info))
	}
	if info[0].Name != "apps" || info[1].Name != "logs" {
		t.Errorf("ByCategory()[Info] not sorted: %s, %s", info[0].Name, info[1].Name)
	}
	if len(cats[CategoryApplication]) != 1 {
		t.Errorf("ByCategory()[Application] = %d commands, want 1", len(cats[CategoryApplication]))
	}
}

func TestRegistry_Execute(t *testing.T) {
	r := NewRegistry()

	var gotArgs []string
	var gotRaw string
	_ = r.Register(&Command{
		Name: "echo",
		Handler: &MockHandler{executeFunc: func(args []string, ctx *Context) error {
			gotArgs = args
			gotRaw = ctx.RawArgs
			if ctx.Registry != r {
				t.Error("Execute() did not set ctx.Registry")
			}
			return nil
		}},
	})

	ctx := &Context{}
	if err := r.Execute(`echo a "b c"`, ctx); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(gotArgs) != 2 || gotArgs[0] != "a" || gotArgs[1] != "b c" {
		t.Errorf("Execute() args = %q", gotArgs)
	}
	if gotRaw != `a "b c"` {
		t.Errorf("Execute() RawArgs = %q", gotRaw)
	}
}

func TestRegistry_Execute_Errors(t *testing.T) {
	r := NewRegistry()
	sentinel := errors.New("boom")
	_ = r.Register(&Command{
		Name: "fail",
		Handler: &MockHandler{executeFunc: func([]string, *Context) error {
			return sentinel
		}},
	})

	if err := r.Execute("", &Context{}); err != nil {
		t.Errorf("Execute(\"\") error = %v, want nil", err)
	}
	if err := r.Execute("nope", &Context{}); err == nil {
		t.Error("Execute() expected error for unknown command")
	}
	if err := r.Execute("fail", &Context{}); !errors.Is(err, sentinel) {
		t.Errorf("Execute() error = %v, want %v", err, sentinel)
	}
}
