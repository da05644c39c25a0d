// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package command

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/trustcampus/campusapps/internal/engine"
	"github.com/trustcampus/campusapps/internal/util"
)

// RegisterBuiltins adds the session, application and query commands.
func RegisterBuiltins(r *Registry) error {
	builtins := []*Command{
		{
			Name:        "help",
			Aliases:     []string{"h", "?"},
			Usage:       "help [command]",
			Description: "Show commands or the help of one command",
			Category:    CategorySession,
			Handler:     HandlerFunc(cmdHelp),
		},
		{
			Name:        "exit",
			Aliases:     []string{"quit", "q"},
			Usage:       "exit",
			Description: "Leave the shell",
			Category:    CategorySession,
			Handler: HandlerFunc(func([]string, *Context) error {
				return engine.ErrExit
			}),
		},
		{
			Name:        "programs",
			Usage:       "programs",
			Description: "List the deployable programs",
			Category:    CategorySetup,
			Handler:     HandlerFunc(cmdPrograms),
		},
		{
			Name:        "account",
			Usage:       "account [name]",
			Description: "Show an account, creating it if the name is new; no name lists accounts",
			Category:    CategorySetup,
			Handler:     HandlerFunc(cmdAccount),
		},
		{
			Name:        "as",
			Usage:       "as <account>",
			Description: "Set the default sender",
			Category:    CategorySetup,
			Handler:     HandlerFunc(cmdAs),
		},
		{
			Name:        "deploy",
			Usage:       "deploy <program> [from=<account>]",
			Description: "Create an application running a program",
			Category:    CategoryApplication,
			Handler:     HandlerFunc(cmdDeploy),
		},
		{
			Name:        "call",
			Usage:       "call <app> [args...] [from=<account>] [oc=<completion>]",
			Description: "Send an application call",
			LongHelp: `Arguments are UTF-8 text unless prefixed:
  0x<hex>        raw bytes
  b64:<base64>   raw bytes
  addr:<account> 32-byte address of an alias or address
  str:<text>     literal text
Completions: noop (default), optin, closeout, clearstate, update, delete.`,
			Category: CategoryApplication,
			Handler:  HandlerFunc(cmdCall),
		},
		lifecycle("optin", "optin", "Opt an account in to an application"),
		lifecycle("closeout", "closeout", "Close an account out of an application"),
		lifecycle("delete", "delete", "Delete an application (creator only)"),
		{
			Name:        "update",
			Usage:       "update <app> [program=<name>] [from=<account>]",
			Description: "Update an application, optionally replacing its program (creator only)",
			Category:    CategoryApplication,
			Handler:     HandlerFunc(cmdUpdate),
		},
		{
			Name:        "script",
			Aliases:     []string{"source"},
			Usage:       "script <file>",
			Description: "Run a file of shell commands, stopping at the first failure",
			Category:    CategoryScripting,
			Handler:     HandlerFunc(cmdScript),
		},
		{
			Name:        "apps",
			Usage:       "apps",
			Description: "List live applications",
			Category:    CategoryInfo,
			Handler:     HandlerFunc(cmdApps),
		},
		{
			Name:        "logs",
			Usage:       "logs [app] [after=<seq>]",
			Description: "Show decoded log records",
			Category:    CategoryInfo,
			Handler:     HandlerFunc(cmdLogs),
		},
		{
			Name:        "asset",
			Usage:       "asset <id>",
			Description: "Show an asset",
			Category:    CategoryInfo,
			Handler:     HandlerFunc(cmdAsset),
		},
		{
			Name:        "holding",
			Usage:       "holding <account> <asset>",
			Description: "Show an account's holding of an asset",
			Category:    CategoryInfo,
			Handler:     HandlerFunc(cmdHolding),
		},
	}

	for _, cmd := range builtins {
		if err := r.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func lifecycle(name, oc, desc string) *Command {
	return &Command{
		Name:        name,
		Usage:       name + " <app> [from=<account>]",
		Description: desc,
		Category:    CategoryApplication,
		Handler: HandlerFunc(func(args []string, ctx *Context) error {
			pos, opts := splitOptions(args, "from")
			if len(pos) != 1 {
				return fmt.Errorf("usage: %s <app> [from=<account>]", name)
			}
			app, err := parseID("application", pos[0])
			if err != nil {
				return err
			}
			return runCall(ctx, engine.CallRequest{App: app, Sender: opts["from"], OnComplete: oc})
		}),
	}
}

func runCall(ctx *Context, req engine.CallRequest) error {
	res, err := ctx.Engine.Call(ctx.Context(), req)
	if err != nil {
		return err
	}
	PrintResult(ctx.Writer(), res)
	return nil
}

func cmdHelp(args []string, ctx *Context) error {
	if ctx.Registry == nil {
		return fmt.Errorf("help is not available")
	}
	if len(args) == 0 {
		ShowHelp(ctx.Writer(), ctx.Registry)
		return nil
	}
	cmd, ok := ctx.Registry.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown command %q", args[0])
	}
	ShowCommandHelp(ctx.Writer(), cmd)
	return nil
}

func cmdPrograms(_ []string, ctx *Context) error {
	for _, name := range ctx.Engine.Programs() {
		ctx.Println(name)
	}
	return nil
}

func cmdAccount(args []string, ctx *Context) error {
	if len(args) == 0 {
		aliases := ctx.Engine.Aliases()
		names := make([]string, 0, len(aliases))
		for name := range aliases {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			ctx.Printf("%-16s %s\n", name, aliases[name])
		}
		return nil
	}
	addr, err := ctx.Engine.Account(args[0])
	if err != nil {
		return err
	}
	ctx.Printf("%s %s\n", args[0], addr.String())
	return nil
}

func cmdAs(args []string, ctx *Context) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: as <account>")
	}
	addr, err := ctx.Engine.SetSender(args[0])
	if err != nil {
		return err
	}
	ctx.Printf("sender: %s\n", ctx.Engine.FormatAddress(addr))
	return nil
}

func cmdDeploy(args []string, ctx *Context) error {
	pos, opts := splitOptions(args, "from")
	if len(pos) != 1 {
		return fmt.Errorf("usage: deploy <program> [from=<account>]")
	}
	res, err := ctx.Engine.Deploy(ctx.Context(), pos[0], opts["from"])
	if err != nil {
		return err
	}
	PrintResult(ctx.Writer(), res)
	ctx.Printf("  app address: %s\n", res.AppAddress)
	return nil
}

func cmdCall(args []string, ctx *Context) error {
	pos, opts := splitOptions(args, "from", "oc")
	if len(pos) < 1 {
		return fmt.Errorf("usage: call <app> [args...] [from=<account>] [oc=<completion>]")
	}
	app, err := parseID("application", pos[0])
	if err != nil {
		return err
	}
	appArgs, err := ctx.Engine.ParseArgs(pos[1:])
	if err != nil {
		return err
	}
	return runCall(ctx, engine.CallRequest{App: app, Sender: opts["from"], OnComplete: opts["oc"], Args: appArgs})
}

func cmdUpdate(args []string, ctx *Context) error {
	pos, opts := splitOptions(args, "from", "program")
	if len(pos) != 1 {
		return fmt.Errorf("usage: update <app> [program=<name>] [from=<account>]")
	}
	app, err := parseID("application", pos[0])
	if err != nil {
		return err
	}
	return runCall(ctx, engine.CallRequest{App: app, Sender: opts["from"], OnComplete: "update", Program: opts["program"]})
}

func cmdScript(args []string, ctx *Context) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: script <file>")
	}
	res, err := ctx.Engine.RunScript(args[0], func(line string) error {
		return ctx.Registry.Execute(line, ctx)
	})
	if err != nil {
		return err
	}
	ctx.Printf("%s %d commands\n", util.Dim("script:"), res.CommandsRun)
	return nil
}

func cmdApps(_ []string, ctx *Context) error {
	apps := ctx.Engine.Apps()
	if len(apps) == 0 {
		ctx.Println("no applications")
		return nil
	}
	for _, a := range apps {
		ctx.Printf("%d %-12s creator=%s opted_in=%d\n", a.AppID, a.Program, a.Creator, a.OptedIn)
	}
	return nil
}

func cmdLogs(args []string, ctx *Context) error {
	pos, opts := splitOptions(args, "after")
	var app, after uint64
	var err error
	if len(pos) > 0 {
		if app, err = parseID("application", pos[0]); err != nil {
			return err
		}
	}
	if v, ok := opts["after"]; ok {
		if after, err = strconv.ParseUint(v, 10, 64); err != nil {
			return fmt.Errorf("invalid after=%q", v)
		}
	}
	logs, err := ctx.Engine.Logs(ctx.Context(), app, after)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		ctx.Println("no log records")
		return nil
	}
	for _, l := range logs {
		PrintLog(ctx.Writer(), l)
	}
	return nil
}

func cmdAsset(args []string, ctx *Context) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: asset <id>")
	}
	id, err := parseID("asset", args[0])
	if err != nil {
		return err
	}
	a, err := ctx.Engine.Asset(id)
	if err != nil {
		return err
	}
	ctx.Printf("Asset %d\n", a.AssetID)
	ctx.Printf("  name:           %s\n", a.Name)
	ctx.Printf("  unit:           %s\n", a.UnitName)
	ctx.Printf("  total:          %d (decimals %d)\n", a.Total, a.Decimals)
	ctx.Printf("  default frozen: %v\n", a.DefaultFrozen)
	ctx.Printf("  url:            %s\n", a.URL)
	ctx.Printf("  creator:        %s\n", a.Creator)
	ctx.Printf("  clawback:       %s\n", a.Clawback)
	return nil
}

func cmdHolding(args []string, ctx *Context) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: holding <account> <asset>")
	}
	id, err := parseID("asset", args[1])
	if err != nil {
		return err
	}
	h, ok, err := ctx.Engine.Holding(args[0], id)
	if err != nil {
		return err
	}
	if !ok {
		ctx.Printf("%s holds nothing of asset %d\n", args[0], id)
		return nil
	}
	state := "transferable"
	if h.Frozen {
		state = "frozen"
	}
	ctx.Printf("%s holds %d of asset %d (%s)\n", args[0], h.Amount, id, state)
	return nil
}

// NewDefaultRegistry returns a registry holding the builtin commands.
func NewDefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	if err := RegisterBuiltins(r); err != nil {
		return nil, err
	}
	return r, nil
}
