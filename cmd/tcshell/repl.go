// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/trustcampus/campusapps/internal/command"
	"github.com/trustcampus/campusapps/internal/engine"
	"github.com/trustcampus/campusapps/internal/scripting"
)

// NewReplCommand creates the interactive shell command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			eng, _, err := openSession(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer func() { _ = eng.Close() }()

			sh, err := newShell(ctx, eng, cmd.OutOrStdout(), rootOpts.Verbose)
			if err != nil {
				return err
			}
			sh.start()
			return nil
		},
	}
}

// shell is one interactive session.
type shell struct {
	eng      *engine.Engine
	registry *command.Registry
	ctx      *command.Context
	runner   scripting.Runner
	out      io.Writer
}

func newShell(ctx context.Context, eng *engine.Engine, out io.Writer, verbose bool) (*shell, error) {
	registry, err := command.NewDefaultRegistry()
	if err != nil {
		return nil, err
	}

	runner := newRunner(ctx, eng, verbose, out)

	sh := &shell{
		eng:      eng,
		registry: registry,
		ctx:      &command.Context{Engine: eng, Registry: registry, Ctx: ctx, Out: out},
		runner:   runner,
		out:      out,
	}
	if err := registry.Register(&command.Command{
		Name:        "js",
		Usage:       "js <code>",
		Description: "Evaluate JavaScript in the session runtime",
		LongHelp: `The runtime keeps its variables between lines:
  js var app = deploy("voting", "admin").app
  js call({app: app, args: ["create_proposal", "P1", "Lab hours", "1700000000"]})`,
		Category: command.CategoryScripting,
		Handler:  command.HandlerFunc(sh.cmdJS),
	}); err != nil {
		return nil, err
	}
	return sh, nil
}

func (sh *shell) cmdJS(_ []string, ctx *command.Context) error {
	code := ctx.RawArgs
	if code == "" {
		return fmt.Errorf("usage: js <code>")
	}
	res, err := sh.runner.Run(code)
	if err != nil {
		return err
	}
	if !res.IsEmpty {
		ctx.Println(res.Value)
	}
	return nil
}

// execute runs one line and reports whether the shell should exit.
func (sh *shell) execute(line string) bool {
	err := sh.registry.Execute(line, sh.ctx)
	if err == nil {
		return false
	}
	if errors.Is(err, engine.ErrExit) {
		return true
	}
	command.ReportError(sh.out, err)
	return false
}

func (sh *shell) prompt() string {
	label := "tcshell"
	if addr, ok := sh.eng.Sender(); ok {
		if name := sh.eng.Aliases().NameOf(addr); name != "" {
			label += ":" + name
		}
	}
	return fmt.Sprintf("\033[32m%s>\033[0m ", label)
}

func (sh *shell) start() {
	fmt.Fprintln(sh.out, "tcshell - TrustCampus Shell")
	fmt.Fprintln(sh.out, "Type 'help' for available commands or 'quit' to exit")

	homeDir, _ := os.UserHomeDir()
	historyFile := filepath.Join(homeDir, ".tcshell_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            sh.prompt(),
		HistoryFile:       historyFile,
		HistoryLimit:      1000,
		AutoComplete:      sh.completer(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(sh.out, "Failed to create readline instance, falling back to basic input: %v\n", err)
		sh.runBasic(os.Stdin)
		return
	}
	defer func() {
		_ = rl.Close() // Best-effort close, errors during shutdown not critical
	}()

	for {
		rl.SetPrompt(sh.prompt())

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					fmt.Fprintln(sh.out, "Use 'quit' or 'exit' to exit")
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(sh.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(sh.out, "Error reading input: %v\n", err)
			continue
		}

		if sh.execute(line) {
			return
		}
	}
}

// runBasic reads commands from r without history or completion.
func (sh *shell) runBasic(r io.Reader) {
	fmt.Fprintln(sh.out, "Running in basic mode (no history/completion)")
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(sh.out, "tcshell> ")
		if !scanner.Scan() {
			return
		}
		if sh.execute(scanner.Text()) {
			return
		}
	}
}

// completer offers command names, program names after deploy and
// account names where a command takes an account.
func (sh *shell) completer() readline.AutoCompleter {
	accounts := func(string) []string {
		aliases := sh.eng.Aliases()
		names := make([]string, 0, len(aliases))
		for name := range aliases {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	}
	programNames := func(string) []string {
		return sh.eng.Programs()
	}
	commandNames := func(string) []string {
		var names []string
		for _, cmd := range sh.registry.All() {
			names = append(names, cmd.Name)
		}
		return names
	}

	var items []readline.PrefixCompleterInterface
	for _, cmd := range sh.registry.All() {
		switch cmd.Name {
		case "deploy":
			items = append(items, readline.PcItem(cmd.Name, readline.PcItemDynamic(programNames)))
		case "as", "account", "holding":
			items = append(items, readline.PcItem(cmd.Name, readline.PcItemDynamic(accounts)))
		case "help":
			items = append(items, readline.PcItem(cmd.Name, readline.PcItemDynamic(commandNames)))
		default:
			items = append(items, readline.PcItem(cmd.Name))
		}
	}
	return readline.NewPrefixCompleter(items...)
}
