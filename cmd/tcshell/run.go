// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/trustcampus/campusapps/internal/command"
	"github.com/trustcampus/campusapps/internal/engine"
	"github.com/trustcampus/campusapps/internal/scripting"
	"github.com/trustcampus/campusapps/internal/util"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Watch bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a JavaScript (.js) or shell command script",
		Long: `Run a scenario script against the ledger.

Files ending in .js run in the JavaScript runtime (deploy, call, optIn,
logs, ...). Any other file is a list of shell commands, one per line,
stopping at the first failure.

With --watch the script runs again every time it changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !opts.Watch {
				return runScriptFile(cmd.Context(), opts.RootOptions, path, cmd.OutOrStdout())
			}

			cfg, err := loadConfig(opts.RootOptions)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			var mu sync.Mutex
			rerun := func() {
				mu.Lock()
				defer mu.Unlock()
				if err := runScriptFile(ctx, opts.RootOptions, path, out); err != nil {
					fmt.Fprintf(out, "%s %v\n", util.Rejected("script failed:"), err)
				}
			}
			rerun()
			fmt.Fprintf(out, "%s\n", util.Dim("watching "+path+" (Ctrl+C to stop)"))
			return watchScript(ctx, path, time.Duration(cfg.WatchDebounceMs)*time.Millisecond, rerun)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "run again when the script changes")

	return cmd
}

// runScriptFile opens a session, runs one script and closes the session.
func runScriptFile(ctx context.Context, opts *RootOptions, path string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	eng, _, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".js") {
		res, err := newRunner(ctx, eng, opts.Verbose, out).RunFile(path)
		if err != nil {
			return err
		}
		if !res.IsEmpty {
			fmt.Fprintln(out, res.Value)
		}
		return nil
	}

	registry, err := command.NewDefaultRegistry()
	if err != nil {
		return err
	}
	cctx := &command.Context{Engine: eng, Registry: registry, Ctx: ctx, Out: out}
	res, err := eng.RunScript(path, func(line string) error {
		return registry.Execute(line, cctx)
	})
	if err != nil {
		return err
	}
	util.Debug("script finished", "path", path, "commands", res.CommandsRun)
	return nil
}

// newRunner builds a script runner that prints to out.
func newRunner(ctx context.Context, eng *engine.Engine, verbose bool, out io.Writer) scripting.Runner {
	return scripting.New(eng, scripting.Options{
		Ctx:     ctx,
		Verbose: verbose,
		Output: func(msg string) {
			fmt.Fprintln(out, msg)
		},
	})
}

// watchScript calls run, debounced, whenever the file at path is written,
// created or replaced. The directory is watched so editors that save by
// renaming are still seen. It returns when ctx is done.
func watchScript(ctx context.Context, path string, debounce time.Duration, run func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, run)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			util.Warn("file watcher error", "error", err)
		}
	}
}
