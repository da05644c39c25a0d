// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/trustcampus/campusapps/internal/engine"
	"github.com/trustcampus/campusapps/internal/issuance"
	"github.com/trustcampus/campusapps/internal/ledger"
	"github.com/trustcampus/campusapps/internal/programs"
	"github.com/trustcampus/campusapps/internal/store"
	"github.com/trustcampus/campusapps/internal/util"
	"github.com/trustcampus/campusapps/internal/version"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DataDir    string
	ConfigPath string
	Verbose    bool
	Format     string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for tcshell.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tcshell",
		Short: "TrustCampus shell",
		Long: `Deploy and drive the TrustCampus programs (attendance, certificate,
voting, feedback) against a local ledger kept in the data directory.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Verbose {
				util.InitLoggerTo(cmd.ErrOrStderr(), true)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.DataDir, "data", "d", "", "data directory (default: ~/.tcshell or TCSHELL_DATA)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default: <data>/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewProgramsCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewReplCommand(opts))
	cmd.AddCommand(NewSubmitCommand(opts))
	cmd.AddCommand(NewLogsCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig resolves the data directory and reads the configuration.
// A store path in an explicit --config file is relative to that file.
func loadConfig(opts *RootOptions) (util.Config, error) {
	if opts.ConfigPath != "" {
		cfg, err := util.LoadConfigFromPath(opts.ConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg.StorePath = util.ResolvePath(cfg.StorePath, filepath.Dir(opts.ConfigPath))
		return cfg, nil
	}
	return util.LoadConfig(util.GetDataDir(opts.DataDir))
}

// programOptions maps the certificate settings onto program options.
func programOptions(cfg util.Config) programs.Options {
	return programs.Options{
		Credential: issuance.CredentialParams{
			AssetName: cfg.Certificate.AssetName,
			UnitName:  cfg.Certificate.UnitName,
			URLPrefix: cfg.Certificate.URLPrefix,
		},
	}
}

// openEngine builds an engine over the configured ledger. An empty store
// path keeps the ledger in memory.
func openEngine(ctx context.Context, cfg util.Config) (*engine.Engine, error) {
	popts := ledger.WithProgramOptions(programOptions(cfg))

	if cfg.StorePath == "" {
		l, err := ledger.New(popts)
		if err != nil {
			return nil, err
		}
		return engine.NewEngine(engine.WithLedger(l), engine.WithAliases(cfg.Aliases))
	}

	if err := os.MkdirAll(filepath.Dir(cfg.StorePath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	l, st, err := store.OpenLedger(ctx, cfg.StorePath, popts)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger %s: %w", cfg.StorePath, err)
	}
	util.Debug("opened ledger", "path", cfg.StorePath, "round", l.Round())

	eng, err := engine.NewEngine(engine.WithLedger(l), engine.WithStore(st), engine.WithAliases(cfg.Aliases))
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return eng, nil
}

// openSession loads configuration and opens the engine in one step.
func openSession(ctx context.Context, opts *RootOptions) (*engine.Engine, util.Config, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	eng, err := openEngine(ctx, cfg)
	if err != nil {
		return nil, cfg, err
	}
	eng.Verbose = opts.Verbose
	return eng, cfg, nil
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
