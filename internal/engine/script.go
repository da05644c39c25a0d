// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// CommandExecutor is a function that executes one command line.
// This allows the REPL to inject its command execution logic.
type CommandExecutor func(line string) error

// RunScript executes commands from a script file, one per line.
// The executor callback is provided by the REPL layer to handle actual command execution.
func (e *Engine) RunScript(filepath string, executor CommandExecutor) (*ScriptResult, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer func() { _ = file.Close() }()

	return e.RunScriptFrom(file, executor)
}

// RunScriptFrom executes commands read from r. Blank lines and lines
// starting with # are skipped; the first failing command stops the script.
func (e *Engine) RunScriptFrom(r io.Reader, executor CommandExecutor) (*ScriptResult, error) {
	result := &ScriptResult{}
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		result.LinesExecuted++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result.CommandsRun++

		if err := executor(line); err != nil {
			if errors.Is(err, ErrExit) {
				result.Completed = true
				return result, nil
			}

			result.Errors = append(result.Errors, ScriptError{
				LineNumber: result.LinesExecuted,
				Command:    line,
				Error:      err.Error(),
			})
			// Stop on first error
			return result, fmt.Errorf("%w at line %d: %w", ErrScriptError, result.LinesExecuted, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("error reading script: %w", err)
	}

	result.Completed = true
	return result, nil
}
