// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package command

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCommand parses command line, handling quoted strings
func ParseCommand(input string) (string, []string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", nil
	}

	var parts []string
	var current strings.Builder
	inQuotes := false
	quoted := false

	for i := 0; i < len(input); i++ {
		ch := input[i]

		switch ch {
		case '"':
			inQuotes = !inQuotes
			quoted = true
		case ' ', '\t':
			if inQuotes {
				current.WriteByte(ch)
			} else if current.Len() > 0 || quoted {
				parts = append(parts, current.String())
				current.Reset()
				quoted = false
			}
		default:
			current.WriteByte(ch)
		}
	}

	if current.Len() > 0 || quoted {
		parts = append(parts, current.String())
	}

	if len(parts) == 0 {
		return "", nil
	}

	return parts[0], parts[1:]
}

// splitOptions separates key=value options named in keys from positional
// arguments. Other arguments containing '=' stay positional.
func splitOptions(args []string, keys ...string) ([]string, map[string]string) {
	opts := make(map[string]string)
	var positional []string
	for _, arg := range args {
		matched := false
		for _, k := range keys {
			if v, ok := strings.CutPrefix(arg, k+"="); ok {
				opts[k] = v
				matched = true
				break
			}
		}
		if !matched {
			positional = append(positional, arg)
		}
	}
	return positional, opts
}

// parseID parses an application or asset id.
func parseID(kind, s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, s)
	}
	return id, nil
}
