// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustcampus/campusapps/internal/avm"
)

func TestRequireArgs(t *testing.T) {
	call := avm.Call{Args: [][]byte{[]byte("a"), []byte("b")}}
	require.NoError(t, RequireArgs(call, 2))
	require.ErrorIs(t, RequireArgs(call, 3), avm.ErrShape)
	require.ErrorIs(t, RequireArgs(avm.Call{}, 1), avm.ErrShape)
}

func TestDecodersDispatch(t *testing.T) {
	decoders := Decoders[string]{
		"create_proposal": func(c avm.Call) (string, error) {
			if err := RequireArgs(c, 4); err != nil {
				return "", err
			}
			return "create", nil
		},
		"cast_vote": func(c avm.Call) (string, error) { return "vote", nil },
	}

	call := func(args ...string) avm.Call {
		c := avm.Call{AppID: 1}
		for _, a := range args {
			c.Args = append(c.Args, []byte(a))
		}
		return c
	}

	got, err := decoders.Decode(call("cast_vote", "p1", "YES"))
	require.NoError(t, err)
	assert.Equal(t, "vote", got)

	got, err = decoders.Decode(call("create_proposal", "p1", "t", "d"))
	require.NoError(t, err)
	assert.Equal(t, "create", got)

	_, err = decoders.Decode(call("create_proposal"))
	require.ErrorIs(t, err, avm.ErrShape)

	_, err = decoders.Decode(call("close_proposal"))
	require.ErrorIs(t, err, avm.ErrRouting)

	_, err = decoders.Decode(call())
	require.ErrorIs(t, err, avm.ErrRouting)

	assert.Equal(t, []string{"cast_vote", "create_proposal"}, decoders.Names())
}
