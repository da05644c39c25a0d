// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package scripting

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustcampus/campusapps/internal/engine"
)

func newRunner(t *testing.T) (*GojaRunner, *[]string) {
	t.Helper()
	eng, err := engine.NewEngine()
	require.NoError(t, err)
	r := NewGojaRunner(eng)
	var out []string
	r.SetOutput(func(s string) { out = append(out, s) })
	return r, &out
}

func TestGojaRunner_Run(t *testing.T) {
	r, out := newRunner(t)

	res, err := r.Run(`print("hello"); 1 + 2`)
	require.NoError(t, err)
	assert.False(t, res.IsEmpty)
	assert.Equal(t, int64(3), res.Value)
	assert.Equal(t, []string{"hello"}, *out)

	res, err = r.Run(`var x = 1;`)
	require.NoError(t, err)
	assert.True(t, res.IsEmpty)
}

func TestGojaRunner_StatePersists(t *testing.T) {
	r, _ := newRunner(t)

	_, err := r.Run(`var app = deploy("feedback", "lecturer").app;`)
	require.NoError(t, err)
	res, err := r.Run(`call({app: app, sender: "student", args: ["CS101", "T42", "QmHash"]}).logs[0].kind`)
	require.NoError(t, err)
	assert.Equal(t, "feedback", res.Value)
}

func TestGojaRunner_Errors(t *testing.T) {
	r, _ := newRunner(t)

	_, err := r.Run(`throw new Error("boom")`)
	var se *ScriptError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Message, "boom")

	_, err = r.Run(`deploy("nosuch", "admin")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deploy() error")

	_, err = r.Run(`this is not javascript`)
	assert.Error(t, err)
}

func TestGojaRunner_RunFile(t *testing.T) {
	r, out := newRunner(t)
	path := filepath.Join(t.TempDir(), "scenario.js")
	require.NoError(t, os.WriteFile(path, []byte(`print(programs().length)`), 0o600))

	_, err := r.RunFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, *out)

	_, err = r.RunFile(filepath.Join(t.TempDir(), "missing.js"))
	assert.Error(t, err)
}

func TestGojaRunner_Verbose(t *testing.T) {
	r, out := newRunner(t)
	r.SetVerbose(true)
	_, err := r.Run(`log("trace")`)
	require.NoError(t, err)
	assert.Equal(t, []string{"[debug] trace"}, *out)
}

func TestGojaRunner_Interrupt(t *testing.T) {
	r, _ := newRunner(t)
	go func() {
		time.Sleep(50 * time.Millisecond)
		r.Interrupt()
	}()
	_, err := r.Run(`for (;;) {}`)
	assert.Error(t, err)
}

func TestNew_AppliesOptions(t *testing.T) {
	eng, err := engine.NewEngine()
	require.NoError(t, err)
	var out []string
	var r Runner = New(eng, Options{
		Ctx:     context.Background(),
		Verbose: true,
		Output:  func(s string) { out = append(out, s) },
	})

	_, err = r.Run(`log("trace"); var app = deploy("attendance", "admin").app`)
	require.NoError(t, err)
	assert.Equal(t, "[debug] trace", out[0])

	res, err := r.Run(`app`)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), res.Value)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r.SetContext(ctx)
	_, err = r.Run(`deploy("voting", "admin")`)
	var se *ScriptError
	assert.ErrorAs(t, err, &se)
}
