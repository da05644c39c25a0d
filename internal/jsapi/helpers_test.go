// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package jsapi

import (
	"testing"

	"github.com/dop251/goja"

	"github.com/trustcampus/campusapps/internal/engine"
)

// TestToUint64 tests the toUint64 Goja helper.
func TestToUint64(t *testing.T) {
	vm := goja.New()

	tests := []struct {
		name      string
		input     interface{}
		want      uint64
		wantPanic bool
	}{
		{
			name:  "int64 positive",
			input: int64(42),
			want:  42,
		},
		{
			name:  "int64 zero",
			input: int64(0),
			want:  0,
		},
		{
			name:  "float64 positive",
			input: float64(123.0),
			want:  123,
		},
		{
			name:  "float64 with decimal truncates",
			input: float64(99.9),
			want:  99,
		},
		{
			name:  "int positive",
			input: 100,
			want:  100,
		},
		{
			name:  "uint64",
			input: uint64(999),
			want:  999,
		},
		{
			name:      "int64 negative",
			input:     int64(-1),
			wantPanic: true,
		},
		{
			name:      "float64 negative",
			input:     float64(-0.5),
			wantPanic: true,
		},
		{
			name:      "int negative",
			input:     -50,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := vm.ToValue(tt.input)

			if tt.wantPanic {
				defer func() {
					r := recover()
					if r == nil {
						t.Errorf("expected panic but got none")
					}
				}()
			}

			got := toUint64(vm, v)

			if tt.wantPanic {
				t.Errorf("expected panic but function returned normally")
				return
			}

			if got != tt.want {
				t.Errorf("toUint64(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// TestToUint64Interface tests the toUint64Interface helper.
func TestToUint64Interface(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    uint64
		wantErr bool
		errMsg  string
	}{
		{
			name:  "int64 positive",
			input: int64(42),
			want:  42,
		},
		{
			name:  "int64 zero",
			input: int64(0),
			want:  0,
		},
		{
			name:  "float64 positive",
			input: float64(123.0),
			want:  123,
		},
		{
			name:  "float64 truncates",
			input: float64(99.9),
			want:  99,
		},
		{
			name:  "int positive",
			input: 100,
			want:  100,
		},
		{
			name:  "uint64",
			input: uint64(999),
			want:  999,
		},
		{
			name:    "int64 negative",
			input:   int64(-1),
			wantErr: true,
			errMsg:  "value cannot be negative",
		},
		{
			name:    "float64 negative",
			input:   float64(-0.5),
			wantErr: true,
			errMsg:  "value cannot be negative",
		},
		{
			name:    "int negative",
			input:   -50,
			wantErr: true,
			errMsg:  "value cannot be negative",
		},
		{
			name:    "string type",
			input:   "not a number",
			wantErr: true,
			errMsg:  "unsupported type for uint64 conversion: string",
		},
		{
			name:    "nil",
			input:   nil,
			wantErr: true,
			errMsg:  "unsupported type for uint64 conversion: <nil>",
		},
		{
			name:    "slice",
			input:   []int{1, 2, 3},
			wantErr: true,
			errMsg:  "unsupported type for uint64 conversion: []int",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toUint64Interface(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error but got none")
					return
				}
				if err.Error() != tt.errMsg {
					t.Errorf("error = %q, want %q", err.Error(), tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if got != tt.want {
				t.Errorf("toUint64Interface(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// TestToArgs tests the conversion of JS argument arrays.
func TestToArgs(t *testing.T) {
	eng, err := engine.NewEngine()
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	api := NewAPI(eng, false, nil)
	api.runtime = goja.New()

	got, err := api.toArgs([]interface{}{"CS101", int64(1700000000), float64(7), "0x0102", []byte{9}})
	if err != nil {
		t.Fatalf("toArgs() error = %v", err)
	}
	want := []string{"CS101", "1700000000", "7", "\x01\x02", "\x09"}
	if len(got) != len(want) {
		t.Fatalf("toArgs() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if string(got[i]) != want[i] {
			t.Errorf("toArgs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	for _, bad := range []interface{}{"not an array", []interface{}{1.5}, []interface{}{true}, []interface{}{"0xzz"}} {
		if _, err := api.toArgs(bad); err == nil {
			t.Errorf("toArgs(%v) expected error", bad)
		}
	}
}
