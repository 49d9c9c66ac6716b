package config

import (
	"reflect"
	"testing"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name   string
		layers []map[string]any
		want   map[string]any
	}{
		{
			name:   "no layers",
			layers: nil,
			want:   map[string]any{},
		},
		{
			name:   "single layer copied through",
			layers: []map[string]any{{"a": 1.0}},
			want:   map[string]any{"a": 1.0},
		},
		{
			name: "primitives overwrite",
			layers: []map[string]any{
				{"a": 1.0, "keep": "yes"},
				{"a": 2.0},
			},
			want: map[string]any{"a": 2.0, "keep": "yes"},
		},
		{
			name: "arrays replace wholesale",
			layers: []map[string]any{
				{"a": 1.0, "b": []any{1.0, 2.0}},
				{"a": 2.0, "b": []any{3.0}},
			},
			want: map[string]any{"a": 2.0, "b": []any{3.0}},
		},
		{
			name: "objects recurse",
			layers: []map[string]any{
				{"x": map[string]any{"y": 1.0}},
				{"x": map[string]any{"z": 2.0}},
			},
			want: map[string]any{"x": map[string]any{"y": 1.0, "z": 2.0}},
		},
		{
			name: "explicit null overwrites",
			layers: []map[string]any{
				{"a": map[string]any{"deep": true}},
				{"a": nil},
			},
			want: map[string]any{"a": nil},
		},
		{
			name: "object replaces primitive before recursing",
			layers: []map[string]any{
				{"a": "scalar"},
				{"a": map[string]any{"b": 1.0}},
			},
			want: map[string]any{"a": map[string]any{"b": 1.0}},
		},
		{
			name: "array replaces object",
			layers: []map[string]any{
				{"a": map[string]any{"b": 1.0}},
				{"a": []any{"x"}},
			},
			want: map[string]any{"a": []any{"x"}},
		},
		{
			name: "deep heterogeneous trees",
			layers: []map[string]any{
				{
					"ci": map[string]any{
						"steps":   []any{"lint", "test"},
						"timeout": 30.0,
						"env":     map[string]any{"DEBUG": false},
					},
				},
				{
					"ci": map[string]any{
						"steps": []any{"test"},
						"env":   map[string]any{"TRACE": true},
					},
				},
			},
			want: map[string]any{
				"ci": map[string]any{
					"steps":   []any{"test"},
					"timeout": 30.0,
					"env":     map[string]any{"DEBUG": false, "TRACE": true},
				},
			},
		},
		{
			name: "three scope layers",
			layers: []map[string]any{
				{"testCoverage": 80.0},
				{"autoFormat": true, "testCoverage": 80.0},
				{"testCoverage": 90.0},
			},
			want: map[string]any{"testCoverage": 90.0, "autoFormat": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.layers...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := map[string]any{
		"nested": map[string]any{"a": 1.0},
		"list":   []any{1.0, 2.0},
	}
	override := map[string]any{
		"nested": map[string]any{"b": 2.0},
	}

	merged := Merge(base, override)

	if _, ok := base["nested"].(map[string]any)["b"]; ok {
		t.Error("Merge mutated the base layer")
	}

	// Mutating the result must not reach back into an input layer.
	merged["nested"].(map[string]any)["a"] = 99.0
	merged["list"].([]any)[0] = 99.0
	if base["nested"].(map[string]any)["a"] != 1.0 {
		t.Error("merged tree aliases the base layer's nested map")
	}
	if base["list"].([]any)[0] != 1.0 {
		t.Error("merged tree aliases the base layer's list")
	}
}
