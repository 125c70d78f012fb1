package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeepMerge(t *testing.T) {
	tests := []struct {
		name    string
		base    map[string]any
		overlay map[string]any
		want    map[string]any
	}{
		{
			name: "basic dict merge overlay wins",
			base: map[string]any{
				"key1": "base1",
				"key2": "base2",
			},
			overlay: map[string]any{
				"key2": "overlay2",
				"key3": "overlay3",
			},
			want: map[string]any{
				"key1": "base1",
				"key2": "overlay2",
				"key3": "overlay3",
			},
		},
		{
			name: "nested dict merge recursive",
			base: map[string]any{
				"outer": map[string]any{
					"inner1": "base1",
					"inner2": "base2",
				},
			},
			overlay: map[string]any{
				"outer": map[string]any{
					"inner2": "overlay2",
					"inner3": "overlay3",
				},
			},
			want: map[string]any{
				"outer": map[string]any{
					"inner1": "base1",
					"inner2": "overlay2",
					"inner3": "overlay3",
				},
			},
		},
		{
			name: "list replaced not concatenated",
			base: map[string]any{
				"files": []any{"a", "b"},
			},
			overlay: map[string]any{
				"files": []any{"c"},
			},
			want: map[string]any{
				"files": []any{"c"},
			},
		},
		{
			name: "map replaced by scalar",
			base: map[string]any{
				"values": map[string]any{"a": 1},
			},
			overlay: map[string]any{
				"values": "flat",
			},
			want: map[string]any{
				"values": "flat",
			},
		},
		{
			name: "scalar replaced by map",
			base: map[string]any{
				"values": "flat",
			},
			overlay: map[string]any{
				"values": map[string]any{"a": 1},
			},
			want: map[string]any{
				"values": map[string]any{"a": 1},
			},
		},
		{
			name: "list replaced by map",
			base: map[string]any{
				"x": []any{1, 2},
			},
			overlay: map[string]any{
				"x": map[string]any{"k": "v"},
			},
			want: map[string]any{
				"x": map[string]any{"k": "v"},
			},
		},
		{
			name: "explicit null replaces",
			base: map[string]any{
				"key": "value",
			},
			overlay: map[string]any{
				"key": nil,
			},
			want: map[string]any{
				"key": nil,
			},
		},
		{
			name:    "nil base",
			base:    nil,
			overlay: map[string]any{"key": "value"},
			want:    map[string]any{"key": "value"},
		},
		{
			name:    "nil overlay",
			base:    map[string]any{"key": "value"},
			overlay: nil,
			want:    map[string]any{"key": "value"},
		},
		{
			name:    "both empty",
			base:    map[string]any{},
			overlay: map[string]any{},
			want:    map[string]any{},
		},
		{
			name: "deeply nested merge",
			base: map[string]any{
				"level1": map[string]any{
					"level2": map[string]any{
						"level3": "base",
						"keep":   true,
					},
				},
			},
			overlay: map[string]any{
				"level1": map[string]any{
					"level2": map[string]any{
						"level3": "overlay",
						"new":    "added",
					},
				},
			},
			want: map[string]any{
				"level1": map[string]any{
					"level2": map[string]any{
						"level3": "overlay",
						"keep":   true,
						"new":    "added",
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeepMerge(tt.base, tt.overlay)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeepMerge_NoMutation(t *testing.T) {
	base := map[string]any{
		"nested": map[string]any{"inner": "base"},
		"list":   []any{"a"},
	}
	overlay := map[string]any{
		"nested": map[string]any{"other": "overlay"},
		"list":   []any{"b"},
	}

	merged := DeepMerge(base, overlay)
	merged["nested"].(map[string]any)["inner"] = "modified"
	merged["list"].([]any)[0] = "modified"

	assert.Equal(t, map[string]any{"inner": "base"}, base["nested"])
	assert.Equal(t, []any{"a"}, base["list"])
	assert.Equal(t, map[string]any{"other": "overlay"}, overlay["nested"])
	assert.Equal(t, []any{"b"}, overlay["list"])
}

func TestMergeDocuments(t *testing.T) {
	t.Run("later documents win", func(t *testing.T) {
		docs := []Document{
			{Path: "a.yml", Tree: map[string]any{
				"files": []any{map[string]any{"destination": "x", "template": "t1"}},
				"meta":  map[string]any{"owner": "a", "team": "core"},
			}},
			{Path: "b.yml", Tree: map[string]any{
				"files": []any{map[string]any{"destination": "y", "template": "t2"}},
				"meta":  map[string]any{"owner": "b"},
			}},
		}

		got := MergeDocuments(docs)

		assert.Equal(t, []any{map[string]any{"destination": "y", "template": "t2"}}, got["files"])
		assert.Equal(t, map[string]any{"owner": "b", "team": "core"}, got["meta"])
	})

	t.Run("no documents", func(t *testing.T) {
		assert.Equal(t, map[string]any{}, MergeDocuments(nil))
	})
}

func TestDeepCopy(t *testing.T) {
	original := map[string]any{
		"key": "value",
		"nested": map[string]any{
			"inner": "original",
		},
		"list": []any{map[string]any{"a": 1}},
	}

	copied := deepCopy(original).(map[string]any)
	copied["key"] = "modified"
	copied["nested"].(map[string]any)["inner"] = "modified"
	copied["list"].([]any)[0].(map[string]any)["a"] = 2

	assert.Equal(t, "value", original["key"])
	assert.Equal(t, "original", original["nested"].(map[string]any)["inner"])
	assert.Equal(t, 1, original["list"].([]any)[0].(map[string]any)["a"])
	assert.Nil(t, deepCopy(nil))
}
