package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestMessages(t *testing.T) {
	tests := []struct {
		name string
		fn   func(*bytes.Buffer)
		want string
	}{
		{
			name: "success",
			fn:   func(b *bytes.Buffer) { Success(b, "wrote %d file(s)", 3) },
			want: "✓ wrote 3 file(s)\n",
		},
		{
			name: "error",
			fn:   func(b *bytes.Buffer) { Error(b, "failed with code %d: %s", 500, "internal error") },
			want: "✗ failed with code 500: internal error\n",
		},
		{
			name: "warning",
			fn:   func(b *bytes.Buffer) { Warning(b, "skipped %s", "a.yml") },
			want: "⚠ skipped a.yml\n",
		},
		{
			name: "info",
			fn:   func(b *bytes.Buffer) { Info(b, "plain") },
			want: "plain\n",
		},
		{
			name: "header",
			fn:   func(b *bytes.Buffer) { Header(b, "=== %s ===", "Manifests") },
			want: "=== Manifests ===\n",
		},
		{
			name: "step",
			fn:   func(b *bytes.Buffer) { Step(b, 2, "render %s", "app") },
			want: "[2] render app\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.fn(&buf)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestColors_Defined(t *testing.T) {
	for name, c := range map[string]*color.Color{
		"Red": Red, "Green": Green, "Yellow": Yellow, "Blue": Blue, "Cyan": Cyan, "Bold": Bold,
	} {
		assert.NotNil(t, c, name)
	}
}
