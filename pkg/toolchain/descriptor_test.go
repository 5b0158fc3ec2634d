package toolchain_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/devshell/pkg/core"
	"github.com/arc-language/devshell/pkg/toolchain"
)

func writeDescriptor(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rust-toolchain.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDescriptor(t *testing.T) {
	path := writeDescriptor(t, `
[toolchain]
name = "rust"
channel = "1.78.0"
components = ["rustc", "cargo", "rust-std"]
store-hash = "zf0r9nx3yp8a2qk6wgd0ydw1v8sc4kfl"
`)

	desc, err := toolchain.LoadDescriptor(path)
	require.NoError(t, err)
	assert.Equal(t, "rust", desc.Toolchain.Name)
	assert.Equal(t, "1.78.0", desc.Toolchain.Channel)
	assert.Equal(t, []string{"rustc", "cargo", "rust-std"}, desc.Toolchain.Components)
	assert.Equal(t, "zf0r9nx3yp8a2qk6wgd0ydw1v8sc4kfl", desc.Toolchain.StoreHash)
	assert.Equal(t, "rust-1.78.0", desc.Folder())
}

func TestLoadDescriptorMissingFile(t *testing.T) {
	_, err := toolchain.LoadDescriptor(filepath.Join(t.TempDir(), "rust-toolchain.toml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrMissingFile))
}

func TestLoadDescriptorInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad toml",
			content: "[toolchain\nname=",
			wantErr: "parsing descriptor",
		},
		{
			name:    "no name",
			content: "[toolchain]\nchannel = \"1.78.0\"\nstore-hash = \"abc\"\n",
			wantErr: "no name",
		},
		{
			name:    "no channel",
			content: "[toolchain]\nname = \"rust\"\nstore-hash = \"abc\"\n",
			wantErr: "no channel",
		},
		{
			name:    "no store hash",
			content: "[toolchain]\nname = \"rust\"\nchannel = \"1.78.0\"\n",
			wantErr: "no store-hash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDescriptor(t, tt.content)
			_, err := toolchain.LoadDescriptor(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
