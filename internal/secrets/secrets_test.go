// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, fs afero.Fs)
		want  Secrets
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T, fs afero.Fs) {
				writeFile(t, fs, Neo4jPassword, "  s3cret  \n")
				writeFile(t, fs, "other-key", "value")
			},
			want: Secrets{Neo4jPassword: "s3cret", "other-key": "value"},
		},
		{
			name:  "returns empty secrets for nonexistent directory",
			setup: func(t *testing.T, fs afero.Fs) {},
			want:  Secrets{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T, fs afero.Fs) {
				writeFile(t, fs, Neo4jPassword, "valid")
				writeFile(t, fs, "empty-key", "")
				writeFile(t, fs, "whitespace-only", "   \n\t  ")
			},
			want: Secrets{Neo4jPassword: "valid"},
		},
		{
			name: "skips dotfiles and subdirectories",
			setup: func(t *testing.T, fs afero.Fs) {
				writeFile(t, fs, ".gitkeep", "")
				writeFile(t, fs, ".hidden-key", "secret")
				writeFile(t, fs, Neo4jPassword, "real")
				require.NoError(t, fs.MkdirAll(filepath.Join(".secrets", "subdir"), 0o755))
			},
			want: Secrets{Neo4jPassword: "real"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			tt.setup(t, fs)
			got, err := Load(fs, ".secrets", log.New(&bytes.Buffer{}))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadNotADirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ".secrets", []byte("x"), 0o644))

	_, err := Load(fs, ".secrets", log.New(&bytes.Buffer{}))
	assert.ErrorContains(t, err, "reading secrets directory")
}

func TestGet(t *testing.T) {
	s := Secrets{Neo4jPassword: "from-file"}
	assert.Equal(t, "from-file", s.Get(Neo4jPassword, ""))
	assert.Equal(t, "from-flag", s.Get(Neo4jPassword, "from-flag"))
	assert.Empty(t, s.Get("missing", ""))
	assert.Equal(t, []string{Neo4jPassword}, s.Keys())
}

func writeFile(t *testing.T, fs afero.Fs, name, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, filepath.Join(".secrets", name), []byte(content), 0o644))
}
