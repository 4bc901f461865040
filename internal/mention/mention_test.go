// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mention

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/faculty-graph/pkg/types"
)

func TestVariants(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{name: "Adam Glynn", want: []string{"A. Glynn", "Adam Glynn"}},
		{name: "John W. Patty", want: []string{"J. Patty", "John Patty", "John W. Patty", "W. Patty"}},
		{name: "Alejandro Sanchez Becerra", want: []string{"A. Becerra", "Alejandro Becerra", "Alejandro Sanchez Becerra", "Sanchez Becerra"}},
		{name: "Cher", want: []string{"Cher"}},
		{name: "  Adam   Glynn ", want: []string{"A. Glynn", "Adam Glynn"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Variants(tt.name))
		})
	}
}

func TestFind(t *testing.T) {
	roster := []string{"Adam Glynn", "John W. Patty", "Ann Lee"}
	text := "Recent work with J. Patty and A. Glynn on voting."

	assert.Equal(t, []string{"Adam Glynn", "John W. Patty"}, Find(text, "Ann Lee", roster))
	assert.Equal(t, []string{"John W. Patty"}, Find(text, "Adam Glynn", roster), "owner excluded")
	assert.Empty(t, Find("nothing here", "Ann Lee", roster))
}

func TestScan(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/pages/index.yaml", []byte(`
pages:
  Ann Lee: /pages/ann.txt
  Bo Chen: /pages/bo.txt
  Stranger: /pages/ann.txt
  Cy Diaz: /pages/missing.txt
`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/pages/ann.txt", []byte("Joint with Bo Chen and C. Diaz"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/pages/bo.txt", []byte("Solo work only"), 0o644))

	pages, err := LoadPages(fs, "/pages/index.yaml")
	require.NoError(t, err)

	roster := []string{"Ann Lee", "Bo Chen", "Cy Diaz"}
	got, err := Scan(context.Background(), fs, pages, roster, log.New(io.Discard))
	require.NoError(t, err)

	assert.Equal(t, []types.Mention{
		{Source: "Ann Lee", Target: "Bo Chen", FoundOn: []string{"/pages/ann.txt"}},
		{Source: "Ann Lee", Target: "Cy Diaz", FoundOn: []string{"/pages/ann.txt"}},
	}, got)
}

func TestLoadPagesErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := LoadPages(fs, "/none.yaml")
	assert.ErrorContains(t, err, "reading pages index")

	require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("pages: [x"), 0o644))
	_, err = LoadPages(fs, "/bad.yaml")
	assert.ErrorContains(t, err, "parsing pages index")
}
