package pkgmeta

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFrameworkPackage(t *testing.T, projectDir, content string) {
	t.Helper()
	path := FrameworkPath(projectDir)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFrameworkPath(t *testing.T) {
	got := FrameworkPath("/work/newsletter")
	assert.Equal(t, filepath.Join("/work/newsletter", "node_modules", "@maizzle", "framework", "package.json"), got)
}

func TestReadFramework(t *testing.T) {
	dir := t.TempDir()
	writeFrameworkPackage(t, dir, `{"name": "@maizzle/framework", "version": "4.8.1", "main": "src/index.js"}`)

	pkg, err := ReadFramework(dir)
	require.NoError(t, err)
	assert.Equal(t, "@maizzle/framework", pkg.Name)
	assert.Equal(t, "4.8.1", pkg.Version)
}

func TestReadFramework_Missing(t *testing.T) {
	_, err := ReadFramework(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound), "want ErrNotFound, got %v", err)
}

func TestRead_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing version", `{"name": "@maizzle/framework"}`},
		{"numeric version", `{"version": 4}`},
		{"empty version", `{"version": ""}`},
		{"not an object", `["4.0.0"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFrameworkPackage(t, dir, tt.content)

			_, err := ReadFramework(dir)
			var invalid *InvalidError
			require.ErrorAs(t, err, &invalid)
			assert.NotEmpty(t, invalid.Issues)
		})
	}
}

func TestRead_Malformed(t *testing.T) {
	dir := t.TempDir()
	writeFrameworkPackage(t, dir, `{"version": `)

	_, err := ReadFramework(dir)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}
