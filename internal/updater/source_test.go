package updater

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNPMRegistry_Latest(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"name":"@maizzle/framework","version":"4.8.1","dist":{"tarball":"x"}}`))
	}))
	defer server.Close()

	src := NPMRegistry{Package: "@maizzle/framework", Registry: server.URL}
	version, err := src.Latest(context.Background(), server.Client())
	require.NoError(t, err)
	assert.Equal(t, "4.8.1", version)
	assert.Equal(t, "/@maizzle%2Fframework/latest", gotPath)
	assert.Contains(t, src.UpgradeHint(), "npm install @maizzle/framework@latest")
}

func TestNPMRegistry_MissingVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"@maizzle/framework"}`))
	}))
	defer server.Close()

	src := NPMRegistry{Package: "@maizzle/framework", Registry: server.URL}
	_, err := src.Latest(context.Background(), server.Client())
	assert.Error(t, err)
}

func TestNPMRegistry_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	src := NPMRegistry{Package: "@maizzle/nope", Registry: server.URL}
	_, err := src.Latest(context.Background(), server.Client())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestGitHubReleases_Latest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/maizzle/cli/releases/latest", r.URL.Path)
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		w.Write([]byte(`{"tag_name":"v2.1.0","assets":[]}`))
	}))
	defer server.Close()

	src := GitHubReleases{Repo: "maizzle/cli", APIBase: server.URL, Command: "maizzle"}
	tag, err := src.Latest(context.Background(), server.Client())
	require.NoError(t, err)
	assert.Equal(t, "v2.1.0", tag)
}
