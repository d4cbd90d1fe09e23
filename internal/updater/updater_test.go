package updater

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registryServer(t *testing.T, version string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"version":"` + version + `"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNotify_PrintsBanner(t *testing.T) {
	var hits atomic.Int32
	server := registryServer(t, "4.8.1", &hits)
	dir := t.TempDir()

	src := NPMRegistry{Package: "@maizzle/framework", Registry: server.URL}
	u := New("4.7.0", src, dir, WithHTTPClient(server.Client()))

	var out bytes.Buffer
	require.NoError(t, u.Notify(context.Background(), &out))
	assert.Contains(t, out.String(), "4.7.0 -> 4.8.1")
	assert.Contains(t, out.String(), "npm install @maizzle/framework@latest")

	// Second call is served from the cache.
	out.Reset()
	require.NoError(t, u.Notify(context.Background(), &out))
	assert.Contains(t, out.String(), "4.8.1")
	assert.Equal(t, int32(1), hits.Load())
}

func TestNotify_UpToDate(t *testing.T) {
	var hits atomic.Int32
	server := registryServer(t, "4.8.1", &hits)

	src := NPMRegistry{Package: "@maizzle/framework", Registry: server.URL}
	u := New("4.8.1", src, t.TempDir(), WithHTTPClient(server.Client()))

	var out bytes.Buffer
	require.NoError(t, u.Notify(context.Background(), &out))
	assert.Empty(t, out.String())
}

func TestNotify_RegistryFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	src := NPMRegistry{Package: "@maizzle/framework", Registry: server.URL}
	u := New("4.7.0", src, t.TempDir(), WithHTTPClient(server.Client()))

	var out bytes.Buffer
	assert.Error(t, u.Notify(context.Background(), &out))
	assert.Empty(t, out.String())
}

func TestNotify_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	src := NPMRegistry{Package: "@maizzle/framework", Registry: server.URL}
	u := New("4.7.0", src, t.TempDir(), WithHTTPClient(server.Client()), WithTimeout(50*time.Millisecond))

	start := time.Now()
	assert.Error(t, u.Notify(context.Background(), &bytes.Buffer{}))
	assert.Less(t, time.Since(start), time.Second)
}

func TestPrintCachedBanner(t *testing.T) {
	dir := t.TempDir()
	src := GitHubReleases{Repo: "maizzle/cli", Command: "maizzle"}
	require.NoError(t, SaveCache(dir, src.Key(), &VersionCache{
		LatestVersion:   "v2.1.0",
		CurrentVersion:  "2.0.0",
		CheckedAt:       time.Now(),
		UpdateAvailable: true,
	}))

	u := New("2.0.0", src, dir)
	var out bytes.Buffer
	u.PrintCachedBanner(&out)
	assert.Contains(t, out.String(), "2.0.0 -> v2.1.0")
	assert.Contains(t, out.String(), "github.com/maizzle/cli/releases")

	// A cache written for another installed version is ignored.
	out.Reset()
	New("2.1.0", src, dir).PrintCachedBanner(&out)
	assert.Empty(t, out.String())
}

func releasesServer(t *testing.T, tag string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"tag_name":"` + tag + `"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRefreshIfStale_WritesCache(t *testing.T) {
	var hits atomic.Int32
	server := releasesServer(t, "v2.1.0", &hits)
	dir := t.TempDir()

	src := GitHubReleases{Repo: "maizzle/cli", APIBase: server.URL, Command: "maizzle"}
	u := New("2.0.0", src, dir, WithHTTPClient(server.Client()))

	select {
	case <-u.RefreshIfStale(context.Background()):
	case <-time.After(5 * time.Second):
		t.Fatal("refresh did not finish")
	}

	cache, err := LoadCache(dir, src.Key())
	require.NoError(t, err)
	require.NotNil(t, cache)
	assert.Equal(t, "v2.1.0", cache.LatestVersion)
	assert.True(t, cache.UpdateAvailable)
	assert.Equal(t, int32(1), hits.Load())
}

func TestRefreshIfStale_FreshCacheSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	server := releasesServer(t, "v2.1.0", &hits)
	dir := t.TempDir()

	src := GitHubReleases{Repo: "maizzle/cli", APIBase: server.URL, Command: "maizzle"}
	require.NoError(t, SaveCache(dir, src.Key(), &VersionCache{
		LatestVersion:  "v2.0.0",
		CurrentVersion: "2.0.0",
		CheckedAt:      time.Now(),
	}))

	u := New("2.0.0", src, dir, WithHTTPClient(server.Client()))
	select {
	case <-u.RefreshIfStale(context.Background()):
	default:
		t.Fatal("channel should be closed when no refresh is needed")
	}
	assert.Zero(t, hits.Load())
}
