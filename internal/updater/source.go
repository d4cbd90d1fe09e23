package updater

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/buger/jsonparser"
)

const (
	defaultNPMRegistry = "https://registry.npmjs.org"
	githubAPIBase      = "https://api.github.com"
	userAgent          = "maizzle-cli"
)

// Source reports the latest published version of a package.
type Source interface {
	// Key identifies the package; it names the cache file.
	Key() string
	// Latest returns the newest published version.
	Latest(ctx context.Context, client *http.Client) (string, error)
	// UpgradeHint is printed under the update banner.
	UpgradeHint() string
}

// NPMRegistry looks up the "latest" dist-tag of an npm package.
type NPMRegistry struct {
	Package string
	// Registry overrides the registry base URL (default registry.npmjs.org).
	Registry string
}

// Key implements Source.
func (s NPMRegistry) Key() string { return s.Package }

// UpgradeHint implements Source.
func (s NPMRegistry) UpgradeHint() string {
	return fmt.Sprintf("Run `npm install %s@latest` to upgrade", s.Package)
}

// Latest implements Source.
func (s NPMRegistry) Latest(ctx context.Context, client *http.Client) (string, error) {
	base := s.Registry
	if base == "" {
		base = defaultNPMRegistry
	}
	endpoint := strings.TrimRight(base, "/") + "/" + url.PathEscape(s.Package) + "/latest"

	body, err := fetch(ctx, client, endpoint, nil)
	if err != nil {
		return "", err
	}

	version, err := jsonparser.GetString(body, "version")
	if err != nil {
		return "", fmt.Errorf("parsing registry response for %s: %w", s.Package, err)
	}
	return version, nil
}

// GitHubReleases looks up the latest release tag of a GitHub repository.
type GitHubReleases struct {
	Repo string
	// APIBase overrides the GitHub API URL.
	APIBase string
	// Command is the CLI name used in the upgrade hint.
	Command string
}

// Key implements Source.
func (s GitHubReleases) Key() string { return s.Repo }

// UpgradeHint implements Source.
func (s GitHubReleases) UpgradeHint() string {
	return fmt.Sprintf("Download the latest %s from https://github.com/%s/releases", s.Command, s.Repo)
}

// Latest implements Source.
func (s GitHubReleases) Latest(ctx context.Context, client *http.Client) (string, error) {
	base := s.APIBase
	if base == "" {
		base = githubAPIBase
	}
	endpoint := fmt.Sprintf("%s/repos/%s/releases/latest", strings.TrimRight(base, "/"), s.Repo)

	headers := map[string]string{"Accept": "application/vnd.github+json"}
	// Support optional GitHub token for higher rate limits.
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		headers["Authorization"] = "token " + token
	}

	body, err := fetch(ctx, client, endpoint, headers)
	if err != nil {
		return "", err
	}

	tag, err := jsonparser.GetString(body, "tag_name")
	if err != nil {
		return "", fmt.Errorf("parsing release response for %s: %w", s.Repo, err)
	}
	return tag, nil
}

func fetch(ctx context.Context, client *http.Client, endpoint string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
