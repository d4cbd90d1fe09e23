package updater

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// IsUpdateAvailable reports whether latest is newer than current. npm
// versions and GitHub tags (with a leading "v") are both accepted. A
// prerelease is only offered to users already running a prerelease, the
// way npm's "latest" dist-tag never points stable users at a beta.
func IsUpdateAvailable(current, latest string) (bool, error) {
	cv, err := semver.NewVersion(current)
	if err != nil {
		return false, fmt.Errorf("parsing installed version %q: %w", current, err)
	}
	lv, err := semver.NewVersion(latest)
	if err != nil {
		return false, fmt.Errorf("parsing published version %q: %w", latest, err)
	}

	if lv.Prerelease() != "" && cv.Prerelease() == "" {
		return false, nil
	}
	return lv.GreaterThan(cv), nil
}
