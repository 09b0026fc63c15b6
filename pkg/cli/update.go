package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// Version is the build version, overridden with
// -ldflags "-X github.com/Fepozopo/dpfilter/pkg/cli.Version=x.y.z".
var Version = "0.3.0"

const repoSlug = "Fepozopo/dpfilter"

// Swapped out in tests.
var (
	detectLatest = selfupdate.DetectLatest
	updateTo     = selfupdate.UpdateTo
)

// CurrentVersion parses Version, accepting a leading "v".
func CurrentVersion() (semver.Version, error) {
	v, err := semver.ParseTolerant(Version)
	if err != nil {
		return semver.Version{}, fmt.Errorf("invalid build version %q: %w", Version, err)
	}
	return v, nil
}

// CheckForUpdates reports whether a newer release of the filters exists.
// The running binary is replaced only when install is true.
func CheckForUpdates(w io.Writer, install bool) error {
	current, err := CurrentVersion()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Current version: %s\n", current)

	latest, found, err := detectLatest(repoSlug)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if !found || latest == nil {
		fmt.Fprintf(w, "No releases found for %s.\n", repoSlug)
		return nil
	}
	fmt.Fprintf(w, "Latest version: %s\n", latest.Version)
	if !latest.Version.GT(current) {
		fmt.Fprintln(w, "You are already running the latest version.")
		return nil
	}
	if latest.AssetURL == "" {
		fmt.Fprintf(w, "Version %s is available but has no downloadable asset for this platform.\n", latest.Version)
		return nil
	}
	if !install {
		fmt.Fprintf(w, "Version %s is available. Set %s=1 to install it.\n", latest.Version, EnvAutoUpdate)
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	if err := updateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(w, "Updated to version %s.\n", latest.Version)
	return nil
}
