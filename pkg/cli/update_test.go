package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

func stubRelease(t *testing.T, rel *selfupdate.Release, found bool, err error) *[]string {
	t.Helper()
	oldDetect, oldUpdate := detectLatest, updateTo
	var installed []string
	detectLatest = func(slug string) (*selfupdate.Release, bool, error) {
		if slug != repoSlug {
			t.Fatalf("slug = %q; want %q", slug, repoSlug)
		}
		return rel, found, err
	}
	updateTo = func(assetURL, cmdPath string) error {
		installed = append(installed, assetURL)
		return nil
	}
	t.Cleanup(func() { detectLatest, updateTo = oldDetect, oldUpdate })
	return &installed
}

func TestCurrentVersion(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.4.2"
	v, err := CurrentVersion()
	if err != nil || v.String() != "1.4.2" {
		t.Fatalf("CurrentVersion() = %v, %v", v, err)
	}
	Version = "dev"
	if _, err := CurrentVersion(); err == nil {
		t.Fatalf("expected error for non-semver build version")
	}
}

func TestCheckForUpdates(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "1.0.0"

	cases := []struct {
		name    string
		rel     *selfupdate.Release
		found   bool
		install bool
		want    string
		updated bool
	}{
		{"none", nil, false, false, "No releases found", false},
		{"same", &selfupdate.Release{Version: semver.MustParse("1.0.0"), AssetURL: "u"}, true, false, "already running the latest", false},
		{"older", &selfupdate.Release{Version: semver.MustParse("0.9.0"), AssetURL: "u"}, true, true, "already running the latest", false},
		{"no asset", &selfupdate.Release{Version: semver.MustParse("1.1.0")}, true, true, "no downloadable asset", false},
		{"newer", &selfupdate.Release{Version: semver.MustParse("1.1.0"), AssetURL: "u"}, true, false, EnvAutoUpdate + "=1", false},
		{"install", &selfupdate.Release{Version: semver.MustParse("2.0.0"), AssetURL: "u"}, true, true, "Updated to version 2.0.0", true},
	}
	for _, c := range cases {
		installed := stubRelease(t, c.rel, c.found, nil)
		var buf bytes.Buffer
		if err := CheckForUpdates(&buf, c.install); err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if !strings.Contains(buf.String(), c.want) {
			t.Fatalf("%s: output %q lacks %q", c.name, buf.String(), c.want)
		}
		if (len(*installed) > 0) != c.updated {
			t.Fatalf("%s: installed = %v; want updated=%v", c.name, *installed, c.updated)
		}
	}
}

func TestCheckForUpdatesDetectError(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "1.0.0"
	stubRelease(t, nil, false, errors.New("rate limited"))
	if err := CheckForUpdates(&bytes.Buffer{}, false); err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("err = %v; want wrapped detector error", err)
	}
}
