package version

import (
	"strings"
	"testing"
)

func stamp(t *testing.T, v, commit, built string) {
	t.Helper()
	origV, origC, origB := Version, GitCommit, BuildTime
	Version, GitCommit, BuildTime = v, commit, built
	t.Cleanup(func() { Version, GitCommit, BuildTime = origV, origC, origB })
}

func TestGetPrefersLdflags(t *testing.T) {
	stamp(t, "v0.3.0", "abcdef0123", "2024-05-01T10:00:00Z")

	info := Get()
	if info.Version != "v0.3.0" {
		t.Errorf("expected v0.3.0, got %q", info.Version)
	}
	if info.GitCommit != "abcdef0" {
		t.Errorf("expected commit shortened to 7 chars, got %q", info.GitCommit)
	}
	if info.BuildTime != "2024-05-01T10:00:00Z" {
		t.Errorf("expected build time from ldflags, got %q", info.BuildTime)
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "v1.0.0", GitCommit: "abc1234"}, "v1.0.0-abc1234"},
		{Info{Version: "v1.0.0", GitCommit: "abc1234", Dirty: true}, "v1.0.0-abc1234-dirty"},
	}
	for _, tc := range tests {
		if got := tc.info.Short(); got != tc.want {
			t.Errorf("Short(%+v) = %q, want %q", tc.info, got, tc.want)
		}
	}
}

func TestIsRelease(t *testing.T) {
	if (Info{Version: "dev"}).IsRelease() {
		t.Error("dev must not be a release")
	}
	if (Info{Version: "v1.0.0", Dirty: true}).IsRelease() {
		t.Error("dirty builds must not be releases")
	}
	if !(Info{Version: "v1.0.0"}).IsRelease() {
		t.Error("expected clean tagged build to be a release")
	}
}

func TestString(t *testing.T) {
	s := Info{Version: "v1.2.0", BuildTime: "2024-05-01", GoVersion: "go1.26.0"}.String()
	for _, part := range []string{"tablekit v1.2.0", "(built 2024-05-01)", "go1.26.0"} {
		if !strings.Contains(s, part) {
			t.Errorf("expected %q in %q", part, s)
		}
	}
}
