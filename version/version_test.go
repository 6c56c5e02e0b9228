package version

import (
	"runtime/debug"
	"testing"
)

func restoreVars(t *testing.T) {
	t.Helper()
	v, c, b, g := Version, GitCommit, BuildTime, GoVersion
	t.Cleanup(func() {
		Version, GitCommit, BuildTime, GoVersion = v, c, b, g
	})
}

func TestGetVersionInfo_Ldflags(t *testing.T) {
	restoreVars(t)
	Version, GitCommit, BuildTime, GoVersion = "1.2.0", "abc1234", "2025-12-25T09:00:00Z", "go1.26.0"

	info := GetVersionInfo()
	if info.Version != "1.2.0" || !info.IsRelease {
		t.Errorf("expected release 1.2.0, got %+v", info)
	}
	if info.GitCommit != "abc1234" || info.GoVersion != "go1.26.0" {
		t.Errorf("expected ldflags to win, got %+v", info)
	}
	if info.BuildDate.Year() != 2025 {
		t.Errorf("expected build year 2025, got %d", info.BuildDate.Year())
	}
}

func TestGetVersionInfo_NotRelease(t *testing.T) {
	restoreVars(t)
	for _, v := range []string{"dev", "1.2.0-dirty"} {
		Version = v
		if GetVersionInfo().IsRelease {
			t.Errorf("%q should not be a release", v)
		}
	}
}

func TestFromBuildInfo(t *testing.T) {
	info := &Info{Version: "dev"}
	fromBuildInfo(info, &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})

	if info.GitCommit != "0123456" {
		t.Errorf("expected short commit, got %q", info.GitCommit)
	}
	if !info.IsDirty {
		t.Error("expected dirty")
	}
	if info.BuildTime != "2026-01-02T03:04:05Z" || info.GoVersion != "go1.26.0" {
		t.Errorf("unexpected build info %+v", info)
	}
}

func TestInfo_String(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"bare", Info{Version: "dev"}, "dev"},
		{"go only", Info{Version: "dev", GoVersion: "go1.26.0"}, "dev (go1.26.0)"},
		{"dirty", Info{Version: "1.0.0", GitCommit: "abc1234", IsDirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
