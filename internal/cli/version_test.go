package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name     string
		version1 string
		version2 string
		expected int // -1: v1 < v2, 0: v1 == v2, 1: v1 > v2
	}{
		{"Equal versions", "2.0.0", "2.0.0", 0},
		{"Major version difference", "3.0.0", "2.0.0", 1},
		{"Minor version difference", "2.43.0", "2.9.0", 1},
		{"Patch version difference", "3.2.6", "3.2.7", -1},
		{"Pre-release vs stable", "2.45.0-rc1", "2.45.0", -1},
		{"Pre-release comparison", "2.45.0-rc2", "2.45.0-rc1", 1},
		{"Build metadata ignored", "2.0.0+build123", "2.0.0+build456", 0},
		{"With v prefix", "v2.0.0", "1.9.9", 1},
		{"Missing patch version", "3.2", "3.2.0", 0},
		{"Missing minor and patch", "2", "2.0.0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompareVersions(tt.version1, tt.version2))
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Version
		expectErr bool
	}{
		{name: "Standard version", input: "2.43.0", expected: Version{Major: 2, Minor: 43}},
		{name: "Version with v prefix", input: "v1.2.3", expected: Version{Major: 1, Minor: 2, Patch: 3}},
		{name: "Pre-release", input: "2.45.0-rc1", expected: Version{Major: 2, Minor: 45, PreRelease: "rc1"}},
		{name: "Missing patch", input: "3.2", expected: Version{Major: 3, Minor: 2}},
		{name: "Empty", input: "", expectErr: true},
		{name: "Not a version", input: "development", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVersion(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected string
		wantErr  bool
	}{
		{name: "git", output: "git version 2.43.0\n", expected: "2.43.0"},
		{name: "git on macOS", output: "git version 2.39.3 (Apple Git-146)\n", expected: "2.39.3"},
		{name: "rsync", output: "rsync  version 3.2.7  protocol version 31\nCopyright (C) 1996-2022\n", expected: "3.2.7"},
		{name: "openrsync two components", output: "openrsync: version 2.6\n", expected: "2.6"},
		{name: "garbage", output: "usage: foo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ExtractVersion(tt.output)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestCheckMinVersion(t *testing.T) {
	ok, err := CheckMinVersion("2.43.0", "2.0.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckMinVersion("2.6", "3.0.0")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckMinVersion("dev", "3.0.0")
	assert.Error(t, err)
}
