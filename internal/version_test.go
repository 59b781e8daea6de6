package internal

import (
	"strings"
	"testing"

	"github.com/blang/semver/v4"
	"github.com/stretchr/testify/require"
)

func TestVersionInfo(t *testing.T) {
	original := Version
	t.Cleanup(func() { Version = original })

	Version = "1.4.2 (commit 0123456789abcdef0123456789abcdef01234567)"
	info := VersionInfo()
	require.Equal(t, semver.MustParse("1.4.2"), info.Version)
	require.Equal(t, "0123456789abcdef0123456789abcdef01234567", info.Commit)

	Version = "2.0.0-beta.1"
	info = VersionInfo()
	require.Equal(t, semver.MustParse("2.0.0-beta.1"), info.Version)
	require.Empty(t, info.Commit)

	Version = "dev"
	require.Equal(t, semver.Version{}, VersionInfo().Version)
}

func TestUserAgent(t *testing.T) {
	require.True(t, strings.HasPrefix(UserAgent(), "infragpt/"))
}
