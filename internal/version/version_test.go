package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultsWithoutLdflags(t *testing.T) {
	v, c, d := Info()
	require.Equal(t, "dev", v)
	require.Equal(t, "unknown", c)
	require.Equal(t, "unknown", d)
}

func TestHelpersMatchInfo(t *testing.T) {
	v, c, d := Info()
	require.Equal(t, v, GetVersion())
	require.Equal(t, c, GetCommit())
	require.Equal(t, d, GetDate())
}

func TestStringNamesService(t *testing.T) {
	s := String()
	require.True(t, strings.HasPrefix(s, "catalog-service version="), s)
	require.Equal(t, "catalog-service version=dev commit=unknown date=unknown", s)
}

func TestStringReflectsBuildValues(t *testing.T) {
	prevVersion, prevCommit, prevDate := version, commit, date
	t.Cleanup(func() { version, commit, date = prevVersion, prevCommit, prevDate })

	version, commit, date = "1.4.0", "abc1234", "2026-10-01T12:00:00Z"

	require.Equal(t, "catalog-service version=1.4.0 commit=abc1234 date=2026-10-01T12:00:00Z", String())
	require.Equal(t, "1.4.0", GetVersion())
}
