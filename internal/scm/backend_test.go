package scm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testSource      = "git://github.com/crafterm/sprinkle.git"
	testDestination = "/usr/local/builds/sprinkle.git-2.3.1"
)

// TestFetchCommands_Templates pins the exact command shape of every backend.
func TestFetchCommands_Templates(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"git":   "git clone " + testSource + " " + testDestination,
		"svn":   "svn checkout " + testSource + " " + testDestination,
		"hg":    "hg clone " + testSource + " " + testDestination,
		"bzr":   "bzr checkout " + testSource + " " + testDestination,
		"darcs": "darcs get " + testSource + " " + testDestination,
		"cvs":   "cvs checkout " + testSource + " " + testDestination,
	}

	for kind, want := range cases {
		got, err := FetchCommands(kind, testSource, testDestination)
		require.NoError(t, err, kind)
		require.Equal(t, []string{want}, got, kind)
	}
}

// TestFetchCommands_DefaultsToSVN checks the empty kind.
func TestFetchCommands_DefaultsToSVN(t *testing.T) {
	t.Parallel()

	got, err := FetchCommands("", "http://host/p/trunk", "/b/p-1")
	require.NoError(t, err)
	require.Equal(t, []string{"svn checkout http://host/p/trunk /b/p-1"}, got)
}

// TestParseBackend_SuffixMatch verifies kinds are matched by their ending.
func TestParseBackend_SuffixMatch(t *testing.T) {
	t.Parallel()

	backend, ok := ParseBackend("my-git")
	require.True(t, ok)
	require.Equal(t, Git, backend)

	backend, ok = ParseBackend("/usr/bin/hg")
	require.True(t, ok)
	require.Equal(t, Hg, backend)

	_, ok = ParseBackend("git-svn-bridge")
	require.False(t, ok)

	_, ok = ParseBackend("GIT")
	require.False(t, ok)
}

// TestFetchCommands_Unknown checks the error carries the destination.
func TestFetchCommands_Unknown(t *testing.T) {
	t.Parallel()

	got, err := FetchCommands("foo", testSource, testDestination)
	require.Nil(t, got)
	require.ErrorIs(t, err, ErrUnknownBackend)
	require.EqualError(t, err, "unknown scm: "+testDestination)

	var unknown *UnknownBackendError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, testDestination, unknown.Destination)
	require.Equal(t, "foo", unknown.Kind)
}

// TestBackendString covers names and out-of-range values.
func TestBackendString(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, len(All()))
	for _, b := range All() {
		names = append(names, b.String())
	}

	require.Equal(t, []string{"svn", "git", "hg", "bzr", "darcs", "cvs"}, names)
	require.Equal(t, "Backend(42)", Backend(42).String())
}
