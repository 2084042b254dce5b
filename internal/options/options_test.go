package options

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMergeDefaults_LocalValuesWin ensures defaults only fill absent keys.
func TestMergeDefaults_LocalValuesWin(t *testing.T) {
	t.Parallel()

	opts := NewBuilder().
		Set(Prefix, "/usr/local").
		Set(Builds, "/usr/local/builds").
		MergeDefaults(map[string]string{
			Prefix: "/usr",
			Builds: "/usr/builds",
			SCM:    "git",
		}).
		Build()

	prefix, ok := opts.Prefix()
	require.True(t, ok)
	require.Equal(t, "/usr/local", prefix)

	builds, ok := opts.Builds()
	require.True(t, ok)
	require.Equal(t, "/usr/local/builds", builds)

	require.Equal(t, "git", opts.SCM())
}

// TestMergeDefaults_FillsMissing checks that an empty builder takes the defaults.
func TestMergeDefaults_FillsMissing(t *testing.T) {
	t.Parallel()

	opts := NewBuilder().MergeDefaults(map[string]string{Prefix: "/usr"}).Build()

	prefix, ok := opts.Prefix()
	require.True(t, ok)
	require.Equal(t, "/usr", prefix)

	_, ok = opts.Builds()
	require.False(t, ok)
	require.Empty(t, opts.SCM())
}

// TestEmptyValuesAreAbsentForRequiredKeys treats empty prefix/builds as missing.
func TestEmptyValuesAreAbsentForRequiredKeys(t *testing.T) {
	t.Parallel()

	opts := NewBuilder().Set(Prefix, "").Build()

	raw, ok := opts.Get(Prefix)
	require.True(t, ok)
	require.Empty(t, raw)

	_, ok = opts.Prefix()
	require.False(t, ok)
}

// TestBuild_SnapshotIsImmutable verifies later builder changes do not leak into a snapshot.
func TestBuild_SnapshotIsImmutable(t *testing.T) {
	t.Parallel()

	b := NewBuilder().Set(SCM, "git").Append(Enable, "ssl").Pre("install", "echo pre")
	opts := b.Build()

	b.Set(SCM, "hg").Append(Enable, "ipv6").Pre("install", "echo again")

	require.Equal(t, "git", opts.SCM())
	require.Equal(t, []string{"ssl"}, opts.List(Enable))

	pre, post := opts.Hooks("install")
	require.Equal(t, []string{"echo pre"}, pre)
	require.Empty(t, post)

	list := opts.List(Enable)
	list[0] = "mutated"
	require.Equal(t, []string{"ssl"}, opts.List(Enable))
}

// TestUnknownKeysAreKept confirms unknown keys are stored without complaint.
func TestUnknownKeysAreKept(t *testing.T) {
	t.Parallel()

	opts := NewBuilder().Set("archives", "/tmp/archives").Set(Prefix, "/opt").Build()

	value, ok := opts.Get("archives")
	require.True(t, ok)
	require.Equal(t, "/tmp/archives", value)
	require.Equal(t, []string{"archives", Prefix}, opts.Keys())
}

// TestClone_Independent checks that a cloned builder does not share state.
func TestClone_Independent(t *testing.T) {
	t.Parallel()

	b := NewBuilder().Set(Prefix, "/usr/local")
	c := b.Clone().Set(Prefix, "/opt")

	value, _ := b.Get(Prefix)
	require.Equal(t, "/usr/local", value)

	value, _ = c.Get(Prefix)
	require.Equal(t, "/opt", value)
}

// TestZeroOptions checks the zero value behaves as an empty set.
func TestZeroOptions(t *testing.T) {
	t.Parallel()

	var opts Options

	_, ok := opts.Get(Prefix)
	require.False(t, ok)
	require.Empty(t, opts.List(Enable))
	require.Empty(t, opts.Keys())
}
