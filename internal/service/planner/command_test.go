package planner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/provision/internal/config"
	"github.com/oshokin/provision/internal/domain/provision"
	"github.com/oshokin/provision/internal/manifest"
	"github.com/oshokin/provision/internal/pipeline"
	"github.com/oshokin/provision/internal/scm"
)

const testManifest = `packages:
  - name: sprinkle
    version: 1.2.3
    source: http://github.com/crafterm/sprinkle/trunk
    prefix: /usr/local
    builds: /usr/local/builds
  - name: beans
    version: "0.9"
    source: git://example.com/beans.git
    scm: git
`

// writeFixtures stores settings and a manifest in a temporary directory.
func writeFixtures(t *testing.T, manifestContents string) (cfgPath, manifestPath string) {
	t.Helper()

	dir := t.TempDir()
	cfgPath = filepath.Join(dir, "provision.yaml")
	manifestPath = filepath.Join(dir, "packages.yaml")

	require.NoError(t, config.Save(cfgPath, &config.Config{
		Defaults: map[string]map[string]string{
			"scm": {"prefix": "/usr", "builds": "/usr/builds"},
		},
	}))
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifestContents), 0o600))

	return cfgPath, manifestPath
}

// TestRun_Plain prints every package's sequence in manifest order.
func TestRun_Plain(t *testing.T) {
	t.Parallel()

	cfgPath, manifestPath := writeFixtures(t, testManifest)

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		ConfigPath:   cfgPath,
		ManifestPath: manifestPath,
		Plain:        true,
		Out:          &out,
	})
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 12)
	require.Equal(t, "mkdir -p /usr/local", string(lines[0]))
	require.Equal(t, "svn checkout http://github.com/crafterm/sprinkle/trunk /usr/local/builds/sprinkle-1.2.3", string(lines[2]))
	require.Equal(t, "mkdir -p /usr", string(lines[6]))
	require.Equal(t, "git clone git://example.com/beans.git /usr/builds/beans.git-0.9", string(lines[8]))
}

// TestRun_SelectedStage restricts output to one package and one stage.
func TestRun_SelectedStage(t *testing.T) {
	t.Parallel()

	cfgPath, manifestPath := writeFixtures(t, testManifest)

	var out bytes.Buffer

	err := Run(context.Background(), &Options{
		ConfigPath:   cfgPath,
		ManifestPath: manifestPath,
		Packages:     []string{"beans"},
		Stage:        string(pipeline.Download),
		Plain:        true,
		Out:          &out,
	})
	require.NoError(t, err)
	require.Equal(t, "git clone git://example.com/beans.git /usr/builds/beans.git-0.9\n", out.String())
}

// TestRun_Errors surfaces declaration errors with the package name.
func TestRun_Errors(t *testing.T) {
	t.Parallel()

	cfgPath, manifestPath := writeFixtures(t, `packages:
  - name: broken
    version: "1"
    source: http://example.com/broken/trunk
    scm: foo
`)

	err := Run(context.Background(), &Options{
		ConfigPath:   cfgPath,
		ManifestPath: manifestPath,
		Out:          new(bytes.Buffer),
	})
	require.ErrorIs(t, err, scm.ErrUnknownBackend)
	require.ErrorContains(t, err, "plan broken")

	err = Run(context.Background(), &Options{
		ConfigPath:   cfgPath,
		ManifestPath: manifestPath,
		Packages:     []string{"missing"},
		Out:          new(bytes.Buffer),
	})
	require.ErrorIs(t, err, manifest.ErrPackageNotFound)
}

// TestRender writes headers and numbered commands.
func TestRender(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := Render(&out, []*Plan{
		{
			Package:  provision.Package{Name: "sprinkle", Version: "1.2.3"},
			Source:   "http://github.com/crafterm/sprinkle/trunk",
			Commands: []string{"mkdir -p /usr/local", "mkdir -p /usr/local/builds"},
		},
	})
	require.NoError(t, err)
	require.Contains(t, out.String(), "==> sprinkle-1.2.3")
	require.Contains(t, out.String(), "http://github.com/crafterm/sprinkle/trunk")
	require.Contains(t, out.String(), "   1 ")
	require.Contains(t, out.String(), "mkdir -p /usr/local/builds\n")
}
