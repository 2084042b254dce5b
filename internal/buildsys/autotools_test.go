package buildsys

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/provision/internal/options"
)

func newContext(b *options.Builder) *Context {
	return &Context{
		PackageName: "sprinkle",
		BuildDir:    "/usr/local/builds/sprinkle-1.2.3",
		Prefix:      "/usr/local",
		Options:     b.Build(),
	}
}

// TestAutotools_Defaults checks the plain configure/make/make install commands.
func TestAutotools_Defaults(t *testing.T) {
	t.Parallel()

	var (
		sys = Autotools{}
		c   = newContext(options.NewBuilder())
	)

	require.Equal(t,
		[]string{"cd /usr/local/builds/sprinkle-1.2.3 && ./configure --prefix=/usr/local > sprinkle-configure.log 2>&1"},
		sys.Configure(c))
	require.Equal(t,
		[]string{"cd /usr/local/builds/sprinkle-1.2.3 && make > sprinkle-build.log 2>&1"},
		sys.Build(c))
	require.Equal(t,
		[]string{"cd /usr/local/builds/sprinkle-1.2.3 && make install > sprinkle-install.log 2>&1"},
		sys.Install(c))
}

// TestAutotools_ConfigureFlags verifies the enable/disable/with/without flags and their order.
func TestAutotools_ConfigureFlags(t *testing.T) {
	t.Parallel()

	b := options.NewBuilder().
		Append(options.Without, "x11").
		Append(options.With, "zlib", "openssl").
		Append(options.Disable, "docs").
		Append(options.Enable, "shared")

	got := Autotools{}.Configure(newContext(b))

	require.Equal(t, []string{
		"cd /usr/local/builds/sprinkle-1.2.3 && ./configure --prefix=/usr/local" +
			" --enable-shared --disable-docs --with-zlib --with-openssl --without-x11" +
			" > sprinkle-configure.log 2>&1",
	}, got)
}

// TestAutotools_CustomInstall replaces configure and build with a single install command.
func TestAutotools_CustomInstall(t *testing.T) {
	t.Parallel()

	var (
		sys = Autotools{}
		c   = newContext(options.NewBuilder().Set(options.CustomInstall, "ruby setup.rb"))
	)

	require.Empty(t, sys.Configure(c))
	require.Empty(t, sys.Build(c))
	require.Equal(t, []string{"cd /usr/local/builds/sprinkle-1.2.3 && ruby setup.rb"}, sys.Install(c))
}

// TestAutotools_BlankCustomInstallIgnored treats whitespace as unset.
func TestAutotools_BlankCustomInstallIgnored(t *testing.T) {
	t.Parallel()

	c := newContext(options.NewBuilder().Set(options.CustomInstall, "  "))

	require.Len(t, Autotools{}.Build(c), 1)
}
