package buildsys

import (
	"strings"

	"github.com/oshokin/provision/internal/options"
)

// Context is what a build system needs to know about one checkout.
type Context struct {
	// PackageName names the per-stage log files.
	PackageName string
	// BuildDir is the checkout directory the commands run in.
	BuildDir string
	// Prefix is the install root.
	Prefix string
	// Options are the installer options.
	Options options.Options
}

// System produces stage commands for a checkout.
type System interface {
	Configure(c *Context) []string
	Build(c *Context) []string
	Install(c *Context) []string
}

// configureFlags maps list options to their ./configure flag prefix.
//
//nolint:gochecknoglobals // Fixed flag order keeps output stable.
var configureFlags = []struct {
	key  string
	flag string
}{
	{key: options.Enable, flag: "--enable-"},
	{key: options.Disable, flag: "--disable-"},
	{key: options.With, flag: "--with-"},
	{key: options.Without, flag: "--without-"},
}

// Autotools is the ./configure && make && make install build system.
type Autotools struct{}

// Configure returns the ./configure invocation, or nothing for custom installs.
func (Autotools) Configure(c *Context) []string {
	if isCustom(c) {
		return nil
	}

	var command strings.Builder

	command.WriteString(cd(c))
	command.WriteString("./configure --prefix=")
	command.WriteString(c.Prefix)

	for _, f := range configureFlags {
		for _, value := range c.Options.List(f.key) {
			command.WriteString(" ")
			command.WriteString(f.flag)
			command.WriteString(value)
		}
	}

	command.WriteString(logRedirect(c, "configure"))

	return []string{command.String()}
}

// Build returns the make invocation, or nothing for custom installs.
func (Autotools) Build(c *Context) []string {
	if isCustom(c) {
		return nil
	}

	return []string{cd(c) + "make" + logRedirect(c, "build")}
}

// Install returns make install, or the custom install command.
func (Autotools) Install(c *Context) []string {
	if custom, ok := customInstall(c); ok {
		return []string{cd(c) + custom}
	}

	return []string{cd(c) + "make install" + logRedirect(c, "install")}
}

func cd(c *Context) string {
	return "cd " + c.BuildDir + " && "
}

func logRedirect(c *Context, stage string) string {
	return " > " + c.PackageName + "-" + stage + ".log 2>&1"
}

func customInstall(c *Context) (string, bool) {
	value, ok := c.Options.Get(options.CustomInstall)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}

	return value, true
}

func isCustom(c *Context) bool {
	_, ok := customInstall(c)

	return ok
}
