package options

import "slices"

// Option keys read by the installer pipeline and the build system.
const (
	// Prefix is the install root. Required.
	Prefix = "prefix"
	// Builds is the scratch directory sources are checked out into. Required.
	Builds = "builds"
	// SCM selects the fetch backend. Optional, defaults to svn.
	SCM = "scm"
	// Enable lists features passed as --enable-<value> to configure.
	Enable = "enable"
	// Disable lists features passed as --disable-<value> to configure.
	Disable = "disable"
	// With lists packages passed as --with-<value> to configure.
	With = "with"
	// Without lists packages passed as --without-<value> to configure.
	Without = "without"
	// CustomInstall replaces configure, build and install with one command.
	CustomInstall = "custom_install"
)

// Builder collects option values and stage hooks before an installer is created.
// A Builder is not safe for concurrent use.
type Builder struct {
	// values holds every option; single-valued keys use a one-element slice.
	values map[string][]string
	// pre holds commands emitted before a stage's own commands.
	pre map[string][]string
	// post holds commands emitted after a stage's own commands.
	post map[string][]string
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		values: make(map[string][]string),
		pre:    make(map[string][]string),
		post:   make(map[string][]string),
	}
}

// Set stores a single value for key, replacing anything stored before.
func (b *Builder) Set(key, value string) *Builder {
	b.values[key] = []string{value}

	return b
}

// Append adds values to a list option such as enable or with.
func (b *Builder) Append(key string, values ...string) *Builder {
	if len(values) == 0 {
		return b
	}

	b.values[key] = append(b.values[key], values...)

	return b
}

// Get returns the first value stored for key.
func (b *Builder) Get(key string) (string, bool) {
	return first(b.values, key)
}

// MergeDefaults fills keys that are still absent from the provided layer.
// Values set before the merge always shadow the defaults.
func (b *Builder) MergeDefaults(layer map[string]string) *Builder {
	for key, value := range layer {
		if _, ok := b.values[key]; ok {
			continue
		}

		b.values[key] = []string{value}
	}

	return b
}

// Pre registers commands to run before the named stage.
func (b *Builder) Pre(stage string, commands ...string) *Builder {
	b.pre[stage] = append(b.pre[stage], commands...)

	return b
}

// Post registers commands to run after the named stage.
func (b *Builder) Post(stage string, commands ...string) *Builder {
	b.post[stage] = append(b.post[stage], commands...)

	return b
}

// Clone returns an independent copy of the builder.
func (b *Builder) Clone() *Builder {
	return &Builder{
		values: cloneLists(b.values),
		pre:    cloneLists(b.pre),
		post:   cloneLists(b.post),
	}
}

// Build freezes the collected values into an immutable snapshot.
func (b *Builder) Build() Options {
	return Options{
		values: cloneLists(b.values),
		pre:    cloneLists(b.pre),
		post:   cloneLists(b.post),
	}
}

// Options is an immutable snapshot produced by Builder.Build.
// The zero value is an empty set of options.
type Options struct {
	values map[string][]string
	pre    map[string][]string
	post   map[string][]string
}

// Get returns the first value stored for key.
// Empty values are reported as present; callers that need a non-empty value
// check it themselves.
func (o Options) Get(key string) (string, bool) {
	return first(o.values, key)
}

// List returns a copy of every value stored for key.
func (o Options) List(key string) []string {
	return slices.Clone(o.values[key])
}

// Prefix returns the install root and whether it is set to a non-empty value.
func (o Options) Prefix() (string, bool) {
	return o.nonEmpty(Prefix)
}

// Builds returns the build root and whether it is set to a non-empty value.
func (o Options) Builds() (string, bool) {
	return o.nonEmpty(Builds)
}

// SCM returns the backend kind as declared. It may be empty.
func (o Options) SCM() string {
	value, _ := o.Get(SCM)

	return value
}

// Hooks returns the pre and post commands registered for the named stage.
func (o Options) Hooks(stage string) (pre, post []string) {
	return slices.Clone(o.pre[stage]), slices.Clone(o.post[stage])
}

// Keys returns every option key in sorted order.
func (o Options) Keys() []string {
	var keys []string
	for key := range o.values {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	return keys
}

func (o Options) nonEmpty(key string) (string, bool) {
	value, ok := o.Get(key)
	if !ok || value == "" {
		return "", false
	}

	return value, true
}

func first(values map[string][]string, key string) (string, bool) {
	list, ok := values[key]
	if !ok || len(list) == 0 {
		return "", false
	}

	return list[0], true
}

func cloneLists(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for key, list := range in {
		out[key] = slices.Clone(list)
	}

	return out
}
