package provision

// Package is the read-only package reference an installer is built from.
type Package struct {
	// Name is the logical package name used in log file names and records.
	Name string
	// Version is the version being installed. It is optional at declaration
	// time, but every stage that derives a directory name requires it.
	Version string
}

// HasVersion reports whether a version was declared.
func (p Package) HasVersion() bool {
	return p.Version != ""
}

// String renders the package as name-version, or just name when unversioned.
func (p Package) String() string {
	if !p.HasVersion() {
		return p.Name
	}

	return p.Name + "-" + p.Version
}

// Actor identifies who performed a delivery.
type Actor struct {
	// Hostname is the machine name where the delivery ran.
	Hostname string `yaml:"hostname"`
	// Username is the system user who triggered the delivery.
	Username string `yaml:"username"`
}

// Clone returns a deep copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}
