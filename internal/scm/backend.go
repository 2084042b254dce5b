package scm

import (
	"errors"
	"fmt"
	"strings"
)

// Backend is one of the supported source-control tools.
type Backend int

// Supported backends. SVN is the default.
const (
	SVN Backend = iota
	Git
	Hg
	Bzr
	Darcs
	CVS
)

// Default is used when no kind is declared.
const Default = SVN

// ErrUnknownBackend is matched by every UnknownBackendError.
var ErrUnknownBackend = errors.New("unknown scm")

// UnknownBackendError reports a kind that matches no backend.
// It carries the destination the checkout was headed for, which is what the
// caller has resolved by the time the kind is looked at.
type UnknownBackendError struct {
	// Destination is the resolved build directory.
	Destination string
	// Kind is the declared kind that failed to match.
	Kind string
}

func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownBackend, e.Destination)
}

// Is makes errors.Is(err, ErrUnknownBackend) match.
func (e *UnknownBackendError) Is(target error) bool {
	return target == ErrUnknownBackend
}

// descriptor is the per-backend command template.
type descriptor struct {
	name string
	verb string
}

// descriptors is indexed by Backend; the slice order is also the match order.
//
//nolint:gochecknoglobals // Closed lookup table.
var descriptors = [...]descriptor{
	SVN:   {name: "svn", verb: "checkout"},
	Git:   {name: "git", verb: "clone"},
	Hg:    {name: "hg", verb: "clone"},
	Bzr:   {name: "bzr", verb: "checkout"},
	Darcs: {name: "darcs", verb: "get"},
	CVS:   {name: "cvs", verb: "checkout"},
}

// All returns every backend in declaration order.
func All() []Backend {
	return []Backend{SVN, Git, Hg, Bzr, Darcs, CVS}
}

// ParseBackend resolves a declared kind. An empty kind selects Default.
// Matching uses the kind's suffix, so "my-git" selects Git.
func ParseBackend(kind string) (Backend, bool) {
	if kind == "" {
		return Default, true
	}

	for _, backend := range All() {
		if strings.HasSuffix(kind, descriptors[backend].name) {
			return backend, true
		}
	}

	return 0, false
}

// String returns the tool name.
func (b Backend) String() string {
	if b < 0 || int(b) >= len(descriptors) {
		return fmt.Sprintf("Backend(%d)", int(b))
	}

	return descriptors[b].name
}

// FetchCommand renders "{tool} {verb} {source} {destination}".
func (b Backend) FetchCommand(source, destination string) string {
	d := descriptors[b]

	return d.name + " " + d.verb + " " + source + " " + destination
}

// FetchCommands resolves kind and returns the commands that check source out
// into destination. Exactly one command is produced.
func FetchCommands(kind, source, destination string) ([]string, error) {
	backend, ok := ParseBackend(kind)
	if !ok {
		return nil, &UnknownBackendError{
			Destination: destination,
			Kind:        kind,
		}
	}

	return []string{backend.FetchCommand(source, destination)}, nil
}
