package runs

import (
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/provision/internal/domain/provision"
)

// Status is the outcome of a delivery.
type Status string

// Delivery outcomes.
const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Record describes one delivery of one package.
type Record struct {
	// ID uniquely identifies the delivery.
	ID uuid.UUID `yaml:"id"`
	// Package is the package name.
	Package string `yaml:"package"`
	// Version is the package version.
	Version string `yaml:"version"`
	// Actor is who ran the delivery.
	Actor *provision.Actor `yaml:"actor,omitempty"`
	// Commands is the delivered sequence.
	Commands []string `yaml:"commands"`
	// FailedIndex is the zero-based position of the failed command, -1 on success.
	FailedIndex int `yaml:"failed_index"`
	// Status is the outcome.
	Status Status `yaml:"status"`
	// Error is the failure message, if any.
	Error string `yaml:"error,omitempty"`
	// StartedAt is when the delivery began.
	StartedAt time.Time `yaml:"started_at"`
	// FinishedAt is when the delivery ended.
	FinishedAt time.Time `yaml:"finished_at"`
}

// NewRecord starts a record for a package with a fresh ID.
func NewRecord(pkg provision.Package, actor *provision.Actor, commands []string) *Record {
	return &Record{
		ID:          uuid.New(),
		Package:     pkg.Name,
		Version:     pkg.Version,
		Actor:       actor.Clone(),
		Commands:    append([]string(nil), commands...),
		FailedIndex: -1,
		StartedAt:   time.Now().UTC(),
	}
}

// Succeed marks the record as successful.
func (r *Record) Succeed() {
	r.Status = StatusSucceeded
	r.FailedIndex = -1
	r.FinishedAt = time.Now().UTC()
}

// Fail marks the record as failed at the given command.
func (r *Record) Fail(index int, err error) {
	r.Status = StatusFailed
	r.FailedIndex = index
	r.FinishedAt = time.Now().UTC()

	if err != nil {
		r.Error = err.Error()
	}
}

// Duration returns how long the delivery took.
func (r *Record) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}

	return r.FinishedAt.Sub(r.StartedAt)
}
