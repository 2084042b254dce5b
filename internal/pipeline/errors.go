package pipeline

import (
	"errors"
	"fmt"
)

// ErrMissingConfiguration is wrapped by every precondition failure.
var ErrMissingConfiguration = errors.New("missing configuration")

var (
	// ErrNoInstallationArea is returned when the prefix option is absent.
	ErrNoInstallationArea = fmt.Errorf("%w: no installation area defined", ErrMissingConfiguration)
	// ErrNoBuildArea is returned when the builds option is absent.
	ErrNoBuildArea = fmt.Errorf("%w: no build area defined", ErrMissingConfiguration)
	// ErrNoPackageVersion is returned when the package has no version.
	ErrNoPackageVersion = fmt.Errorf("%w: no package version defined", ErrMissingConfiguration)
)

// ErrUnknownStage is returned when a stage name is not part of the pipeline.
var ErrUnknownStage = errors.New("unknown stage")
