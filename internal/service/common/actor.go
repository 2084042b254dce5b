//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"

	"github.com/oshokin/provision/internal/domain/provision"
)

// DetectActor gathers host and user information for delivery records.
func DetectActor() (*provision.Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &provision.Actor{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}
