package server

import (
	"context"
	"fmt"

	api "github.com/oshokin/provision/internal/api/grpc/sequence"
	"github.com/oshokin/provision/internal/installer"
	"github.com/oshokin/provision/internal/logger"
)

// service produces install sequences with the deployment defaults of the server.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	// defaults is the option layer merged under every request.
	defaults map[string]string
}

// newService creates a service merging the given defaults under requests.
func newService(defaults map[string]string) *service {
	return &service{
		defaults: defaults,
	}
}

// Generate builds an installer for the request and returns its sequence.
func (s *service) Generate(ctx context.Context, req *api.Request) ([]string, error) {
	if req.Source == "" {
		return nil, api.ErrNoSource
	}

	inst, err := installer.New(req.Package, req.Source, req.Options, installer.WithDefaults(s.defaults))
	if err != nil {
		return nil, fmt.Errorf("create installer: %w", err)
	}

	commands, err := inst.InstallSequence(ctx)
	if err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Install sequence served", "package", req.Package.String(), "commands", len(commands))

	return commands, nil
}
