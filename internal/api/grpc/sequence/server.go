package sequence

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/provision/internal/domain/provision"
	"github.com/oshokin/provision/internal/logger"
	"github.com/oshokin/provision/internal/manifest"
	"github.com/oshokin/provision/internal/options"
	"github.com/oshokin/provision/internal/pipeline"
	"github.com/oshokin/provision/internal/scm"
	"github.com/oshokin/provision/internal/source"
)

// Request describes one package to produce a sequence for.
type Request struct {
	Package provision.Package
	Source  string
	Options *options.Builder
}

// Service abstracts the business operation the transport layer depends on.
type Service interface {
	Generate(ctx context.Context, req *Request) ([]string, error)
}

// Server implements the SequenceService gRPC API.
type Server struct {
	// service produces the sequences.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// Generate returns the install sequence for the requested package.
func (s *Server) Generate(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	request := NewRequest(FromStruct(req))
	if request.Package.Name == "" {
		return nil, status.Error(codes.InvalidArgument, "name is required")
	}

	commands, err := s.service.Generate(ctx, request)
	if err != nil {
		if isDeclarationError(err) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}

		logger.ErrorKV(ctx, "Unable to generate sequence", "package", request.Package.Name, "error", err)

		return nil, status.Error(codes.Internal, "unable to generate sequence")
	}

	return ToList(commands), nil
}

// ToStruct encodes a package declaration as a request message.
// Empty fields are left out.
func ToStruct(decl *manifest.Declaration) *structpb.Struct {
	values := map[string]*structpb.Value{
		FieldName:   structpb.NewStringValue(decl.Name),
		FieldSource: structpb.NewStringValue(decl.Source),
	}

	for key, value := range map[string]string{
		FieldVersion:       decl.Version,
		FieldSCM:           decl.SCM,
		FieldPrefix:        decl.Prefix,
		FieldBuilds:        decl.Builds,
		FieldCustomInstall: decl.CustomInstall,
	} {
		if value != "" {
			values[key] = structpb.NewStringValue(value)
		}
	}

	for key, list := range map[string][]string{
		FieldEnable:  decl.Enable,
		FieldDisable: decl.Disable,
		FieldWith:    decl.With,
		FieldWithout: decl.Without,
	} {
		if len(list) > 0 {
			values[key] = structpb.NewListValue(ToList(list))
		}
	}

	for key, hooks := range map[string]map[string][]string{
		FieldPre:  decl.Pre,
		FieldPost: decl.Post,
	} {
		if len(hooks) == 0 {
			continue
		}

		stages := make(map[string]*structpb.Value, len(hooks))
		for stage, commands := range hooks {
			stages[stage] = structpb.NewListValue(ToList(commands))
		}

		values[key] = structpb.NewStructValue(&structpb.Struct{Fields: stages})
	}

	if len(decl.Options) > 0 {
		extra := make(map[string]*structpb.Value, len(decl.Options))
		for key, value := range decl.Options {
			extra[key] = structpb.NewStringValue(value)
		}

		values[FieldOptions] = structpb.NewStructValue(&structpb.Struct{Fields: extra})
	}

	return &structpb.Struct{Fields: values}
}

// FromStruct decodes a request message into a declaration.
func FromStruct(req *structpb.Struct) *manifest.Declaration {
	fields := req.GetFields()
	get := func(key string) string {
		return fields[key].GetStringValue()
	}

	list := func(key string) []string {
		if fields[key].GetListValue() == nil {
			return nil
		}

		return FromList(fields[key].GetListValue())
	}

	hooks := func(key string) map[string][]string {
		stages := fields[key].GetStructValue().GetFields()
		if len(stages) == 0 {
			return nil
		}

		out := make(map[string][]string, len(stages))
		for stage, commands := range stages {
			out[stage] = FromList(commands.GetListValue())
		}

		return out
	}

	decl := &manifest.Declaration{
		Name:          get(FieldName),
		Version:       get(FieldVersion),
		Source:        get(FieldSource),
		SCM:           get(FieldSCM),
		Prefix:        get(FieldPrefix),
		Builds:        get(FieldBuilds),
		Enable:        list(FieldEnable),
		Disable:       list(FieldDisable),
		With:          list(FieldWith),
		Without:       list(FieldWithout),
		CustomInstall: get(FieldCustomInstall),
		Pre:           hooks(FieldPre),
		Post:          hooks(FieldPost),
	}

	if extra := fields[FieldOptions].GetStructValue().GetFields(); len(extra) > 0 {
		decl.Options = make(map[string]string, len(extra))
		for key, value := range extra {
			decl.Options[key] = value.GetStringValue()
		}
	}

	return decl
}

// NewRequest turns a decoded declaration into a service request.
func NewRequest(decl *manifest.Declaration) *Request {
	return &Request{
		Package: decl.Package(),
		Source:  decl.Source,
		Options: decl.Builder(),
	}
}

// ToList encodes commands as a list of string values.
func ToList(commands []string) *structpb.ListValue {
	values := make([]*structpb.Value, 0, len(commands))
	for _, command := range commands {
		values = append(values, structpb.NewStringValue(command))
	}

	return &structpb.ListValue{Values: values}
}

// FromList decodes a list of string values.
func FromList(list *structpb.ListValue) []string {
	commands := make([]string, 0, len(list.GetValues()))
	for _, value := range list.GetValues() {
		commands = append(commands, value.GetStringValue())
	}

	return commands
}

// ErrNoSource is returned by services when a request carries no source URL.
var ErrNoSource = errors.New("source is required")

// isDeclarationError reports whether err comes from bad request contents.
func isDeclarationError(err error) bool {
	return errors.Is(err, pipeline.ErrMissingConfiguration) ||
		errors.Is(err, scm.ErrUnknownBackend) ||
		errors.Is(err, source.ErrMalformedSourceLocation) ||
		errors.Is(err, ErrNoSource)
}
