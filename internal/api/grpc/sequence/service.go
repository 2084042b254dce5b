package sequence

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "provision.v1.SequenceService"
	// GenerateMethod is the full method name of Generate.
	GenerateMethod = "/" + ServiceName + "/Generate"
)

// Request field names. They match the manifest keys.
const (
	FieldName          = "name"
	FieldVersion       = "version"
	FieldSource        = "source"
	FieldSCM           = "scm"
	FieldPrefix        = "prefix"
	FieldBuilds        = "builds"
	FieldEnable        = "enable"
	FieldDisable       = "disable"
	FieldWith          = "with"
	FieldWithout       = "without"
	FieldCustomInstall = "custom_install"
	FieldPre           = "pre"
	FieldPost          = "post"
	FieldOptions       = "options"
)

// SequenceServiceServer is implemented by the transport handler.
type SequenceServiceServer interface {
	Generate(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error)
}

// RegisterSequenceServiceServer registers srv on s.
func RegisterSequenceServiceServer(s grpc.ServiceRegistrar, srv SequenceServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

//nolint:gochecknoglobals // gRPC service descriptors are package-level by convention.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SequenceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Generate",
			Handler:    generateHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "provision/v1/sequence.proto",
}

//nolint:revive // Signature is fixed by grpc.MethodDesc.
func generateHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(SequenceServiceServer).Generate(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GenerateMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SequenceServiceServer).Generate(ctx, req.(*structpb.Struct))
	}

	return interceptor(ctx, in, info, handler)
}
