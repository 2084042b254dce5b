// Package sequence exposes install sequences over gRPC.
//
// The service is declared by hand on top of the protobuf well-known types:
// requests are a google.protobuf.Struct describing one package, responses a
// google.protobuf.ListValue of command strings.
package sequence
