package sequence

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/provision/internal/manifest"
	"github.com/oshokin/provision/internal/options"
	"github.com/oshokin/provision/internal/pipeline"
	"github.com/oshokin/provision/internal/scm"
)

var errTestBackend = errors.New("test backend failure")

// fakeService implements Service for unit testing the transport.
type fakeService struct {
	// generateFn overrides the default echo behaviour.
	generateFn func(ctx context.Context, req *Request) ([]string, error)
	// last is the most recent request.
	last *Request
}

// Generate records the request and echoes it back as a single command.
func (f *fakeService) Generate(ctx context.Context, req *Request) ([]string, error) {
	f.last = req

	if f.generateFn != nil {
		return f.generateFn(ctx, req)
	}

	return []string{req.Package.String() + " " + req.Source}, nil
}

// TestServer_Generate_Validation ensures invalid requests return InvalidArgument errors.
func TestServer_Generate_Validation(t *testing.T) {
	t.Parallel()

	s := NewServer(new(fakeService))

	_, err := s.Generate(context.Background(), nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.Generate(context.Background(), &structpb.Struct{})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestServer_Generate_Roundtrip converts the request and the response.
func TestServer_Generate_Roundtrip(t *testing.T) {
	t.Parallel()

	svc := new(fakeService)
	s := NewServer(svc)

	req := ToStruct(&manifest.Declaration{
		Name:    "sprinkle",
		Version: "1.2.3",
		Source:  "http://github.com/crafterm/sprinkle/trunk",
		SCM:     "git",
		Prefix:  "/usr/local",
	})

	resp, err := s.Generate(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, []string{"sprinkle-1.2.3 http://github.com/crafterm/sprinkle/trunk"}, FromList(resp))

	opts := svc.last.Options.Build()
	require.Equal(t, "git", opts.SCM())

	prefix, ok := opts.Prefix()
	require.True(t, ok)
	require.Equal(t, "/usr/local", prefix)

	_, ok = opts.Get(options.Builds)
	require.False(t, ok)
}

// TestServer_Generate_ErrorCodes maps declaration errors to InvalidArgument and the rest to Internal.
func TestServer_Generate_ErrorCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want codes.Code
	}{
		{err: pipeline.ErrNoBuildArea, want: codes.InvalidArgument},
		{err: &scm.UnknownBackendError{Destination: "/b/p-1"}, want: codes.InvalidArgument},
		{err: fmt.Errorf("download: %w", ErrNoSource), want: codes.InvalidArgument},
		{err: errTestBackend, want: codes.Internal},
	}

	for _, tc := range cases {
		s := NewServer(&fakeService{
			generateFn: func(context.Context, *Request) ([]string, error) {
				return nil, tc.err
			},
		})

		req := ToStruct(&manifest.Declaration{Name: "p", Source: "http://x/p"})

		_, err := s.Generate(context.Background(), req)
		require.Equal(t, tc.want, status.Code(err), tc.err.Error())
	}
}

// TestList_Roundtrip keeps command order.
func TestList_Roundtrip(t *testing.T) {
	t.Parallel()

	commands := []string{"mkdir -p /usr/local", "mkdir -p /usr/local/builds", "svn checkout a b"}

	require.Equal(t, commands, FromList(ToList(commands)))
	require.Empty(t, FromList(nil))
}

// TestStruct_CarriesWholeDeclaration keeps build flags, hooks and extra options on the wire.
func TestStruct_CarriesWholeDeclaration(t *testing.T) {
	t.Parallel()

	decl := &manifest.Declaration{
		Name:          "sprinkle",
		Version:       "1.2.3",
		Source:        "http://github.com/crafterm/sprinkle/trunk",
		SCM:           "svn",
		Prefix:        "/usr/local",
		Builds:        "/usr/local/builds",
		Enable:        []string{"ssl", "threads"},
		Disable:       []string{"docs"},
		With:          []string{"zlib"},
		Without:       []string{"tk"},
		CustomInstall: "ruby setup.rb",
		Pre:           map[string][]string{"download": {"echo fetching"}},
		Post:          map[string][]string{"install": {"ldconfig", "echo done"}},
		Options:       map[string]string{"jobs": "4"},
	}

	got := FromStruct(ToStruct(decl))
	require.Equal(t, decl, got)

	opts := NewRequest(got).Options.Build()
	require.Equal(t, []string{"ssl", "threads"}, opts.List(options.Enable))

	custom, ok := opts.Get(options.CustomInstall)
	require.True(t, ok)
	require.Equal(t, "ruby setup.rb", custom)

	pre, post := opts.Hooks("install")
	require.Empty(t, pre)
	require.Equal(t, []string{"ldconfig", "echo done"}, post)

	jobs, ok := opts.Get("jobs")
	require.True(t, ok)
	require.Equal(t, "4", jobs)
}

// TestStruct_OmitsEmptyFields leaves unset fields off the wire.
func TestStruct_OmitsEmptyFields(t *testing.T) {
	t.Parallel()

	req := ToStruct(&manifest.Declaration{Name: "beans", Source: "git://example.com/beans.git"})
	require.Len(t, req.GetFields(), 2)

	got := FromStruct(req)
	require.Nil(t, got.Enable)
	require.Nil(t, got.Pre)
	require.Nil(t, got.Options)
}
