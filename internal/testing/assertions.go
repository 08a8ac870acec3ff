package testing

import (
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RequireStatus asserts that err is a gRPC status with the given code and a
// message containing contains.
func RequireStatus(t *testing.T, err error, code codes.Code, contains string) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "expected a gRPC status, got %T: %v", err, err)
	require.Equal(t, code, st.Code(), "status message: %s", st.Message())
	require.Contains(t, st.Message(), contains)
}

// RequireInvalidArgument is RequireStatus for codes.InvalidArgument, the
// code every service failure surfaces as.
func RequireInvalidArgument(t *testing.T, err error, contains string) {
	t.Helper()
	RequireStatus(t, err, codes.InvalidArgument, contains)
}
