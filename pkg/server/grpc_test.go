package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func TestNewGRPCServer_Health(t *testing.T) {
	// given
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hs := health.NewServer()
	srv := NewGRPCServer(logger, true, HealthRegistration(hs))

	lis := bufconn.Listen(1024 * 1024)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	client := healthpb.NewHealthClient(conn)

	testCases := []struct {
		name     string
		status   healthpb.HealthCheckResponse_ServingStatus
		expected healthpb.HealthCheckResponse_ServingStatus
	}{
		{name: "serving", status: healthpb.HealthCheckResponse_SERVING, expected: healthpb.HealthCheckResponse_SERVING},
		{name: "not serving", status: healthpb.HealthCheckResponse_NOT_SERVING, expected: healthpb.HealthCheckResponse_NOT_SERVING},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			hs.SetServingStatus("", tc.status)
			resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.expected, resp.GetStatus())
		})
	}
}
