package server

import (
	"context"
	"net"
	"testing"
	"time"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/handler"
	"github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/interceptor"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func startServer(t *testing.T, services Services) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := New(config.ServerConfig{ListenAddr: "bufnet", RequestTimeout: time.Second, ShutdownTimeout: time.Second}, services, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		cancel()
		require.NoError(t, <-errCh)
	})
	return conn
}

func TestServer_HealthReportsRegisteredServices(t *testing.T) {
	t.Parallel()

	conn := startServer(t, Services{
		Lifecycle: handler.NewLifecycleGrpcHandler(lifecycle.DefaultThresholds, nil),
	})
	client := healthpb.NewHealthClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: apiv1.LifecycleServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	_, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: apiv1.WorkerServiceName})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestServer_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	conn := startServer(t, Services{
		Lifecycle: handler.NewLifecycleGrpcHandler(lifecycle.DefaultThresholds, fixedClock{now: now}),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var header metadata.MD
	resp, err := apiv1.Invoke[apiv1.EvaluateExpiryResponse](ctx, conn, apiv1.LifecycleServiceName, "EvaluateExpiry",
		&apiv1.EvaluateExpiryRequest{ExpiryDate: "2024-06-01"}, grpc.Header(&header))
	require.NoError(t, err)
	assert.Equal(t, "por_vencer", resp.CertificationStatus)
	assert.Equal(t, "info", resp.Window)
	assert.EqualValues(t, 17, resp.DaysUntil)
	assert.Len(t, header.Get(interceptor.RequestIDKey), 1)

	_, err = apiv1.Invoke[apiv1.EvaluateExpiryResponse](ctx, conn, apiv1.LifecycleServiceName, "EvaluateExpiry",
		&apiv1.EvaluateExpiryRequest{ExpiryDate: "not-a-date"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = apiv1.Invoke[apiv1.Empty](ctx, conn, apiv1.WorkerServiceName, "GetWorker", &apiv1.IDRequest{ID: "w-1"})
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestServices_RegisterSkipsNil(t *testing.T) {
	t.Parallel()

	srv := grpc.NewServer()
	names := Services{
		Lifecycle: handler.NewLifecycleGrpcHandler(lifecycle.DefaultThresholds, nil),
	}.register(srv)

	assert.Equal(t, []string{apiv1.LifecycleServiceName}, names)
	_, ok := srv.GetServiceInfo()[apiv1.LifecycleServiceName]
	assert.True(t, ok)
}
