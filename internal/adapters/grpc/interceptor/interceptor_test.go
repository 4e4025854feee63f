package interceptor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var testInfo = &grpc.UnaryServerInfo{FullMethod: "/mining.v1.WorkerService/GetWorker"}

func TestLogging_LevelsByCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		err   error
		level zapcore.Level
		code  string
	}{
		{name: "ok", err: nil, level: zapcore.InfoLevel, code: "OK"},
		{name: "client error", err: status.Error(codes.NotFound, "missing"), level: zapcore.WarnLevel, code: "NotFound"},
		{name: "server error", err: status.Error(codes.Unavailable, "db down"), level: zapcore.ErrorLevel, code: "Unavailable"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zapcore.DebugLevel)
			intercept := Logging(zap.New(core))

			_, err := intercept(context.Background(), nil, testInfo, func(ctx context.Context, req any) (any, error) {
				return "ok", tc.err
			})
			assert.Equal(t, tc.err, err)

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tc.level, entries[0].Level)
			fields := entries[0].ContextMap()
			assert.Equal(t, testInfo.FullMethod, fields["method"])
			assert.Equal(t, tc.code, fields["code"])
			assert.Contains(t, fields, "duration")
		})
	}
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	t.Parallel()

	intercept := RequestID()

	var got string
	_, err := intercept(context.Background(), nil, testInfo, func(ctx context.Context, req any) (any, error) {
		got = RequestIDFromContext(ctx)
		return nil, nil
	})
	require.NoError(t, err)
	assert.Len(t, got, 36)

	incoming := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDKey, "req-123"))
	_, err = intercept(incoming, nil, testInfo, func(ctx context.Context, req any) (any, error) {
		got = RequestIDFromContext(ctx)
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "req-123", got)
}

func TestTimeout_SetsDeadline(t *testing.T) {
	t.Parallel()

	_, err := Timeout(50*time.Millisecond)(context.Background(), nil, testInfo, func(ctx context.Context, req any) (any, error) {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		return nil, nil
	})
	require.NoError(t, err)

	_, err = Timeout(0)(context.Background(), nil, testInfo, func(ctx context.Context, req any) (any, error) {
		_, ok := ctx.Deadline()
		assert.False(t, ok)
		return nil, nil
	})
	require.NoError(t, err)
}

func TestRecovery_ConvertsPanic(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	_, err := Recovery(zap.New(core))(context.Background(), nil, testInfo, func(ctx context.Context, req any) (any, error) {
		panic("nil map")
	})
	assert.Equal(t, codes.Internal, status.Code(err))
	require.Equal(t, 1, logs.FilterMessage("grpc handler panic").Len())

	boom := errors.New("boom")
	_, err = Recovery(zap.NewNop())(context.Background(), nil, testInfo, func(ctx context.Context, req any) (any, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}
