package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	apiv1 "github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/api/v1"
	"github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/interceptor"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/config"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Services は登録する gRPC サービスの実装です。nil のサービスは登録しません。
type Services struct {
	User          apiv1.UserServiceServer
	Company       apiv1.CompanyServiceServer
	Course        apiv1.CourseServiceServer
	Worker        apiv1.WorkerServiceServer
	Service       apiv1.ServiceServiceServer
	Homologation  apiv1.HomologationServiceServer
	Certification apiv1.CertificationServiceServer
	Assignment    apiv1.AssignmentServiceServer
	Evaluation    apiv1.EvaluationServiceServer
	Document      apiv1.DocumentServiceServer
	Notification  apiv1.NotificationServiceServer
	Lifecycle     apiv1.LifecycleServiceServer
	Dashboard     apiv1.DashboardServiceServer
	Report        apiv1.ReportServiceServer
}

// register は各サービスを登録し、登録したサービス名を返します。
func (s Services) register(r grpc.ServiceRegistrar) []string {
	var names []string
	add := func(name string, ok bool, fn func()) {
		if ok {
			fn()
			names = append(names, name)
		}
	}

	add(apiv1.UserServiceName, s.User != nil, func() { apiv1.RegisterUserServiceServer(r, s.User) })
	add(apiv1.CompanyServiceName, s.Company != nil, func() { apiv1.RegisterCompanyServiceServer(r, s.Company) })
	add(apiv1.CourseServiceName, s.Course != nil, func() { apiv1.RegisterCourseServiceServer(r, s.Course) })
	add(apiv1.WorkerServiceName, s.Worker != nil, func() { apiv1.RegisterWorkerServiceServer(r, s.Worker) })
	add(apiv1.ServiceServiceName, s.Service != nil, func() { apiv1.RegisterServiceServiceServer(r, s.Service) })
	add(apiv1.HomologationServiceName, s.Homologation != nil, func() { apiv1.RegisterHomologationServiceServer(r, s.Homologation) })
	add(apiv1.CertificationServiceName, s.Certification != nil, func() { apiv1.RegisterCertificationServiceServer(r, s.Certification) })
	add(apiv1.AssignmentServiceName, s.Assignment != nil, func() { apiv1.RegisterAssignmentServiceServer(r, s.Assignment) })
	add(apiv1.EvaluationServiceName, s.Evaluation != nil, func() { apiv1.RegisterEvaluationServiceServer(r, s.Evaluation) })
	add(apiv1.DocumentServiceName, s.Document != nil, func() { apiv1.RegisterDocumentServiceServer(r, s.Document) })
	add(apiv1.NotificationServiceName, s.Notification != nil, func() { apiv1.RegisterNotificationServiceServer(r, s.Notification) })
	add(apiv1.LifecycleServiceName, s.Lifecycle != nil, func() { apiv1.RegisterLifecycleServiceServer(r, s.Lifecycle) })
	add(apiv1.DashboardServiceName, s.Dashboard != nil, func() { apiv1.RegisterDashboardServiceServer(r, s.Dashboard) })
	add(apiv1.ReportServiceName, s.Report != nil, func() { apiv1.RegisterReportServiceServer(r, s.Report) })

	return names
}

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr      string
	shutdownTimeout time.Duration
	grpcServer      *grpc.Server
	health          *health.Server
	services        []string
	logger          *zap.Logger
}

// New は指定された設定で待ち受ける gRPC サーバーを構築します。
// 標準のインターセプタ (リカバリ、リクエスト ID、ログ、タイムアウト) が先頭に入ります。
func New(cfg config.ServerConfig, services Services, logger *zap.Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	chain := grpc.ChainUnaryInterceptor(
		interceptor.Recovery(logger),
		interceptor.RequestID(),
		interceptor.Logging(logger),
		interceptor.Timeout(cfg.RequestTimeout),
	)
	srv := grpc.NewServer(append([]grpc.ServerOption{chain}, opts...)...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(srv, healthSrv)

	names := services.register(srv)
	for _, name := range names {
		healthSrv.SetServingStatus(name, healthpb.HealthCheckResponse_NOT_SERVING)
	}
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	return &Server{
		listenAddr:      cfg.ListenAddr,
		shutdownTimeout: cfg.ShutdownTimeout,
		grpcServer:      srv,
		health:          healthSrv,
		services:        names,
		logger:          logger,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は lis で待ち受けます。ctx のキャンセルで停止処理に入ります。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	s.setServing(healthpb.HealthCheckResponse_SERVING)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.GracefulStop()
		case <-done:
		}
	}()

	s.logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()), zap.Int("services", len(s.services)))

	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop はサーバーを安全に停止します。shutdown_timeout を超えた場合は強制停止します。
func (s *Server) GracefulStop() {
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	if s.shutdownTimeout <= 0 {
		<-stopped
		return
	}

	timer := time.NewTimer(s.shutdownTimeout)
	defer timer.Stop()
	select {
	case <-stopped:
	case <-timer.C:
		s.logger.Warn("graceful shutdown timed out, forcing stop", zap.Duration("timeout", s.shutdownTimeout))
		s.grpcServer.Stop()
		<-stopped
	}
}

func (s *Server) setServing(st healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", st)
	for _, name := range s.services {
		s.health.SetServingStatus(name, st)
	}
}
