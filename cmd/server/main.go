package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/mining-personnel-grpc/internal/adapters/cached"
	"github.com/ogurasousui/mining-personnel-grpc/internal/adapters/grpc/handler"
	"github.com/ogurasousui/mining-personnel-grpc/internal/adapters/report/xlsx"
	"github.com/ogurasousui/mining-personnel-grpc/internal/adapters/repository/postgres"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/assignment"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/certification"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/common"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/company"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/course"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/dashboard"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/document"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/evaluation"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/homologation"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/lifecycle"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/notification"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/service"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/user"
	"github.com/ogurasousui/mining-personnel-grpc/internal/core/worker"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/cache"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/config"
	pg "github.com/ogurasousui/mining-personnel-grpc/internal/platform/db/postgres"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/logger"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/server"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/sweeper"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	var (
		clock      common.Clock = common.SystemClock{}
		tx                      = pg.NewTransactionManager(dbPool)
		thresholds              = lifecycle.Thresholds{
			Critical: cfg.Lifecycle.CriticalDays,
			Warning:  cfg.Lifecycle.WarningDays,
			Info:     cfg.Lifecycle.InfoDays,
		}
	)

	userRepo := postgres.NewUserRepository(dbPool)
	workerRepo := postgres.NewWorkerRepository(dbPool)
	serviceRepo := postgres.NewServiceRepository(dbPool)

	trigger := notification.NewTrigger(postgres.NewNotificationRepository(dbPool), userRepo, clock, expiryRoles(cfg.Notification.ExpiryRoles))

	userSvc := user.NewService(userRepo, clock, tx)
	var companySvc company.UseCase = company.NewService(postgres.NewCompanyRepository(dbPool), clock, tx)
	var courseSvc course.UseCase = course.NewService(postgres.NewCourseRepository(dbPool), clock, tx)
	workerSvc := worker.NewService(workerRepo, clock, tx)
	serviceSvc := service.NewInteractor(serviceRepo, clock, tx)
	homologationSvc := homologation.NewService(postgres.NewHomologationRepository(dbPool), clock, tx)
	certificationSvc := certification.NewService(postgres.NewCertificationRepository(dbPool), clock, tx,
		certification.WithThresholds(thresholds),
		certification.WithExpiryNotifier(trigger),
		certification.WithHomologationExpirer(workerRepo),
	)
	assignmentSvc := assignment.NewService(postgres.NewAssignmentRepository(dbPool), serviceRepo, workerRepo, clock, tx)
	evaluationSvc := evaluation.NewService(postgres.NewEvaluationRepository(dbPool), trigger, clock, tx)
	documentSvc := document.NewService(postgres.NewDocumentRepository(dbPool), clock, tx)
	notificationSvc := notification.NewService(postgres.NewNotificationRepository(dbPool), trigger, tx)
	dashboardSvc := dashboard.NewService(postgres.NewDashboardRepository(dbPool), clock, tx)

	if cfg.Redis.Enabled {
		client := cache.NewRedisClient(cfg.Redis)
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			lg.Warn("redis unavailable, cache reads will fall back to the database", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		qc := cache.New(client, cfg.Redis.KeyPrefix, cfg.Redis.TTL, lg)
		companySvc = cached.NewCompanyUseCase(companySvc, qc, lg)
		courseSvc = cached.NewCourseUseCase(courseSvc, qc, lg)
	}

	if cfg.Sweeper.Enabled {
		sw := sweeper.New(certificationSvc, cfg.Sweeper.Interval, cfg.Sweeper.RunOnStart, lg, sweeper.WithRunTimeout(cfg.Sweeper.RunTimeout))
		go sw.Run(ctx)
	}

	grpcServer := server.New(cfg.Server, server.Services{
		User:          handler.NewUserGrpcHandler(userSvc),
		Company:       handler.NewCompanyGrpcHandler(companySvc),
		Course:        handler.NewCourseGrpcHandler(courseSvc),
		Worker:        handler.NewWorkerGrpcHandler(workerSvc, thresholds, clock),
		Service:       handler.NewServiceGrpcHandler(serviceSvc),
		Homologation:  handler.NewHomologationGrpcHandler(homologationSvc),
		Certification: handler.NewCertificationGrpcHandler(certificationSvc),
		Assignment:    handler.NewAssignmentGrpcHandler(assignmentSvc, thresholds, clock),
		Evaluation:    handler.NewEvaluationGrpcHandler(evaluationSvc),
		Document:      handler.NewDocumentGrpcHandler(documentSvc),
		Notification:  handler.NewNotificationGrpcHandler(notificationSvc),
		Lifecycle:     handler.NewLifecycleGrpcHandler(thresholds, clock),
		Dashboard:     handler.NewDashboardGrpcHandler(dashboardSvc),
		Report:        handler.NewReportGrpcHandler(xlsx.NewExporter(certificationSvc, clock)),
	}, lg)

	return grpcServer.Run(ctx)
}

func expiryRoles(raw []string) []user.Role {
	roles := make([]user.Role, 0, len(raw))
	for _, r := range raw {
		roles = append(roles, user.Role(r))
	}
	return roles
}
