package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/config"
	"github.com/ogurasousui/mining-personnel-grpc/internal/platform/logger"
	"go.uber.org/zap"
)

const usage = `usage: migrate [-config path] [-dir path] <action> [arg]

actions:
  up           apply all pending migrations (default)
  down         revert all migrations
  steps N      apply (N > 0) or revert (N < 0) N migrations
  force V      mark version V as applied and clear the dirty flag
  version      print the current schema version
  drop         drop every table in the database`

func main() {
	configPath := flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	migrationsDir := flag.String("dir", "assets/migrations", "directory containing migration files")
	flag.Usage = func() { fmt.Fprintln(flag.CommandLine.Output(), usage) }
	flag.Parse()

	cfg, err := config.Load(effectiveConfigPath(*configPath))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	action, arg := "up", ""
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}
	if flag.NArg() > 1 {
		arg = flag.Arg(1)
	}

	lg = lg.With(zap.String("action", action), zap.String("database", cfg.Database.Name))
	if err := run(lg, action, arg, *migrationsDir, cfg.Database.DSN()); err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}
}

func effectiveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "assets/local.yaml"
}

func run(lg *zap.Logger, action, arg, dir, dsn string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve path for %s: %w", dir, err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absDir), dsn)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()
	m.Log = migrateLogger{lg.Sugar()}

	switch action {
	case "up":
		err = ignoreNoChange(m.Up())
	case "down":
		err = ignoreNoChange(m.Down())
	case "steps":
		n, convErr := strconv.Atoi(arg)
		if convErr != nil || n == 0 {
			return fmt.Errorf("steps requires a non-zero integer, got %q", arg)
		}
		err = ignoreNoChange(m.Steps(n))
	case "force":
		v, convErr := strconv.Atoi(arg)
		if convErr != nil {
			return fmt.Errorf("force requires a version number, got %q", arg)
		}
		err = m.Force(v)
	case "drop":
		if err := m.Drop(); err != nil {
			return err
		}
		lg.Info("database dropped")
		return nil
	case "version":
	default:
		return fmt.Errorf("unsupported action %q", action)
	}
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		lg.Info("no migration applied")
	case err != nil:
		return err
	default:
		lg.Info("migration completed", zap.Uint("version", version), zap.Bool("dirty", dirty))
	}
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// migrateLogger は migrate.Logger を zap に接続します。
type migrateLogger struct {
	s *zap.SugaredLogger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.s.Infof(format, v...)
}

func (l migrateLogger) Verbose() bool {
	return false
}
