package app

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/mesas-api/internal/api"
	"github.com/vietanh2810/mesas-api/internal/config"
	"github.com/vietanh2810/mesas-api/internal/db"
	"github.com/vietanh2810/mesas-api/internal/logger"
	"github.com/vietanh2810/mesas-api/internal/observability/metrics"
	"github.com/vietanh2810/mesas-api/internal/repository/dao"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	database, err := openDatabase(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if conf.Schema.AutoMigrate {
		err = dao.InitTables(database, dao.SchemaOptions{
			PartyRollups: conf.Schema.PartyRollups,
			ReportPhotos: conf.Schema.ReportPhotos,
		})
		if err != nil {
			return fmt.Errorf("failed to migrate database -> %w", err)
		}
	}

	caps := dao.DetectCapabilities(database)
	zap.L().Info("schema capabilities",
		zap.Bool("party_rollups", caps.PartyRollups),
		zap.Bool("location_linkage", caps.LocationLinkage),
		zap.Bool("roster_count", caps.RosterCount),
		zap.Bool("report_photos", caps.ReportPhotos))

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(registry)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics -> %w", err)
	}

	s, err := api.NewServer(conf, database, caps, m)
	if err != nil {
		return fmt.Errorf("failed to initialize server -> %w", err)
	}

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// openDatabase prefers DATABASE_URL, then the configured backend.
func openDatabase(conf *config.AppConfig) (*gorm.DB, error) {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return db.OpenPostgresWithURL(dbURL)
	}

	if conf.Database.Type == config.DatabaseSQLite {
		zap.L().Warn("using sqlite database, not suitable for production", zap.String("path", conf.Database.SQLitePath))
		return db.OpenSQLite(conf.Database.SQLitePath)
	}

	return db.OpenPostgres(conf.Postgres)
}
