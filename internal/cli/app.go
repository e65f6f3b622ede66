package cli

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/ice-routes/internal/audit"
	"github.com/BruksfildServices01/ice-routes/internal/cache"
	"github.com/BruksfildServices01/ice-routes/internal/config"
	dbpkg "github.com/BruksfildServices01/ice-routes/internal/db"
	domainRollover "github.com/BruksfildServices01/ice-routes/internal/domain/rollover"
	infraRepo "github.com/BruksfildServices01/ice-routes/internal/infra/repository"
	"github.com/BruksfildServices01/ice-routes/internal/logger"
	"github.com/BruksfildServices01/ice-routes/internal/timezone"
	ucRollover "github.com/BruksfildServices01/ice-routes/internal/usecase/rollover"
)

// app reúne as dependências comuns aos comandos.
type app struct {
	cfg         *config.Config
	db          *gorm.DB
	cache       *cache.RedisCache
	auditLogger *audit.Logger
	audit       *audit.Dispatcher
	rollover    *ucRollover.RunDaily
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if debug {
		level = "debug"
	}
	logger.Setup(level, cfg.IsDevelopment())

	if !timezone.IsValid(cfg.Business.Timezone) {
		log.Warn().
			Str("timezone", cfg.Business.Timezone).
			Str("fallback", timezone.DefaultTimezone).
			Msg("invalid business timezone")
	}
	timezone.Configure(cfg.Business.Timezone)

	return cfg, nil
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, err
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis cache, continuing without caching")
		redisCache = nil
	}

	auditLogger := audit.New(db)
	dispatcher := audit.NewDispatcher(auditLogger)

	rollover := ucRollover.NewRunDaily(
		infraRepo.NewRolloverGormRepository(db),
		redisCache,
		dispatcher,
		cache.RolloverKey(domainRollover.JobName),
	)

	return &app{
		cfg:         cfg,
		db:          db,
		cache:       redisCache,
		auditLogger: auditLogger,
		audit:       dispatcher,
		rollover:    rollover,
	}, nil
}

// close drena a fila de auditoria e fecha as conexões.
func (a *app) close() {
	a.audit.Close()

	if err := a.cache.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close")
	}

	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
