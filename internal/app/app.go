// Package app wires repositories, usecases and HTTP adapters into one echo
// server.
package app

import (
	"context"
	"time"

	httpadp "loan-ledger/internal/adapter/http"
	"loan-ledger/internal/adapter/middleware"
	repo "loan-ledger/internal/adapter/repository/mysql"
	"loan-ledger/internal/config"
	"loan-ledger/internal/infrastructure/cache"
	"loan-ledger/internal/metrics"
	"loan-ledger/internal/usecase/auth"
	loanuc "loan-ledger/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the opened backing stores. Mailer and Registry may be nil.
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Registry *prometheus.Registry
	Mailer   auth.Mailer
}

func NewServer(cfg *config.Config, d Deps) *echo.Echo {
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}
	m := metrics.New(d.Registry)

	records := repo.NewRecordRepository(d.DB)
	users := repo.NewUserRepository(d.DB)
	uow := repo.NewGormUoW(d.DB)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL())
	resets := cache.NewResetStore(d.Redis, cfg.ResetTTL())
	authUC := auth.NewUsecase(users, tokens, resets, d.Mailer, m)
	loanUC := loanuc.NewUsecase(records, uow, m)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	httpadp.RegisterRoutes(e, httpadp.Routes{
		Health:      httpadp.NewHandler(checks(d)),
		Clients:     httpadp.NewClientHandler(loanUC),
		Auth:        httpadp.NewAuthHandler(authUC),
		Metrics:     promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}),
		RequireAuth: middleware.RequireBearer(authUC.OperatorID),
		Idempotency: middleware.IdempotencyMiddleware(d.Redis, time.Duration(cfg.IdempTTLSecs)*time.Second),
	})
	return e
}

func checks(d Deps) map[string]httpadp.Pinger {
	return map[string]httpadp.Pinger{
		"mysql": func(ctx context.Context) error {
			sqlDB, err := d.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error { return d.Redis.Ping(ctx).Err() },
	}
}
