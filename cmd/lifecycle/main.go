package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"lifecycle/internal/config"
	"lifecycle/internal/env"
	"lifecycle/internal/infrastructure/repo"
	"lifecycle/internal/infrastructure/verifycode"
	"lifecycle/internal/logger"
	"lifecycle/internal/metrics"
	"lifecycle/internal/server"
	"lifecycle/internal/usecase"
)

func main() {
	env.Load(".env", ".env.local")
	envDefaults := config.EnvDefaults()

	configPath := flag.String("config", os.Getenv("LIFECYCLE_CONFIG"), "path to a YAML config file")
	envName := flag.String("env", envDefaults.Env, "")
	port := flag.Int("port", envDefaults.Port, "")
	logJSON := flag.Bool("log-json", envDefaults.LogJSON, "")
	logLevel := flag.String("log-level", envDefaults.LogLevel, "")
	exposeCodes := flag.Bool("expose-codes", envDefaults.ExposeCodes, "return verification codes in API responses")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		stderrLog := zerolog.New(os.Stderr)
		stderrLog.Fatal().Err(err).Msg("load config")
	}
	// Explicit flags win over file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "env":
			cfg.Env = *envName
		case "port":
			cfg.Port = *port
		case "log-json":
			cfg.LogJSON = *logJSON
		case "log-level":
			cfg.LogLevel = *logLevel
		case "expose-codes":
			cfg.ExposeCodes = *exposeCodes
		}
	})
	if err := cfg.Validate(); err != nil {
		stderrLog := zerolog.New(os.Stderr)
		stderrLog.Fatal().Err(err).Msg("invalid config")
	}

	log := logger.New(cfg)
	log.Info().Interface("config", cfg).Msg("starting")

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var codes usecase.CodeIssuer = verifycode.NewFixed(cfg.FixedCode)
	if cfg.CodeSecret != "" {
		codes = verifycode.NewSigner(cfg.CodeSecret, cfg.CodeTTL)
	} else {
		log.Warn().Msg("no code secret configured, every address shares the fixed verification code")
	}

	orders := usecase.NewOrderService(repo.NewMemoryOrderRepo(), log.With().Str("component", "orders").Logger(), m)
	emails := &usecase.EmailService{
		Repo:    repo.NewMemoryEmailRepo(),
		Codes:   codes,
		Log:     log.With().Str("component", "emails").Logger(),
		Metrics: m,
	}
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           server.New(cfg, orders, emails, log, reg).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("shutdown complete")
}
