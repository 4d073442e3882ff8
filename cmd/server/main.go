package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hmcts/sscs-dwp/internal/bulkprint"
	"github.com/hmcts/sscs-dwp/internal/callback"
	callbackhandler "github.com/hmcts/sscs-dwp/internal/callback/handler"
	"github.com/hmcts/sscs-dwp/internal/ccd"
	"github.com/hmcts/sscs-dwp/internal/docmosis"
	"github.com/hmcts/sscs-dwp/internal/docstore"
	"github.com/hmcts/sscs-dwp/internal/evidence"
	"github.com/hmcts/sscs-dwp/internal/evidence/metrics"
	"github.com/hmcts/sscs-dwp/internal/idam"
	"github.com/hmcts/sscs-dwp/internal/platform/config"
	"github.com/hmcts/sscs-dwp/internal/platform/httpserver"
	"github.com/hmcts/sscs-dwp/internal/platform/logger"
	"github.com/hmcts/sscs-dwp/internal/platform/middleware"
	platformredis "github.com/hmcts/sscs-dwp/internal/platform/redis"
)

// main wires the distribution engine's dependencies and keeps the server
// lifecycle small. Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(slog.LevelInfo)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	templates, err := evidence.LoadTemplateRegistry(cfg.TemplatePath)
	if err != nil {
		return err
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}

	idamOpts := []idam.Option{idam.WithLogger(log)}
	if redisClient != nil {
		idamOpts = append(idamOpts, idam.WithCache(idam.NewRedisCache(redisClient)))
	}
	tokens := idam.NewService(
		idam.NewAPIClient(cfg.Idam.APIURL, cfg.Idam.ClientID, cfg.Idam.ClientSecret, cfg.Idam.Username, cfg.Idam.Password),
		idam.NewS2SClient(cfg.Idam.S2SURL, cfg.Idam.Microservice),
		cfg.Idam.UserID,
		idamOpts...,
	)

	printer := bulkprint.NewService(
		bulkprint.NewHTTPClient(cfg.SendLetter, tokens),
		cfg.SendLetter.Enabled,
		bulkprint.WithLogger(log),
	)
	distributor := evidence.NewService(
		templates,
		evidence.NewCoverLetterService(docmosis.NewHTTPGenerator(cfg.Docmosis), docmosis.NewPlaceholderService()),
		evidence.NewDocumentService(docstore.NewHTTPFetcher(tokens)),
		printer,
		evidence.WithLogger(log),
		evidence.WithMetrics(metrics.New()),
	)

	updater := ccd.NewHTTPClient(cfg.CoreCaseData, log)
	dispatcher := callback.NewDispatcher(log,
		callback.NewIssueFurtherEvidenceHandler(distributor, updater, tokens, log),
		callback.NewReissueFurtherEvidenceHandler(distributor, updater, tokens, log),
		callback.NewDwpUploadResponseHandler(updater, tokens, log),
	)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.Timeout(90 * time.Second))
	callbackhandler.New(dispatcher, log).Register(router)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	router.Get("/health", healthHandler(redisClient))

	srv := httpserver.New(cfg.Server.Addr, router)

	log.Info("starting evidence share", "addr", cfg.Server.Addr, "print_enabled", cfg.SendLetter.Enabled)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// healthHandler reports liveness, including the token cache when one is
// configured.
func healthHandler(redisClient *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"DOWN"}`))
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"UP"}`))
	}
}
