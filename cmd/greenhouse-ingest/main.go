package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	app "github.com/diwise/iot-greenhouse-ingest/internal/pkg/application"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/events"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/heartbeat"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/ingestion"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/nodeauth"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/submission"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/application/watchdog"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/cache"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/logging"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/metrics"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/repositories/database"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/router"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/infrastructure/tracing"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/presentation/api"
	"github.com/diwise/iot-greenhouse-ingest/internal/pkg/presentation/coap"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const serviceName string = "greenhouse-ingest"

func main() {
	serviceVersion := version()

	ctx, logger := logging.NewLogger(context.Background(), serviceName, serviceVersion, env.GetVariableOrDefault(zerolog.Nop(), "LOG_LEVEL", "info"))
	logger.Info().Msg("starting up ...")

	flags := parseExternalConfig(logger, defaultFlags(), os.Args[1:])

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flags.enabled(enableTracing) {
		cleanup, err := tracing.Init(ctx, logger, serviceName, serviceVersion)
		exitIf(err, logger, "failed to init tracing")
		defer cleanup()
	}

	cfgFile, err := os.Open(flags[configurationFile])
	exitIf(err, logger, "could not open configuration file")

	cfg, err := app.LoadConfiguration(cfgFile)
	cfgFile.Close()
	exitIf(err, logger, "could not load configuration")

	var sensors io.Reader
	if f, err := os.Open(flags[sensorsFile]); err == nil {
		defer f.Close()
		sensors = f
	} else {
		logger.Warn().Err(err).Str("file", flags[sensorsFile]).Msg("no sensors will be seeded")
	}

	repo, err := newRepository(logger, flags)
	exitIf(err, logger, "could not create or connect to database")

	var messenger messaging.MsgContext
	if flags.enabled(enableMessaging) {
		messenger, err = messaging.Initialize(messaging.LoadConfiguration(serviceName, logger))
		exitIf(err, logger, "failed to init messenger")
		defer messenger.Close()
	}

	svc, err := initialize(ctx, flags, cfg, repo, sensors, messenger)
	exitIf(err, logger, "failed to initialize service")

	err = svc.start(ctx)
	exitIf(err, logger, "failed to start service")

	<-ctx.Done()

	logger.Info().Msg("shutting down ...")
	svc.stop()
}

type service struct {
	coap     *coap.Server
	watchdog watchdog.Watchdog
	cache    cache.Cache

	public  *http.Server
	control *http.Server
}

func initialize(ctx context.Context, flags flagMap, cfg *app.Config, repo database.GreenhouseRepository, sensors io.Reader, messenger messaging.MsgContext) (*service, error) {
	log := logging.GetLoggerFromContext(ctx)

	err := repo.SeedNodes(ctx, cfg.RegisteredNodes())
	if err != nil {
		return nil, fmt.Errorf("failed to seed nodes: %w", err)
	}

	if sensors != nil {
		err = repo.SeedSensors(ctx, sensors)
		if err != nil {
			return nil, fmt.Errorf("failed to seed sensors: %w", err)
		}
	}

	apiKeys, err := cache.NewInMemory(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create api key cache: %w", err)
	}

	m := metrics.New()

	sender, err := events.New(&cfg.Config)
	if err != nil {
		apiKeys.Close()
		return nil, fmt.Errorf("failed to create event sender: %w", err)
	}

	var publisher ingestion.EventPublisher
	opts := []ingestion.Option{ingestion.WithEventSender(sender), ingestion.WithMetrics(m)}

	if messenger != nil {
		publisher = messenger
		opts = append(opts, ingestion.WithPublisher(publisher))
	}

	pipeline := ingestion.New(repo, opts...)
	auth := nodeauth.New(repo, apiKeys, flags.duration(apiKeyCacheTTL, time.Second), m)
	rl := logging.NewRateLimitedLogger(log, flags.duration(logRateInterval, time.Second))
	handler := submission.NewHandler(auth, pipeline, rl, m)

	hb := heartbeat.New(repo, publisher, sender, m)
	if messenger != nil {
		messenger.RegisterTopicMessageHandler(heartbeat.TopicName, heartbeat.NewTopicMessageHandler(hb))
	}

	timeout := flags.duration(requestTimeout, time.Second)

	svc := &service{
		cache: apiKeys,
		watchdog: watchdog.New(repo, publisher, sender, m, watchdog.Config{
			OfflineThreshold: flags.duration(nodeOfflineThreshold, time.Minute),
		}),
		coap: coap.NewServer(coap.Config{
			Host:                     flags[coapHost],
			Port:                     flags.port(coapPort),
			RequestTimeout:           timeout,
			SuppressProtocolWarnings: flags.enabled(suppressProtocolWarnings),
		}, handler, rl, m),
	}

	r := api.RegisterHandlers(log, router.New(serviceName), api.Config{RequestTimeout: timeout}, handler, auth, hb, repo)

	svc.public = &http.Server{
		Addr:    net.JoinHostPort(flags[listenAddress], flags[servicePort]),
		Handler: r,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	svc.control = &http.Server{
		Addr:    net.JoinHostPort(flags[listenAddress], flags[controlPort]),
		Handler: setupControlRouter(m),
	}

	return svc, nil
}

func (s *service) start(ctx context.Context) error {
	log := logging.GetLoggerFromContext(ctx)

	s.watchdog.Start(ctx)

	if err := s.coap.Start(ctx); err != nil {
		return err
	}

	for _, srv := range []*http.Server{s.control, s.public} {
		go func(srv *http.Server) {
			log.Info().Str("addr", srv.Addr).Msg("starting to listen for connections")

			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Str("addr", srv.Addr).Msg("failed to start http server")
			}
		}(srv)
	}

	return nil
}

func (s *service) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.coap.Stop()
	s.public.Shutdown(ctx)
	s.control.Shutdown(ctx)
	s.watchdog.Stop()
	s.cache.Close()
}

func setupControlRouter(m *metrics.Metrics) *chi.Mux {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	return r
}

func newRepository(log zerolog.Logger, flags flagMap) (database.GreenhouseRepository, error) {
	if flags.enabled(devmode) {
		log.Warn().Msg("running in devmode with an in-memory database")
		return database.New(database.NewSQLiteConnector(log))
	}

	return database.New(database.NewPostgreSQLConnector(log, database.LoadConfigFromEnv(log)))
}

func exitIf(err error, logger zerolog.Logger, msg string) {
	if err != nil {
		logger.Fatal().Err(err).Msg(msg)
	}
}

func version() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	buildSettings := buildInfo.Settings
	infoMap := map[string]string{}
	for _, s := range buildSettings {
		infoMap[s.Key] = s.Value
	}

	sha := infoMap["vcs.revision"]
	if infoMap["vcs.modified"] == "true" {
		sha += "+"
	}

	return sha
}
