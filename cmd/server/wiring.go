package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	gootel "go.opentelemetry.io/otel"

	"prefsync/internal/platform/config"
	"prefsync/internal/platform/httpserver"
	"prefsync/internal/platform/kafka"
	platformmetrics "prefsync/internal/platform/metrics"
	"prefsync/internal/platform/postgres"
	"prefsync/internal/platform/redis"
	"prefsync/internal/recipient/channels"
	"prefsync/internal/recipient/entity"
	"prefsync/internal/recipient/handler"
	"prefsync/internal/recipient/identity"
	"prefsync/internal/recipient/lane"
	"prefsync/internal/recipient/metrics"
	"prefsync/internal/recipient/models"
	"prefsync/internal/recipient/ports"
	"prefsync/internal/recipient/propagation"
	"prefsync/internal/recipient/service"
	"prefsync/internal/recipient/store"
	"prefsync/pkg/platform/circuit"
)

type app struct {
	router      http.Handler
	coordinator *service.Coordinator
	memoryQueue *propagation.MemoryQueue

	closers []func(ctx context.Context)
}

func (a *app) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i](ctx)
	}
}

// build selects a backend per collaborator: an empty DSN, URL or broker list
// keeps the in-memory implementation.
func build(ctx context.Context, cfg config.Config, log *slog.Logger) (*app, error) {
	a := &app{}
	reg := platformmetrics.NewRegistry()
	m := metrics.NewWithRegisterer(reg)
	tracer := gootel.Tracer("prefsync")
	checks := map[string]httpserver.Check{}

	var (
		prefs    ports.PreferenceStore = store.NewInMemory()
		lookup   ports.IdentityLookup  = identity.NewMemoryLookup()
		adapter  ports.ChannelAdapter
		queue    ports.PropagationQueue
		chanOpts = []channels.Option{channels.WithDefaultVibrate(cfg.Notifications.DefaultVibrate)}
	)

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if db != nil {
		if err := postgres.Migrate(ctx, db.Pool); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		prefs = store.NewPostgres(db.SQL)
		lookup = identity.NewPostgresLookup(db.Pool)
		checks["postgres"] = db.Health
		a.closers = append(a.closers, func(context.Context) { db.Close() })
		log.Info("using postgres preference store")
	}

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if rc != nil {
		adapter = channels.NewRedis(rc.Client, cfg.Redis.KeyPrefix, chanOpts...)
		checks["redis"] = rc.Health
		a.closers = append(a.closers, func(context.Context) { _ = rc.Close() })
		log.Info("using redis channel adapter")
	} else {
		adapter = channels.NewInMemory(chanOpts...)
	}

	kc, err := kafka.NewClient(cfg.Kafka)
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	if kc != nil {
		if err := kafka.EnsureTopic(ctx, kc, cfg.Kafka); err != nil {
			kc.Close()
			a.close(ctx)
			return nil, fmt.Errorf("ensure propagation topic: %w", err)
		}
		breaker := circuit.New("kafka",
			circuit.WithFailureThreshold(cfg.Kafka.BreakerThreshold),
			circuit.WithCooldown(cfg.Kafka.BreakerCooldown),
		)
		queue = propagation.NewKafkaQueue(kc, cfg.Kafka.Topic,
			propagation.WithKafkaLogger(log),
			propagation.WithKafkaMetrics(m),
			propagation.WithBreaker(breaker),
		)
		checks["kafka"] = func(ctx context.Context) error { return kafka.Health(ctx, kc) }
		a.closers = append(a.closers, func(ctx context.Context) {
			if err := kc.Flush(ctx); err != nil {
				log.Warn("kafka flush on shutdown failed", "error", err)
			}
			kc.Close()
		})
		log.Info("using kafka propagation queue", "topic", cfg.Kafka.Topic)
	} else {
		a.memoryQueue = propagation.NewMemoryQueue(cfg.Lanes.PropagationBuffer,
			propagation.LogHandler{Logger: log},
			propagation.WithLogger(log),
			propagation.WithMetrics(m),
		)
		queue = a.memoryQueue
	}

	dispatcher := entity.NewDispatcher(entity.WithDispatcherLogger(log))
	a.closers = append(a.closers, func(context.Context) { dispatcher.Close() })
	registry := entity.NewRegistry(prefs, dispatcher, models.Address(cfg.Notifications.LocalAddress))

	laneOpts := []lane.Option{
		lane.WithLogger(log),
		lane.WithMetrics(m),
		lane.WithTracer(tracer),
		lane.WithRetry(lane.RetryPolicy{
			MaxAttempts:     cfg.Lanes.RetryAttempts,
			InitialInterval: cfg.Lanes.RetryInitial,
			MaxInterval:     cfg.Lanes.RetryMax,
		}),
	}
	a.coordinator = service.New(registry, prefs, adapter,
		lane.NewSerial(cfg.Lanes.SerialConcurrency, laneOpts...),
		lane.NewPooled(cfg.Lanes.PoolSize, laneOpts...),
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithTracer(tracer),
		service.WithPropagationQueue(queue),
		service.WithIdentityLookup(lookup),
		service.WithDefaults(service.Defaults{
			Ringtone: cfg.Notifications.DefaultRingtone,
			Vibrate:  cfg.Notifications.DefaultVibrate,
		}),
	)

	r := chi.NewRouter()
	r.Handle("/metrics", platformmetrics.Handler(reg))
	r.Get("/healthz", httpserver.Health(checks))
	handler.New(a.coordinator, log, cfg.Server.AdminToken).Register(r)
	a.router = r
	return a, nil
}
