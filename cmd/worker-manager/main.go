// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"accelerator-workers/internal/common/camunda"
	"accelerator-workers/internal/common/config"
	"accelerator-workers/internal/common/database"
	"accelerator-workers/internal/common/logger"
	"accelerator-workers/internal/common/observability"
	"accelerator-workers/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)

	obs, err := observability.New(cfg.Observability.ServiceName, cfg.Observability.TraceSampleRatio)
	if err != nil {
		zapLog.Warn("observability disabled", zap.Error(err))
	}

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = camunda.NewClient(ctx, camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	svc, err := buildServices(ctx, cfg, pg, rdb, log)
	if err != nil {
		zapLog.Fatal("service wiring failed", zap.Error(err))
	}

	// --- Register workers ---
	regs := registrations(cfg, svc, obs, log)
	checkRegistry(cfg.Registry.Path, regs, zapLog)

	var jobWorkers []worker.JobWorker
	for _, r := range regs {
		jw := camunda.StartWorker(zeebeClient.Client, r.taskType, config.GetWorkerConfig(cfg, r.taskType), r.handle, zapLog)
		if jw != nil {
			jobWorkers = append(jobWorkers, jw)
		}
	}
	zapLog.Info("workers registered",
		zap.Int("registered", len(regs)),
		zap.Int("started", len(jobWorkers)),
	)

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{"postgres": "ok", "redis": "ok"}
		code := http.StatusOK
		if err := pg.Ping(r.Context()); err != nil {
			checks["postgres"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		if err := rdb.Ping(r.Context()); err != nil {
			checks["redis"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		status := "ready"
		if code != http.StatusOK {
			status = "not_ready"
		}
		checks["status"] = status
		checks["time"] = time.Now().Format(time.RFC3339)
		writeStatus(w, code, checks)
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: cfg.App.HTTPAddress, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.App.HTTPAddress))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, jw := range jobWorkers {
		jw.Close()
	}
	for _, jw := range jobWorkers {
		jw.AwaitClose()
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}
	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error flushing telemetry", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

// checkRegistry warns about job types missing from the activity registry.
func checkRegistry(path string, regs []registration, log *zap.Logger) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("activity registry not loaded", zap.String("path", path), zap.Error(err))
		return
	}
	if err := reg.Validate(); err != nil {
		log.Warn("activity registry invalid", zap.String("path", path), zap.Error(err))
	}

	taskTypes := make([]string, 0, len(regs))
	for _, r := range regs {
		taskTypes = append(taskTypes, r.taskType)
	}
	for _, tt := range reg.Unregistered(taskTypes) {
		log.Warn("job type missing from activity registry", zap.String("taskType", tt))
	}
}
