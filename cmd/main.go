package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"sgf_engine/internal/adapters"
	"sgf_engine/internal/bootstrap"
	recordDelivery "sgf_engine/internal/delivery/record"
	rpcDelivery "sgf_engine/internal/delivery/rpc"
	ownMiddleware "sgf_engine/internal/middleware"
	"sgf_engine/internal/repository"
	recorduc "sgf_engine/internal/usecase/record"
)

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:           "sgfd",
		Short:         "Read, check and replay SGF game records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", ".env", "Path to the .env configuration file")

	rootCmd.AddCommand(
		newServeCmd(&cfgPath),
		newCheckCmd(&cfgPath),
		newGobanCmd(&cfgPath),
		newNormalizeCmd(&cfgPath),
		newImportCmd(&cfgPath),
		newWatchCmd(&cfgPath),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(cfgPath string) (*bootstrap.Config, *zap.SugaredLogger, error) {
	cfg, err := bootstrap.Setup(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("setup configuration: %w", err)
	}
	return cfg, bootstrap.NewLogger(cfg.LogLevel), nil
}

func newServeCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP and gRPC APIs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(*cfgPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go handleShutdown(cancel, logger)

			databaseAdapters, err := initDatabaseAdapters(ctx, logger, cfg)
			if err != nil {
				return err
			}
			defer databaseAdapters.mongoAdapter.Close(context.Background())
			defer databaseAdapters.redisAdapter.Close(context.Background())

			recordUC, err := newRecordUseCase(cfg, logger, databaseAdapters)
			if err != nil {
				return err
			}
			return serve(ctx, cfg, logger, recordUC)
		},
	}
}

func serve(ctx context.Context, cfg *bootstrap.Config, logger *zap.SugaredLogger, recordUC *recorduc.RecordUseCase) error {
	r := chi.NewRouter()
	Router(r, cfg, recordDelivery.NewRecordHandler(logger, recordUC))

	httpServer := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpc.NewServer()
	rpcDelivery.RegisterSgfServiceServer(grpcServer, rpcDelivery.NewSgfRPC(logger, recordUC))

	lis, err := net.Listen("tcp", ":"+cfg.GrpcPort)
	if err != nil {
		return fmt.Errorf("listen grpc port %s: %w", cfg.GrpcPort, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("HTTP server is running on port %s", cfg.ServerPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		logger.Infof("gRPC server is running on port %s", cfg.GrpcPort)
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func Router(r *chi.Mux, cfg *bootstrap.Config, records *recordDelivery.RecordHandler) {
	if cfg.IsLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(ownMiddleware.Metrics)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Group(func(r chi.Router) {
		r.Use(ownMiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Handler)
		r.Use(ownMiddleware.MaxBytes(int64(cfg.MaxSgfBytes) + 4096))
		records.Routes(r)
	})
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) (*dataBaseAdapters, error) {
	mongoAdapter := adapters.NewAdapterMongo(cfg, log)
	if err := mongoAdapter.Init(ctx); err != nil {
		return nil, fmt.Errorf("init MongoDB: %w", err)
	}

	redisAdapter := adapters.NewAdapterRedis(cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		_ = mongoAdapter.Close(ctx)
		return nil, fmt.Errorf("init Redis: %w", err)
	}

	log.Info("database adapters initialized")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}, nil
}

func newRecordUseCase(cfg *bootstrap.Config, log *zap.SugaredLogger, db *dataBaseAdapters) (*recorduc.RecordUseCase, error) {
	files, err := repository.NewFileStorage(log, cfg.ImportPattern)
	if err != nil {
		return nil, err
	}

	var cache recorduc.GobanCache
	if db.redisAdapter != nil {
		cache = repository.NewGobanCache(db.redisAdapter.GetClient(), cfg.CacheTTL)
	}

	return recorduc.NewRecordUseCase(
		repository.NewRecordRepository(log, db.mongoAdapter.Database, cfg.PageLimitRecords),
		cache,
		files,
		log,
		cfg.MaxSgfBytes,
	), nil
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
}
