// Command freightrouted runs the freight route optimization engine as an
// HTTP service: it wires the Mongo graph source, Redis constraint source,
// Postgres audit store, and the Gin JSON boundary around application.Engine.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wyfcoding/freightroute/internal/freight/application"
	"github.com/wyfcoding/freightroute/internal/freight/infrastructure/constraintsource"
	"github.com/wyfcoding/freightroute/internal/freight/infrastructure/graphsource"
	freightpersistence "github.com/wyfcoding/freightroute/internal/freight/infrastructure/persistence"
	routinghttp "github.com/wyfcoding/freightroute/internal/freight/interfaces/http"
	"github.com/wyfcoding/freightroute/internal/platform/config"
	"github.com/wyfcoding/freightroute/internal/platform/logging"
	"github.com/wyfcoding/freightroute/internal/platform/metrics"
)

func main() {
	cfg, err := config.Load("freightrouted", "./configs", ".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	mongoCtx, mongoCancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoClient, err := mongo.Connect(mongoCtx, options.Client().ApplyURI(cfg.MongoURI))
	mongoCancel()
	if err != nil {
		logger.Error("mongo connect failed", "error", err)
		os.Exit(1)
	}
	defer mongoClient.Disconnect(context.Background())

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	defer redisClient.Close()

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		logger.Error("postgres connect failed", "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&freightpersistence.RouteOptimizationAudit{}); err != nil {
		logger.Error("audit migration failed", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	graphSrc := graphsource.New(mongoClient.Database(cfg.MongoDB))
	constraintSrc := constraintsource.New(redisClient)
	audit := freightpersistence.NewAuditRepository(db)

	engine := application.NewEngine(graphSrc, constraintSrc, audit, logger, m,
		cfg.MaterializeWorkers, cfg.DefaultMaxRoutes, cfg.DefaultMaxSegments)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go engine.RunReloadLoop(ctx, cfg.ReloadInterval)

	router := gin.Default()
	handler := routinghttp.NewHandler(engine, logger)
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
}
