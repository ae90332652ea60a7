// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/nextrip/core/internal/auth"
	"github.com/nextrip/core/internal/db"
	"github.com/nextrip/core/internal/db/jsondb"
	"github.com/nextrip/core/internal/db/kvdb"
	"github.com/nextrip/core/internal/db/redisdb"
	"github.com/nextrip/core/internal/portal"
	templates "github.com/nextrip/core/internal/portal/tmp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("no .env file loaded:", err)
	}

	var (
		addr        = flag.String("addr", "0.0.0.0:8081", "default server address")
		dbStr       = flag.String("db", "jsondb://testdata", "database connection string")
		otlpAddr    = flag.String("otlp-grpc", "", "default otlp/gRPC address, by default disabled. Example value: localhost:4317")
		logLevelArg = flag.String("log-level", "INFO", "log level")
	)
	flag.Parse()
	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(*logLevelArg))
	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(jsonHandler)
	if err != nil {
		logger.Error("unable to parse log level", "level-input", *logLevelArg, "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)
	logger.Info("log level set to", "log level", *logLevelArg)
	logger.Info("start and listen", "address", *addr)

	setupOTLP(*otlpAddr, logger)

	userStore := newUserStore(*dbStr, logger)

	secret := "nextrip-demo-secret"
	if v, ok := os.LookupEnv("NEXTRIP_JWT_SECRET"); ok {
		secret = v
	}
	authService := auth.NewService(userStore, []byte(secret), logger.WithGroup("auth"))

	templateHandler := templates.NewTemplateHandler()

	portal := portal.NewPortal(logger, *addr, *templateHandler, authService)
	portal.ServeHTTP()
}

func newUserStore(dbStr string, logger *slog.Logger) db.UserStore {
	u, err := url.Parse(dbStr)
	if err != nil {
		logger.Error("unable to parse db connection string", "error", err)
		os.Exit(1)
	}

	switch u.Scheme {
	case "kvdb":
		bdb, err := bolt.Open(u.Host+u.Path, 0600, nil)
		if err != nil {
			logger.Error("could not open bolt database", "error", err)
			os.Exit(1)
		}
		store, err := kvdb.NewUserStore(bdb)
		if err != nil {
			logger.Error("could not initialize user bucket", "error", err)
			os.Exit(1)
		}
		return store
	case "jsondb":
		store, err := jsondb.NewUserStore(u.Host + u.Path + "/users.json")
		if err != nil {
			logger.Error("could not initialize user store", "error", err)
			os.Exit(1)
		}
		return store
	case "redis":
		opts, err := redis.ParseURL(dbStr)
		if err != nil {
			logger.Error("unable to parse redis URL", "error", err)
			os.Exit(1)
		}
		return redisdb.NewUserStore(redis.NewClient(opts))
	default:
		logger.Error("Unknown storage backend", "type", u.Scheme)
		os.Exit(1)
		return nil
	}
}

func setupOTLP(otlpAddr string, logger *slog.Logger) {
	if otlpAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		grpcOptions := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithBlock()}
		conn, err := grpc.DialContext(ctx, otlpAddr, grpcOptions...)
		if err != nil {
			logger.Error("failed to create gRPC connection to collector", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		// Set up a trace exporter
		otelExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
		if err != nil {
			logger.Error("failed to create trace exporter", "error", err)
			os.Exit(1)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(otelExporter))
		otel.SetTracerProvider(tp)
	}
}
