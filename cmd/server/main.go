// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"net/http"
	"net/url"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/nextrip/core/internal/db"
	"github.com/nextrip/core/internal/db/jsondb"
	"github.com/nextrip/core/internal/db/kvdb"
	"github.com/nextrip/core/internal/db/redisdb"
	"github.com/nextrip/core/internal/onboarding"
	"github.com/nextrip/core/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("no .env file loaded:", err)
	}

	backendDefault := "http://localhost:8000"
	if v, ok := os.LookupEnv("BACKEND_URL"); ok {
		backendDefault = v
	}

	var (
		serviceName = flag.String("service-name", "nextrip", "otel service name")
		addr        = flag.String("addr", "0.0.0.0:8080", "default server address")
		dbStr       = flag.String("db", "kvdb://testdata/nextrip.db", "database connection string")
		backendURL  = flag.String("backend-url", backendDefault, "onboarding/orchestrateur backend base URL")
		otlpAddr    = flag.String("otlp-grpc", "", "default otlp/gRPC address, by default disabled. Example value: localhost:4317")
		logLevelArg = flag.String("log-level", "INFO", "log level")
		staticDir   = flag.String("static-dir", "", "path to static directory")
	)
	flag.Parse()
	fmt.Println("logLevel", *logLevelArg)
	var logLevel slog.Level
	err := logLevel.UnmarshalText([]byte(*logLevelArg))
	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(jsonHandler)
	if err != nil {
		logger.Error("unable to parse log level", "level-input", *logLevelArg, "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger)
	logger.Info("start and listen", "address", *addr)
	logger.Info("otlp/gRPC", "address", *otlpAddr, "service", *serviceName)
	logger.Info("backend", "url", *backendURL)
	logger.Info("static-dir", "directory", *staticDir)

	if *otlpAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		grpcOptions := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithBlock()}
		conn, err := grpc.DialContext(ctx, *otlpAddr, grpcOptions...)
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

	var (
		tripStore   db.TripStore
		voyageStore db.VoyageStore
	)

	u, err := url.Parse(*dbStr)
	if err != nil {
		logger.Error("unable to parse db connection string", "error", err)
		os.Exit(1)
	}

	switch u.Scheme {
	case "kvdb":
		path := u.Host + u.Path
		bdb, err := bolt.Open(path, 0600, nil)
		if err != nil {
			logger.Error("could not open bolt database", "error", err)
			os.Exit(1)
		}
		defer bdb.Close()

		tripStore, err = kvdb.NewTripStore(bdb)
		if err != nil {
			logger.Error("could not initialize trip bucket", "error", err)
			os.Exit(1)
		}
		voyageStore, err = kvdb.NewVoyageStore(bdb)
		if err != nil {
			logger.Error("could not initialize voyage bucket", "error", err)
			os.Exit(1)
		}
	case "jsondb":
		path := u.Host + u.Path
		tripStore, err = jsondb.NewTripStore(path + "/trips.json")
		if err != nil {
			logger.Error("could not initialize trip store", "error", err)
			os.Exit(1)
		}
		voyageStore, err = jsondb.NewVoyageStore(path + "/voyages.json")
		if err != nil {
			logger.Error("could not initialize voyage store", "error", err)
			os.Exit(1)
		}
	case "redis":
		opts, err := redis.ParseURL(*dbStr)
		if err != nil {
			logger.Error("unable to parse redis URL", "error", err)
			os.Exit(1)
		}
		client := redis.NewClient(opts)
		defer client.Close()

		tripStore = redisdb.NewTripStore(client)
		voyageStore = redisdb.NewVoyageStore(client)
	default:
		logger.Error("Unknown storage backend", "type", u.Scheme)
		os.Exit(1)
	}

	backend := onboarding.NewClient(*backendURL, tripStore, logger.WithGroup("onboarding"))

	srv := &http.Server{
		Addr: *addr,
		Handler: server.NewServer(
			*serviceName,
			*staticDir,
			backend,
			tripStore,
			voyageStore,
		),
	}

	if err := srv.ListenAndServe(); err != nil {
		logger.Error("error during listen and serve", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown")
}
