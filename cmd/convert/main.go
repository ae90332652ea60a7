// Copyright (C) 2024 the nextrip maintainers
// See root-dir/LICENSE for more information

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	bolt "go.etcd.io/bbolt"

	"github.com/nextrip/core/internal/db"
	"github.com/nextrip/core/internal/db/jsondb"
	"github.com/nextrip/core/internal/db/kvdb"
)

func main() {
	var (
		inputPath  = flag.String("input-path", "testdata", "jsondb storage folder to read from")
		outputPath = flag.String("output-path", "output.db", "bolt database file to write into")
	)
	flag.Parse()

	jsonHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{})
	logger := slog.New(jsonHandler)

	jdb := newJsonDB(logger, *inputPath)
	kdb := newKVDB(logger, *outputPath)
	logger.Info("start converting")
	into(kdb, jdb)
	logger.Info("finished converting")
}

type database interface {
	db.TripStore
	db.VoyageStore
	db.UserStore
	Close() error
}

type dbWrapper struct {
	db.TripStore
	db.VoyageStore
	db.UserStore

	closeFN func() error
}

func (d *dbWrapper) Close() error {
	return d.closeFN()
}

func into(dst, src database) {
	defer src.Close()
	defer dst.Close()
	ctx := context.Background()

	ids, err := src.ListTripIDs(ctx)
	if err != nil {
		panic(err)
	}
	for _, id := range ids {
		record, err := src.GetTripByID(ctx, id)
		if err != nil {
			panic(err)
		}
		if err := dst.PutTrip(ctx, record); err != nil {
			panic(err)
		}
		// Voyages are a per-trip cache, a trip without one is fine.
		voyage, err := src.GetVoyageByTripID(ctx, id)
		if err != nil {
			continue
		}
		if err := dst.PutVoyage(ctx, id, voyage); err != nil {
			panic(err)
		}
	}

	users, err := src.ListUsers(ctx)
	if err != nil {
		panic(err)
	}
	for _, u := range users {
		if _, err := dst.CreateUser(ctx, u); err != nil {
			panic(err)
		}
	}
}

func newKVDB(logger *slog.Logger, path string) database {
	bdb, err := bolt.Open(path, 0600, nil)
	if err != nil {
		logger.Error("could not open bolt database", "error", err)
		os.Exit(1)
	}

	tripStore, err := kvdb.NewTripStore(bdb)
	if err != nil {
		logger.Error("could not initialize trip bucket", "error", err)
		os.Exit(1)
	}

	voyageStore, err := kvdb.NewVoyageStore(bdb)
	if err != nil {
		logger.Error("could not initialize voyage bucket", "error", err)
		os.Exit(1)
	}

	userStore, err := kvdb.NewUserStore(bdb)
	if err != nil {
		logger.Error("could not initialize user bucket", "error", err)
		os.Exit(1)
	}

	return &dbWrapper{
		TripStore:   tripStore,
		VoyageStore: voyageStore,
		UserStore:   userStore,
		closeFN:     bdb.Close,
	}
}

func newJsonDB(logger *slog.Logger, path string) database {
	logger.Info("jsondb storage folder", "path", path)
	tripStore, err := jsondb.NewTripStore(path + "/trips.json")
	if err != nil {
		logger.Error("could not initialize trip store", "error", err)
		os.Exit(1)
	}
	voyageStore, err := jsondb.NewVoyageStore(path + "/voyages.json")
	if err != nil {
		logger.Error("could not initialize voyage store", "error", err)
		os.Exit(1)
	}
	userStore, err := jsondb.NewUserStore(path + "/users.json")
	if err != nil {
		logger.Error("could not initialize user store", "error", err)
		os.Exit(1)
	}
	return &dbWrapper{
		TripStore:   tripStore,
		VoyageStore: voyageStore,
		UserStore:   userStore,
		closeFN:     func() error { return nil },
	}
}
