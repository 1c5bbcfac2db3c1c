package main

import (
	"PlanPhotos/config"
	"PlanPhotos/internal/router"
	"PlanPhotos/internal/storage"
	"PlanPhotos/scripts"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

// openStore picks the upload store named by cfg.StorageDriver.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, io.Closer, error) {
	switch cfg.StorageDriver {
	case "local":
		store, err := storage.NewLocal(cfg.StorageDir)
		return store, io.NopCloser(nil), err
	case "gcs":
		store, err := storage.NewGCS(ctx, cfg.GCSBucket, cfg.GCPCreds)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := config.NewLogger(cfg.LogLevel)
	ctx := context.Background()

	db, err := config.NewConnection(cfg)
	if err != nil {
		log.Fatalf("server: failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("server: error closing the database: %v", err)
		}
	}()

	if err := scripts.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("server: failed to create schema: %v", err)
	}

	store, closer, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("server: failed to open %s storage: %v", cfg.StorageDriver, err)
	}
	defer closer.Close()

	if cfg.ImportDir != "" {
		n, err := scripts.ImportPhotosFromFolder(ctx, db, store, cfg.ImportDir, log.WithField("component", "import"))
		if err != nil {
			log.Errorf("server: import from %s failed: %v", cfg.ImportDir, err)
		} else {
			log.Infof("server: imported %d photos from %s", n, cfg.ImportDir)
		}
	}

	r, err := router.NewRouter(db, store, log)
	if err != nil {
		log.Fatalf("server: failed to build router: %v", err)
	}

	log.WithFields(logrus.Fields{"port": cfg.Port, "storage": cfg.StorageDriver}).Info("server: started")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("server: failed to start: %v", err)
	}
}
