package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"crypto-tracker/config"
	"crypto-tracker/database"
	"crypto-tracker/handlers"
	"crypto-tracker/logger"
	"crypto-tracker/market"
	"crypto-tracker/portfolio"
	"crypto-tracker/state"
	"crypto-tracker/store"
)

func main() {
	zl, err := logger.New()
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer zl.Sync()

	cfg, err := config.Load()
	if err != nil {
		zl.Fatal("Failed to load configuration", zap.Error(err))
	}

	kv, closeKV, err := openStore(cfg)
	if err != nil {
		zl.Fatal("Failed to open state store", zap.String("backend", cfg.Backend), zap.Error(err))
	}
	defer closeKV()
	zl.Info("state store ready", zap.String("backend", cfg.Backend))

	h := handlers.New(
		state.NewManager(kv, zl.Named(logger.Store)),
		portfolio.PriceBook(market.Quotes()),
		[]byte(cfg.JWTSecret),
		cfg.SessionTTL,
		zl.Named(logger.HTTP),
	)

	if err := h.Router().Run(":" + cfg.Port); err != nil {
		zl.Fatal("Server stopped", zap.Error(err))
	}
}

func openStore(cfg *config.Config) (store.KV, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return store.NewMemory(), func() {}, nil
	case config.BackendRedis:
		rdb, err := config.InitRedis(context.Background(), cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		r := store.NewRedis(rdb)
		return r, func() { r.Close() }, nil
	default:
		db, err := database.Open(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return database.NewKVStore(db), func() { sqlDB.Close() }, nil
	}
}
