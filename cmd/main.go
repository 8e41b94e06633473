package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"memberserver/auth/hasher"
	authservice "memberserver/auth/service"
	"memberserver/auth/session"
	sessionmem "memberserver/auth/session/mem"
	sessionredis "memberserver/auth/session/redis"
	"memberserver/auth/storage/sqlite"
	"memberserver/internal/config"
	"memberserver/internal/logger"
	"memberserver/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	cfg, err := config.New()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Debug)

	userStorage, err := sqlite.New(log, cfg)
	if err != nil {
		return err
	}

	expiration, err := time.ParseDuration(cfg.Session.Expiration)
	if err != nil {
		return err
	}
	var store session.Store
	switch cfg.Session.Store {
	case "redis":
		store, err = sessionredis.New(context.Background(), cfg.Session.RedisAddr, expiration)
		if err != nil {
			return err
		}
		log.Info("using redis session store")
	default:
		store = sessionmem.New(expiration)
		log.Info("using in-memory session store")
	}

	authService := authservice.New(log, userStorage, hasher.New())
	sessions := session.New(store, userStorage)

	server, err := web.New(log, cfg, authService, sessions)
	if err != nil {
		return err
	}
	return server.Serve()
}
