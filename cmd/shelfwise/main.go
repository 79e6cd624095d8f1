package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"time"

	"github.com/emzola/shelfwise/config"
	"github.com/emzola/shelfwise/handler"
	"github.com/emzola/shelfwise/internal/cache"
	"github.com/emzola/shelfwise/internal/jsonlog"
	"github.com/emzola/shelfwise/repository"
	"github.com/emzola/shelfwise/repository/postgres"
	"github.com/emzola/shelfwise/service"
	"github.com/thejerf/suture/v4"
)

// app defines the application's layers and shared resources.
type app struct {
	config     config.Config
	logger     *jsonlog.Logger
	db         *sql.DB
	supervisor *suture.Supervisor
	handler    *handler.Handler
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the YAML configuration file")
	flag.Parse()

	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Initialize configuration
	cfg, err := config.Decode(configPath)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	logger = jsonlog.New(os.Stdout, jsonlog.ParseLevel(cfg.Log.Level))

	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	if cfg.Database.Migrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = postgres.Migrate(ctx, db)
		cancel()
		if err != nil {
			logger.PrintFatal(err, nil)
		}
		logger.PrintInfo("database schema applied", nil)
	}

	// Application layers
	repo := repository.New(db)
	cache := cache.New(cfg.Cache.Capacity)
	recorder := service.NewRecorder(cfg, logger, repo)
	service := service.New(cfg, logger, repo, cache, recorder)
	handler := handler.New(cfg, logger, service)

	// Background workers: the activity recorder and the cache expiry sweeper.
	supervisor := suture.New("shelfwise", suture.Spec{
		EventHook: func(e suture.Event) {
			logger.PrintInfo("supervisor event", map[string]string{
				"event": e.String(),
			})
		},
		Timeout: 10 * time.Second,
	})
	supervisor.Add(recorder)
	supervisor.Add(cache)

	app := &app{
		config:     cfg,
		logger:     logger,
		db:         db,
		supervisor: supervisor,
		handler:    handler,
	}

	// Start HTTP server
	err = app.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}
