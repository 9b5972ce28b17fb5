package main

import (
	"context"
	"log"

	"cdtire/adapters/excel"
	"cdtire/adapters/postgres"
	"cdtire/app"
	"cdtire/internal/config"
	"cdtire/internal/errors"
	"cdtire/internal/migration"
	"cdtire/ui"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase initializes the PostgreSQL database connection
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return db, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[main] no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] configuration error: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)

	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("[main] database initialization failed: %v", err)
	}
	defer db.Close()

	if err := migration.NewRunner().Run(context.Background(), db); err != nil {
		log.Fatalf("[main] migrations failed: %v", err)
	}

	projects := postgres.NewProjectRepository(db)
	testRows := postgres.NewTestRowRepository(db)
	extractor := excel.NewExtractor()

	matrixService := app.NewMatrixService(extractor, projects, testRows)
	protocolService := app.NewProtocolService(cfg.Protocol)
	summaryService := app.NewSummaryService(projects, testRows)

	ops := ui.NewOpsServer(db)
	go func() {
		if err := ops.Run(":" + cfg.Server.OpsPort); err != nil {
			log.Printf("[main] ops server stopped: %v", err)
		}
	}()

	server := ui.NewServer(cfg, matrixService, protocolService, summaryService, projects)
	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("[main] server failed: %v", err)
	}
}
