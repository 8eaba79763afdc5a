package main

import (
	"context"
	"log"

	"github.com/Prajankrish/Lex-AI/internal/bootstrap"
	"github.com/Prajankrish/Lex-AI/internal/config"
	"github.com/Prajankrish/Lex-AI/internal/server"
	"github.com/Prajankrish/Lex-AI/internal/tracer"
	"github.com/Prajankrish/Lex-AI/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
