package main

import (
	"log"
	"os"

	"github.com/Prajankrish/Lex-AI/internal/model"
	"github.com/Prajankrish/Lex-AI/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models (The Core Task)
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.ChatSession{},
		&model.ChatTurn{},
		&model.ChatCitation{},
		&model.CorpusSnapshot{},
		&model.Passage{},
	}

	// Migrate strictly
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Vector Index & Views
	log.Println("Step 3: Creating Vector Index and Views...")

	postMigrationSQL := []string{
		// HNSW index for the indexer's DB-side verification search. The
		// serving path reads the whole snapshot into memory instead.
		`CREATE INDEX IF NOT EXISTS idx_passages_embedding_hnsw
		 ON passages USING hnsw (embedding vector_cosine_ops);`,

		// View: passages of the currently published snapshots only
		`CREATE OR REPLACE VIEW published_passages AS
		 SELECT p.id, p.snapshot_id, p.seq, p.source_title, p.section_label, p.text, p.embedding, cs.label AS snapshot_label, cs.published_at
		 FROM passages p JOIN corpus_snapshots cs ON p.snapshot_id = cs.id
		 WHERE cs.status = 'published';`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
