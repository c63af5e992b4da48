package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"catalogsearch/internal/config"
	"catalogsearch/internal/db"
	"catalogsearch/internal/metrics"
	"catalogsearch/internal/models"
	"catalogsearch/internal/server"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Seed the built-in dictionary and the optional YAML glossary
	if cfg.SeedStatic {
		if err := database.SeedStaticSynonyms(ctx); err != nil {
			log.Fatalf("Failed to seed static synonyms: %v", err)
		}
		log.Println("Static dictionary seeded")
	}
	if err := seedGlossary(ctx, database, cfg); err != nil {
		log.Fatalf("Failed to seed glossary: %v", err)
	}

	// Register the analytics metrics collector
	metrics.Init(database)

	// Initialize server and routes
	srv := server.New(cfg)
	srv.RegisterRoutes(database, cfg)

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()
	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

// seedGlossary loads the optional YAML glossary file and inserts its
// entries, skipping mappings that already exist.
func seedGlossary(ctx context.Context, database *db.DB, cfg *config.Config) error {
	glossary, err := cfg.LoadGlossary()
	if err != nil {
		return err
	}
	if glossary == nil || len(glossary.Entries) == 0 {
		return nil
	}

	entries := make([]models.SynonymEntry, 0, len(glossary.Entries))
	for _, g := range glossary.Entries {
		entry := models.SynonymEntry{
			Canonical: g.Canonical,
			Synonym:   g.Synonym,
			Weight:    g.Weight,
			Source:    models.SourceStatic,
			Language:  g.Language,
		}
		if entry.Weight == 0 {
			entry.Weight = 0.8
		}
		if entry.Language == "" {
			entry.Language = models.LanguageEnglish
		}
		if g.Category != "" {
			category := g.Category
			entry.CategoryHint = &category
		}
		entries = append(entries, entry)
	}

	if err := database.SeedSynonyms(ctx, entries); err != nil {
		return err
	}
	log.Printf("Seeded %d glossary entries", len(entries))
	return nil
}
