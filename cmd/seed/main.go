package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Loads a small sample catalog so the admin frontend has data to show.
func main() {
	fmt.Println("seeding sample catalog data...")

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	pool, err := pgxpool.New(context.Background(), os.Getenv("DB_DSN"))
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	ctx := context.Background()

	categories := map[string]uuid.UUID{}
	for _, name := range []string{"Movies", "Series", "Documentaries"} {
		id := uuid.New()
		categories[name] = id
		_, err := pool.Exec(ctx, `
			INSERT INTO categories (id, name, description, is_active, created_at, updated_at)
			VALUES ($1, $2, '', true, NOW(), NOW())
			ON CONFLICT DO NOTHING
		`, id, name)
		if err != nil {
			log.Fatalf("cannot seed category %s: %v", name, err)
		}
	}

	genreCategories := map[string][]string{
		"Drama":  {"Movies", "Series"},
		"Comedy": {"Movies"},
		"Nature": {"Documentaries"},
	}
	for name, cats := range genreCategories {
		genreID := uuid.New()
		_, err := pool.Exec(ctx, `
			INSERT INTO genres (id, name, is_active, created_at, updated_at)
			VALUES ($1, $2, true, NOW(), NOW())
			ON CONFLICT DO NOTHING
		`, genreID, name)
		if err != nil {
			log.Fatalf("cannot seed genre %s: %v", name, err)
		}
		for _, cat := range cats {
			_, err := pool.Exec(ctx, `
				INSERT INTO category_genre (category_id, genre_id)
				VALUES ($1, $2) ON CONFLICT DO NOTHING
			`, categories[cat], genreID)
			if err != nil {
				log.Fatalf("cannot link genre %s to category %s: %v", name, cat, err)
			}
		}
	}

	for _, name := range []string{"Ana Souza", "Carlos Lima"} {
		_, err := pool.Exec(ctx, `
			INSERT INTO cast_members (id, name, type, created_at, updated_at)
			VALUES ($1, $2, 0, NOW(), NOW())
			ON CONFLICT DO NOTHING
		`, uuid.New(), name)
		if err != nil {
			log.Fatalf("cannot seed cast member %s: %v", name, err)
		}
	}

	fmt.Println("seeded sample catalog successfully!")
}
