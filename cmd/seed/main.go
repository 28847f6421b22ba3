package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"pixelcove/config"
	"pixelcove/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@pixelcove.dev"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, avatar_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, email, hash, name, "").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	// Starter collections so the UI is not empty on first login
	for _, colName := range []string{"Favorites", "Wallpapers"} {
		var colID string
		err := db.QueryRow(`
			SELECT id FROM collections WHERE user_id = $1 AND name = $2
		`, id, colName).Scan(&colID)
		if err == sql.ErrNoRows {
			if err := db.QueryRow(`
				INSERT INTO collections (user_id, name) VALUES ($1, $2) RETURNING id
			`, id, colName).Scan(&colID); err != nil {
				log.Fatalf("failed to seed collection %s: %v", colName, err)
			}
		} else if err != nil {
			log.Fatalf("failed to check collection %s: %v", colName, err)
		}
		fmt.Printf("collection ready: id=%s name=%s\n", colID, colName)
	}
}
