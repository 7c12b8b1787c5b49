package main

import (
	"context"
	"log"

	"github.com/Bangbenzzz/blogerz-sub000/internal/server"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
