// Package main implements the entry point for the FitStride account API
// server, which handles user registration, login, email verification, and
// profile management.
package main

import (
	"context"
	"flag"
	"log"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply pending schema migrations before serving")
	flag.Parse()

	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if *migrate {
		if err := runMigrations(app.db, app.logger); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	app.start()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
