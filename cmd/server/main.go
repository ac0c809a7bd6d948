// Command main is the entry point for the campus forum server.
package main

//go:generate swag init --generalInfo main.go --dir ./,../../internal/server,../../internal/models,../../internal/ranking --output ../../docs --outputTypes go

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusforum/internal/config"
	"campusforum/internal/server"
)

// @title Campus Forum API
// @version 1.0
// @description Forum with threaded comments, search and university rankings.

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Build the app before the signal handler can observe it.
	srv.App()

	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	<-done
}
