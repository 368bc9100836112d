package main

import (
	"context"
	"log"

	"reflecto-be/internal/bootstrap"
	"reflecto-be/internal/config"
	"reflecto-be/internal/server"
	"reflecto-be/internal/tracer"
	"reflecto-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	go func() {
		log.Println("Background: Starting embedding consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background consumer error: %v", err)
		}
	}()

	srv := server.New(cfg, container, container.Logger)
	log.Fatal(srv.Run())
}
