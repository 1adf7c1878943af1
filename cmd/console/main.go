package main

import (
	"context"
	"log"

	"backupbridge/internal/config"
	"backupbridge/internal/console"
)

func main() {

	cfg := config.LoadConfig()
	app, err := console.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
