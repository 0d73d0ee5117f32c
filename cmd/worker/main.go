package main

import (
	"flag"
	"log"

	"github.com/filekeeper/go-files-manager/internal/app"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "configPath", "", "Path to configuration file")
	flag.Parse()

	worker, err := app.NewWorker(configPath)
	if err != nil {
		log.Fatalf("Failed to initialize worker: %v", err)
	}

	if err := worker.Run(); err != nil {
		log.Fatalf("Worker failed: %v", err)
	}
}
