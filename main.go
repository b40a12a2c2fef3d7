package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/camden-git/photoopsbackend/config"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}
