package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/valpere/pohoda/internal/app"
	"github.com/valpere/pohoda/internal/config"
	"github.com/valpere/pohoda/internal/models"
	"github.com/valpere/pohoda/internal/version"
)

func main() {
	// Command-line flags
	versionFlag := flag.Bool("version", false, "Print version information and exit")
	cityFlag := flag.String("city", "", "Look up one city, print the resulting state as JSON and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(version.GetInfo().String())
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pohoda, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	if *cityFlag != "" {
		os.Exit(lookup(ctx, pohoda, *cityFlag))
	}

	if err := pohoda.Start(ctx); err != nil {
		log.Printf("Server error: %v", err)
	}

	if err := pohoda.Stop(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

// lookup runs a one-shot search and returns the process exit code
func lookup(ctx context.Context, pohoda *app.App, city string) int {
	defer func() {
		if err := pohoda.Stop(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	state, err := pohoda.Lookup(ctx, city)
	if err != nil {
		log.Printf("Lookup failed: %v", err)
		return 2
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(state); err != nil {
		log.Printf("Failed to encode state: %v", err)
		return 1
	}

	if state.Kind != models.StateSuccess {
		return 1
	}
	return 0
}
