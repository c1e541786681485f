package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"alfredoptarigan/cv-uploader/internal/config"
	"alfredoptarigan/cv-uploader/internal/profile"
	"alfredoptarigan/cv-uploader/internal/render"
	"alfredoptarigan/cv-uploader/internal/uploader"
)

func main() {
	cfg := config.Load()

	var path string
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	shape, err := profile.ShapeFor(cfg.Upload.ResponseShape)
	if err != nil {
		log.Fatalf("❌ Invalid response shape: %v", err)
	}

	policy, err := render.ParseEscapePolicy(cfg.Upload.EscapePolicy)
	if err != nil {
		log.Fatalf("❌ Invalid escape policy: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctrl := uploader.NewController(
		uploader.PathSource{Path: path},
		uploader.NewConsoleTrigger(os.Stderr, cfg.Upload.TriggerLabel),
		uploader.ConsoleNotifier{Out: os.Stderr},
		uploader.FileContainer{Path: cfg.Upload.OutputPath, Out: os.Stdout},
		render.NewRenderer(policy),
		uploader.Options{
			Endpoint:        cfg.Upload.Endpoint,
			Shape:           shape,
			Simulate:        cfg.Upload.Simulate,
			SimulationDelay: cfg.Upload.SimulationDelay,
		},
	)

	if cfg.Upload.Simulate {
		log.Println("🤖 Simulation mode, no request will be sent")
	} else {
		log.Printf("🚀 Uploading to %s (%s)\n", cfg.Upload.Endpoint, shape.Name())
	}

	if err := <-ctrl.HandleClick(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if cfg.Upload.OutputPath != "" {
		log.Printf("✅ Result written to %s\n", cfg.Upload.OutputPath)
	}
}
