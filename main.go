package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/jorget15/UnityAid/agents"
	"github.com/jorget15/UnityAid/bus"
	"github.com/jorget15/UnityAid/classify"
	"github.com/jorget15/UnityAid/cronjobs"
	"github.com/jorget15/UnityAid/ingest"
	"github.com/jorget15/UnityAid/location"
	"github.com/jorget15/UnityAid/routes"
	"github.com/jorget15/UnityAid/store"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	// Print and check env
	if os.Getenv("OPENAI_API_KEY") != "" {
		fmt.Println("OPENAI_API_KEY loaded")
	}
	clientURL := os.Getenv("CLIENT_URL")
	fmt.Println("CLIENT_URL: ", clientURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// In-memory state, seeded for the process lifetime.
	st := store.New()
	st.Seed(store.DefaultResources())

	// Two buses: UI stream events and the agent-to-agent choreography.
	streamBus := bus.New("stream")
	a2aBus := bus.New("a2a")

	// Optional collaborators; missing credentials just disable them.
	var classifier classify.PriorityClassifier
	if c := classify.NewFromEnv(); c != nil {
		classifier = c
	}
	extractor := location.NewFromEnv(ctx)
	defer extractor.Close()

	// Initialize cron jobs
	c := cronjobs.InitCronJobs(st)
	defer c.Stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { streamBus.Run(ctx); return nil })
	g.Go(func() error { a2aBus.Run(ctx); return nil })
	g.Go(func() error { agents.RunCategorizer(ctx, a2aBus, st); return nil })
	g.Go(func() error { agents.RunMatcher(ctx, a2aBus, st); return nil })
	g.Go(func() error { agents.RunApplier(ctx, a2aBus, streamBus, st); return nil })
	g.Go(func() error { ingest.NewLoop(st, streamBus).Run(ctx); return nil })

	r := routes.SetupRouter(st, streamBus, a2aBus, classifier, extractor)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	g.Go(func() error {
		return r.Run(":" + port)
	})

	if err := g.Wait(); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
