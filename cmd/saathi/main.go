package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ananya/saathi/config"
	"github.com/ananya/saathi/internal/api"
	"github.com/ananya/saathi/internal/capsule"
	"github.com/ananya/saathi/internal/chat"
	"github.com/ananya/saathi/internal/db"
	"github.com/ananya/saathi/internal/llm"
	"github.com/ananya/saathi/internal/planner"
	"github.com/ananya/saathi/internal/scheduler"
)

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	apiKey := cfg.PerplexityKey
	switch cfg.LLMProvider {
	case "openai":
		apiKey = cfg.OpenAIKey
	case "anthropic":
		apiKey = cfg.AnthropicKey
	}

	client, err := llm.NewClient(llm.ProviderConfig{
		Provider: cfg.LLMProvider,
		APIKey:   apiKey,
		Model:    cfg.LLMModel,
		Timeout:  time.Duration(cfg.LLMTimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("failed to create LLM client: %v", err)
	}

	chatSvc := chat.New(database, client)
	capsuleSvc := capsule.NewService(database)
	plannerSvc := planner.NewService(database)

	sched := scheduler.New(capsuleSvc, cfg.WebhookURL)
	if err := sched.Start(cfg.SweepCron); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	if len(os.Args) > 1 && os.Args[1] == "repl" {
		runREPL(chatSvc, capsuleSvc)
		return
	}
	runServer(cfg.HTTPAddr, api.NewHandler(chatSvc, capsuleSvc, plannerSvc))
}

func runServer(addr string, handler *api.Handler) {
	srv := &http.Server{
		Addr:    addr,
		Handler: handler.Router(),
	}

	go func() {
		log.Printf("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down.")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func runREPL(chatSvc *chat.Service, capsuleSvc *capsule.Service) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	// Check if stdin is a pipe (non-interactive)
	stat, _ := os.Stdin.Stat()
	isPipe := (stat.Mode() & os.ModeCharDevice) == 0

	if !isPipe {
		fmt.Print("saathi> ")
	}

	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			if !isPipe {
				fmt.Print("saathi> ")
			}
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}
		if input == "capsules" {
			printCapsules(capsuleSvc)
			if !isPipe {
				fmt.Print("saathi> ")
			}
			continue
		}

		reply, err := chatSvc.Respond(ctx, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		} else {
			fmt.Println(reply.Text)
		}

		if isPipe {
			break // single exchange in pipe mode
		}
		fmt.Print("saathi> ")
	}
}

func printCapsules(capsuleSvc *capsule.Service) {
	capsules, err := capsuleSvc.List(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	if len(capsules) == 0 {
		fmt.Println("no pending capsules")
		return
	}
	for _, c := range capsules {
		due := c.ScheduledAt
		if t, err := time.Parse(time.RFC3339, c.ScheduledAt); err == nil {
			due = humanize.Time(t)
		}
		fmt.Printf("%s  (due %s)  %s\n", c.ID, due, c.Message)
	}
}
