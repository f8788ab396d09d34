package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/misha/motivator/config"
	"github.com/misha/motivator/internal/clock"
	"github.com/misha/motivator/internal/facts"
	"github.com/misha/motivator/internal/llm"
	"github.com/misha/motivator/internal/pipeline"
	"github.com/misha/motivator/internal/scheduler"
	"github.com/misha/motivator/internal/telegram"
)

func main() {
	cfg := config.Load()
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.ChatID == 0 {
		log.Fatal("CHAT_ID is required")
	}

	apiKey := cfg.AnthropicKey
	if cfg.LLMProvider == "openai" {
		apiKey = cfg.OpenAIKey
	}
	client, err := llm.NewClient(llm.ProviderConfig{
		Provider: cfg.LLMProvider,
		APIKey:   apiKey,
		Model:    cfg.LLMModel,
		BaseURL:  cfg.OllamaBaseURL,
	})
	if err != nil {
		log.Fatalf("failed to create LLM client: %v", err)
	}

	api, err := telegram.Connect(cfg.TelegramToken)
	if err != nil {
		log.Fatalf("failed to connect to Telegram: %v", err)
	}

	clk := clock.New(cfg.UTCOffset)
	sender := telegram.NewSender(api, cfg.ChatID)
	runner := pipeline.New(facts.New(), llm.NewRetrier(client), sender, clk.Now)

	bot := telegram.NewBot(api, cfg.ChatID, sender, runner)
	bot.Start(context.Background())
	defer bot.Stop()

	sched := scheduler.New(clk.Now)
	for _, slot := range []struct {
		name string
		at   string
		run  func(context.Context)
	}{
		{"morning", cfg.MorningAt, runner.Morning},
		{"afternoon", cfg.AfternoonAt, runner.Afternoon},
		{"evening", cfg.EveningAt, runner.Evening},
	} {
		run := slot.run
		if err := sched.Add(slot.name, slot.at, func() { run(context.Background()) }); err != nil {
			log.Fatalf("failed to schedule %s: %v", slot.name, err)
		}
	}
	sched.Start()
	defer sched.Stop()

	log.Println("bot is running. Press Ctrl+C to exit.")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down.")
}
