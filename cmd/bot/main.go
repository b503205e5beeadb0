package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"snaptube-bot/internal/bot"
	"snaptube-bot/internal/cobalt"
	"snaptube-bot/internal/config"
	"snaptube-bot/internal/download"
	"snaptube-bot/internal/store"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}
	log.Printf("Authorized on account %s", api.Self.UserName)

	webhookPath := "/webhook/" + cfg.Telegram.Token
	webhookURL := cfg.Telegram.WebhookHost + webhookPath
	if err := ensureWebhook(api, webhookURL); err != nil {
		log.Fatalf("Error setting webhook: %v", err)
	}

	downloader := cobalt.New(cfg.Download.APIURL, cfg.Download.OutputDir, cfg.DownloadTimeout())
	orchestrator := download.NewOrchestrator(downloader, bot.NewSender(api))
	handler := bot.NewHandler(api, store.New(), orchestrator)

	updates := api.ListenForWebhook(webhookPath)
	http.HandleFunc("/", healthCheck)
	http.HandleFunc("/health", healthCheck)

	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.Server.Port)}
	go func() {
		log.Printf("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		for update := range updates {
			go handler.HandleUpdate(ctx, update)
		}
	}()

	<-ctx.Done()
	shutdown(api, srv)
}

// ensureWebhook registers the webhook only when Telegram does not already
// point at the expected URL, so restarts do not churn the registration.
func ensureWebhook(api *tgbotapi.BotAPI, webhookURL string) error {
	info, err := api.GetWebhookInfo()
	if err != nil {
		return err
	}
	if info.URL == webhookURL {
		log.Printf("Webhook already set: %s", webhookURL)
		return nil
	}

	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return err
	}
	wh.DropPendingUpdates = true
	if _, err := api.Request(wh); err != nil {
		return err
	}
	log.Printf("Webhook set: %s", webhookURL)
	return nil
}

func shutdown(api *tgbotapi.BotAPI, srv *http.Server) {
	log.Println("Shutting down...")

	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		log.Printf("Error deleting webhook: %v", err)
	}
	api.StopReceivingUpdates()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown: %v", err)
	}
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Bot is running!"))
}
