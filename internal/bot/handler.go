// Package bot routes Telegram updates: URL messages, format-selection
// callbacks, and the /start command.
package bot

import (
	"context"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"snaptube-bot/internal/download"
	"snaptube-bot/internal/link"
	"snaptube-bot/internal/store"
)

const welcomeText = "👋 Send me a YouTube or Instagram link.\n\n" +
	"🎥 YouTube: download video or audio\n" +
	"📸 Instagram: download posts, reels and stories"

// API is the slice of *tgbotapi.BotAPI the handlers use.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Runner starts one download-and-relay sequence.
type Runner interface {
	Run(ctx context.Context, chatID int64, url string, kind download.Kind, quality string)
}

type Handler struct {
	api       API
	pending   *store.Store
	downloads Runner
}

func NewHandler(api API, pending *store.Store, downloads Runner) *Handler {
	return &Handler{api: api, pending: pending, downloads: downloads}
}

// HandleUpdate runs one update to completion. A panic in any handler is
// confined to that update's task; it never takes the serving process down.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("recovered from panic handling update %d: %v", update.UpdateID, r)
		}
	}()

	switch {
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		if msg.Command() == "start" {
			h.reply(msg.Chat.ID, welcomeText)
		}
		return
	}
	if msg.Text == "" {
		return
	}

	url := strings.TrimSpace(msg.Text)
	platform := link.Classify(url)
	if platform == link.Unsupported {
		h.reply(msg.Chat.ID, "❌ Please send a valid YouTube or Instagram link.")
		return
	}

	h.pending.Put(msg.From.ID, url)

	if platform == link.YouTube {
		prompt := tgbotapi.NewMessage(msg.Chat.ID, "Choose a download format:")
		prompt.ReplyMarkup = downloadKeyboard(url)
		if _, err := h.api.Send(prompt); err != nil {
			log.Printf("failed to send format keyboard: %v", err)
		}
		return
	}

	// Instagram has no format menu; fetch it right away.
	h.downloads.Run(ctx, msg.Chat.ID, url, download.Video, "720")
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Telegram omits the message for callbacks on messages older than ~48h;
	// without it there is no chat to deliver into.
	if cb.Message == nil {
		h.answer(tgbotapi.NewCallbackWithAlert(cb.ID, "❌ Link not found. Send it again."))
		return
	}

	url, err := h.pending.Get(cb.From.ID)
	if err != nil {
		h.answer(tgbotapi.NewCallbackWithAlert(cb.ID, "❌ Link not found. Send it again."))
		return
	}

	sel, err := parseSelection(cb.Data)
	if err != nil {
		log.Printf("bad callback data from user %d: %v", cb.From.ID, err)
		h.answer(tgbotapi.NewCallbackWithAlert(cb.ID, "❌ Link not found. Send it again."))
		return
	}

	chatID := cb.Message.Chat.ID
	status := "🎥 Downloading video..."
	if sel.Kind == download.Audio {
		status = "🎵 Downloading audio..."
	}
	if _, err := h.api.Send(tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, status)); err != nil {
		log.Printf("failed to edit status message: %v", err)
	}

	h.downloads.Run(ctx, chatID, url, sel.Kind, sel.Quality)

	h.answer(tgbotapi.NewCallback(cb.ID, ""))
}

func (h *Handler) reply(chatID int64, text string) {
	if _, err := h.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("failed to send message to chat %d: %v", chatID, err)
	}
}

func (h *Handler) answer(cb tgbotapi.CallbackConfig) {
	if _, err := h.api.Request(cb); err != nil {
		log.Printf("failed to answer callback: %v", err)
	}
}
