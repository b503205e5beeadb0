package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"snaptube-bot/internal/download"
)

// Callback data layout: "video_<quality>_<fragment>" or "audio_<fragment>",
// where fragment is the first 50 characters of the submitted URL. The
// fragment only helps when eyeballing raw updates; the URL a selection
// resolves to always comes from the pending store, keyed by user id.
const fragmentLen = 50

type selection struct {
	Kind    download.Kind
	Quality string
}

func downloadKeyboard(url string) tgbotapi.InlineKeyboardMarkup {
	// Truncate on runes, not bytes: a fragment split mid-rune would make
	// the callback data invalid UTF-8, which Telegram rejects.
	frag := url
	if runes := []rune(frag); len(runes) > fragmentLen {
		frag = string(runes[:fragmentLen])
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎥 Video (720p)", "video_720_"+frag),
			tgbotapi.NewInlineKeyboardButtonData("🎬 Video (1080p)", "video_1080_"+frag),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎵 Audio (MP3)", "audio_"+frag),
		),
	)
}

// parseSelection decodes callback data. The data splits into at most three
// parts; everything past the recognized fields is the URL fragment, which
// may itself contain delimiters and is discarded.
func parseSelection(data string) (selection, error) {
	parts := strings.SplitN(data, "_", 3)

	switch download.Kind(parts[0]) {
	case download.Video:
		if len(parts) < 2 {
			return selection{}, fmt.Errorf("video selection without quality: %q", data)
		}
		if parts[1] != "720" && parts[1] != "1080" {
			return selection{}, fmt.Errorf("unsupported video quality %q", parts[1])
		}
		return selection{Kind: download.Video, Quality: parts[1]}, nil
	case download.Audio:
		return selection{Kind: download.Audio}, nil
	default:
		return selection{}, fmt.Errorf("unknown selection %q", data)
	}
}
