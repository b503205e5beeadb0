package download

import (
	"context"

	"snaptube-bot/internal/cobalt"
)

// Downloader resolves a media URL into a local file and returns its path.
type Downloader interface {
	Download(ctx context.Context, url string, opts cobalt.Options) (string, error)
}

// Sender delivers messages and media files to a chat.
type Sender interface {
	SendMessage(chatID int64, text string) error
	SendAudio(chatID int64, path, caption string) error
	SendVideo(chatID int64, path, caption string) error
}
