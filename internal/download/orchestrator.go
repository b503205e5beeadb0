// Package download drives the fetch-relay-cleanup sequence for one request:
// resolve the media through the download service, upload the resulting file
// to the chat, and remove the local copy on every exit path.
package download

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"snaptube-bot/internal/cobalt"
)

// Kind selects the media variant to fetch.
type Kind string

const (
	Video Kind = "video"
	Audio Kind = "audio"
)

const (
	audioCaption = "🎵 @SnapTubeXBot"
	videoCaption = "🎬 @SnapTubeXBot"
)

// Orchestrator owns the downloaded file for the duration of one Run call.
type Orchestrator struct {
	downloader Downloader
	sender     Sender
}

func NewOrchestrator(d Downloader, s Sender) *Orchestrator {
	return &Orchestrator{downloader: d, sender: s}
}

// Run downloads url as the requested kind and relays it to chatID. Quality
// is meaningful only for video ("720" or "1080") and ignored for audio.
// Every failure is reported to the chat and logged; none propagate. The
// local file is removed before Run returns whenever one was produced.
func (o *Orchestrator) Run(ctx context.Context, chatID int64, url string, kind Kind, quality string) {
	path, err := o.downloader.Download(ctx, url, optionsFor(kind, quality))
	if err != nil {
		log.Printf("download failed for %s: %v", url, err)
		o.notify(chatID, fmt.Sprintf("❌ Download failed: %v", err))
		return
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	log.Printf("downloaded %s", abs)

	if _, err := os.Stat(abs); err != nil {
		o.notify(chatID, "❌ File not found!")
		return
	}
	defer o.cleanup(abs)

	o.notify(chatID, "📤 Uploading...")

	if kind == Audio {
		err = o.sender.SendAudio(chatID, abs, audioCaption)
	} else {
		err = o.sender.SendVideo(chatID, abs, videoCaption)
	}
	if err != nil {
		log.Printf("upload failed for %s: %v", abs, err)
		o.notify(chatID, fmt.Sprintf("❌ Upload failed: %v", err))
		return
	}

	log.Printf("sent %s to chat %d", filepath.Base(abs), chatID)
}

func optionsFor(kind Kind, quality string) cobalt.Options {
	if kind == Audio {
		return cobalt.Options{
			AudioFormat:   "mp3",
			DownloadMode:  "audio",
			FilenameStyle: "pretty",
		}
	}
	return cobalt.Options{
		VideoQuality:  quality,
		FilenameStyle: "pretty",
		Remux:         true,
	}
}

// cleanup removes the downloaded file. Failures are logged and swallowed;
// a leftover file never becomes a user-visible error.
func (o *Orchestrator) cleanup(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := os.Remove(path); err != nil {
		log.Printf("failed to remove %s: %v", path, err)
		return
	}
	log.Printf("removed %s", path)
}

func (o *Orchestrator) notify(chatID int64, text string) {
	if err := o.sender.SendMessage(chatID, text); err != nil {
		log.Printf("failed to notify chat %d: %v", chatID, err)
	}
}
