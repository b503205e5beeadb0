// Package link classifies free-text input as a supported media link.
package link

import "strings"

// Platform identifies where a submitted link points.
type Platform string

const (
	YouTube     Platform = "youtube"
	Instagram   Platform = "instagram"
	Unsupported Platform = "unsupported"
)

var youtubePrefixes = []string{
	"https://youtube.com/",
	"https://www.youtube.com/",
	"https://youtu.be/",
}

var instagramPrefixes = []string{
	"https://instagram.com/",
	"https://www.instagram.com/",
}

// Classify matches text against the supported link prefixes. The match is
// a literal prefix comparison: no case folding, no scheme upgrades, no
// trailing-slash fixups. Anything that does not match exactly is Unsupported.
func Classify(text string) Platform {
	for _, p := range youtubePrefixes {
		if strings.HasPrefix(text, p) {
			return YouTube
		}
	}
	for _, p := range instagramPrefixes {
		if strings.HasPrefix(text, p) {
			return Instagram
		}
	}
	return Unsupported
}
