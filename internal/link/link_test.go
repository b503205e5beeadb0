package link

import "testing"

func TestClassifyYouTube(t *testing.T) {
	urls := []string{
		"https://youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://youtube.com/shorts/abc",
	}

	for _, url := range urls {
		if got := Classify(url); got != YouTube {
			t.Errorf("Classify(%q) = %q, want %q", url, got, YouTube)
		}
	}
}

func TestClassifyInstagram(t *testing.T) {
	urls := []string{
		"https://instagram.com/p/Cxyz/",
		"https://www.instagram.com/reel/Cxyz/",
	}

	for _, url := range urls {
		if got := Classify(url); got != Instagram {
			t.Errorf("Classify(%q) = %q, want %q", url, got, Instagram)
		}
	}
}

func TestClassifyUnsupported(t *testing.T) {
	urls := []string{
		"",
		"hello",
		"https://vimeo.com/12345",
		"http://youtube.com/watch?v=abc",   // wrong scheme
		"https://YouTube.com/watch?v=abc",  // wrong case
		"https://m.youtube.com/watch?v=abc",
		"youtube.com/watch?v=abc",
		" https://youtu.be/abc", // leading space survives a missed trim
	}

	for _, url := range urls {
		if got := Classify(url); got != Unsupported {
			t.Errorf("Classify(%q) = %q, want %q", url, got, Unsupported)
		}
	}
}
