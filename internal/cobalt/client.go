// Package cobalt is a client for a cobalt-compatible media download service.
// The service resolves a media page URL into a downloadable stream; the
// client fetches that stream into a local file and returns its path.
package cobalt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Options is the request option bag the service recognizes.
type Options struct {
	AudioFormat   string `json:"audioFormat,omitempty"`
	DownloadMode  string `json:"downloadMode,omitempty"`
	VideoQuality  string `json:"videoQuality,omitempty"`
	FilenameStyle string `json:"filenameStyle,omitempty"`
	Remux         bool   `json:"remux,omitempty"`
}

type request struct {
	URL string `json:"url"`
	Options
}

type response struct {
	Status   string `json:"status"`
	URL      string `json:"url,omitempty"`
	Filename string `json:"filename,omitempty"`
	Picker   []struct {
		Type string `json:"type"`
		URL  string `json:"url"`
	} `json:"picker,omitempty"`
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

// Client talks to one cobalt instance and writes downloads into outputDir.
type Client struct {
	apiURL     string
	outputDir  string
	httpClient *http.Client
}

func New(apiURL, outputDir string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     apiURL,
		outputDir:  outputDir,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Download asks the service to resolve url with the given options and
// streams the result into the output directory. It returns the path of the
// written file. The caller owns the file and is responsible for removing it.
func (c *Client) Download(ctx context.Context, url string, opts Options) (string, error) {
	resp, err := c.resolve(ctx, url, opts)
	if err != nil {
		return "", err
	}

	switch resp.Status {
	case "tunnel", "redirect":
		return c.fetch(ctx, resp.URL, resp.Filename)
	case "picker":
		// Multi-item posts (Instagram carousels): take the first item.
		if len(resp.Picker) == 0 {
			return "", fmt.Errorf("cobalt: empty picker response")
		}
		return c.fetch(ctx, resp.Picker[0].URL, resp.Filename)
	case "error":
		return "", fmt.Errorf("cobalt: %s", resp.Error.Code)
	default:
		return "", fmt.Errorf("cobalt: unexpected status %q", resp.Status)
	}
}

func (c *Client) resolve(ctx context.Context, url string, opts Options) (*response, error) {
	body, err := json.Marshal(request{URL: url, Options: opts})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cobalt: request failed: %w", err)
	}
	defer httpResp.Body.Close()

	var resp response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("cobalt: bad response: %w", err)
	}
	return &resp, nil
}

// fetch streams streamURL into outputDir. The service usually names the
// file; when it does not, a random name keeps concurrent downloads apart.
func (c *Client) fetch(ctx context.Context, streamURL, filename string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("cobalt: stream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cobalt: stream returned %s", resp.Status)
	}

	if filename == "" {
		filename = uuid.NewString()
	}
	path := filepath.Join(c.outputDir, filepath.Base(filename))

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("cobalt: writing %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}
