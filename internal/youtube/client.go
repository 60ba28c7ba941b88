package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"

	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/config"
	"github.com/SlowSpeedChase/KitchenOS-sub001/internal/model"
)

// DefaultTimeout bounds each individual request to YouTube.
const DefaultTimeout = 15 * time.Second

// TranscriptSourceCaptions marks a transcript read from YouTube's own
// caption track.
const TranscriptSourceCaptions = "captions"

// Fetch errors.
var (
	// ErrVideoNotFound is returned when the oEmbed endpoint has no entry
	// for the video (deleted, private, or region locked).
	ErrVideoNotFound = errors.New("youtube: video not found")

	// ErrNoTranscript is returned when no caption track is available.
	ErrNoTranscript = errors.New("youtube: no transcript available")
)

// oembedResponse is the subset of the oEmbed payload the pipeline uses.
type oembedResponse struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
	Thumbnail  string `json:"thumbnail_url"`
}

// timedText is the caption track XML served by the timedtext endpoint.
type timedText struct {
	Lines []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different host. Used in tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.http.SetBaseURL(baseURL)
	}
}

// WithClientTimeout sets the per-request timeout.
func WithClientTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// Client fetches video metadata and captions from YouTube's public
// endpoints. No API key is required.
type Client struct {
	http *resty.Client
}

// NewClient creates a YouTube client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL("https://www.youtube.com").
			SetTimeout(DefaultTimeout).
			SetHeader("User-Agent", config.DefaultUserAgent),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Metadata fetches the video's title and channel via oEmbed and its
// description from the watch page.
func (c *Client) Metadata(ctx context.Context, videoID string) (model.VideoMetadata, error) {
	var parsed oembedResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"url":    WatchURL(videoID),
			"format": "json",
		}).
		SetResult(&parsed).
		Get("/oembed")
	if err != nil {
		return model.VideoMetadata{}, fmt.Errorf("youtube: fetch metadata: %w", err)
	}
	if resp.StatusCode() == 404 || resp.StatusCode() == 401 {
		return model.VideoMetadata{}, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}
	if resp.IsError() {
		return model.VideoMetadata{}, fmt.Errorf("youtube: oembed returned %s", resp.Status())
	}

	meta := model.VideoMetadata{
		ID:      videoID,
		URL:     WatchURL(videoID),
		Title:   parsed.Title,
		Channel: parsed.AuthorName,
	}

	description, err := c.description(ctx, videoID)
	if err == nil {
		meta.Description = description
	}
	return meta, nil
}

// description scrapes the watch page for the player response's
// shortDescription field. The description is not part of oEmbed, and
// this is the only field worth the page fetch.
func (c *Client) description(ctx context.Context, videoID string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("v", videoID).
		Get("/watch")
	if err != nil {
		return "", fmt.Errorf("youtube: fetch watch page: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("youtube: watch page returned %s", resp.Status())
	}
	return extractShortDescription(resp.String())
}

// extractShortDescription pulls the shortDescription JSON string out of
// the embedded player response without parsing the full document.
func extractShortDescription(page string) (string, error) {
	const marker = `"shortDescription":`
	start := strings.Index(page, marker)
	if start < 0 {
		return "", errors.New("youtube: no description in watch page")
	}
	rest := page[start+len(marker):]
	if len(rest) == 0 || rest[0] != '"' {
		return "", errors.New("youtube: malformed description field")
	}

	// Scan to the unescaped closing quote, then let encoding/json do the
	// unescaping.
	for i := 1; i < len(rest); i++ {
		if rest[i] == '\\' {
			i++
			continue
		}
		if rest[i] == '"' {
			var description string
			if err := json.Unmarshal([]byte(rest[:i+1]), &description); err != nil {
				return "", fmt.Errorf("youtube: decode description: %w", err)
			}
			return description, nil
		}
	}
	return "", errors.New("youtube: unterminated description field")
}

// Transcript fetches the English caption track. The timedtext endpoint
// serves an empty body when no track exists, which maps to
// ErrNoTranscript rather than an empty transcript.
func (c *Client) Transcript(ctx context.Context, videoID string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lang": "en",
			"v":    videoID,
		}).
		Get("/api/timedtext")
	if err != nil {
		return "", fmt.Errorf("youtube: fetch transcript: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("youtube: timedtext returned %s", resp.Status())
	}

	body := strings.TrimSpace(resp.String())
	if body == "" {
		return "", ErrNoTranscript
	}

	var track timedText
	if err := xml.Unmarshal([]byte(body), &track); err != nil {
		return "", fmt.Errorf("youtube: decode transcript: %w", err)
	}
	if len(track.Lines) == 0 {
		return "", ErrNoTranscript
	}

	lines := make([]string, 0, len(track.Lines))
	for _, line := range track.Lines {
		text := strings.TrimSpace(html.UnescapeString(line.Text))
		if text != "" {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Fetch retrieves metadata and transcript concurrently. Metadata
// failure fails the fetch; a missing transcript does not, because the
// description tiers can still run without one.
func (c *Client) Fetch(ctx context.Context, videoID string) (model.VideoMetadata, error) {
	var (
		meta       model.VideoMetadata
		transcript string
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := c.Metadata(ctx, videoID)
		if err != nil {
			return err
		}
		meta = m
		return nil
	})
	g.Go(func() error {
		t, err := c.Transcript(ctx, videoID)
		if err != nil {
			// Recoverable: extraction falls back to description-only.
			return nil
		}
		transcript = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.VideoMetadata{}, err
	}

	if transcript != "" {
		meta.Transcript = transcript
		meta.TranscriptSource = TranscriptSourceCaptions
	}
	return meta, nil
}
