package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const defaultGoogleNewsBaseURL = "https://news.google.com"

// DefaultLimit is the headline cap when the caller passes none.
const DefaultLimit = 5

// GoogleNewsProvider pulls headlines from the Google News RSS search feed.
// No API key required.
type GoogleNewsProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewGoogleNewsProvider creates a provider with optional proxy support.
func NewGoogleNewsProvider(proxyURL string) *GoogleNewsProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &GoogleNewsProvider{
		BaseURL: defaultGoogleNewsBaseURL,
		Client: &http.Client{
			Timeout:   20 * time.Second,
			Transport: transport,
		},
	}
}

func (p *GoogleNewsProvider) Name() string { return "google_news" }

func (p *GoogleNewsProvider) Headlines(ctx context.Context, ticker string, limit int) ([]Headline, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := url.QueryEscape(fmt.Sprintf("%s stock news", ticker))
	u := fmt.Sprintf("%s/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en", p.BaseURL, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google news fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google news: status %d", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("google news parse: %w", err)
	}

	headlines := make([]Headline, 0, limit)
	for _, item := range feed.Items {
		if len(headlines) == limit {
			break
		}
		title := strings.TrimSpace(stripTags(item.Title))
		if title == "" {
			continue
		}
		h := Headline{Title: title, URL: item.Link}
		if item.PublishedParsed != nil {
			h.PublishedAt = *item.PublishedParsed
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

func stripTags(s string) string { return tagRe.ReplaceAllString(s, "") }
