package news

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/tesilio/lassistant/internal/retry"
)

const (
	defaultBaseURL = "https://news.naver.com"
	listSelector   = "#newsct > div.section_latest > div > div.section_latest_article._CONTENT_LIST._PERSIST_META ul > li"
	userAgent      = "Mozilla/5.0 (compatible; lassistant/1.0)"
)

// Article body containers, newest markup first.
var articleSelectors = []string{"#dic_area", "#newsct_article", "#articleBodyContents"}

// Headline is one (title, url) pair extracted from a category listing page.
type Headline struct {
	Title string
	URL   string
}

// Category identifies one news section to crawl, e.g. "IT/Science" at
// breaking-news section path "105/230".
type Category struct {
	Name        string
	SectionPath string
}

// Client crawls news listing pages and article bodies.
type Client struct {
	baseURL    string
	httpClient *http.Client
	policy     retry.Policy
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the news site root, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithRetryPolicy overrides the retry policy used for listing fetches.
func WithRetryPolicy(policy retry.Policy) Option {
	return func(c *Client) { c.policy = policy }
}

// NewClient creates a news crawler.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		policy:     retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Headlines fetches the listing page for a category and extracts up to limit
// (title, url) pairs in page order.
func (c *Client) Headlines(ctx context.Context, category Category, limit int) ([]Headline, error) {
	listURL := fmt.Sprintf("%s/breakingnews/section/%s", c.baseURL, category.SectionPath)

	doc, err := retry.Do(c.policy, "news", func() (*goquery.Document, error) {
		return c.fetchDocument(ctx, listURL)
	})
	if err != nil {
		return nil, fmt.Errorf("headlines for %s: %w", category.Name, err)
	}

	var headlines []Headline
	doc.Find(listSelector).EachWithBreak(func(_ int, li *goquery.Selection) bool {
		if limit > 0 && len(headlines) >= limit {
			return false
		}
		anchor := li.Find("a").First()
		title := strings.TrimSpace(anchor.Text())
		href := strings.TrimSpace(anchor.AttrOr("href", ""))
		if title == "" || href == "" {
			return true
		}
		headlines = append(headlines, Headline{Title: title, URL: href})
		return true
	})

	return headlines, nil
}

// ArticleBody fetches one article page and extracts its plain-text body.
// This is a single attempt; a failed article is tolerated by the caller.
func (c *Client) ArticleBody(ctx context.Context, articleURL string) (string, error) {
	doc, err := c.fetchDocument(ctx, articleURL)
	if err != nil {
		return "", fmt.Errorf("article %s: %w", articleURL, err)
	}

	for _, selector := range articleSelectors {
		body := strings.TrimSpace(doc.Find(selector).First().Text())
		if body != "" {
			return collapseWhitespace(body), nil
		}
	}
	return "", fmt.Errorf("article %s: no body content found", articleURL)
}

func (c *Client) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news site returned status %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
