package scrape

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"time"

	"kinoschurke/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// Fetcher is the narrow boundary between extraction logic and the mechanics
// of obtaining a rendered document. Extraction code only ever sees parsed
// documents, so the transport can be swapped for a direct API client without
// touching the scrapers.
type Fetcher interface {
	Document(ctx context.Context, url string) (*goquery.Document, error)
}

// Client fetches documents from the cinema sites. One client is reused for a
// whole run: the overview site requires the consent state accumulated in the
// cookie jar to persist across page loads, and sequential access keeps us
// under the sites' bot heuristics.
type Client struct {
	http *resty.Client
}

func NewClient() *Client {
	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		panic(err)
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	// the sites localize room names and date labels, the parsers expect German
	client.SetHeader("accept-language", "de-DE")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "kinoschurke/scrape")

	return &Client{http: client}
}

func (c *Client) Document(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if res.StatusCode() != 200 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, res.StatusCode())
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}
