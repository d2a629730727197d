// Package scrape extracts movie data from the two cinema sites. Every
// scraper is best-effort: a missing field becomes a sentinel, a missing
// structural region triggers one fallback fetch, and only a failed page load
// is fatal. Extraction runs over parsed documents obtained through the
// Fetcher boundary, never against raw transport.
package scrape

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("kinoschurke/scrape")

// Config carries the scrape-stage knobs loaded from config.json5. Zero
// values fall back to the live sites and their known-good timings.
type Config struct {
	WidgetBaseURL     string `json:"widget_base_url"`
	OverviewURL       string `json:"overview_url"`
	WidgetPollMs      int    `json:"widget_poll_interval_ms"`
	WidgetPollLimitMs int    `json:"widget_poll_timeout_ms"`
	CinemaCity        string `json:"cinema_city"`
}

func (c Config) widgetBase() string {
	if c.WidgetBaseURL == "" {
		return "https://www.kinoheld.de"
	}
	return strings.TrimSuffix(c.WidgetBaseURL, "/")
}

func (c Config) overviewURL() string {
	if c.OverviewURL == "" {
		return "https://tuebinger-kinos.de/programmuebersicht/"
	}
	return c.OverviewURL
}

func (c Config) city() string {
	if c.CinemaCity == "" {
		return "tuebingen"
	}
	return c.CinemaCity
}

func (c Config) pollInterval() time.Duration {
	if c.WidgetPollMs <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(c.WidgetPollMs) * time.Millisecond
}

func (c Config) pollTimeout() time.Duration {
	if c.WidgetPollLimitMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.WidgetPollLimitMs) * time.Millisecond
}

// filterDuplicateTitles drops repeated titles keeping the first occurrence.
// The same movie shows up once per cinema page it plays in.
func filterDuplicateTitles[T any](items []T, title func(T) string) []T {
	seen := make(map[string]bool, len(items))
	out := items[:0:0]
	for _, item := range items {
		t := title(item)
		if seen[t] {
			slog.Debug("dropping duplicate title", "title", t)
			continue
		}
		seen[t] = true
		out = append(out, item)
	}
	return out
}

// pollForArtifact waits for a side-channel value (the ticket widget URL) to
// appear or change from its prior value, probing at the given interval. The
// wait is bounded so one stubborn show cannot stall the whole batch; on
// timeout the empty string is returned and the caller keeps its sentinel.
func pollForArtifact(ctx context.Context, interval, timeout time.Duration, prior string, probe func() (string, error)) string {
	deadline := time.Now().Add(timeout)
	for {
		current, err := probe()
		if err != nil {
			slog.WarnContext(ctx, "widget url probe failed", "err", err)
			return ""
		}
		if current != "" && current != prior {
			return current
		}
		if time.Now().After(deadline) {
			slog.WarnContext(ctx, "timeout waiting for widget url")
			return ""
		}
		select {
		case <-ctx.Done():
			return ""
		case <-time.After(interval):
		}
	}
}
