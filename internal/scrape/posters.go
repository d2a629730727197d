package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"kinoschurke/internal/kino"

	"github.com/PuerkitoBio/goquery"
)

// Posters scrapes higher-resolution poster images from the non-widget
// kinoheld pages, one page load per cinema. The widget pages only serve
// small thumbnails, these pages carry the full-size art under the same
// titles.
func Posters(ctx context.Context, f Fetcher, layout kino.Layout, cfg Config) ([]kino.Poster, error) {
	ctx, span := tracer.Start(ctx, "Posters")
	defer span.End()

	var all []kino.Poster
	for _, theater := range layout.Theaters {
		url := fmt.Sprintf("%s/kino/%s/%s/vorstellungen", cfg.widgetBase(), cfg.city(), theater.Slug)
		slog.InfoContext(ctx, "scraping posters", "cinema", theater.Name, "url", url)

		doc, err := f.Document(ctx, url)
		if err != nil {
			return nil, err
		}
		all = append(all, extractPostersPage(doc)...)
	}

	return filterDuplicateTitles(all, func(p kino.Poster) string {
		return p.Title
	}), nil
}

func extractPostersPage(doc *goquery.Document) []kino.Poster {
	var posters []kino.Poster

	doc.Find("img.transition-opacity").Each(func(_ int, img *goquery.Selection) {
		alt, ok := img.Attr("alt")
		if !ok {
			return
		}
		title := strings.TrimPrefix(alt, "Filmplakat von ")

		src := kino.UnknownPosterURL
		if raw, ok := img.Attr("src"); ok && strings.Contains(raw, "kinoheld.de") {
			src = raw
		}

		posters = append(posters, kino.Poster{Title: title, Src: src})
	})

	return posters
}
