package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"kinoschurke/internal/kino"
	"kinoschurke/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// Attributes scrapes the per-movie descriptive metadata from the kinoheld
// widget pages, one page load per cinema. Every field falls back to its
// sentinel, a page that fails to load is fatal for the run.
func Attributes(ctx context.Context, f Fetcher, layout kino.Layout, cfg Config) ([]kino.MovieAttributes, error) {
	ctx, span := tracer.Start(ctx, "Attributes")
	defer span.End()

	var all []kino.MovieAttributes
	for _, theater := range layout.Theaters {
		url := fmt.Sprintf("%s/kino/%s/%s/shows/movies?mode=widget", cfg.widgetBase(), cfg.city(), theater.Slug)
		slog.InfoContext(ctx, "scraping movie attributes", "cinema", theater.Name, "url", url)

		doc, err := f.Document(ctx, url)
		if err != nil {
			return nil, err
		}
		all = append(all, extractAttributesPage(doc)...)
	}

	return filterDuplicateTitles(all, func(m kino.MovieAttributes) string {
		return m.Title
	}), nil
}

func extractAttributesPage(doc *goquery.Document) []kino.MovieAttributes {
	var movies []kino.MovieAttributes

	doc.Find(".movie").Each(func(_ int, item *goquery.Selection) {
		movie := kino.SentinelAttributes()
		movie.PosterURL = kino.UnknownPosterURL

		var paragraphs []string
		item.Find(".movie__info-description").Each(func(_ int, desc *goquery.Selection) {
			paragraphs = append(paragraphs, strings.TrimSpace(desc.Text()))
		})
		if len(paragraphs) > 0 {
			// paragraph breaks survive into the UI as-is
			movie.Description = strings.Join(paragraphs, "<br><br>")
		}

		if src, ok := item.Find(".movie__image img").Attr("src"); ok {
			movie.PosterURL = src
		}

		// the short info block holds duration, rating and genre
		item.Find(".movie__info--short dt").Each(func(i int, dt *goquery.Selection) {
			dd := item.Find(".movie__info--short dd").Eq(i)
			value := strings.TrimSpace(dd.Text())
			switch strings.TrimSpace(dt.Text()) {
			case "Dauer":
				movie.Duration = value
			case "FSK":
				movie.FSK = value
			case "Genre":
				movie.Genre = value
			}
		})

		// the long info block holds the rest of the catalog data
		item.Find(".movie__info--long dt").Each(func(i int, dt *goquery.Selection) {
			dd := item.Find(".movie__info--long dd").Eq(i)
			value := strings.TrimSpace(dd.Text())
			switch strings.TrimSpace(dt.Text()) {
			case "Titel":
				movie.Title = value
			case "Originaltitel":
				movie.OriginalTitle = value
			case "Produktion":
				movie.Production = strings.TrimSpace(strings.SplitN(value, "\n", 2)[0])
			case "Erscheinungsdatum":
				movie.ReleaseDate = value
			case "Verleih":
				movie.Distributor = value
			case "Regie":
				movie.Director = value
			case "Darsteller":
				var actors []string
				dd.Find("span").Each(func(_ int, span *goquery.Selection) {
					actors = append(actors, htmlutil.CleanText(span.Text()))
				})
				movie.Actors = actors
			}
		})
		if movie.Actors == nil {
			movie.Actors = []string{}
		}

		if src, ok := item.Find("iframe").Attr("src"); ok {
			movie.TrailerURL = src
		}

		movies = append(movies, movie)
	})

	return movies
}
