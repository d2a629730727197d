// Package merge reconciles the two independently-scraped record sets into
// one flat movie list. The schedule source is primary, it alone decides
// which movies exist; the attribute source only enriches. Titles are paired
// by fuzzy matching since the sites share no movie id.
package merge

import (
	"context"
	"log/slog"

	"kinoschurke/internal/kino"
	"kinoschurke/internal/match"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("kinoschurke/merge")

// Config holds the two match thresholds. They differ deliberately: the
// schedule/attribute pairing is loose because the candidate set is just the
// movies currently playing here, the poster backfill is strict because a
// wrong poster is worse than the placeholder.
type Config struct {
	MatchThreshold  float64 `json:"match_threshold"`
	PosterThreshold float64 `json:"poster_threshold"`
}

func (c Config) matchThreshold() float64 {
	if c.MatchThreshold == 0 {
		return 0.2
	}
	return c.MatchThreshold
}

func (c Config) posterThreshold() float64 {
	if c.PosterThreshold == 0 {
		return 0.7
	}
	return c.PosterThreshold
}

// Merge produces exactly one MergedMovie per schedule entry, in schedule
// order, with positional ids. Attribute-only movies are never surfaced, a
// movie nobody can watch has no place in the output.
func Merge(ctx context.Context, schedules []kino.ScheduleEntry, attributes []kino.MovieAttributes, posters []kino.Poster, cfg Config) []kino.MergedMovie {
	ctx, span := tracer.Start(ctx, "Merge")
	defer span.End()

	attributeTitles := make([]string, len(attributes))
	attributesByTitle := make(map[string]kino.MovieAttributes, len(attributes))
	for i, attr := range attributes {
		attributeTitles[i] = attr.Title
		attributesByTitle[attr.Title] = attr
	}

	merged := make([]kino.MergedMovie, 0, len(schedules))
	for i, schedule := range schedules {
		info := kino.SentinelAttributes()

		title, score, ok := match.Closest(schedule.Title, attributeTitles, cfg.matchThreshold())
		if ok {
			info = attributesByTitle[title]
			slog.DebugContext(ctx, "matched schedule to attributes",
				"schedule_title", schedule.Title, "attribute_title", title, "score", score)
		} else {
			slog.WarnContext(ctx, "no attribute match, using defaults",
				"title", schedule.Title, "best_score", score)
		}

		// schedule fields win on conflict, including the title the UI
		// groups by and the showtime-context attribute flags
		merged = append(merged, kino.MergedMovie{
			ID:            i,
			Title:         schedule.Title,
			Duration:      schedule.Duration,
			FSK:           info.FSK,
			Genre:         info.Genre,
			OriginalTitle: info.OriginalTitle,
			Production:    info.Production,
			ReleaseDate:   info.ReleaseDate,
			Distributor:   info.Distributor,
			Director:      info.Director,
			Description:   info.Description,
			PosterURL:     info.PosterURL,
			TrailerURL:    info.TrailerURL,
			Actors:        info.Actors,
			Attributes:    schedule.Attributes,
			Showtimes:     schedule.Showtimes,
		})
	}

	backfillPosters(ctx, merged, posters, cfg.posterThreshold())
	return merged
}

// backfillPosters upgrades poster URLs from the higher-resolution poster
// scrape. Independent of the first match outcome: a movie that found no
// attribute match can still get a real poster.
func backfillPosters(ctx context.Context, merged []kino.MergedMovie, posters []kino.Poster, threshold float64) {
	posterTitles := make([]string, len(posters))
	postersByTitle := make(map[string]kino.Poster, len(posters))
	for i, p := range posters {
		posterTitles[i] = p.Title
		postersByTitle[p.Title] = p
	}

	for i := range merged {
		title, _, ok := match.Closest(merged[i].Title, posterTitles, threshold)
		if !ok {
			continue
		}
		poster := postersByTitle[title]
		if poster.Src == kino.UnknownPosterURL {
			continue
		}
		merged[i].PosterURL = poster.Src
	}
}
