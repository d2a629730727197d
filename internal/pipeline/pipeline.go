// Package pipeline orchestrates the full scrape, merge, transform and
// persist sequence, plus the alternate live-API sequence that reaches the
// same view output from structured data.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"kinoschurke/internal/kino"
	"kinoschurke/internal/kinoheldapi"
	"kinoschurke/internal/merge"
	"kinoschurke/internal/scrape"
	"kinoschurke/internal/store"
	"kinoschurke/internal/views"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("kinoschurke/pipeline")

type Config struct {
	Scrape   scrape.Config      `json:"scrape"`
	Merge    merge.Config       `json:"merge"`
	Kinoheld kinoheldapi.Config `json:"kinoheld"`

	// directory the view files are written to, "data" when empty
	OutputDir string `json:"output_dir"`
}

func (c Config) outputDir() string {
	if c.OutputDir == "" {
		return "data"
	}
	return c.OutputDir
}

// stage wraps one pipeline step with a span, a timing log and a row in
// the run summary.
type runner struct {
	ctx     context.Context
	summary table.Writer
	err     error
}

func newRunner(ctx context.Context) *runner {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stderr)
	t.AppendHeader(table.Row{"stage", "items", "duration"})
	return &runner{ctx: ctx, summary: t}
}

func stage[T any](r *runner, name string, count func(T) int, fn func(ctx context.Context) (T, error)) T {
	var zero T
	if r.err != nil {
		return zero
	}

	ctx, span := tracer.Start(r.ctx, name)
	defer span.End()

	start := time.Now()
	out, err := fn(ctx)
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", name, err)
		return zero
	}

	items := "-"
	if count != nil {
		items = fmt.Sprintf("%d", count(out))
	}
	slog.Info("stage done", "stage", name, "items", items, "duration", elapsed)
	r.summary.AppendRow(table.Row{name, items, elapsed})
	return out
}

// Scrape runs the three scrapers and persists the merged result without
// building views.
func Scrape(ctx context.Context, cfg Config) error {
	ctx, span := tracer.Start(ctx, "pipeline.Scrape")
	defer span.End()

	_, err := scrapeAndMerge(ctx, cfg)
	return err
}

// Transform rebuilds the persisted views from the last scraped source data.
func Transform(ctx context.Context, cfg Config) error {
	ctx, span := tracer.Start(ctx, "pipeline.Transform")
	defer span.End()

	st := store.New(cfg.outputDir())
	r := newRunner(ctx)
	movies := stage(r, "read source", func(m []kino.MergedMovie) int { return len(m) },
		func(ctx context.Context) ([]kino.MergedMovie, error) {
			return st.ReadSource()
		})
	return buildAndWrite(r, st, movies)
}

// Run executes the whole scraped-data pipeline end to end.
func Run(ctx context.Context, cfg Config) error {
	ctx, span := tracer.Start(ctx, "pipeline.Run")
	defer span.End()

	r, st, movies := scrapeStages(ctx, cfg)
	return buildAndWrite(r, st, movies)
}

// RunLive executes the pipeline against the booking-system API instead of
// the scraped pages. Merge is skipped, the API data is already unified.
func RunLive(ctx context.Context, cfg Config) error {
	ctx, span := tracer.Start(ctx, "pipeline.RunLive")
	defer span.End()

	layout := kino.DefaultLayout()
	st := store.New(cfg.outputDir())
	client := kinoheldapi.NewClient(cfg.Kinoheld)
	r := newRunner(ctx)

	data := stage(r, "fetch shows", func(d kinoheldapi.Data) int { return len(d.Shows) },
		func(ctx context.Context) (kinoheldapi.Data, error) {
			return client.ShowsForCinemas(ctx, layout.KinoheldIDs())
		})
	movies := stage(r, "adapt", func(m []kino.MergedMovie) int { return len(m) },
		func(ctx context.Context) ([]kino.MergedMovie, error) {
			return kinoheldapi.Adapt(layout, data), nil
		})
	movies = stage(r, "write source", func(m []kino.MergedMovie) int { return len(m) },
		func(ctx context.Context) ([]kino.MergedMovie, error) {
			return movies, st.WriteSource(movies)
		})
	return buildAndWrite(r, st, movies)
}

func scrapeAndMerge(ctx context.Context, cfg Config) ([]kino.MergedMovie, error) {
	r, _, movies := scrapeStages(ctx, cfg)
	if r.err != nil {
		return nil, r.err
	}
	r.summary.Render()
	return movies, nil
}

func scrapeStages(ctx context.Context, cfg Config) (*runner, store.Store, []kino.MergedMovie) {
	layout := kino.DefaultLayout()
	st := store.New(cfg.outputDir())
	client := scrape.NewClient()
	r := newRunner(ctx)

	schedules := stage(r, "scrape schedules", func(s []kino.ScheduleEntry) int { return len(s) },
		func(ctx context.Context) ([]kino.ScheduleEntry, error) {
			return scrape.Schedules(ctx, client, layout, cfg.Scrape)
		})
	attributes := stage(r, "scrape attributes", func(a []kino.MovieAttributes) int { return len(a) },
		func(ctx context.Context) ([]kino.MovieAttributes, error) {
			return scrape.Attributes(ctx, client, layout, cfg.Scrape)
		})
	posters := stage(r, "scrape posters", func(p []kino.Poster) int { return len(p) },
		func(ctx context.Context) ([]kino.Poster, error) {
			return scrape.Posters(ctx, client, layout, cfg.Scrape)
		})
	movies := stage(r, "merge", func(m []kino.MergedMovie) int { return len(m) },
		func(ctx context.Context) ([]kino.MergedMovie, error) {
			return merge.Merge(ctx, schedules, attributes, posters, cfg.Merge), nil
		})
	movies = stage(r, "write source", func(m []kino.MergedMovie) int { return len(m) },
		func(ctx context.Context) ([]kino.MergedMovie, error) {
			return movies, st.WriteSource(movies)
		})
	return r, st, movies
}

func buildAndWrite(r *runner, st store.Store, movies []kino.MergedMovie) error {
	layout := kino.DefaultLayout()

	v := stage(r, "build views", func(v views.Views) int { return len(v.ShowLookup) },
		func(ctx context.Context) (views.Views, error) {
			return views.Build(ctx, layout, movies), nil
		})
	stage(r, "write views", nil, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, st.WriteViews(v)
	})
	if r.err != nil {
		return r.err
	}
	r.summary.Render()
	return nil
}
