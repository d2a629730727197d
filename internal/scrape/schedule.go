package scrape

import (
	"context"
	"log/slog"
	"strings"

	"kinoschurke/internal/kino"
	"kinoschurke/lib/timezone"

	"github.com/PuerkitoBio/goquery"
)

// Schedules scrapes the program overview site, the only source that knows
// dates, times, rooms and ticket links. A single page load covers all three
// cinemas. Unparseable dates and unresolvable rooms are per-record problems
// (warn and drop), a failed page load is fatal.
func Schedules(ctx context.Context, f Fetcher, layout kino.Layout, cfg Config) ([]kino.ScheduleEntry, error) {
	ctx, span := tracer.Start(ctx, "Schedules")
	defer span.End()

	slog.InfoContext(ctx, "scraping schedules", "url", cfg.overviewURL())
	doc, err := f.Document(ctx, cfg.overviewURL())
	if err != nil {
		return nil, err
	}

	e := &scheduleExtractor{ctx: ctx, f: f, layout: layout, cfg: cfg}

	var entries []kino.ScheduleEntry
	doc.Find(".movie-item").Each(func(i int, item *goquery.Selection) {
		entry, ok := e.extractMovie(i, item)
		if !ok {
			return
		}
		entries = append(entries, entry)
	})

	return filterDuplicateTitles(entries, func(s kino.ScheduleEntry) string {
		return s.Title
	}), nil
}

type scheduleExtractor struct {
	ctx    context.Context
	f      Fetcher
	layout kino.Layout
	cfg    Config

	// list-view variant of the overview page, fetched once on demand when a
	// movie's time grids are collapsed on the default view
	listDoc *goquery.Document

	// last widget URL seen, the poll for the next show's URL waits for the
	// value to change from this
	prevWidgetURL string
}

func (e *scheduleExtractor) extractMovie(index int, item *goquery.Selection) (kino.ScheduleEntry, bool) {
	entry := kino.ScheduleEntry{
		Title:    kino.UnknownTitle,
		Duration: kino.UnknownDuration,
	}
	if title := strings.TrimSpace(item.Find(".title").First().Text()); title != "" {
		entry.Title = title
	}
	if minutes := strings.TrimSpace(item.Find(".minutes").First().Text()); minutes != "" {
		entry.Duration = minutes
	}
	item.Find(".attribute").Each(func(_ int, attr *goquery.Selection) {
		entry.Attributes = append(entry.Attributes, kino.NormalizeAttribute(strings.TrimSpace(attr.Text())))
	})
	if entry.Attributes == nil {
		entry.Attributes = []string{}
	}

	// the grids hold the whole schedule: grid 0 is the date axis, every
	// further grid is one theater column
	grids := item.Find(".movie-times-grid")
	if grids.Length() == 0 {
		// collapsed on the default view, the list view expands all dates
		item = e.listViewItem(index)
		if item != nil {
			grids = item.Find(".movie-times-grid")
		}
		if grids.Length() == 0 {
			slog.WarnContext(e.ctx, "no time grids for movie, skipping", "title", entry.Title)
			return entry, false
		}
	}

	now := timezone.Now()
	var dates []string
	grids.Eq(0).Find(".date").Each(func(_ int, el *goquery.Selection) {
		raw := strings.TrimSpace(el.Text())
		date, ok := kino.NormalizeDateText(now, raw)
		if !ok {
			slog.WarnContext(e.ctx, "could not parse date, dropping", "raw", raw, "title", entry.Title)
			dates = append(dates, "")
			return
		}
		dates = append(dates, date)
	})

	for dateIndex, date := range dates {
		if date == "" {
			continue
		}
		var shows []kino.Show
		for gridIndex := 1; gridIndex < grids.Length(); gridIndex++ {
			wrapper := grids.Eq(gridIndex).Find(".performances-wrapper").Eq(dateIndex)
			if wrapper.Length() == 0 {
				continue
			}
			wrapper.Find(".show-wrapper").Each(func(showIndex int, showEl *goquery.Selection) {
				shows = append(shows, e.extractShow(index, entry.Title, showEl))
			})
		}
		e.layout.CorrectWidgetURLs(shows)
		entry.Showtimes = append(entry.Showtimes, kino.DateShows{Date: date, Shows: shows})
	}

	if len(entry.Showtimes) == 0 {
		slog.WarnContext(e.ctx, "movie has no usable dates, skipping", "title", entry.Title)
		return entry, false
	}
	return entry, true
}

func (e *scheduleExtractor) extractShow(movieIndex int, title string, showEl *goquery.Selection) kino.Show {
	show := kino.Show{
		Time:      kino.UnknownTime,
		IframeURL: kino.UnknownIframeURL,
	}
	if t := strings.TrimSpace(showEl.Find(".showtime").First().Text()); t != "" {
		show.Time = t
	}

	// keep the raw text when normalization fails so the transform stage can
	// name the room it drops
	room := strings.TrimSpace(showEl.Find(".theatre-name").First().Text())
	if canonical, ok := e.layout.NormalizeRoomName(room); ok {
		show.Theater = canonical
	} else {
		show.Theater = room
	}

	showEl.Find(".attribute-logo").Each(func(_ int, logo *goquery.Selection) {
		attr := strings.TrimSpace(logo.Find(".screen-reader-text").Text())
		if attr == "" {
			attr = logo.AttrOr("data-attribute", "Unknown Attribute")
		}
		show.Attributes = append(show.Attributes, kino.NormalizeAttribute(attr))
	})
	if show.Attributes == nil {
		show.Attributes = []string{}
	}

	if url := inlineWidgetURL(showEl); url != "" {
		show.IframeURL = url
		e.prevWidgetURL = url
		return show
	}

	// the widget URL is a side channel that may only materialize after the
	// show is activated, poll the page for it to appear or change
	showID := showEl.AttrOr("data-show-id", "")
	url := pollForArtifact(e.ctx, e.cfg.pollInterval(), e.cfg.pollTimeout(), e.prevWidgetURL, func() (string, error) {
		doc, err := e.f.Document(e.ctx, e.cfg.overviewURL())
		if err != nil {
			return "", err
		}
		sel := doc.Find(".movie-item").Eq(movieIndex).Find(".show-wrapper")
		if showID != "" {
			sel = sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
				return s.AttrOr("data-show-id", "") == showID
			})
		}
		return inlineWidgetURL(sel.First()), nil
	})
	if url == "" {
		// ticket-link absence is a displayable state, keep the show
		slog.WarnContext(e.ctx, "no widget url for show", "title", title, "time", show.Time)
		return show
	}
	show.IframeURL = url
	e.prevWidgetURL = url
	return show
}

// listViewItem fetches the list-view variant of the overview page (the same
// data with all dates expanded) and returns the movie item at the given
// index, or nil when that also fails.
func (e *scheduleExtractor) listViewItem(index int) *goquery.Selection {
	if e.listDoc == nil {
		doc, err := e.f.Document(e.ctx, e.cfg.overviewURL()+"?ansicht=liste")
		if err != nil {
			slog.WarnContext(e.ctx, "list view fetch failed", "err", err)
			return nil
		}
		e.listDoc = doc
	}
	item := e.listDoc.Find(".movie-item").Eq(index)
	if item.Length() == 0 {
		return nil
	}
	return item
}

func inlineWidgetURL(showEl *goquery.Selection) string {
	if v := showEl.AttrOr("data-iframe-src", ""); v != "" {
		return v
	}
	if v, ok := showEl.Find("a[href*='mode=widget']").Attr("href"); ok && v != "" {
		return v
	}
	if v, ok := showEl.Find("iframe").Attr("src"); ok && v != "" {
		return v
	}
	return ""
}
