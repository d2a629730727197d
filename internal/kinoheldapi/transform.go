package kinoheldapi

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"kinoschurke/internal/kino"
)

// flag codes the booking system uses, mapped to the display names the
// scraped overview site shows for the same attribute.
var flagNames = map[string]string{
	"3d":    "3D",
	"omdu":  "OmdU",
	"omu":   "OmU",
	"omeu":  "OmeU",
	"ov":    "OV",
	"atmos": "Dolby Atmos",
}

// fallback trailer when the catalog record carries none
const defaultTrailerID = "aFXjl4AA1hA"

// Adapt folds an API response into the merged-movie shape the view
// transformer consumes. Shows in unknown auditoriums are dropped with a
// warning. Result order follows groupIds, which is the display order the
// booking widget itself uses.
func Adapt(layout kino.Layout, data Data) []kino.MergedMovie {
	groupRank := make(map[int]int, len(data.GroupIDs))
	for i, id := range data.GroupIDs {
		groupRank[id] = i
	}

	type bucket struct {
		movieID string
		numID   int
		rank    int
		dates   map[string][]kino.Show
		attrs   []string
		seen    map[string]bool
	}
	buckets := map[string]*bucket{}

	for _, show := range data.Shows {
		room, _, ok := layout.RoomForAuditorium(show.AuditoriumID)
		if !ok {
			slog.Warn("show in unknown auditorium, dropping",
				"auditorium", show.AuditoriumID, "show", show.Name)
			continue
		}

		movieID := strconv.Itoa(show.MovieID)
		b := buckets[movieID]
		if b == nil {
			b = &bucket{
				movieID: movieID,
				numID:   show.MovieID,
				rank:    len(data.GroupIDs),
				dates:   map[string][]kino.Show{},
				seen:    map[string]bool{},
			}
			buckets[movieID] = b
		}
		if r, ok := groupRank[show.GroupID]; ok && r < b.rank {
			b.rank = r
		}

		attrs := showAttributes(show.Flags)
		for _, a := range attrs {
			if !b.seen[a] {
				b.seen[a] = true
				b.attrs = append(b.attrs, a)
			}
		}

		b.dates[show.Date] = append(b.dates[show.Date], kino.Show{
			Time:       show.Time,
			Theater:    room,
			Attributes: attrs,
			IframeURL:  widgetURL(layout, room, show.ID),
		})
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].rank != ordered[j].rank {
			return ordered[i].rank < ordered[j].rank
		}
		return ordered[i].numID < ordered[j].numID
	})

	movies := make([]kino.MergedMovie, 0, len(ordered))
	for i, b := range ordered {
		m := adaptMovie(data.Movies[b.movieID])
		m.ID = i
		m.Attributes = b.attrs
		if m.Attributes == nil {
			m.Attributes = []string{}
		}

		dates := make([]string, 0, len(b.dates))
		for d := range b.dates {
			dates = append(dates, d)
		}
		sort.Strings(dates)
		for _, d := range dates {
			m.Showtimes = append(m.Showtimes, kino.DateShows{Date: d, Shows: b.dates[d]})
		}
		movies = append(movies, m)
	}
	return movies
}

// showAttributes maps the flag codes of one show to display attributes.
// A show without flags is a regular 2D screening.
func showAttributes(flags []Flag) []string {
	if len(flags) == 0 {
		return []string{"2D"}
	}
	attrs := make([]string, 0, len(flags))
	for _, f := range flags {
		if name, ok := flagNames[strings.ToLower(f.Code)]; ok {
			attrs = append(attrs, name)
		} else if f.Name != "" {
			attrs = append(attrs, f.Name)
		} else {
			attrs = append(attrs, f.Code)
		}
	}
	return attrs
}

// widgetURL synthesizes the booking iframe URL the overview site would have
// linked for this show.
func widgetURL(layout kino.Layout, room string, showID int) string {
	slug, ok := layout.SlugForRoom(room)
	if !ok {
		return kino.UnknownIframeURL
	}
	return fmt.Sprintf("https://www.kinoheld.de/kino/tuebingen/%s/show/%d?mode=widget&showId=%d",
		slug, showID, showID)
}

func adaptMovie(m APIMovie) kino.MergedMovie {
	out := kino.MergedMovie{
		Title:         firstOf(m.Title, m.Name, kino.UnknownTitle),
		Duration:      kino.UnknownDuration,
		FSK:           kino.UnknownFSK,
		Genre:         joinNamed(m.Genres, kino.UnknownGenre),
		OriginalTitle: firstOf(m.TitleOrig, kino.UnknownOriginalTitle),
		Production:    firstOf(strings.Join(m.ProductionCountries, ", "), kino.UnknownProduction),
		ReleaseDate:   formatReleaseDate(m.Released),
		Distributor:   firstOf(m.Distributor, kino.UnknownDistributor),
		Director:      joinNamed(m.Directors, kino.UnknownDirector),
		Description:   cleanDescription(m.Description, m.AdditionalDescription),
		PosterURL:     firstOf(m.LargeImage, m.LazyImage, kino.UnknownPosterURL),
		TrailerURL:    trailerURL(m),
		Actors:        []string{},
	}
	if m.Duration > 0 {
		out.Duration = fmt.Sprintf("%d min", m.Duration)
	}
	if m.AgeClassification != nil && m.AgeClassification.Value.String() != "" {
		out.FSK = m.AgeClassification.Value.String()
	}
	for _, a := range m.Actors {
		if a.Name != "" {
			out.Actors = append(out.Actors, a.Name)
		}
	}
	return out
}

func firstOf(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

func joinNamed(items []named, sentinel string) string {
	var names []string
	for _, it := range items {
		if it.Name != "" {
			names = append(names, it.Name)
		}
	}
	if len(names) == 0 {
		return sentinel
	}
	return strings.Join(names, ", ")
}

// formatReleaseDate renders the catalog's ISO release date the way the
// scraped widget pages show it.
func formatReleaseDate(released string) string {
	if released == "" {
		return kino.UnknownReleaseDate
	}
	t, err := time.Parse("2006-01-02", strings.SplitN(released, " ", 2)[0])
	if err != nil {
		return kino.UnknownReleaseDate
	}
	return t.Format("2.1.2006")
}

var descriptionReplacer = strings.NewReplacer(
	"<br>", "\n", "<br/>", "\n", "<br />", "\n",
	"&amp;", "&", "&quot;", `"`, "&#039;", "'", "&nbsp;", " ",
)

func cleanDescription(description, additional string) string {
	text := description
	if additional != "" {
		if text != "" {
			text += "\n\n"
		}
		text += additional
	}
	if text == "" {
		return kino.UnknownDescription
	}
	return strings.TrimSpace(descriptionReplacer.Replace(text))
}

// trailerURL picks the first youtube trailer of the catalog record. The
// view transformer extracts the plain video id from watch URLs, so we hand
// it one even for the fallback id.
func trailerURL(m APIMovie) string {
	for _, t := range m.Trailers {
		if t.ID != "" {
			return "https://www.youtube.com/watch?v=" + t.ID
		}
	}
	return "https://www.youtube.com/watch?v=" + defaultTrailerID
}
