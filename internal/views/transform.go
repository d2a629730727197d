package views

import (
	"context"
	"log/slog"
	"sort"
	"strconv"

	"kinoschurke/internal/kino"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("kinoschurke/views")

// routedShow is one showing with its room already resolved to the owning
// cinema. Routing happens exactly once, before any view is built: a show
// whose room is unknown is dropped here with a warning and therefore appears
// in no view at all, never partially in some.
type routedShow struct {
	movie   *kino.MergedMovie
	date    string
	theater string
	room    string
	show    kino.Show
}

// Build derives every view from the merged movie list. A malformed movie
// only loses its own shows, it never aborts the batch.
func Build(ctx context.Context, layout kino.Layout, movies []kino.MergedMovie) Views {
	ctx, span := tracer.Start(ctx, "Build")
	defer span.End()

	routed := route(ctx, layout, movies)

	out := Views{
		DateView:        buildDateView(layout, routed),
		RoomView:        buildRoomView(layout, routed),
		MovieView:       buildMovieView(layout, movies, routed),
		ShowLookup:      buildShowLookup(ctx, routed),
		MoviesReference: make(map[string]MovieInfo, len(movies)),
		Theaters:        make(map[string]TheaterRef, len(layout.Theaters)),
	}
	out.EventView = buildEventView(layout, routed)

	for i := range movies {
		out.MoviesReference[strconv.Itoa(movies[i].ID)] = NewMovieInfo(movies[i])
	}
	for _, t := range layout.Theaters {
		out.Theaters[t.Name] = TheaterRef{Name: t.Name, Slug: t.Slug, Rooms: t.Rooms}
	}
	return out
}

func route(ctx context.Context, layout kino.Layout, movies []kino.MergedMovie) []routedShow {
	var routed []routedShow
	for i := range movies {
		movie := &movies[i]
		for _, dateEntry := range movie.Showtimes {
			if dateEntry.Date == "" {
				slog.WarnContext(ctx, "showtime entry without date, skipping", "title", movie.Title)
				continue
			}
			for _, show := range dateEntry.Shows {
				theater, ok := layout.TheaterForRoom(show.Theater)
				if !ok {
					slog.WarnContext(ctx, "unknown room, dropping show",
						"room", show.Theater, "title", movie.Title, "date", dateEntry.Date)
					continue
				}
				routed = append(routed, routedShow{
					movie:   movie,
					date:    dateEntry.Date,
					theater: theater.Name,
					room:    show.Theater,
					show:    show,
				})
			}
		}
	}
	return routed
}

func newShowing(r routedShow, withTitle bool) Showing {
	s := Showing{
		Time:       r.show.Time,
		EndTime:    kino.EndTime(r.show.Time, r.movie.Duration),
		MovieID:    r.movie.ID,
		Attributes: r.show.Attributes,
		IframeURL:  r.show.IframeURL,
	}
	if withTitle {
		s.MovieTitle = r.movie.Title
	}
	return s
}

// sortShowings orders a leaf ascending by time. The sort is stable and the
// comparison lexicographic, which is correct because times are always
// zero-padded HH:MM.
func sortShowings(showings []Showing) {
	sort.SliceStable(showings, func(i, j int) bool {
		return showings[i].Time < showings[j].Time
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// theaterRooms converts a theater->room->showings map into the nested array
// form, ordering theaters and rooms by the fixed layout enumeration and
// dropping every container that ended up empty.
func theaterRooms(layout kino.Layout, byTheater map[string]map[string][]Showing) []TheaterRooms {
	var theaters []TheaterRooms
	for _, t := range layout.Theaters {
		rooms := byTheater[t.Name]
		if len(rooms) == 0 {
			continue
		}
		entry := TheaterRooms{Name: t.Name}
		for _, roomName := range t.Rooms {
			showings := rooms[roomName]
			if len(showings) == 0 {
				continue
			}
			sortShowings(showings)
			entry.Rooms = append(entry.Rooms, RoomShowings{Name: roomName, Showings: showings})
		}
		if len(entry.Rooms) > 0 {
			theaters = append(theaters, entry)
		}
	}
	return theaters
}

func buildDateView(layout kino.Layout, routed []routedShow) []DateEntry {
	byDate := map[string]map[string]map[string][]Showing{}
	for _, r := range routed {
		theaters := byDate[r.date]
		if theaters == nil {
			theaters = map[string]map[string][]Showing{}
			byDate[r.date] = theaters
		}
		rooms := theaters[r.theater]
		if rooms == nil {
			rooms = map[string][]Showing{}
			theaters[r.theater] = rooms
		}
		rooms[r.room] = append(rooms[r.room], newShowing(r, true))
	}

	var view []DateEntry
	for _, date := range sortedKeys(byDate) {
		theaters := theaterRooms(layout, byDate[date])
		if len(theaters) == 0 {
			continue
		}
		view = append(view, DateEntry{Date: date, Theaters: theaters})
	}
	return view
}

func buildRoomView(layout kino.Layout, routed []routedShow) []RoomViewTheater {
	byRoom := map[string]map[string][]Showing{}
	for _, r := range routed {
		dates := byRoom[r.room]
		if dates == nil {
			dates = map[string][]Showing{}
			byRoom[r.room] = dates
		}
		dates[r.date] = append(dates[r.date], newShowing(r, true))
	}

	var view []RoomViewTheater
	for _, t := range layout.Theaters {
		entry := RoomViewTheater{Name: t.Name}
		for _, roomName := range t.Rooms {
			dates := byRoom[roomName]
			if len(dates) == 0 {
				continue
			}
			room := RoomDates{Name: roomName, Slug: kino.Slugify(roomName)}
			for _, date := range sortedKeys(dates) {
				showings := dates[date]
				sortShowings(showings)
				room.Dates = append(room.Dates, DateShowings{Date: date, Showings: showings})
			}
			entry.Rooms = append(entry.Rooms, room)
		}
		if len(entry.Rooms) > 0 {
			view = append(view, entry)
		}
	}
	return view
}

func buildMovieView(layout kino.Layout, movies []kino.MergedMovie, routed []routedShow) []MovieEntry {
	byMovie := map[int]map[string]map[string]map[string][]Showing{}
	for _, r := range routed {
		dates := byMovie[r.movie.ID]
		if dates == nil {
			dates = map[string]map[string]map[string][]Showing{}
			byMovie[r.movie.ID] = dates
		}
		theaters := dates[r.date]
		if theaters == nil {
			theaters = map[string]map[string][]Showing{}
			dates[r.date] = theaters
		}
		rooms := theaters[r.theater]
		if rooms == nil {
			rooms = map[string][]Showing{}
			theaters[r.theater] = rooms
		}
		// the movie view repeats the movie header, the title inside each
		// showing would be redundant
		rooms[r.room] = append(rooms[r.room], newShowing(r, false))
	}

	var view []MovieEntry
	for i := range movies {
		dates := byMovie[movies[i].ID]
		if len(dates) == 0 {
			continue
		}
		entry := MovieEntry{MovieInfo: NewMovieInfo(movies[i])}
		for _, date := range sortedKeys(dates) {
			theaters := theaterRooms(layout, dates[date])
			if len(theaters) == 0 {
				continue
			}
			entry.Dates = append(entry.Dates, MovieDate{Date: date, Theaters: theaters})
		}
		view = append(view, entry)
	}
	return view
}

func buildEventView(layout kino.Layout, routed []routedShow) []EventEntry {
	type eventAcc struct {
		name  string
		dates map[string]map[string]map[string][]Showing
	}
	events := map[string]*eventAcc{}

	for _, r := range routed {
		for _, event := range kino.FilterEventAttributes(r.show.Attributes) {
			slug := kino.Slugify(event)
			acc := events[slug]
			if acc == nil {
				acc = &eventAcc{name: event, dates: map[string]map[string]map[string][]Showing{}}
				events[slug] = acc
			}
			theaters := acc.dates[r.date]
			if theaters == nil {
				theaters = map[string]map[string][]Showing{}
				acc.dates[r.date] = theaters
			}
			rooms := theaters[r.theater]
			if rooms == nil {
				rooms = map[string][]Showing{}
				theaters[r.theater] = rooms
			}
			rooms[r.room] = append(rooms[r.room], newShowing(r, true))
		}
	}

	var view []EventEntry
	for _, slug := range sortedKeys(events) {
		acc := events[slug]
		entry := EventEntry{Slug: slug, Name: acc.name}
		for _, date := range sortedKeys(acc.dates) {
			theaters := theaterRooms(layout, acc.dates[date])
			if len(theaters) == 0 {
				continue
			}
			entry.Dates = append(entry.Dates, MovieDate{Date: date, Theaters: theaters})
		}
		if len(entry.Dates) > 0 {
			view = append(view, entry)
		}
	}
	sort.Slice(view, func(i, j int) bool { return view[i].Name < view[j].Name })
	return view
}

func buildShowLookup(ctx context.Context, routed []routedShow) map[string]LookupEntry {
	lookup := make(map[string]LookupEntry)
	for _, r := range routed {
		hash, ok := kino.ShowHash(r.show.IframeURL, r.show.Time)
		if !ok {
			// no widget id means no shareable deep link, the show still
			// renders in every view
			slog.DebugContext(ctx, "show has no widget id, skipping lookup entry",
				"title", r.movie.Title, "time", r.show.Time)
			continue
		}
		lookup[hash] = LookupEntry{
			Show: LookupShow{
				Showing: newShowing(r, true),
				Theater: r.room,
			},
			MovieInfo: NewMovieInfo(*r.movie),
			Date:      r.date,
		}
	}
	return lookup
}
