package views

import (
	"context"
	"fmt"
	"testing"

	"kinoschurke/internal/kino"
	"kinoschurke/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func widgetURL(slug string, id int) string {
	return fmt.Sprintf("https://www.kinoheld.de/kino/tuebingen/%s/show/%d?mode=widget&showId=%d",
		slug, id, id)
}

func fixtureMovies() []kino.MergedMovie {
	return []kino.MergedMovie{
		{
			ID:       0,
			Title:    "Der wilde Roboter",
			Duration: "102 min",
			Showtimes: []kino.DateShows{
				{
					Date: "2025-03-01",
					Shows: []kino.Show{
						{
							Time:       "20:30",
							Theater:    "Saal Kubrick",
							Attributes: []string{"2D"},
							IframeURL:  widgetURL("kino-blaue-bruecke-tuebingen", 101),
						},
						{
							Time:       "17:45",
							Theater:    "Saal Kubrick",
							Attributes: []string{"2D"},
							IframeURL:  widgetURL("kino-blaue-bruecke-tuebingen", 102),
						},
					},
				},
				{
					Date: "2025-03-02",
					Shows: []kino.Show{
						{
							Time:       "18:00",
							Theater:    "Atelier",
							Attributes: []string{"OmdU", "Arthaus-Festival"},
							IframeURL:  widgetURL("kino-atelier-tuebingen", 103),
						},
					},
				},
			},
		},
		{
			ID:       1,
			Title:    "Konklave",
			Duration: "120 min",
			Showtimes: []kino.DateShows{
				{
					Date: "2025-03-01",
					Shows: []kino.Show{
						{
							Time:       "19:00",
							Theater:    "Saal Almodóvar",
							Attributes: []string{"2D"},
							IframeURL:  widgetURL("kino-museum-tuebingen", 104),
						},
						{
							// unknown room, must appear in no view
							Time:       "21:00",
							Theater:    "Saal 9",
							Attributes: []string{"2D"},
							IframeURL:  widgetURL("kino-museum-tuebingen", 105),
						},
					},
				},
			},
		},
		{
			// no usable showtimes at all, appears only in the reference map
			ID:        2,
			Title:     "Wicked",
			Duration:  "160 min",
			Showtimes: []kino.DateShows{{Date: "", Shows: []kino.Show{{Time: "20:00", Theater: "Atelier"}}}},
		},
	}
}

func TestBuildDateView(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:internal/views")
	defer cleanup()

	v := Build(context.Background(), kino.DefaultLayout(), fixtureMovies())

	require.Len(t, v.DateView, 2)
	require.Equal(t, "2025-03-01", v.DateView[0].Date)
	require.Equal(t, "2025-03-02", v.DateView[1].Date)

	// theaters in layout order: Blaue Brücke before Museum
	day1 := v.DateView[0]
	require.Len(t, day1.Theaters, 2)
	require.Equal(t, "Kino Blaue Brücke", day1.Theaters[0].Name)
	require.Equal(t, "Kino Museum", day1.Theaters[1].Name)

	// showings sorted by time, not by input order
	kubrick := day1.Theaters[0].Rooms[0]
	require.Equal(t, "Saal Kubrick", kubrick.Name)
	require.Equal(t, []string{"17:45", "20:30"},
		[]string{kubrick.Showings[0].Time, kubrick.Showings[1].Time})
	require.Equal(t, "Der wilde Roboter", kubrick.Showings[0].MovieTitle)
	require.Equal(t, "19:27", kubrick.Showings[0].EndTime)

	// the unknown-room show is gone, only Almodóvar remains for Museum
	museum := day1.Theaters[1]
	require.Len(t, museum.Rooms, 1)
	require.Equal(t, "Saal Almodóvar", museum.Rooms[0].Name)
	require.Len(t, museum.Rooms[0].Showings, 1)
}

func TestBuildNoEmptyContainers(t *testing.T) {
	v := Build(context.Background(), kino.DefaultLayout(), fixtureMovies())

	for _, date := range v.DateView {
		require.NotEmpty(t, date.Theaters)
		for _, theater := range date.Theaters {
			require.NotEmpty(t, theater.Rooms)
			for _, room := range theater.Rooms {
				require.NotEmpty(t, room.Showings)
			}
		}
	}
	for _, theater := range v.RoomView {
		require.NotEmpty(t, theater.Rooms)
		for _, room := range theater.Rooms {
			require.NotEmpty(t, room.Dates)
			for _, date := range room.Dates {
				require.NotEmpty(t, date.Showings)
			}
		}
	}
	for _, movie := range v.MovieView {
		require.NotEmpty(t, movie.Dates)
	}
	for _, event := range v.EventView {
		require.NotEmpty(t, event.Dates)
	}
}

func TestBuildRoomView(t *testing.T) {
	v := Build(context.Background(), kino.DefaultLayout(), fixtureMovies())

	require.Len(t, v.RoomView, 3)
	require.Equal(t, "Kino Blaue Brücke", v.RoomView[0].Name)

	kubrick := v.RoomView[0].Rooms[0]
	require.Equal(t, "Saal Kubrick", kubrick.Name)
	require.Equal(t, "saal-kubrick", kubrick.Slug)
	require.Len(t, kubrick.Dates, 1)
	require.Equal(t, "2025-03-01", kubrick.Dates[0].Date)
}

func TestBuildMovieView(t *testing.T) {
	v := Build(context.Background(), kino.DefaultLayout(), fixtureMovies())

	// Wicked has no routable show, it must not get a movie view entry
	require.Len(t, v.MovieView, 2)

	roboter := v.MovieView[0]
	require.Equal(t, "Der wilde Roboter", roboter.Title)
	require.Equal(t, "der-wilde-roboter", roboter.Slug)
	require.Len(t, roboter.Dates, 2)

	// the movie view never repeats the title inside showings
	for _, date := range roboter.Dates {
		for _, theater := range date.Theaters {
			for _, room := range theater.Rooms {
				for _, s := range room.Showings {
					require.Empty(t, s.MovieTitle)
				}
			}
		}
	}

	// but every movie still surfaces in the reference map
	require.Len(t, v.MoviesReference, 3)
	require.Equal(t, "Wicked", v.MoviesReference["2"].Title)
}

func TestBuildEventView(t *testing.T) {
	v := Build(context.Background(), kino.DefaultLayout(), fixtureMovies())

	require.Len(t, v.EventView, 1)
	event := v.EventView[0]
	require.Equal(t, "Arthaus-Festival", event.Name)
	require.Equal(t, "arthaus-festival", event.Slug)
	require.Len(t, event.Dates, 1)
	require.Equal(t, "2025-03-02", event.Dates[0].Date)
	// format flags never become events
	require.Len(t, event.Dates[0].Theaters, 1)
	require.Equal(t, "Kino Atelier", event.Dates[0].Theaters[0].Name)
}

func TestBuildShowLookupRoundTrip(t *testing.T) {
	v := Build(context.Background(), kino.DefaultLayout(), fixtureMovies())

	// one entry per routed show with a widget id
	require.Len(t, v.ShowLookup, 4)

	for key, entry := range v.ShowLookup {
		hash, ok := kino.ShowHash(entry.Show.IframeURL, entry.Show.Time)
		require.True(t, ok)
		require.Equal(t, key, hash)
		require.NotEmpty(t, entry.Show.Theater)
		require.NotEmpty(t, entry.Date)
	}

	entry, ok := v.ShowLookup["104-19-00"]
	require.True(t, ok)
	require.Equal(t, "Saal Almodóvar", entry.Show.Theater)
	require.Equal(t, "Konklave", entry.MovieInfo.Title)
	require.Equal(t, "2025-03-01", entry.Date)
}

func TestNewMovieInfoTrailerID(t *testing.T) {
	m := kino.MergedMovie{
		ID:    5,
		Title: "Konklave",
		// the booking-API adapter hands over watch-form URLs
		TrailerURL: "https://www.youtube.com/watch?v=JX9jasdj3ss",
	}
	require.Equal(t, "JX9jasdj3ss", NewMovieInfo(m).TrailerURL)

	m.TrailerURL = kino.UnknownTrailerURL
	require.Equal(t, kino.UnknownTrailerURL, NewMovieInfo(m).TrailerURL)
}

func TestBuildTheatersReference(t *testing.T) {
	v := Build(context.Background(), kino.DefaultLayout(), fixtureMovies())

	require.Len(t, v.Theaters, 3)
	diff := cmp.Diff(TheaterRef{
		Name:  "Kino Atelier",
		Slug:  "kino-atelier-tuebingen",
		Rooms: []string{"Atelier"},
	}, v.Theaters["Kino Atelier"])
	if diff != "" {
		t.Fatal(diff)
	}
}
