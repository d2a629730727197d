package kinoheldapi

import (
	"testing"

	"kinoschurke/internal/kino"

	"github.com/stretchr/testify/require"
)

func TestAdaptGroupsAndOrders(t *testing.T) {
	data := Data{
		Shows: []APIShow{
			{ID: 501, MovieID: 21, Date: "2025-03-02", Time: "20:00", AuditoriumID: 11119, GroupID: 2},
			{ID: 502, MovieID: 21, Date: "2025-03-01", Time: "17:30", AuditoriumID: 11119, GroupID: 2},
			{ID: 503, MovieID: 22, Date: "2025-03-01", Time: "19:00", AuditoriumID: 11121, GroupID: 1},
		},
		Movies: map[string]APIMovie{
			"21": {Title: "Der wilde Roboter", Duration: 102},
			"22": {Title: "Konklave", Duration: 120},
		},
		GroupIDs: []int{1, 2},
	}

	movies := Adapt(kino.DefaultLayout(), data)
	require.Len(t, movies, 2)

	// groupIds decides the output order, not show order
	require.Equal(t, "Konklave", movies[0].Title)
	require.Equal(t, "Der wilde Roboter", movies[1].Title)
	require.Equal(t, 0, movies[0].ID)
	require.Equal(t, 1, movies[1].ID)

	roboter := movies[1]
	require.Equal(t, "102 min", roboter.Duration)
	require.Len(t, roboter.Showtimes, 2)
	// dates sorted ascending
	require.Equal(t, "2025-03-01", roboter.Showtimes[0].Date)
	require.Equal(t, "2025-03-02", roboter.Showtimes[1].Date)

	show := roboter.Showtimes[0].Shows[0]
	require.Equal(t, "17:30", show.Time)
	require.Equal(t, "Saal Kubrick", show.Theater)
	require.Equal(t,
		"https://www.kinoheld.de/kino/tuebingen/kino-blaue-bruecke-tuebingen/show/502?mode=widget&showId=502",
		show.IframeURL)
}

func TestAdaptOrdersEqualRanksNumerically(t *testing.T) {
	data := Data{
		Shows: []APIShow{
			{ID: 601, MovieID: 100, Date: "2025-03-01", Time: "20:00", AuditoriumID: 11127, GroupID: 1},
			{ID: 602, MovieID: 21, Date: "2025-03-01", Time: "18:00", AuditoriumID: 11127, GroupID: 1},
		},
		Movies: map[string]APIMovie{
			"100": {Title: "Wicked"},
			"21":  {Title: "Konklave"},
		},
		GroupIDs: []int{1},
	}

	movies := Adapt(kino.DefaultLayout(), data)
	require.Len(t, movies, 2)
	// same group rank: 21 before 100, not "100" before "21"
	require.Equal(t, "Konklave", movies[0].Title)
	require.Equal(t, "Wicked", movies[1].Title)
}

func TestAdaptDropsUnknownAuditorium(t *testing.T) {
	data := Data{
		Shows: []APIShow{
			{ID: 501, MovieID: 21, Date: "2025-03-01", Time: "20:00", AuditoriumID: 99999},
		},
		Movies: map[string]APIMovie{
			"21": {Title: "Der wilde Roboter"},
		},
	}

	movies := Adapt(kino.DefaultLayout(), data)
	require.Empty(t, movies)
}

func TestShowAttributes(t *testing.T) {
	cases := []struct {
		flags    []Flag
		expected []string
	}{
		{flags: nil, expected: []string{"2D"}},
		{flags: []Flag{{Code: "3d"}}, expected: []string{"3D"}},
		{flags: []Flag{{Code: "omdu"}, {Code: "atmos"}}, expected: []string{"OmdU", "Dolby Atmos"}},
		{flags: []Flag{{Code: "OV"}}, expected: []string{"OV"}},
		// unknown codes pass through by display name
		{flags: []Flag{{Code: "festival-x", Name: "Festival X"}}, expected: []string{"Festival X"}},
		{flags: []Flag{{Code: "festival-x"}}, expected: []string{"festival-x"}},
	}

	for _, test := range cases {
		require.Equal(t, test.expected, showAttributes(test.flags), "flags %v", test.flags)
	}
}

func TestAdaptMovieFields(t *testing.T) {
	m := adaptMovie(APIMovie{
		Title:               "Konklave",
		TitleOrig:           "Conclave",
		Duration:            120,
		Genres:              []named{{Name: "Drama"}, {Name: "Thriller"}},
		AgeClassification:   &rating{Value: "12"},
		ProductionCountries: []string{"UK", "USA"},
		Released:            "2024-11-21",
		Distributor:         "Leonine",
		Directors:           []named{{Name: "Edward Berger"}},
		Actors:              []named{{Name: "Ralph Fiennes"}},
		Description:         "Nach dem Tod des Papstes&nbsp;...<br>Zweite Zeile",
		LargeImage:          "https://images.kinoheld.de/konklave.jpg",
		Trailers: []struct {
			Format string `json:"format"`
			ID     string `json:"id"`
		}{{Format: "youtube", ID: "JX9jasdj3ss"}},
	})

	require.Equal(t, "Konklave", m.Title)
	require.Equal(t, "Conclave", m.OriginalTitle)
	require.Equal(t, "120 min", m.Duration)
	require.Equal(t, "12", m.FSK)
	require.Equal(t, "Drama, Thriller", m.Genre)
	require.Equal(t, "UK, USA", m.Production)
	require.Equal(t, "21.11.2024", m.ReleaseDate)
	require.Equal(t, "Edward Berger", m.Director)
	require.Equal(t, []string{"Ralph Fiennes"}, m.Actors)
	require.Equal(t, "Nach dem Tod des Papstes ...\nZweite Zeile", m.Description)
	require.Equal(t, "https://images.kinoheld.de/konklave.jpg", m.PosterURL)
	require.Equal(t, "https://www.youtube.com/watch?v=JX9jasdj3ss", m.TrailerURL)
}

func TestAdaptMovieSentinels(t *testing.T) {
	m := adaptMovie(APIMovie{Name: "Sneak Preview"})

	require.Equal(t, "Sneak Preview", m.Title)
	require.Equal(t, kino.UnknownDuration, m.Duration)
	require.Equal(t, kino.UnknownFSK, m.FSK)
	require.Equal(t, kino.UnknownGenre, m.Genre)
	require.Equal(t, kino.UnknownOriginalTitle, m.OriginalTitle)
	require.Equal(t, kino.UnknownReleaseDate, m.ReleaseDate)
	require.Equal(t, kino.UnknownDescription, m.Description)
	require.Equal(t, kino.UnknownPosterURL, m.PosterURL)
	// fallback trailer so the movie page always has something to embed
	require.Equal(t, "https://www.youtube.com/watch?v="+defaultTrailerID, m.TrailerURL)
}
